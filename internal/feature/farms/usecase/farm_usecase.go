// Package usecase implements the business logic for the farms feature.
package usecase

import (
	"context"
	"fmt"
	"strings"

	authentity "farmgrocery/internal/feature/auth/domain/entity"
	"farmgrocery/internal/feature/farms/domain/entity"
	productentity "farmgrocery/internal/feature/products/domain/entity"
)

// FarmRepository abstracts the persistence layer for farm entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type FarmRepository interface {
	// Create persists a new farm to the storage.
	Create(ctx context.Context, farm *entity.Farm) error

	// FindAll retrieves every farm, oldest first.
	FindAll(ctx context.Context) ([]entity.Farm, error)

	// FindByID retrieves a farm by id.
	// It returns ErrFarmNotFound if the farm does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Farm, error)

	// AppendProduct appends a product id to the farm's ordered product list.
	AppendProduct(ctx context.Context, farmID, productID uint) error

	// Delete removes a farm. It never touches the farm's products.
	Delete(ctx context.Context, id uint) error
}

// AuthorLookup resolves a farm's owning user for the show page.
type AuthorLookup interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// ProductLoader resolves the products referenced by a farm's product list.
type ProductLoader interface {
	FindByIDs(ctx context.Context, ids []uint) ([]productentity.Product, error)
}

// CreateFarmInput carries the new-farm form fields.
type CreateFarmInput struct {
	Name  string
	City  string
	Email string
}

// FarmDetail is a farm populated with its author and resolved products
// for rendering. Author is nil if the owning user no longer resolves;
// Products silently omits ids that no longer resolve.
type FarmDetail struct {
	Farm     *entity.Farm
	Author   *authentity.User
	Products []productentity.Product
}

type farmUsecase struct {
	farms    FarmRepository
	authors  AuthorLookup
	products ProductLoader
}

// NewFarmUsecase creates a new instance of farmUsecase.
func NewFarmUsecase(farms FarmRepository, authors AuthorLookup, products ProductLoader) *farmUsecase {
	return &farmUsecase{farms: farms, authors: authors, products: products}
}

func (in *CreateFarmInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidFarm)
	}
	if strings.TrimSpace(in.City) == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidFarm)
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidFarm)
	}
	return nil
}

// List returns every farm. The result set is unbounded; at real scale
// this needs pagination.
func (u *farmUsecase) List(ctx context.Context) ([]entity.Farm, error) {
	return u.farms.FindAll(ctx)
}

// Create validates the input and persists a farm owned by authorID.
func (u *farmUsecase) Create(ctx context.Context, in CreateFarmInput, authorID uint) (*entity.Farm, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	farm := &entity.Farm{
		Name:     strings.TrimSpace(in.Name),
		City:     strings.TrimSpace(in.City),
		Email:    strings.TrimSpace(in.Email),
		AuthorID: authorID,
	}
	if err := u.farms.Create(ctx, farm); err != nil {
		return nil, err
	}
	return farm, nil
}

// Find retrieves a bare farm by id (used by the ownership guard).
func (u *farmUsecase) Find(ctx context.Context, id uint) (*entity.Farm, error) {
	return u.farms.FindByID(ctx, id)
}

// Get retrieves a farm populated with its author and products.
func (u *farmUsecase) Get(ctx context.Context, id uint) (*FarmDetail, error) {
	farm, err := u.farms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &FarmDetail{Farm: farm}

	// A dangling author reference renders as an unknown owner, not an error.
	if author, err := u.authors.FindByID(ctx, farm.AuthorID); err == nil {
		detail.Author = author
	}

	if len(farm.ProductIDs) > 0 {
		products, err := u.products.FindByIDs(ctx, farm.ProductIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load products for farm %d: %w", id, err)
		}
		detail.Products = products
	}

	return detail, nil
}

// Delete removes a farm. Its products are left in place with a dangling
// farm reference, matching the marketplace's orphan semantics.
func (u *farmUsecase) Delete(ctx context.Context, id uint) error {
	return u.farms.Delete(ctx, id)
}

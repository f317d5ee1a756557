// Package usecase implements the business logic for the products feature.
package usecase

import (
	"context"
	"fmt"
	"strings"

	farmentity "farmgrocery/internal/feature/farms/domain/entity"
	"farmgrocery/internal/feature/products/domain/entity"
)

// ProductRepository abstracts the persistence layer for product entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type ProductRepository interface {
	// Create persists a new product to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// FindAll retrieves every product, oldest first.
	FindAll(ctx context.Context) ([]entity.Product, error)

	// FindByCategory retrieves the products whose category matches exactly.
	FindByCategory(ctx context.Context, category entity.Category) ([]entity.Product, error)

	// FindByID retrieves a product by id.
	// It returns ErrProductNotFound if the product does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Product, error)

	// FindByIDs retrieves the products for the given ids, in the given
	// order, silently omitting ids that no longer resolve.
	FindByIDs(ctx context.Context, ids []uint) ([]entity.Product, error)

	// Update overwrites a product's stored fields.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product. It never touches the parent farm's
	// product list.
	Delete(ctx context.Context, id uint) error
}

// FarmStore is the slice of the farms feature this usecase needs:
// resolving a product's parent and attaching new products to it.
type FarmStore interface {
	FindByID(ctx context.Context, id uint) (*farmentity.Farm, error)
	AppendProduct(ctx context.Context, farmID, productID uint) error
}

// ProductInput carries the product form fields, shared by create and update.
type ProductInput struct {
	Name     string
	Price    float64
	Category string
}

// ProductDetail is a product populated with its parent farm for
// rendering. Farm is nil when the product is orphaned.
type ProductDetail struct {
	Product *entity.Product
	Farm    *farmentity.Farm
}

type productUsecase struct {
	products ProductRepository
	farms    FarmStore
}

// NewProductUsecase creates a new instance of productUsecase.
func NewProductUsecase(products ProductRepository, farms FarmStore) *productUsecase {
	return &productUsecase{products: products, farms: farms}
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if !entity.Category(in.Category).Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, in.Category)
	}
	return nil
}

// List returns products, filtered to an exact category match when one is
// given. An empty category returns everything.
func (u *productUsecase) List(ctx context.Context, category string) ([]entity.Product, error) {
	if category == "" {
		return u.products.FindAll(ctx)
	}
	return u.products.FindByCategory(ctx, entity.Category(category))
}

// Find retrieves a bare product by id (used by the ownership guard).
func (u *productUsecase) Find(ctx context.Context, id uint) (*entity.Product, error) {
	return u.products.FindByID(ctx, id)
}

// Get retrieves a product populated with its parent farm. An orphaned
// product (farm deleted) comes back with a nil Farm, not an error.
func (u *productUsecase) Get(ctx context.Context, id uint) (*ProductDetail, error) {
	product, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetail{Product: product}
	if farm, err := u.farms.FindByID(ctx, product.FarmID); err == nil {
		detail.Farm = farm
	}
	return detail, nil
}

// CreateUnderFarm validates the input, persists a product owned by
// authorID under farmID, and appends its id to the farm's product list.
//
// The two writes are not transactional. The product is written first and
// deleted again if the attach fails, so a mid-sequence failure cannot
// leave the farm referencing a product that was never saved.
func (u *productUsecase) CreateUnderFarm(ctx context.Context, farmID, authorID uint, in ProductInput) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Category: entity.Category(in.Category),
		FarmID:   farmID,
		AuthorID: authorID,
	}
	if err := u.products.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := u.farms.AppendProduct(ctx, farmID, product.ID); err != nil {
		// Compensating delete; best effort, the product row is the
		// only thing that could otherwise leak.
		_ = u.products.Delete(ctx, product.ID)
		return nil, fmt.Errorf("failed to attach product to farm %d: %w", farmID, err)
	}

	return product, nil
}

// Update re-validates and overwrites every submitted field.
func (u *productUsecase) Update(ctx context.Context, id uint, in ProductInput) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Price = in.Price
	product.Category = entity.Category(in.Category)

	if err := u.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product and returns the parent farm id captured
// before deletion, so the caller can redirect to the farm page. The id
// is not removed from the farm's product list.
func (u *productUsecase) Delete(ctx context.Context, id uint) (uint, error) {
	product, err := u.products.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := u.products.Delete(ctx, id); err != nil {
		return 0, err
	}
	return product.FarmID, nil
}

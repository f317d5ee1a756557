// Package adapters provides repository implementations for the products feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"farmgrocery/internal/feature/products/domain/entity"
	"farmgrocery/internal/feature/products/usecase"
)

// productGorm is a GORM implementation of the ProductRepository interface.
type productGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure productGorm implements ProductRepository.
var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductGorm creates a new instance of productGorm with the given connection.
func NewProductGorm(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

// Create adds a product to the database.
func (r *productGorm) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindAll retrieves every product, oldest first.
func (r *productGorm) FindAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCategory retrieves the products whose category matches exactly.
func (r *productGorm) FindByCategory(ctx context.Context, category entity.Category) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID retrieves a product by id.
func (r *productGorm) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs retrieves products for the given ids, preserving the input
// order and omitting ids that no longer resolve (orphaned references).
func (r *productGorm) FindByIDs(ctx context.Context, ids []uint) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []entity.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]entity.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := make([]entity.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// Update overwrites a product's stored fields.
func (r *productGorm) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes a product row. The parent farm's product list is
// intentionally untouched.
func (r *productGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

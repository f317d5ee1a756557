// Package adapters provides repository implementations for the farms feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"farmgrocery/internal/feature/farms/domain/entity"
	"farmgrocery/internal/feature/farms/usecase"
)

// farmGorm is a GORM implementation of the FarmRepository interface.
type farmGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure farmGorm implements FarmRepository.
var _ usecase.FarmRepository = (*farmGorm)(nil)

// NewFarmGorm creates a new instance of farmGorm with the given connection.
func NewFarmGorm(db *gorm.DB) *farmGorm {
	return &farmGorm{db: db}
}

// Create adds a farm to the database.
func (r *farmGorm) Create(ctx context.Context, farm *entity.Farm) error {
	return r.db.WithContext(ctx).Create(farm).Error
}

// FindAll retrieves every farm, oldest first.
func (r *farmGorm) FindAll(ctx context.Context) ([]entity.Farm, error) {
	var farms []entity.Farm
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&farms).Error; err != nil {
		return nil, err
	}
	return farms, nil
}

// FindByID retrieves a farm by id.
func (r *farmGorm) FindByID(ctx context.Context, id uint) (*entity.Farm, error) {
	var farm entity.Farm
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&farm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrFarmNotFound
		}
		return nil, err
	}
	return &farm, nil
}

// AppendProduct appends a product id to the farm's ordered product list.
// The read-modify-write is a single-row update; per-row atomicity comes
// from the database.
func (r *farmGorm) AppendProduct(ctx context.Context, farmID, productID uint) error {
	farm, err := r.FindByID(ctx, farmID)
	if err != nil {
		return err
	}
	farm.ProductIDs = append(farm.ProductIDs, productID)
	return r.db.WithContext(ctx).Save(farm).Error
}

// Delete removes a farm row. Products are intentionally untouched.
func (r *farmGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Farm{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrFarmNotFound
	}
	return nil
}

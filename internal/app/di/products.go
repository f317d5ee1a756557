package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	productadapters "farmgrocery/internal/feature/products/adapters"
	"farmgrocery/internal/feature/products/usecase"
	"farmgrocery/internal/platform/cache"
)

// NewProductRepository creates the product repository, wrapped in the
// Redis list cache. The decorator degrades to pass-through when rdb is nil.
func NewProductRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.ProductRepository {
	return cache.NewCachingProductRepository(rdb, ttl, productadapters.NewProductGorm(db), "products")
}

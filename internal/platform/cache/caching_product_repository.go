// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"farmgrocery/internal/feature/products/domain/entity"
	"farmgrocery/internal/feature/products/usecase"
)

// CachingProductRepository decorates a ProductRepository with Redis caching
// of the browse queries (all products, products by category). It implements
// the decorator pattern, transparently adding caching without modifying the
// underlying repository. Writes invalidate the whole namespace.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure the decorator satisfies the same interface.
var _ usecase.ProductRepository = (*CachingProductRepository)(nil)

// NewCachingProductRepository decorates a ProductRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "products".
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "products"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindAll retrieves every product, checking the cache first.
func (c *CachingProductRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	return c.cached(ctx, c.listKey("all"), func() ([]entity.Product, error) {
		return c.inner.FindAll(ctx)
	})
}

// FindByCategory retrieves a category's products, checking the cache first.
func (c *CachingProductRepository) FindByCategory(ctx context.Context, category entity.Category) ([]entity.Product, error) {
	return c.cached(ctx, c.listKey("category:"+safe(string(category))), func() ([]entity.Product, error) {
		return c.inner.FindByCategory(ctx, category)
	})
}

// cached serves a list query from the cache, falling back to the inner
// repository and storing the result best effort.
func (c *CachingProductRepository) cached(ctx context.Context, key string, load func() ([]entity.Product, error)) ([]entity.Product, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByID is not cached; detail pages always read through.
func (c *CachingProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	return c.inner.FindByID(ctx, id)
}

// FindByIDs is not cached; farm pages always read through.
func (c *CachingProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]entity.Product, error) {
	return c.inner.FindByIDs(ctx, ids)
}

// Create writes through and invalidates the list caches.
func (c *CachingProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := c.inner.Create(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update writes through and invalidates the list caches.
func (c *CachingProductRepository) Update(ctx context.Context, product *entity.Product) error {
	if err := c.inner.Update(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete writes through and invalidates the list caches.
func (c *CachingProductRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate drops every list entry in the namespace. Best effort: a
// stale cache entry expires by TTL anyway.
func (c *CachingProductRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.listKey("*"))
}

// listKey generates a cache key for a list query.
func (c *CachingProductRepository) listKey(suffix string) string {
	return fmt.Sprintf("%s:list:%s", c.namespace, suffix)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingProductRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

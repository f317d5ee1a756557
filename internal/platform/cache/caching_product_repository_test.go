package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmgrocery/internal/feature/products/domain/entity"
	"farmgrocery/internal/feature/products/usecase"
)

// countingRepo is a canned inner repository that counts read calls.
type countingRepo struct {
	products     []entity.Product
	findAllCalls int
	byCatCalls   int
}

var _ usecase.ProductRepository = (*countingRepo)(nil)

func (r *countingRepo) Create(ctx context.Context, product *entity.Product) error { return nil }
func (r *countingRepo) Update(ctx context.Context, product *entity.Product) error { return nil }
func (r *countingRepo) Delete(ctx context.Context, id uint) error                 { return nil }

func (r *countingRepo) FindAll(ctx context.Context) ([]entity.Product, error) {
	r.findAllCalls++
	return r.products, nil
}

func (r *countingRepo) FindByCategory(ctx context.Context, category entity.Category) ([]entity.Product, error) {
	r.byCatCalls++
	var out []entity.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *countingRepo) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, usecase.ErrProductNotFound
}

func (r *countingRepo) FindByIDs(ctx context.Context, ids []uint) ([]entity.Product, error) {
	return nil, nil
}

func sampleProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Apples", Price: 3.50, Category: entity.CategoryFruit, FarmID: 1, AuthorID: 7},
		{ID: 2, Name: "Kale", Price: 2.00, Category: entity.CategoryVegetable, FarmID: 1, AuthorID: 7},
	}
}

func TestCachingProductRepository_FindAll(t *testing.T) {
	t.Run("cache miss loads from the inner repo and stores the result", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		inner := &countingRepo{products: sampleProducts()}
		repo := NewCachingProductRepository(client, time.Minute, inner, "products")

		data, err := json.Marshal(sampleProducts())
		require.NoError(t, err)

		mock.ExpectGet("products:list:all").RedisNil()
		mock.ExpectSet("products:list:all", data, time.Minute).SetVal("OK")

		products, err := repo.FindAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, 1, inner.findAllCalls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit skips the inner repo", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		inner := &countingRepo{products: sampleProducts()}
		repo := NewCachingProductRepository(client, time.Minute, inner, "products")

		data, err := json.Marshal(sampleProducts())
		require.NoError(t, err)

		mock.ExpectGet("products:list:all").SetVal(string(data))

		products, err := repo.FindAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, "Apples", products[0].Name)
		assert.Zero(t, inner.findAllCalls, "a cache hit must not reach the database")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupted entry is dropped and reloaded", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		inner := &countingRepo{products: sampleProducts()}
		repo := NewCachingProductRepository(client, time.Minute, inner, "products")

		data, err := json.Marshal(sampleProducts())
		require.NoError(t, err)

		mock.ExpectGet("products:list:all").SetVal("{not json")
		mock.ExpectDel("products:list:all").SetVal(1)
		mock.ExpectSet("products:list:all", data, time.Minute).SetVal("OK")

		products, err := repo.FindAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, 1, inner.findAllCalls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCachingProductRepository_FindByCategory(t *testing.T) {
	client, mock := redismock.NewClientMock()
	inner := &countingRepo{products: sampleProducts()}
	repo := NewCachingProductRepository(client, time.Minute, inner, "products")

	fruit := sampleProducts()[:1]
	data, err := json.Marshal(fruit)
	require.NoError(t, err)

	mock.ExpectGet("products:list:category:fruit").RedisNil()
	mock.ExpectSet("products:list:category:fruit", data, time.Minute).SetVal("OK")

	products, err := repo.FindByCategory(context.Background(), entity.CategoryFruit)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Apples", products[0].Name)
	assert.Equal(t, 1, inner.byCatCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingProductRepository_WritesInvalidate(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingRepo{products: sampleProducts()}
	repo := NewCachingProductRepository(client, time.Minute, inner, "products")

	_, err = repo.FindAll(context.Background())
	require.NoError(t, err)
	_, err = repo.FindByCategory(context.Background(), entity.CategoryFruit)
	require.NoError(t, err)
	assert.True(t, mr.Exists("products:list:all"))
	assert.True(t, mr.Exists("products:list:category:fruit"))

	require.NoError(t, repo.Create(context.Background(), &entity.Product{Name: "Milk", Category: entity.CategoryDairy}))

	assert.False(t, mr.Exists("products:list:all"), "writes must drop the list caches")
	assert.False(t, mr.Exists("products:list:category:fruit"))

	_, err = repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.findAllCalls, "the next read repopulates from the database")
}

func TestCachingProductRepository_NilRedisPassThrough(t *testing.T) {
	inner := &countingRepo{products: sampleProducts()}
	repo := NewCachingProductRepository(nil, time.Minute, inner, "products")

	for i := 0; i < 2; i++ {
		products, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 2)
	}
	assert.Equal(t, 2, inner.findAllCalls, "without redis every read goes through")

	assert.NoError(t, repo.Create(context.Background(), &entity.Product{Name: "Milk"}))
}

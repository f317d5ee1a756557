package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "farmgrocery/internal/feature/auth/domain/entity"
	"farmgrocery/internal/feature/farms/domain/entity"
	productentity "farmgrocery/internal/feature/products/domain/entity"
)

// mockFarmRepository is an in-memory FarmRepository for usecase tests.
type mockFarmRepository struct {
	farms  map[uint]*entity.Farm
	nextID uint
}

func newMockFarmRepository() *mockFarmRepository {
	return &mockFarmRepository{farms: map[uint]*entity.Farm{}, nextID: 1}
}

func (m *mockFarmRepository) Create(ctx context.Context, farm *entity.Farm) error {
	farm.ID = m.nextID
	m.nextID++
	m.farms[farm.ID] = farm
	return nil
}

func (m *mockFarmRepository) FindAll(ctx context.Context) ([]entity.Farm, error) {
	farms := make([]entity.Farm, 0, len(m.farms))
	for id := uint(1); id < m.nextID; id++ {
		if f, ok := m.farms[id]; ok {
			farms = append(farms, *f)
		}
	}
	return farms, nil
}

func (m *mockFarmRepository) FindByID(ctx context.Context, id uint) (*entity.Farm, error) {
	f, ok := m.farms[id]
	if !ok {
		return nil, ErrFarmNotFound
	}
	return f, nil
}

func (m *mockFarmRepository) AppendProduct(ctx context.Context, farmID, productID uint) error {
	f, ok := m.farms[farmID]
	if !ok {
		return ErrFarmNotFound
	}
	f.ProductIDs = append(f.ProductIDs, productID)
	return nil
}

func (m *mockFarmRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := m.farms[id]; !ok {
		return ErrFarmNotFound
	}
	delete(m.farms, id)
	return nil
}

type stubAuthorLookup struct {
	users map[uint]*authentity.User
}

func (s *stubAuthorLookup) FindByID(ctx context.Context, id uint) (*authentity.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, assert.AnError
}

type stubProductLoader struct {
	products map[uint]productentity.Product
}

func (s *stubProductLoader) FindByIDs(ctx context.Context, ids []uint) ([]productentity.Product, error) {
	var out []productentity.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestUsecase() (*farmUsecase, *mockFarmRepository, *stubAuthorLookup, *stubProductLoader) {
	repo := newMockFarmRepository()
	authors := &stubAuthorLookup{users: map[uint]*authentity.User{}}
	products := &stubProductLoader{products: map[uint]productentity.Product{}}
	return NewFarmUsecase(repo, authors, products), repo, authors, products
}

func validFarmInput() CreateFarmInput {
	return CreateFarmInput{Name: "Sunnybrook", City: "Petaluma", Email: "hello@sunnybrook.example.com"}
}

func TestFarmUsecase_Create(t *testing.T) {
	t.Run("assigns the author and trims fields", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase()

		in := validFarmInput()
		in.Name = "  Sunnybrook  "

		farm, err := uc.Create(context.Background(), in, 7)

		require.NoError(t, err)
		assert.Equal(t, "Sunnybrook", farm.Name)
		assert.Equal(t, uint(7), farm.AuthorID)
	})

	t.Run("validation errors", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase()

		tests := []struct {
			name   string
			mutate func(*CreateFarmInput)
		}{
			{name: "blank name", mutate: func(in *CreateFarmInput) { in.Name = " " }},
			{name: "blank city", mutate: func(in *CreateFarmInput) { in.City = "" }},
			{name: "blank email", mutate: func(in *CreateFarmInput) { in.Email = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validFarmInput()
				tt.mutate(&in)

				_, err := uc.Create(context.Background(), in, 7)

				assert.ErrorIs(t, err, ErrInvalidFarm)
			})
		}
	})
}

func TestFarmUsecase_Get(t *testing.T) {
	t.Run("populates author and products in list order", func(t *testing.T) {
		uc, repo, authors, products := newTestUsecase()

		authors.users[7] = &authentity.User{ID: 7, Username: "greta"}
		products.products[11] = productentity.Product{ID: 11, Name: "Apples"}
		products.products[5] = productentity.Product{ID: 5, Name: "Kale"}

		farm, err := uc.Create(context.Background(), validFarmInput(), 7)
		require.NoError(t, err)
		require.NoError(t, repo.AppendProduct(context.Background(), farm.ID, 11))
		require.NoError(t, repo.AppendProduct(context.Background(), farm.ID, 5))

		detail, err := uc.Get(context.Background(), farm.ID)

		require.NoError(t, err)
		require.NotNil(t, detail.Author)
		assert.Equal(t, "greta", detail.Author.Username)
		require.Len(t, detail.Products, 2)
		assert.Equal(t, "Apples", detail.Products[0].Name)
		assert.Equal(t, "Kale", detail.Products[1].Name)
	})

	t.Run("dangling author renders as unknown, not an error", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase()

		farm, err := uc.Create(context.Background(), validFarmInput(), 99)
		require.NoError(t, err)

		detail, err := uc.Get(context.Background(), farm.ID)

		require.NoError(t, err)
		assert.Nil(t, detail.Author)
	})

	t.Run("dangling product ids are omitted", func(t *testing.T) {
		uc, repo, _, products := newTestUsecase()

		products.products[5] = productentity.Product{ID: 5, Name: "Kale"}

		farm, err := uc.Create(context.Background(), validFarmInput(), 7)
		require.NoError(t, err)
		require.NoError(t, repo.AppendProduct(context.Background(), farm.ID, 11))
		require.NoError(t, repo.AppendProduct(context.Background(), farm.ID, 5))

		detail, err := uc.Get(context.Background(), farm.ID)

		require.NoError(t, err)
		require.Len(t, detail.Products, 1)
		assert.Equal(t, "Kale", detail.Products[0].Name)
	})

	t.Run("missing farm", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase()

		_, err := uc.Get(context.Background(), 404)

		assert.ErrorIs(t, err, ErrFarmNotFound)
	})
}

func TestFarmUsecase_Delete(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()

	farm, err := uc.Create(context.Background(), validFarmInput(), 7)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), farm.ID))

	_, err = repo.FindByID(context.Background(), farm.ID)
	assert.ErrorIs(t, err, ErrFarmNotFound)
}

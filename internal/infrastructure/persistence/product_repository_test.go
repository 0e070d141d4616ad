package persistence

import (
	"context"
	"testing"

	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedProduct(t *testing.T, name, slug string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(uuid.New(), name, slug, valueobject.NewMoneyIRRFromInt(price), 10)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestGormProductRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	t.Run("finds product by slug", func(t *testing.T) {
		p := storedProduct(t, "Saffron 1g", "saffron-1g", 100000)
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindBySlug(ctx, "saffron-1g")
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
		assert.Equal(t, int64(100000), found.Price.RialAmount())
	})

	t.Run("finds products by IDs", func(t *testing.T) {
		first := storedProduct(t, "Black Tea", "black-tea", 50000)
		second := storedProduct(t, "Green Tea", "green-tea", 60000)
		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, second))

		products, err := repo.FindByIDs(ctx, []uuid.UUID{first.ID, second.ID})
		require.NoError(t, err)
		assert.Len(t, products, 2)

		products, err = repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("searches by name", func(t *testing.T) {
		p := storedProduct(t, "Damask Rose Water", "rose-water", 80000)
		require.NoError(t, repo.Save(ctx, p))

		products, err := repo.FindAll(ctx, shared.Filter{Search: "Rose"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, p.ID, products[0].ID)
	})

	t.Run("delete returns not found for missing product", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCategoryRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	categories := NewGormCategoryRepository(db)
	products := NewGormProductRepository(db)
	ctx := context.Background()

	category, err := catalog.NewCategory("Beverages", "")
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, category))

	p := storedProduct(t, "Black Tea", "black-tea", 50000)
	p.SetCategory(&category.ID)
	require.NoError(t, products.Save(ctx, p))

	require.NoError(t, categories.Delete(ctx, category.ID))

	_, err = categories.FindByID(ctx, category.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	found, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CategoryID)
}

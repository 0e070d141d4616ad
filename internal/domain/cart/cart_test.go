package cart

import (
	"testing"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItem(t *testing.T) {
	productID := uuid.New()

	t.Run("adds new line", func(t *testing.T) {
		c := NewCart(uuid.New())
		require.NoError(t, c.AddItem(productID, 2))
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
		assert.Equal(t, c.ID, c.Items[0].CartID)
	})

	t.Run("merges duplicate product", func(t *testing.T) {
		c := NewCart(uuid.New())
		require.NoError(t, c.AddItem(productID, 2))
		require.NoError(t, c.AddItem(productID, 3))
		require.Len(t, c.Items, 1)
		assert.Equal(t, 5, c.Items[0].Quantity)
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		c := NewCart(uuid.New())
		assert.Error(t, c.AddItem(productID, 0))
		assert.Error(t, c.AddItem(productID, -1))
	})
}

func TestCartUpdateItemQuantity(t *testing.T) {
	c := NewCart(uuid.New())
	require.NoError(t, c.AddItem(uuid.New(), 2))
	itemID := c.Items[0].ID

	require.NoError(t, c.UpdateItemQuantity(itemID, 7))
	assert.Equal(t, 7, c.Items[0].Quantity)

	assert.Error(t, c.UpdateItemQuantity(itemID, 0))
	assert.ErrorIs(t, c.UpdateItemQuantity(uuid.New(), 3), shared.ErrNotFound)
}

func TestCartRemoveItem(t *testing.T) {
	c := NewCart(uuid.New())
	require.NoError(t, c.AddItem(uuid.New(), 1))
	require.NoError(t, c.AddItem(uuid.New(), 2))
	itemID := c.Items[0].ID

	require.NoError(t, c.RemoveItem(itemID))
	assert.Len(t, c.Items, 1)
	assert.ErrorIs(t, c.RemoveItem(itemID), shared.ErrNotFound)
}

func TestCartClear(t *testing.T) {
	c := NewCart(uuid.New())
	require.NoError(t, c.AddItem(uuid.New(), 1))
	require.False(t, c.IsEmpty())

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestCartTotal(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	c := NewCart(uuid.New())
	require.NoError(t, c.AddItem(first, 2))
	require.NoError(t, c.AddItem(second, 3))

	t.Run("sums quantity times price", func(t *testing.T) {
		total, err := c.Total(map[uuid.UUID]valueobject.Money{
			first:  valueobject.NewMoneyIRRFromInt(100000),
			second: valueobject.NewMoneyIRRFromInt(50000),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(350000), total.RialAmount())
	})

	t.Run("missing price fails", func(t *testing.T) {
		_, err := c.Total(map[uuid.UUID]valueobject.Money{first: valueobject.NewMoneyIRRFromInt(100000)})
		assert.Error(t, err)
	})

	t.Run("empty cart totals zero", func(t *testing.T) {
		total, err := NewCart(uuid.New()).Total(nil)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

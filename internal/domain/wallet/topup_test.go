package wallet

import (
	"testing"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopUp(t *testing.T) {
	t.Run("valid top-up starts pending", func(t *testing.T) {
		topUp, err := NewTopUp(uuid.New(), valueobject.NewMoneyIRRFromInt(500000), "A0001")
		require.NoError(t, err)
		assert.True(t, topUp.IsPending())
		assert.Nil(t, topUp.RefID)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := NewTopUp(uuid.New(), valueobject.ZeroIRR(), "A0001")
		assert.Error(t, err)
	})

	t.Run("empty authority rejected", func(t *testing.T) {
		_, err := NewTopUp(uuid.New(), valueobject.NewMoneyIRRFromInt(1000), "")
		assert.Error(t, err)
	})
}

func TestTopUpSettlement(t *testing.T) {
	t.Run("mark succeeded", func(t *testing.T) {
		topUp, err := NewTopUp(uuid.New(), valueobject.NewMoneyIRRFromInt(500000), "A0001")
		require.NoError(t, err)

		require.NoError(t, topUp.MarkSucceeded("REF-55"))
		assert.True(t, topUp.IsSucceeded())
		require.NotNil(t, topUp.RefID)
		assert.Equal(t, "REF-55", *topUp.RefID)

		assert.ErrorIs(t, topUp.MarkSucceeded("REF-56"), shared.ErrInvalidState)
		assert.ErrorIs(t, topUp.MarkFailed(), shared.ErrInvalidState)
	})

	t.Run("mark failed", func(t *testing.T) {
		topUp, err := NewTopUp(uuid.New(), valueobject.NewMoneyIRRFromInt(500000), "A0002")
		require.NoError(t, err)

		require.NoError(t, topUp.MarkFailed())
		assert.Equal(t, TopUpStatusFailed, topUp.Status)
		assert.ErrorIs(t, topUp.MarkSucceeded("REF"), shared.ErrInvalidState)
	})
}

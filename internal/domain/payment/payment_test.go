package payment

import (
	"testing"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("valid payment starts pending", func(t *testing.T) {
		p, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyIRRFromInt(450000), "A1000")
		require.NoError(t, err)
		assert.True(t, p.IsPending())
	})

	t.Run("invalid inputs rejected", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), uuid.New(), valueobject.ZeroIRR(), "A1000")
		assert.Error(t, err)

		_, err = NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyIRRFromInt(1000), "")
		assert.Error(t, err)
	})
}

func TestPaymentSettlement(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyIRRFromInt(450000), "A1000")
	require.NoError(t, err)

	require.NoError(t, p.MarkSucceeded("REF-9"))
	assert.True(t, p.IsSucceeded())
	require.NotNil(t, p.RefID)
	assert.Equal(t, "REF-9", *p.RefID)

	assert.ErrorIs(t, p.MarkFailed(), shared.ErrInvalidState)
	assert.ErrorIs(t, p.MarkSucceeded("REF-10"), shared.ErrInvalidState)
}

func TestPaymentFailure(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyIRRFromInt(450000), "A1001")
	require.NoError(t, err)
	assert.False(t, p.IsFailed())

	require.NoError(t, p.MarkFailed())
	assert.True(t, p.IsFailed())
	assert.False(t, p.IsPending())
	assert.False(t, p.IsSucceeded())
}

func TestPaymentRequestValidate(t *testing.T) {
	valid := PaymentRequest{
		Amount:      valueobject.NewMoneyIRRFromInt(100000),
		Description: "Order payment",
		CallbackURL: "https://shop.example.com/api/v1/payment/callback",
	}
	assert.NoError(t, valid.Validate())

	missingAmount := valid
	missingAmount.Amount = valueobject.ZeroIRR()
	assert.Error(t, missingAmount.Validate())

	missingDescription := valid
	missingDescription.Description = ""
	assert.Error(t, missingDescription.Validate())

	missingCallback := valid
	missingCallback.CallbackURL = ""
	assert.Error(t, missingCallback.Validate())
}

func TestVerifyResultVerified(t *testing.T) {
	assert.True(t, VerifyResult{Code: CodeVerified}.Verified())
	assert.True(t, VerifyResult{Code: CodeAlreadyVerified}.Verified())
	assert.False(t, VerifyResult{Code: -21}.Verified())
}

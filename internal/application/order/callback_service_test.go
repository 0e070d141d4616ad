package order

import (
	"context"
	"testing"

	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/payment"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pendingAttempt(t *testing.T, o *order.Order, authority string) *payment.Payment {
	t.Helper()
	attempt, err := payment.NewPayment(o.ID, o.CustomerID, valueobject.NewMoneyIRRFromInt(250000), authority)
	require.NoError(t, err)
	attempt.ClearDomainEvents()
	return attempt
}

func TestHandleCallback(t *testing.T) {
	t.Run("verified payment settles the order once", func(t *testing.T) {
		scope, orders, _, _, _, products, payments := newTestScope()
		gateway := new(mockGateway)
		svc := NewCallbackService(scope, gateway, nil, zap.NewNop())

		o, backing := unpaidOrderFixture(t, uuid.New())
		attempt := pendingAttempt(t, o, "A000777")

		payments.On("FindByAuthority", mock.Anything, "A000777").Return(attempt, nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		products.On("FindByIDs", mock.Anything, mock.Anything).Return(backing, nil)
		gateway.On("VerifyPayment", mock.Anything, mock.MatchedBy(func(req payment.VerifyRequest) bool {
			return req.Authority == "A000777" && req.Amount.RialAmount() == 250000
		})).Return(&payment.VerifyResult{Code: payment.CodeVerified, RefID: "REF-42"}, nil)
		payments.On("Save", mock.Anything, attempt).Return(nil)
		orders.On("SaveWithLock", mock.Anything, o).Return(nil)

		result, err := svc.HandleCallback(context.Background(), "A000777", true)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.False(t, result.AlreadyProcessed)
		assert.Equal(t, "REF-42", result.RefID)
		assert.True(t, o.IsPaid())
		assert.True(t, attempt.IsSucceeded())
		require.NotNil(t, o.GatewayRefID)
		assert.Equal(t, "REF-42", *o.GatewayRefID)
		for _, item := range o.Items {
			assert.NotNil(t, item.UnitPrice)
		}
	})

	t.Run("verifies against the current order total", func(t *testing.T) {
		scope, orders, _, _, _, products, payments := newTestScope()
		gateway := new(mockGateway)
		svc := NewCallbackService(scope, gateway, nil, zap.NewNop())

		o, backing := unpaidOrderFixture(t, uuid.New())

		// The attempt was opened before a price change; the gateway is
		// still asked about today's total.
		stale, err := payment.NewPayment(o.ID, o.CustomerID, valueobject.NewMoneyIRRFromInt(180000), "A000778")
		require.NoError(t, err)
		stale.ClearDomainEvents()

		payments.On("FindByAuthority", mock.Anything, "A000778").Return(stale, nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		products.On("FindByIDs", mock.Anything, mock.Anything).Return(backing, nil)
		gateway.On("VerifyPayment", mock.Anything, mock.MatchedBy(func(req payment.VerifyRequest) bool {
			return req.Amount.RialAmount() == 250000
		})).Return(&payment.VerifyResult{Code: payment.CodeVerified, RefID: "REF-50"}, nil)
		payments.On("Save", mock.Anything, stale).Return(nil)
		orders.On("SaveWithLock", mock.Anything, o).Return(nil)

		result, err := svc.HandleCallback(context.Background(), "A000778", true)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.True(t, o.IsPaid())
		gateway.AssertExpectations(t)
	})

	t.Run("duplicate callback for paid order is a no-op success", func(t *testing.T) {
		scope, orders, _, _, _, _, payments := newTestScope()
		gateway := new(mockGateway)
		svc := NewCallbackService(scope, gateway, nil, zap.NewNop())

		o, backing := unpaidOrderFixture(t, uuid.New())
		prices := map[uuid.UUID]valueobject.Money{
			backing[0].ID: backing[0].Price,
			backing[1].ID: backing[1].Price,
		}
		require.NoError(t, o.MarkPaid(order.PaymentMethodOnline, "REF-42", prices))
		o.ClearDomainEvents()
		attempt := pendingAttempt(t, o, "A000777")
		require.NoError(t, attempt.MarkSucceeded("REF-42"))

		payments.On("FindByAuthority", mock.Anything, "A000777").Return(attempt, nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		result, err := svc.HandleCallback(context.Background(), "A000777", true)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.True(t, result.AlreadyProcessed)
		assert.Equal(t, "REF-42", result.RefID)
		gateway.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything)
		orders.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("already-verified code still settles an unpaid order", func(t *testing.T) {
		scope, orders, _, _, _, products, payments := newTestScope()
		gateway := new(mockGateway)
		svc := NewCallbackService(scope, gateway, nil, zap.NewNop())

		o, backing := unpaidOrderFixture(t, uuid.New())
		attempt := pendingAttempt(t, o, "A000888")

		payments.On("FindByAuthority", mock.Anything, "A000888").Return(attempt, nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		products.On("FindByIDs", mock.Anything, mock.Anything).Return(backing, nil)
		gateway.On("VerifyPayment", mock.Anything, mock.Anything).
			Return(&payment.VerifyResult{Code: payment.CodeAlreadyVerified, RefID: "REF-43"}, nil)
		payments.On("Save", mock.Anything, attempt).Return(nil)
		orders.On("SaveWithLock", mock.Anything, o).Return(nil)

		result, err := svc.HandleCallback(context.Background(), "A000888", true)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.True(t, result.AlreadyProcessed)
		assert.True(t, o.IsPaid())
	})

	t.Run("aborted at gateway fails the attempt and leaves order unpaid", func(t *testing.T) {
		scope, orders, _, _, _, _, payments := newTestScope()
		gateway := new(mockGateway)
		svc := NewCallbackService(scope, gateway, nil, zap.NewNop())

		o, _ := unpaidOrderFixture(t, uuid.New())
		attempt := pendingAttempt(t, o, "A000999")

		payments.On("FindByAuthority", mock.Anything, "A000999").Return(attempt, nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		payments.On("Save", mock.Anything, attempt).Return(nil)

		result, err := svc.HandleCallback(context.Background(), "A000999", false)
		require.NoError(t, err)

		assert.False(t, result.Success)
		assert.True(t, o.IsUnpaid())
		assert.True(t, attempt.IsFailed())
		gateway.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything)
	})

	t.Run("gateway rejection fails the attempt", func(t *testing.T) {
		scope, orders, _, _, _, products, payments := newTestScope()
		gateway := new(mockGateway)
		svc := NewCallbackService(scope, gateway, nil, zap.NewNop())

		o, backing := unpaidOrderFixture(t, uuid.New())
		attempt := pendingAttempt(t, o, "A001000")

		payments.On("FindByAuthority", mock.Anything, "A001000").Return(attempt, nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		products.On("FindByIDs", mock.Anything, mock.Anything).Return(backing, nil)
		gateway.On("VerifyPayment", mock.Anything, mock.Anything).
			Return(&payment.VerifyResult{Code: -21}, nil)
		payments.On("Save", mock.Anything, attempt).Return(nil)

		result, err := svc.HandleCallback(context.Background(), "A001000", true)
		require.NoError(t, err)

		assert.False(t, result.Success)
		assert.True(t, o.IsUnpaid())
		assert.True(t, attempt.IsFailed())
	})

	t.Run("empty authority rejected", func(t *testing.T) {
		scope, _, _, _, _, _, _ := newTestScope()
		svc := NewCallbackService(scope, nil, nil, zap.NewNop())

		_, err := svc.HandleCallback(context.Background(), "", true)
		assert.Error(t, err)
	})
}

package wallet

import (
	"context"
	"testing"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/payment"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/bazaar/backend/internal/domain/wallet"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCustomerRepo struct{ mock.Mock }

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*account.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*account.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindAll(ctx context.Context, filter shared.Filter) ([]account.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]account.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Save(ctx context.Context, c *account.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCustomerRepo) SaveWithLock(ctx context.Context, c *account.Customer) error {
	return m.Called(ctx, c).Error(0)
}

type mockTopUpRepo struct{ mock.Mock }

func (m *mockTopUpRepo) FindByID(ctx context.Context, id uuid.UUID) (*wallet.TopUp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.TopUp), args.Error(1)
}

func (m *mockTopUpRepo) FindByAuthority(ctx context.Context, authority string) (*wallet.TopUp, error) {
	args := m.Called(ctx, authority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.TopUp), args.Error(1)
}

func (m *mockTopUpRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]wallet.TopUp, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wallet.TopUp), args.Error(1)
}

func (m *mockTopUpRepo) Save(ctx context.Context, t *wallet.TopUp) error {
	return m.Called(ctx, t).Error(0)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) RequestPayment(ctx context.Context, req payment.PaymentRequest) (*payment.PaymentRequestResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentRequestResult), args.Error(1)
}

func (m *mockGateway) VerifyPayment(ctx context.Context, req payment.VerifyRequest) (*payment.VerifyResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.VerifyResult), args.Error(1)
}

func newTestScope() (*NoOpTransactionScope, *mockCustomerRepo, *mockTopUpRepo) {
	customers := new(mockCustomerRepo)
	topUps := new(mockTopUpRepo)
	return &NoOpTransactionScope{CustomerRepo: customers, TopUpRepo: topUps}, customers, topUps
}

const testCallbackURL = "https://shop.example.com/api/v1/wallet/topup/callback"

func TestRequestTopUp(t *testing.T) {
	t.Run("opens gateway session and stores pending top-up", func(t *testing.T) {
		scope, customers, topUps := newTestScope()
		gateway := new(mockGateway)
		svc := NewTopUpService(scope, gateway, testCallbackURL, nil, zap.NewNop())

		customer := account.NewCustomer(uuid.New())
		customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		gateway.On("RequestPayment", mock.Anything, mock.MatchedBy(func(req payment.PaymentRequest) bool {
			return req.Amount.RialAmount() == 500000 && req.CallbackURL == testCallbackURL
		})).Return(&payment.PaymentRequestResult{
			Authority:  "T000123",
			PaymentURL: "https://gateway.example.com/pay/T000123",
		}, nil)
		topUps.On("Save", mock.Anything, mock.MatchedBy(func(tu *wallet.TopUp) bool {
			return tu.Authority == "T000123" && tu.IsPending()
		})).Return(nil)

		resp, err := svc.RequestTopUp(context.Background(), customer.ID, TopUpRequest{Amount: "500000"})
		require.NoError(t, err)
		assert.Equal(t, "T000123", resp.Authority)
		topUps.AssertExpectations(t)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		scope, _, _ := newTestScope()
		svc := NewTopUpService(scope, nil, testCallbackURL, nil, zap.NewNop())

		_, err := svc.RequestTopUp(context.Background(), uuid.New(), TopUpRequest{Amount: "0"})
		assert.Error(t, err)
	})
}

func TestTopUpCallback(t *testing.T) {
	t.Run("verified top-up credits the wallet once", func(t *testing.T) {
		scope, customers, topUps := newTestScope()
		gateway := new(mockGateway)
		svc := NewTopUpService(scope, gateway, testCallbackURL, nil, zap.NewNop())

		customer := account.NewCustomer(uuid.New())
		topUp, err := wallet.NewTopUp(customer.ID, valueobject.NewMoneyIRRFromInt(500000), "T000123")
		require.NoError(t, err)

		topUps.On("FindByAuthority", mock.Anything, "T000123").Return(topUp, nil)
		customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		gateway.On("VerifyPayment", mock.Anything, payment.VerifyRequest{
			Authority: "T000123",
			Amount:    topUp.Amount,
		}).Return(&payment.VerifyResult{Code: payment.CodeVerified, RefID: "REF-9"}, nil)
		topUps.On("Save", mock.Anything, topUp).Return(nil)
		customers.On("SaveWithLock", mock.Anything, customer).Return(nil)

		result, err := svc.HandleCallback(context.Background(), "T000123", true)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.False(t, result.AlreadyProcessed)
		assert.Equal(t, "500000", result.Balance)
		assert.Equal(t, int64(500000), customer.WalletBalance.RialAmount())
		assert.True(t, topUp.IsSucceeded())
	})

	t.Run("duplicate callback for settled top-up does not credit again", func(t *testing.T) {
		scope, customers, topUps := newTestScope()
		gateway := new(mockGateway)
		svc := NewTopUpService(scope, gateway, testCallbackURL, nil, zap.NewNop())

		topUp, err := wallet.NewTopUp(uuid.New(), valueobject.NewMoneyIRRFromInt(500000), "T000123")
		require.NoError(t, err)
		require.NoError(t, topUp.MarkSucceeded("REF-9"))

		topUps.On("FindByAuthority", mock.Anything, "T000123").Return(topUp, nil)

		result, err := svc.HandleCallback(context.Background(), "T000123", true)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.True(t, result.AlreadyProcessed)
		assert.Equal(t, "REF-9", result.RefID)
		gateway.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything)
		customers.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("aborted at gateway fails the top-up", func(t *testing.T) {
		scope, customers, topUps := newTestScope()
		svc := NewTopUpService(scope, nil, testCallbackURL, nil, zap.NewNop())

		topUp, err := wallet.NewTopUp(uuid.New(), valueobject.NewMoneyIRRFromInt(500000), "T000123")
		require.NoError(t, err)

		topUps.On("FindByAuthority", mock.Anything, "T000123").Return(topUp, nil)
		topUps.On("Save", mock.Anything, topUp).Return(nil)

		result, err := svc.HandleCallback(context.Background(), "T000123", false)
		require.NoError(t, err)

		assert.False(t, result.Success)
		assert.False(t, topUp.IsPending())
		customers.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("gateway rejection fails the top-up", func(t *testing.T) {
		scope, _, topUps := newTestScope()
		gateway := new(mockGateway)
		svc := NewTopUpService(scope, gateway, testCallbackURL, nil, zap.NewNop())

		topUp, err := wallet.NewTopUp(uuid.New(), valueobject.NewMoneyIRRFromInt(500000), "T000123")
		require.NoError(t, err)

		topUps.On("FindByAuthority", mock.Anything, "T000123").Return(topUp, nil)
		gateway.On("VerifyPayment", mock.Anything, mock.Anything).Return(&payment.VerifyResult{Code: -21}, nil)
		topUps.On("Save", mock.Anything, topUp).Return(nil)

		result, err := svc.HandleCallback(context.Background(), "T000123", true)
		require.NoError(t, err)
		assert.False(t, result.Success)
	})
}

func TestBalance(t *testing.T) {
	scope, customers, _ := newTestScope()
	svc := NewTopUpService(scope, nil, testCallbackURL, nil, zap.NewNop())

	customer := account.NewCustomer(uuid.New())
	require.NoError(t, customer.CreditWallet(valueobject.NewMoneyIRRFromInt(120000)))
	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

	resp, err := svc.Balance(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "120000", resp.Balance)
}

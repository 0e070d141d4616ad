package account

import (
	"context"
	"testing"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/shared"
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

type mockAddressRepo struct{ mock.Mock }

func (m *mockAddressRepo) FindByID(ctx context.Context, id uuid.UUID) (*account.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Address), args.Error(1)
}

func (m *mockAddressRepo) FindByOwner(ctx context.Context, kind account.OwnerKind, ownerID uuid.UUID) ([]account.Address, error) {
	args := m.Called(ctx, kind, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]account.Address), args.Error(1)
}

func (m *mockAddressRepo) Save(ctx context.Context, a *account.Address) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAddressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestEnsureCustomer(t *testing.T) {
	t.Run("returns existing customer", func(t *testing.T) {
		customers := new(mockCustomerRepo)
		svc := NewService(customers, nil, zap.NewNop())

		userID := uuid.New()
		existing := account.NewCustomer(userID)
		customers.On("FindByUserID", mock.Anything, userID).Return(existing, nil)

		got, err := svc.EnsureCustomer(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, got.ID)
		customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("creates shell on first contact", func(t *testing.T) {
		customers := new(mockCustomerRepo)
		svc := NewService(customers, nil, zap.NewNop())

		userID := uuid.New()
		customers.On("FindByUserID", mock.Anything, userID).Return(nil, shared.ErrNotFound)
		customers.On("Save", mock.Anything, mock.AnythingOfType("*account.Customer")).Return(nil)

		got, err := svc.EnsureCustomer(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)
		assert.False(t, got.HasCompleteProfile())
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("fills profile and parses birth date", func(t *testing.T) {
		customers := new(mockCustomerRepo)
		svc := NewService(customers, nil, zap.NewNop())

		customer := account.NewCustomer(uuid.New())
		customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		customers.On("Save", mock.Anything, customer).Return(nil)

		resp, err := svc.UpdateProfile(context.Background(), customer.ID, UpdateProfileRequest{
			FirstName:   "Sara",
			LastName:    "Ahmadi",
			Gender:      "f",
			PhoneNumber: "09121234567",
			BirthDate:   "1995-04-12",
		})
		require.NoError(t, err)

		assert.True(t, resp.ProfileComplete)
		require.NotNil(t, resp.BirthDate)
		assert.Equal(t, "1995-04-12", *resp.BirthDate)
	})

	t.Run("bad phone rejected", func(t *testing.T) {
		customers := new(mockCustomerRepo)
		svc := NewService(customers, nil, zap.NewNop())

		customer := account.NewCustomer(uuid.New())
		customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

		_, err := svc.UpdateProfile(context.Background(), customer.ID, UpdateProfileRequest{
			FirstName:   "Sara",
			LastName:    "Ahmadi",
			PhoneNumber: "12345",
		})
		assert.Error(t, err)
	})
}

func TestAddressService(t *testing.T) {
	t.Run("create and list", func(t *testing.T) {
		addresses := new(mockAddressRepo)
		svc := NewAddressService(addresses, zap.NewNop())

		customerID := uuid.New()
		addresses.On("Save", mock.Anything, mock.AnythingOfType("*account.Address")).Return(nil)

		resp, err := svc.Create(context.Background(), customerID, AddressRequest{
			Province:   "Tehran",
			City:       "Tehran",
			Street:     "Valiasr St 12",
			PostalCode: "1234567890",
		})
		require.NoError(t, err)
		assert.Equal(t, "1234567890", resp.PostalCode)
	})

	t.Run("updating a foreign address rejected", func(t *testing.T) {
		addresses := new(mockAddressRepo)
		svc := NewAddressService(addresses, zap.NewNop())

		foreign, err := account.NewAddress(account.OwnerKindCustomer, uuid.New(), "Tehran", "Tehran", "Valiasr St 12", "1234567890")
		require.NoError(t, err)
		addresses.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

		_, err = svc.Update(context.Background(), uuid.New(), foreign.ID, AddressRequest{
			Province:   "Fars",
			City:       "Shiraz",
			Street:     "Zand Blvd 3",
			PostalCode: "9876543210",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("bad postal code rejected", func(t *testing.T) {
		addresses := new(mockAddressRepo)
		svc := NewAddressService(addresses, zap.NewNop())

		_, err := svc.Create(context.Background(), uuid.New(), AddressRequest{
			Province:   "Tehran",
			City:       "Tehran",
			Street:     "Valiasr St 12",
			PostalCode: "12",
		})
		assert.Error(t, err)
	})
}

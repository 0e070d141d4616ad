package order

import (
	"context"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/cart"
	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/payment"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *mockOrderRepo) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) SaveWithLock(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrderRepo) DeleteUnsettledItemsOverQuantity(ctx context.Context, productID uuid.UUID, limit int) (int64, error) {
	args := m.Called(ctx, productID, limit)
	return args.Get(0).(int64), args.Error(1)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *mockCartRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *mockCartRepo) Save(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCartRepo) DeleteItemsOverQuantity(ctx context.Context, productID uuid.UUID, limit int) (int64, error) {
	args := m.Called(ctx, productID, limit)
	return args.Get(0).(int64), args.Error(1)
}

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

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) Save(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByAuthority(ctx context.Context, authority string) (*payment.Payment, error) {
	args := m.Called(ctx, authority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Save(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
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

// newTestScope wires fresh mocks into a NoOpTransactionScope
func newTestScope() (*NoOpTransactionScope, *mockOrderRepo, *mockCartRepo, *mockCustomerRepo, *mockAddressRepo, *mockProductRepo, *mockPaymentRepo) {
	orders := new(mockOrderRepo)
	carts := new(mockCartRepo)
	customers := new(mockCustomerRepo)
	addresses := new(mockAddressRepo)
	products := new(mockProductRepo)
	payments := new(mockPaymentRepo)
	scope := &NoOpTransactionScope{
		OrderRepo:    orders,
		CartRepo:     carts,
		CustomerRepo: customers,
		AddressRepo:  addresses,
		ProductRepo:  products,
		PaymentRepo:  payments,
	}
	return scope, orders, carts, customers, addresses, products, payments
}

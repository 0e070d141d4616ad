package order

import (
	"context"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/cart"
	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/payment"
)

// TransactionScope provides transactional access to the repositories the
// order flows touch. Everything executed within one Execute call commits
// or rolls back atomically.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current
// transaction
type TransactionalRepositories interface {
	Orders() order.Repository
	Carts() cart.Repository
	Customers() account.CustomerRepository
	Addresses() account.AddressRepository
	Products() catalog.ProductRepository
	Payments() payment.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	OrderRepo    order.Repository
	CartRepo     cart.Repository
	CustomerRepo account.CustomerRepository
	AddressRepo  account.AddressRepository
	ProductRepo  catalog.ProductRepository
	PaymentRepo  payment.Repository
}

// Execute runs the function against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() order.Repository { return s.OrderRepo }

// Carts returns the cart repository
func (s *NoOpTransactionScope) Carts() cart.Repository { return s.CartRepo }

// Customers returns the customer repository
func (s *NoOpTransactionScope) Customers() account.CustomerRepository { return s.CustomerRepo }

// Addresses returns the address repository
func (s *NoOpTransactionScope) Addresses() account.AddressRepository { return s.AddressRepo }

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.ProductRepo }

// Payments returns the payment repository
func (s *NoOpTransactionScope) Payments() payment.Repository { return s.PaymentRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)

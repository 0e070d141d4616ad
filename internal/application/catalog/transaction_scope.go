package catalog

import (
	"context"

	"github.com/bazaar/backend/internal/domain/cart"
	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/order"
)

// TransactionScope executes a function within a database transaction.
// Inventory changes and the reconciliation they trigger commit together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories the catalog context
// touches, bound to the active transaction
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Categories() catalog.CategoryRepository
	Carts() cart.Repository
	Orders() order.Repository
}

// NoOpTransactionScope executes without a real transaction, for testing
type NoOpTransactionScope struct {
	ProductRepo  catalog.ProductRepository
	CategoryRepo catalog.CategoryRepository
	CartRepo     cart.Repository
	OrderRepo    order.Repository
}

func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Products() catalog.ProductRepository   { return s.ProductRepo }
func (s *NoOpTransactionScope) Categories() catalog.CategoryRepository { return s.CategoryRepo }
func (s *NoOpTransactionScope) Carts() cart.Repository                 { return s.CartRepo }
func (s *NoOpTransactionScope) Orders() order.Repository               { return s.OrderRepo }

package persistence

import (
	"context"

	appcatalog "github.com/bazaar/backend/internal/application/catalog"
	apporder "github.com/bazaar/backend/internal/application/order"
	appwallet "github.com/bazaar/backend/internal/application/wallet"
	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/cart"
	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/payment"
	"github.com/bazaar/backend/internal/domain/wallet"
	"gorm.io/gorm"
)

// GormOrderTransactionScope implements the order context's TransactionScope
// using GORM transactions
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. An error
// from the function rolls the transaction back.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderRepositories{tx: tx})
	})
}

type gormOrderRepositories struct {
	tx *gorm.DB
}

func (r *gormOrderRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormOrderRepositories) Carts() cart.Repository {
	return NewGormCartRepository(r.tx)
}

func (r *gormOrderRepositories) Customers() account.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormOrderRepositories) Addresses() account.AddressRepository {
	return NewGormAddressRepository(r.tx)
}

func (r *gormOrderRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormOrderRepositories) Payments() payment.Repository {
	return NewGormPaymentRepository(r.tx)
}

var (
	_ apporder.TransactionScope          = (*GormOrderTransactionScope)(nil)
	_ apporder.TransactionalRepositories = (*gormOrderRepositories)(nil)
)

// GormCatalogTransactionScope implements the catalog context's
// TransactionScope using GORM transactions
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope
func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCatalogRepositories{tx: tx})
	})
}

type gormCatalogRepositories struct {
	tx *gorm.DB
}

func (r *gormCatalogRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormCatalogRepositories) Categories() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

func (r *gormCatalogRepositories) Carts() cart.Repository {
	return NewGormCartRepository(r.tx)
}

func (r *gormCatalogRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

var (
	_ appcatalog.TransactionScope          = (*GormCatalogTransactionScope)(nil)
	_ appcatalog.TransactionalRepositories = (*gormCatalogRepositories)(nil)
)

// GormWalletTransactionScope implements the wallet context's
// TransactionScope using GORM transactions
type GormWalletTransactionScope struct {
	db *gorm.DB
}

// NewGormWalletTransactionScope creates a new GormWalletTransactionScope
func NewGormWalletTransactionScope(db *gorm.DB) *GormWalletTransactionScope {
	return &GormWalletTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormWalletTransactionScope) Execute(ctx context.Context, fn func(repos appwallet.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormWalletRepositories{tx: tx})
	})
}

type gormWalletRepositories struct {
	tx *gorm.DB
}

func (r *gormWalletRepositories) Customers() account.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormWalletRepositories) TopUps() wallet.TopUpRepository {
	return NewGormTopUpRepository(r.tx)
}

var (
	_ appwallet.TransactionScope          = (*GormWalletTransactionScope)(nil)
	_ appwallet.TransactionalRepositories = (*gormWalletRepositories)(nil)
)

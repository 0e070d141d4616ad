package wallet

import (
	"context"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/wallet"
)

// TransactionScope executes a function within a database transaction.
// Settling a top-up updates the top-up row and the wallet balance together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories the wallet context
// touches, bound to the active transaction
type TransactionalRepositories interface {
	Customers() account.CustomerRepository
	TopUps() wallet.TopUpRepository
}

// NoOpTransactionScope executes without a real transaction, for testing
type NoOpTransactionScope struct {
	CustomerRepo account.CustomerRepository
	TopUpRepo    wallet.TopUpRepository
}

func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Customers() account.CustomerRepository { return s.CustomerRepo }
func (s *NoOpTransactionScope) TopUps() wallet.TopUpRepository        { return s.TopUpRepo }

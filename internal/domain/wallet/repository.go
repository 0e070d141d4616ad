package wallet

import (
	"context"

	"github.com/google/uuid"
)

// TopUpRepository defines the interface for top-up persistence
type TopUpRepository interface {
	// FindByID finds a top-up by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*TopUp, error)

	// FindByAuthority finds a top-up by its gateway authority
	FindByAuthority(ctx context.Context, authority string) (*TopUp, error)

	// FindByCustomer finds all top-ups of a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]TopUp, error)

	// Save creates or updates a top-up
	Save(ctx context.Context, topUp *TopUp) error
}

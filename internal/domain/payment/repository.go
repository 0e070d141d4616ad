package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for payment attempt persistence
type Repository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByAuthority finds a payment by its gateway authority
	FindByAuthority(ctx context.Context, authority string) (*Payment, error)

	// FindByOrder finds all payment attempts for an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error
}

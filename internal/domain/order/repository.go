package order

import (
	"context"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByCustomer finds all orders of a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save persists the order and its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock updates an order with an optimistic version check
	SaveWithLock(ctx context.Context, order *Order) error

	// Delete removes the order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteUnsettledItemsOverQuantity removes every item for the product
	// whose quantity exceeds the limit and whose order has not been paid,
	// covering unpaid and canceled orders alike. Paid orders are left
	// untouched. Used by inventory reconciliation.
	DeleteUnsettledItemsOverQuantity(ctx context.Context, productID uuid.UUID, limit int) (int64, error)
}

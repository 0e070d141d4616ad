package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for cart persistence
type Repository interface {
	// FindByID finds a cart by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByCustomer finds the customer's cart, items included
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)

	// Save persists the cart and its items, removing items deleted in memory
	Save(ctx context.Context, cart *Cart) error

	// DeleteItemsOverQuantity removes every cart item for the product whose
	// quantity exceeds the given limit. Used by inventory reconciliation.
	DeleteItemsOverQuantity(ctx context.Context, productID uuid.UUID, limit int) (int64, error)
}

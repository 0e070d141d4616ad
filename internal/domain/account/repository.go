package account

import (
	"context"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByUserID finds the customer owned by an identity user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// SaveWithLock updates a customer with an optimistic version check
	SaveWithLock(ctx context.Context, customer *Customer) error
}

// SellerRepository defines the interface for seller persistence
type SellerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Seller, error)
	Save(ctx context.Context, seller *Seller) error
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByOwner finds all addresses for an owner
	FindByOwner(ctx context.Context, ownerKind OwnerKind, ownerID uuid.UUID) ([]Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// Delete deletes an address
	Delete(ctx context.Context, id uuid.UUID) error
}

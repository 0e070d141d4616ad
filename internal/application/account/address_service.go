package account

import (
	"context"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddressService handles customer delivery addresses.
// Every operation checks that the address belongs to the caller.
type AddressService struct {
	addresses account.AddressRepository
	logger    *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(addresses account.AddressRepository, logger *zap.Logger) *AddressService {
	return &AddressService{
		addresses: addresses,
		logger:    logger,
	}
}

// Create adds an address for the customer
func (s *AddressService) Create(ctx context.Context, customerID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	address, err := account.NewAddress(account.OwnerKindCustomer, customerID, req.Province, req.City, req.Street, req.PostalCode)
	if err != nil {
		return nil, err
	}
	if err := s.addresses.Save(ctx, address); err != nil {
		return nil, err
	}

	s.logger.Info("address created",
		zap.String("address_id", address.ID.String()),
		zap.String("customer_id", customerID.String()),
	)

	return ToAddressResponse(address), nil
}

// List returns the customer's addresses
func (s *AddressService) List(ctx context.Context, customerID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addresses.FindByOwner(ctx, account.OwnerKindCustomer, customerID)
	if err != nil {
		return nil, err
	}
	responses := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		responses = append(responses, *ToAddressResponse(&addresses[i]))
	}
	return responses, nil
}

// Update changes one of the customer's addresses
func (s *AddressService) Update(ctx context.Context, customerID, addressID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	address, err := s.owned(ctx, customerID, addressID)
	if err != nil {
		return nil, err
	}
	if err := address.Update(req.Province, req.City, req.Street, req.PostalCode); err != nil {
		return nil, err
	}
	if err := s.addresses.Save(ctx, address); err != nil {
		return nil, err
	}
	return ToAddressResponse(address), nil
}

// Delete removes one of the customer's addresses
func (s *AddressService) Delete(ctx context.Context, customerID, addressID uuid.UUID) error {
	if _, err := s.owned(ctx, customerID, addressID); err != nil {
		return err
	}
	return s.addresses.Delete(ctx, addressID)
}

func (s *AddressService) owned(ctx context.Context, customerID, addressID uuid.UUID) (*account.Address, error) {
	address, err := s.addresses.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if !address.BelongsTo(account.OwnerKindCustomer, customerID) {
		return nil, shared.ErrForbidden
	}
	return address, nil
}

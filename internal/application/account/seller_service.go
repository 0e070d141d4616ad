package account

import (
	"context"
	"errors"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SellerService handles seller registration and profiles
type SellerService struct {
	sellers account.SellerRepository
	logger  *zap.Logger
}

// NewSellerService creates a new SellerService
func NewSellerService(sellers account.SellerRepository, logger *zap.Logger) *SellerService {
	return &SellerService{
		sellers: sellers,
		logger:  logger,
	}
}

// Register creates a seller record for the authenticated user
func (s *SellerService) Register(ctx context.Context, userID uuid.UUID, req RegisterSellerRequest) (*SellerResponse, error) {
	if _, err := s.sellers.FindByUserID(ctx, userID); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	seller, err := account.NewSeller(userID, req.CompanyName)
	if err != nil {
		return nil, err
	}
	if err := s.sellers.Save(ctx, seller); err != nil {
		return nil, err
	}

	s.logger.Info("seller registered",
		zap.String("seller_id", seller.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return ToSellerResponse(seller), nil
}

// GetProfile returns the seller owned by the authenticated user
func (s *SellerService) GetProfile(ctx context.Context, userID uuid.UUID) (*SellerResponse, error) {
	seller, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToSellerResponse(seller), nil
}

// UpdateProfile updates the seller's contact details
func (s *SellerService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateSellerRequest) (*SellerResponse, error) {
	seller, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := seller.UpdateProfile(req.CompanyName, req.FirstName, req.LastName, account.Gender(req.Gender), req.PhoneNumber); err != nil {
		return nil, err
	}
	if err := s.sellers.Save(ctx, seller); err != nil {
		return nil, err
	}

	return ToSellerResponse(seller), nil
}

// Resolve returns the seller owned by the authenticated user. Endpoints
// that mutate the catalog use this to scope writes to the caller.
func (s *SellerService) Resolve(ctx context.Context, userID uuid.UUID) (*account.Seller, error) {
	seller, err := s.sellers.FindByUserID(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrForbidden
	}
	return seller, err
}

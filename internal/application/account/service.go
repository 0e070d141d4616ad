package account

import (
	"context"
	"errors"
	"time"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles customer profiles
type Service struct {
	customers account.CustomerRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new account Service
func NewService(customers account.CustomerRepository, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		customers: customers,
		publisher: publisher,
		logger:    logger,
	}
}

// EnsureCustomer returns the customer owned by the authenticated user,
// creating the shell record on first contact
func (s *Service) EnsureCustomer(ctx context.Context, userID uuid.UUID) (*account.Customer, error) {
	customer, err := s.customers.FindByUserID(ctx, userID)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	customer = account.NewCustomer(userID)
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publish(ctx, customer)
	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return customer, nil
}

// GetProfile returns the customer's profile and wallet balance
func (s *Service) GetProfile(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// UpdateProfile updates the customer's personal information
func (s *Service) UpdateProfile(ctx context.Context, customerID uuid.UUID, req UpdateProfileRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date must be YYYY-MM-DD")
		}
		birthDate = &parsed
	}

	if err := customer.UpdateProfile(req.FirstName, req.LastName, account.Gender(req.Gender), req.PhoneNumber, birthDate); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	return ToCustomerResponse(customer), nil
}

func (s *Service) publish(ctx context.Context, c *account.Customer) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, c.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish customer events", zap.Error(err))
	}
	c.ClearDomainEvents()
}

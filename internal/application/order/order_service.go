package order

import (
	"context"

	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service covers order queries, customer cancellation, and the admin
// status override
type Service struct {
	scope     TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new order Service
func NewService(scope TransactionScope, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		scope:     scope,
		publisher: publisher,
		logger:    logger,
	}
}

// GetOrder returns one order of the customer
func (s *Service) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.CustomerID != customerID {
			return shared.ErrForbidden
		}

		var prices map[uuid.UUID]valueobject.Money
		if o.IsUnpaid() {
			if prices, err = livePricesFor(ctx, repos, o); err != nil {
				prices = nil
			}
		}
		resp = ToOrderResponse(o, prices)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListOrders returns the customer's orders
func (s *Service) ListOrders(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	var responses []OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.Orders().FindByCustomer(ctx, customerID, filter)
		if err != nil {
			return err
		}
		responses = make([]OrderResponse, 0, len(orders))
		for i := range orders {
			responses = append(responses, *ToOrderResponse(&orders[i], nil))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// Cancel cancels the customer's own unpaid order
func (s *Service) Cancel(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	var canceled *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.CustomerID != customerID {
			return shared.ErrForbidden
		}
		if err := o.Cancel(); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		canceled = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, canceled)
	s.logger.Info("order canceled",
		zap.String("order_id", orderID.String()),
		zap.String("customer_id", customerID.String()),
	)

	return ToOrderResponse(canceled, nil), nil
}

// Delete removes the customer's own order. Only unpaid orders can be
// deleted; paid and canceled orders stay on record.
func (s *Service) Delete(ctx context.Context, customerID, orderID uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.CustomerID != customerID {
			return shared.ErrForbidden
		}
		if !o.IsUnpaid() {
			return shared.NewDomainError("INVALID_STATE", "Only unpaid orders can be deleted")
		}
		return repos.Orders().Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("order deleted",
		zap.String("order_id", orderID.String()),
		zap.String("customer_id", customerID.String()),
	)
	return nil
}

// OverrideStatus forces an order status as an administrative correction.
// Entering paid snapshots the live prices; leaving paid clears them.
// Forcing paid with the wallet method requires the customer's balance to
// cover the total, but no money moves either way.
func (s *Service) OverrideStatus(ctx context.Context, orderID uuid.UUID, req OverrideStatusRequest) (*OrderResponse, error) {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	method := order.PaymentMethod(req.PaymentMethod)
	if req.PaymentMethod != "" && !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	var overridden *order.Order
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		var prices map[uuid.UUID]valueobject.Money
		if target == order.StatusPaid {
			if prices, err = livePricesFor(ctx, repos, o); err != nil {
				return err
			}

			if method == order.PaymentMethodWallet {
				customer, err := repos.Customers().FindByID(ctx, o.CustomerID)
				if err != nil {
					return err
				}
				total, err := o.LiveTotal(prices)
				if err != nil {
					return err
				}
				enough, err := customer.WalletBalance.GreaterThanOrEqual(total)
				if err != nil {
					return err
				}
				if !enough {
					return shared.ErrInsufficientBalance
				}
			}
		}

		if err := o.OverrideStatus(target, prices); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		overridden = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, overridden)
	s.logger.Info("order status overridden",
		zap.String("order_id", orderID.String()),
		zap.String("status", target.String()),
	)

	return ToOrderResponse(overridden, nil), nil
}

func (s *Service) publish(ctx context.Context, o *order.Order) {
	if s.publisher == nil || o == nil {
		return
	}
	if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish order events", zap.Error(err))
	}
	o.ClearDomainEvents()
}

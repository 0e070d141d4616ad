package order

import (
	"context"
	"fmt"

	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/payment"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService settles orders, either from the customer's wallet or by
// opening a session at the online gateway
type PaymentService struct {
	scope       TransactionScope
	gateway     payment.Gateway
	callbackURL string
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService. callbackURL is the
// absolute URL the gateway redirects the customer back to.
func NewPaymentService(
	scope TransactionScope,
	gateway payment.Gateway,
	callbackURL string,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		scope:       scope,
		gateway:     gateway,
		callbackURL: callbackURL,
		publisher:   publisher,
		logger:      logger,
	}
}

// PayWithWallet settles an unpaid order from the customer's wallet.
// The wallet debit and the status transition commit atomically.
func (s *PaymentService) PayWithWallet(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	var paid *order.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.CustomerID != customerID {
			return shared.ErrForbidden
		}
		if !o.IsUnpaid() {
			return shared.ErrInvalidState
		}

		customer, err := repos.Customers().FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		prices, err := livePricesFor(ctx, repos, o)
		if err != nil {
			return err
		}
		total, err := o.LiveTotal(prices)
		if err != nil {
			return err
		}

		if err := customer.DebitWallet(total); err != nil {
			return err
		}
		if err := o.MarkPaid(order.PaymentMethodWallet, "", prices); err != nil {
			return err
		}

		if err := repos.Customers().SaveWithLock(ctx, customer); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}

		paid = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvents(ctx, paid)
	s.logger.Info("order paid from wallet",
		zap.String("order_id", orderID.String()),
		zap.String("customer_id", customerID.String()),
	)

	return ToOrderResponse(paid, nil), nil
}

// RequestOnlinePayment opens a gateway session for an unpaid order and
// returns the hosted page URL to redirect the customer to
func (s *PaymentService) RequestOnlinePayment(ctx context.Context, customerID, orderID uuid.UUID) (*PaymentRedirectResponse, error) {
	var total valueobject.Money

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.CustomerID != customerID {
			return shared.ErrForbidden
		}
		if !o.IsUnpaid() {
			return shared.ErrInvalidState
		}

		prices, err := livePricesFor(ctx, repos, o)
		if err != nil {
			return err
		}
		total, err = o.LiveTotal(prices)
		return err
	})
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.RequestPayment(ctx, payment.PaymentRequest{
		Amount:      total,
		Description: fmt.Sprintf("Payment for order %s", orderID),
		CallbackURL: s.callbackURL,
	})
	if err != nil {
		s.logger.Error("gateway payment request failed",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	attempt, err := payment.NewPayment(orderID, customerID, total, result.Authority)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.Payments().Save(ctx, attempt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("online payment requested",
		zap.String("order_id", orderID.String()),
		zap.String("authority", result.Authority),
	)

	return &PaymentRedirectResponse{
		Authority:  result.Authority,
		PaymentURL: result.PaymentURL,
	}, nil
}

// livePricesFor loads the current unit prices for every product on the order
func livePricesFor(ctx context.Context, repos TransactionalRepositories, o *order.Order) (map[uuid.UUID]valueobject.Money, error) {
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := repos.Products().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prices := make(map[uuid.UUID]valueobject.Money, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	return prices, nil
}

func (s *PaymentService) publishOrderEvents(ctx context.Context, o *order.Order) {
	if s.publisher == nil || o == nil {
		return
	}
	if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish order events", zap.Error(err))
	}
	o.ClearDomainEvents()
}

package order

import (
	"context"
	"sync"

	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/payment"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CallbackService processes the gateway redirect after an online order
// payment. Verification and settlement are idempotent: a duplicate
// callback for an already-paid order reports success without side effects.
type CallbackService struct {
	scope      TransactionScope
	gateway    payment.Gateway
	publisher  shared.EventPublisher
	logger     *zap.Logger
	processing sync.Map // authority -> struct{}, guards concurrent duplicates
}

// NewCallbackService creates a new CallbackService
func NewCallbackService(scope TransactionScope, gateway payment.Gateway, publisher shared.EventPublisher, logger *zap.Logger) *CallbackService {
	return &CallbackService{
		scope:     scope,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// HandleCallback verifies and settles the payment identified by the
// gateway authority. statusOK is false when the customer aborted at the
// gateway (status query parameter other than OK).
func (s *CallbackService) HandleCallback(ctx context.Context, authority string, statusOK bool) (*CallbackResult, error) {
	if authority == "" {
		return nil, shared.NewDomainError("INVALID_AUTHORITY", "Authority cannot be empty")
	}

	if _, inFlight := s.processing.LoadOrStore(authority, struct{}{}); inFlight {
		s.logger.Warn("duplicate concurrent callback ignored", zap.String("authority", authority))
		return &CallbackResult{Success: false}, shared.ErrConcurrencyConflict
	}
	defer s.processing.Delete(authority)

	var (
		attempt *payment.Payment
		settled *order.Order
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		attempt, err = repos.Payments().FindByAuthority(ctx, authority)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &CallbackResult{OrderID: attempt.OrderID}

	// An already-paid order means an earlier callback settled it.
	var existing *order.Order
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		existing, err = repos.Orders().FindByID(ctx, attempt.OrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if existing.IsPaid() {
		result.Success = true
		result.AlreadyProcessed = true
		if existing.GatewayRefID != nil {
			result.RefID = *existing.GatewayRefID
		}
		return result, nil
	}

	if !statusOK {
		if err := s.failAttempt(ctx, attempt); err != nil {
			return nil, err
		}
		s.logger.Info("payment aborted at gateway", zap.String("authority", authority))
		return result, nil
	}

	// Verification uses the order's current total, the same figure that
	// MarkPaid will snapshot. Prices may have moved since the attempt was
	// opened.
	var liveTotal valueobject.Money
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		prices, err := livePricesFor(ctx, repos, existing)
		if err != nil {
			return err
		}
		liveTotal, err = existing.LiveTotal(prices)
		return err
	})
	if err != nil {
		return nil, err
	}

	verify, err := s.gateway.VerifyPayment(ctx, payment.VerifyRequest{
		Authority: authority,
		Amount:    liveTotal,
	})
	if err != nil {
		s.logger.Error("payment verification failed",
			zap.String("authority", authority),
			zap.Error(err),
		)
		return nil, err
	}

	if !verify.Verified() {
		if err := s.failAttempt(ctx, attempt); err != nil {
			return nil, err
		}
		s.logger.Warn("gateway rejected payment",
			zap.String("authority", authority),
			zap.Int("code", verify.Code),
		)
		return result, nil
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, attempt.OrderID)
		if err != nil {
			return err
		}
		if o.IsPaid() {
			settled = o
			return nil
		}

		prices, err := livePricesFor(ctx, repos, o)
		if err != nil {
			return err
		}

		if attempt.IsPending() {
			if err := attempt.MarkSucceeded(verify.RefID); err != nil {
				return err
			}
			if err := repos.Payments().Save(ctx, attempt); err != nil {
				return err
			}
		}

		if err := o.MarkPaid(order.PaymentMethodOnline, verify.RefID, prices); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}

		settled = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil && settled != nil {
		if err := s.publisher.Publish(ctx, settled.GetDomainEvents()...); err != nil {
			s.logger.Warn("failed to publish order events", zap.Error(err))
		}
		settled.ClearDomainEvents()
	}

	result.Success = true
	result.AlreadyProcessed = verify.Code == payment.CodeAlreadyVerified
	result.RefID = verify.RefID

	s.logger.Info("online payment settled",
		zap.String("authority", authority),
		zap.String("order_id", attempt.OrderID.String()),
		zap.Int("code", verify.Code),
		zap.Bool("already_processed", result.AlreadyProcessed),
	)

	return result, nil
}

func (s *CallbackService) failAttempt(ctx context.Context, attempt *payment.Payment) error {
	if !attempt.IsPending() {
		return nil
	}
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := attempt.MarkFailed(); err != nil {
			return err
		}
		return repos.Payments().Save(ctx, attempt)
	})
}

package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/bazaar/backend/internal/domain/payment"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/bazaar/backend/internal/domain/wallet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TopUpService credits customer wallets through the online gateway
type TopUpService struct {
	scope       TransactionScope
	gateway     payment.Gateway
	callbackURL string
	publisher   shared.EventPublisher
	logger      *zap.Logger
	processing  sync.Map // authority -> struct{}, guards concurrent duplicates
}

// NewTopUpService creates a new TopUpService. callbackURL is the absolute
// URL the gateway redirects the customer back to.
func NewTopUpService(
	scope TransactionScope,
	gateway payment.Gateway,
	callbackURL string,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TopUpService {
	return &TopUpService{
		scope:       scope,
		gateway:     gateway,
		callbackURL: callbackURL,
		publisher:   publisher,
		logger:      logger,
	}
}

// Balance returns the customer's current wallet balance
func (s *TopUpService) Balance(ctx context.Context, customerID uuid.UUID) (*BalanceResponse, error) {
	var resp *BalanceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := repos.Customers().FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		resp = &BalanceResponse{Balance: customer.WalletBalance.Amount().String()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RequestTopUp opens a gateway session for the amount and stores a pending
// top-up bound to the returned authority
func (s *TopUpService) RequestTopUp(ctx context.Context, customerID uuid.UUID, req TopUpRequest) (*TopUpRedirectResponse, error) {
	amount, err := valueobject.NewMoneyIRRFromString(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Top-up amount must be positive")
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		_, err := repos.Customers().FindByID(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.RequestPayment(ctx, payment.PaymentRequest{
		Amount:      amount,
		Description: fmt.Sprintf("Wallet top-up for customer %s", customerID),
		CallbackURL: s.callbackURL,
	})
	if err != nil {
		s.logger.Error("gateway top-up request failed",
			zap.String("customer_id", customerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	topUp, err := wallet.NewTopUp(customerID, amount, result.Authority)
	if err != nil {
		return nil, err
	}
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.TopUps().Save(ctx, topUp)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("wallet top-up requested",
		zap.String("customer_id", customerID.String()),
		zap.String("authority", result.Authority),
	)

	return &TopUpRedirectResponse{
		Authority:  result.Authority,
		PaymentURL: result.PaymentURL,
	}, nil
}

// HandleCallback verifies a top-up and credits the wallet. The top-up status
// change and the balance credit commit in one transaction; a duplicate
// callback for a settled top-up reports success without crediting again.
func (s *TopUpService) HandleCallback(ctx context.Context, authority string, statusOK bool) (*TopUpCallbackResult, error) {
	if authority == "" {
		return nil, shared.NewDomainError("INVALID_AUTHORITY", "Authority cannot be empty")
	}

	if _, inFlight := s.processing.LoadOrStore(authority, struct{}{}); inFlight {
		s.logger.Warn("duplicate concurrent top-up callback ignored", zap.String("authority", authority))
		return &TopUpCallbackResult{Success: false}, shared.ErrConcurrencyConflict
	}
	defer s.processing.Delete(authority)

	var topUp *wallet.TopUp
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		topUp, err = repos.TopUps().FindByAuthority(ctx, authority)
		return err
	})
	if err != nil {
		return nil, err
	}

	if topUp.IsSucceeded() {
		result := &TopUpCallbackResult{Success: true, AlreadyProcessed: true}
		if topUp.RefID != nil {
			result.RefID = *topUp.RefID
		}
		return result, nil
	}

	if !statusOK {
		if err := s.failTopUp(ctx, topUp); err != nil {
			return nil, err
		}
		s.logger.Info("top-up aborted at gateway", zap.String("authority", authority))
		return &TopUpCallbackResult{Success: false}, nil
	}

	verify, err := s.gateway.VerifyPayment(ctx, payment.VerifyRequest{
		Authority: authority,
		Amount:    topUp.Amount,
	})
	if err != nil {
		s.logger.Error("top-up verification failed",
			zap.String("authority", authority),
			zap.Error(err),
		)
		return nil, err
	}

	if !verify.Verified() {
		if err := s.failTopUp(ctx, topUp); err != nil {
			return nil, err
		}
		s.logger.Warn("gateway rejected top-up",
			zap.String("authority", authority),
			zap.Int("code", verify.Code),
		)
		return &TopUpCallbackResult{Success: false}, nil
	}

	var (
		balance  valueobject.Money
		credited bool
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		current, err := repos.TopUps().FindByAuthority(ctx, authority)
		if err != nil {
			return err
		}
		if current.IsSucceeded() {
			topUp = current
			return nil
		}

		customer, err := repos.Customers().FindByID(ctx, current.CustomerID)
		if err != nil {
			return err
		}

		if err := current.MarkSucceeded(verify.RefID); err != nil {
			return err
		}
		if err := customer.CreditWallet(current.Amount); err != nil {
			return err
		}

		if err := repos.TopUps().Save(ctx, current); err != nil {
			return err
		}
		if err := repos.Customers().SaveWithLock(ctx, customer); err != nil {
			return err
		}

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, customer.GetDomainEvents()...); err != nil {
				s.logger.Warn("failed to publish wallet events", zap.Error(err))
			}
			customer.ClearDomainEvents()
		}

		topUp = current
		balance = customer.WalletBalance
		credited = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &TopUpCallbackResult{
		Success:          true,
		AlreadyProcessed: verify.Code == payment.CodeAlreadyVerified,
		RefID:            verify.RefID,
	}
	if credited {
		result.Balance = balance.Amount().String()
	}

	s.logger.Info("wallet top-up settled",
		zap.String("authority", authority),
		zap.String("customer_id", topUp.CustomerID.String()),
		zap.Int("code", verify.Code),
	)

	return result, nil
}

func (s *TopUpService) failTopUp(ctx context.Context, topUp *wallet.TopUp) error {
	if !topUp.IsPending() {
		return nil
	}
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := topUp.MarkFailed(); err != nil {
			return err
		}
		return repos.TopUps().Save(ctx, topUp)
	})
}

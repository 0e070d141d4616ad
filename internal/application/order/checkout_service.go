package order

import (
	"context"
	"time"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService turns a customer's cart into an unpaid order.
// Order creation, item creation, and cart clearing happen in one
// transaction.
type CheckoutService struct {
	scope     TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(scope TransactionScope, publisher shared.EventPublisher, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		scope:     scope,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// DeliveryDates returns the delivery days a customer may pick right now
func (s *CheckoutService) DeliveryDates() *DeliveryDatesResponse {
	dates := order.EligibleDeliveryDates(s.now(), order.DeliveryWindowSize)
	resp := &DeliveryDatesResponse{Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format("2006-01-02"))
	}
	return resp
}

// Checkout creates an order from the customer's cart
func (s *CheckoutService) Checkout(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DELIVERY_DATE", "Delivery date must be YYYY-MM-DD")
	}
	if !order.IsEligibleDeliveryDate(s.now(), deliveryDate) {
		return nil, shared.NewDomainError("INVALID_DELIVERY_DATE", "Delivery date must be one of the upcoming eligible days")
	}

	var (
		placed *order.Order
		prices map[uuid.UUID]valueobject.Money
	)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := repos.Customers().FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		if !customer.HasCompleteProfile() {
			return shared.ErrIncompleteProfile
		}

		address, err := repos.Addresses().FindByID(ctx, req.AddressID)
		if err != nil {
			return err
		}
		if !address.BelongsTo(account.OwnerKindCustomer, customer.ID) {
			return shared.ErrForbidden
		}

		customerCart, err := repos.Carts().FindByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if customerCart.IsEmpty() {
			return shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
		}

		productIDs := make([]uuid.UUID, 0, len(customerCart.Items))
		for _, item := range customerCart.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		products, err := repos.Products().FindByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		if len(products) != len(productIDs) {
			return shared.ErrNotFound
		}

		prices = make(map[uuid.UUID]valueobject.Money, len(products))
		inventories := make(map[uuid.UUID]int, len(products))
		for _, p := range products {
			prices[p.ID] = p.Price
			inventories[p.ID] = p.Inventory
		}

		lines := make([]order.Line, 0, len(customerCart.Items))
		for _, item := range customerCart.Items {
			if item.Quantity > inventories[item.ProductID] {
				return shared.ErrInsufficientInventory
			}
			lines = append(lines, order.Line{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		placed, err = order.NewOrder(customerID, req.AddressID, deliveryDate, lines)
		if err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, placed); err != nil {
			return err
		}

		customerCart.Clear()
		return repos.Carts().Save(ctx, customerCart)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, placed)
	s.logger.Info("order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("customer_id", customerID.String()),
		zap.Int("items", len(placed.Items)),
	)

	return ToOrderResponse(placed, prices), nil
}

func (s *CheckoutService) publish(ctx context.Context, o *order.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish order events", zap.Error(err))
	}
	o.ClearDomainEvents()
}

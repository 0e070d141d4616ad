package order

import (
	"time"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Order is the aggregate root for a customer's purchase.
// Items snapshot their unit price while the order is paid; outside the
// paid status the snapshots are nil and totals come from live prices.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	AddressID     uuid.UUID      `gorm:"type:uuid;not null"`
	Status        Status         `gorm:"type:varchar(1);not null;default:'u'"`
	PaymentMethod *PaymentMethod `gorm:"type:varchar(10)"`
	DeliveryDate  time.Time      `gorm:"type:date;not null"`
	PaidAt        *time.Time
	GatewayRefID  *string `gorm:"type:varchar(100)"`
	Items         []Item  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// Item is one product line in an order.
// UnitPrice is non-nil exactly while the order is paid.
type Item struct {
	shared.BaseEntity
	OrderID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_order_product,priority:1"`
	ProductID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_order_product,priority:2"`
	Quantity  int                `gorm:"not null"`
	UnitPrice *valueobject.Money `gorm:"type:decimal(18,0)"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// Line describes a requested product line at checkout
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// NewOrder creates an unpaid order with the given lines
func NewOrder(customerID, addressID uuid.UUID, deliveryDate time.Time, lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		AddressID:         addressID,
		Status:            StatusUnpaid,
		DeliveryDate:      deliveryDate,
		Items:             make([]Item, 0, len(lines)),
	}

	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
		}
		if seen[line.ProductID] {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "A product can appear only once per order")
		}
		seen[line.ProductID] = true

		o.Items = append(o.Items, Item{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    o.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
		})
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// IsUnpaid returns true if the order awaits payment
func (o *Order) IsUnpaid() bool {
	return o.Status == StatusUnpaid
}

// IsPaid returns true if the order has been paid
func (o *Order) IsPaid() bool {
	return o.Status == StatusPaid
}

// IsCanceled returns true if the order is canceled
func (o *Order) IsCanceled() bool {
	return o.Status == StatusCanceled
}

// MarkPaid transitions the order to paid, snapshotting every item's unit
// price from the live prices. refID carries the gateway reference for
// online payments and is empty for wallet payments.
func (o *Order) MarkPaid(method PaymentMethod, refID string, prices map[uuid.UUID]valueobject.Money) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if !o.Status.CanTransitionTo(StatusPaid) {
		return shared.ErrInvalidState
	}

	if err := o.snapshotPrices(prices); err != nil {
		return err
	}

	now := time.Now()
	o.Status = StatusPaid
	o.PaymentMethod = &method
	o.PaidAt = &now
	if refID != "" {
		o.GatewayRefID = &refID
	}
	o.touch()

	o.AddDomainEvent(NewOrderPaidEvent(o, method, refID))

	return nil
}

// Cancel transitions an unpaid order to canceled
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(StatusCanceled) {
		return shared.ErrInvalidState
	}

	o.Status = StatusCanceled
	o.touch()

	o.AddDomainEvent(NewOrderCanceledEvent(o))

	return nil
}

// Reopen returns a canceled order to unpaid
func (o *Order) Reopen() error {
	if o.Status != StatusCanceled {
		return shared.ErrInvalidState
	}

	o.Status = StatusUnpaid
	o.touch()

	o.AddDomainEvent(NewOrderReopenedEvent(o))

	return nil
}

// OverrideStatus forces the order into the target status as an
// administrative correction, bypassing the transition matrix while still
// applying the snapshot side effects: entering paid snapshots prices,
// leaving paid clears them along with the payment markers. No money moves.
func (o *Order) OverrideStatus(target Status, prices map[uuid.UUID]valueobject.Money) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if target == o.Status {
		return nil
	}

	wasPaid := o.Status == StatusPaid

	if target == StatusPaid {
		if err := o.snapshotPrices(prices); err != nil {
			return err
		}
		now := time.Now()
		o.PaidAt = &now
	} else if wasPaid {
		o.clearPriceSnapshots()
		o.PaymentMethod = nil
		o.PaidAt = nil
		o.GatewayRefID = nil
	}

	previous := o.Status
	o.Status = target
	o.touch()

	o.AddDomainEvent(NewOrderStatusOverriddenEvent(o, previous))

	return nil
}

// PaidTotal sums the snapshotted item prices of a paid order
func (o *Order) PaidTotal() (valueobject.Money, error) {
	if !o.IsPaid() {
		return valueobject.Money{}, shared.ErrInvalidState
	}

	total := valueobject.ZeroIRR()
	for _, item := range o.Items {
		if item.UnitPrice == nil {
			return valueobject.Money{}, shared.NewDomainError("MISSING_SNAPSHOT", "Paid order item has no price snapshot")
		}
		sum, err := total.Add(item.UnitPrice.MultiplyByInt(int64(item.Quantity)))
		if err != nil {
			return valueobject.Money{}, err
		}
		total = sum
	}
	return total, nil
}

// LiveTotal computes the order total from live unit prices keyed by
// product ID. Used while the order is unpaid.
func (o *Order) LiveTotal(prices map[uuid.UUID]valueobject.Money) (valueobject.Money, error) {
	total := valueobject.ZeroIRR()
	for _, item := range o.Items {
		price, ok := prices[item.ProductID]
		if !ok {
			return valueobject.Money{}, shared.NewDomainError("MISSING_PRICE", "No price available for product "+item.ProductID.String())
		}
		sum, err := total.Add(price.MultiplyByInt(int64(item.Quantity)))
		if err != nil {
			return valueobject.Money{}, err
		}
		total = sum
	}
	return total, nil
}

// ItemFor returns the order item holding the given product, or nil
func (o *Order) ItemFor(productID uuid.UUID) *Item {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

func (o *Order) snapshotPrices(prices map[uuid.UUID]valueobject.Money) error {
	for i := range o.Items {
		if _, ok := prices[o.Items[i].ProductID]; !ok {
			return shared.NewDomainError("MISSING_PRICE", "No price available for product "+o.Items[i].ProductID.String())
		}
	}
	for i := range o.Items {
		snapshot := prices[o.Items[i].ProductID]
		o.Items[i].UnitPrice = &snapshot
		o.Items[i].UpdatedAt = time.Now()
	}
	return nil
}

func (o *Order) clearPriceSnapshots() {
	for i := range o.Items {
		o.Items[i].UnitPrice = nil
		o.Items[i].UpdatedAt = time.Now()
	}
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

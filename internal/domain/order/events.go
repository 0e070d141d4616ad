package order

import (
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced           = "OrderPlaced"
	EventTypeOrderPaid             = "OrderPaid"
	EventTypeOrderCanceled         = "OrderCanceled"
	EventTypeOrderReopened         = "OrderReopened"
	EventTypeOrderStatusOverridden = "OrderStatusOverridden"
)

// OrderPlacedEvent is published when a checkout creates an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ItemCount  int       `json:"item_count"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		ItemCount:       len(o.Items),
	}
}

// OrderPaidEvent is published when an order is paid
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID     `json:"order_id"`
	CustomerID    uuid.UUID     `json:"customer_id"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	GatewayRefID  string        `json:"gateway_ref_id,omitempty"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order, method PaymentMethod, refID string) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		PaymentMethod:   method,
		GatewayRefID:    refID,
	}
}

// OrderCanceledEvent is published when an order is canceled
type OrderCanceledEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewOrderCanceledEvent creates a new OrderCanceledEvent
func NewOrderCanceledEvent(o *Order) *OrderCanceledEvent {
	return &OrderCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCanceled, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
	}
}

// OrderReopenedEvent is published when a canceled order returns to unpaid
type OrderReopenedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewOrderReopenedEvent creates a new OrderReopenedEvent
func NewOrderReopenedEvent(o *Order) *OrderReopenedEvent {
	return &OrderReopenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReopened, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
	}
}

// OrderStatusOverriddenEvent is published when an admin forces a status
type OrderStatusOverriddenEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID `json:"order_id"`
	PreviousStatus Status    `json:"previous_status"`
	NewStatus      Status    `json:"new_status"`
}

// NewOrderStatusOverriddenEvent creates a new OrderStatusOverriddenEvent
func NewOrderStatusOverriddenEvent(o *Order, previous Status) *OrderStatusOverriddenEvent {
	return &OrderStatusOverriddenEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusOverridden, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		PreviousStatus:  previous,
		NewStatus:       o.Status,
	}
}

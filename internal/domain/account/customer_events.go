package account

import (
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated = "CustomerCreated"
	EventTypeWalletDebited   = "WalletDebited"
	EventTypeWalletCredited  = "WalletCredited"
)

// CustomerCreatedEvent is published when a customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	UserID     uuid.UUID `json:"user_id"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		UserID:          customer.UserID,
	}
}

// WalletDebitedEvent is published when the wallet is charged for a payment
type WalletDebitedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID         `json:"customer_id"`
	Amount     valueobject.Money `json:"amount"`
	Balance    valueobject.Money `json:"balance"`
}

// NewWalletDebitedEvent creates a new WalletDebitedEvent
func NewWalletDebitedEvent(customer *Customer, amount valueobject.Money) *WalletDebitedEvent {
	return &WalletDebitedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWalletDebited, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Amount:          amount,
		Balance:         customer.WalletBalance,
	}
}

// WalletCreditedEvent is published when the wallet is topped up
type WalletCreditedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID         `json:"customer_id"`
	Amount     valueobject.Money `json:"amount"`
	Balance    valueobject.Money `json:"balance"`
}

// NewWalletCreditedEvent creates a new WalletCreditedEvent
func NewWalletCreditedEvent(customer *Customer, amount valueobject.Money) *WalletCreditedEvent {
	return &WalletCreditedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWalletCredited, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Amount:          amount,
		Balance:         customer.WalletBalance,
	}
}

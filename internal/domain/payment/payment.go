package payment

import (
	"time"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Status represents the state of a gateway payment attempt
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Payment is one online payment attempt for an order. An order can
// accumulate several failed attempts; at most one succeeds.
type Payment struct {
	shared.BaseAggregateRoot
	OrderID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount     valueobject.Money `gorm:"type:decimal(18,0);not null"`
	Status     Status            `gorm:"type:varchar(10);not null;default:'pending'"`
	Authority  string            `gorm:"type:varchar(100);not null;uniqueIndex"`
	RefID      *string           `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a pending payment attempt bound to a gateway authority
func NewPayment(orderID, customerID uuid.UUID, amount valueobject.Money, authority string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if authority == "" {
		return nil, shared.NewDomainError("INVALID_AUTHORITY", "Gateway authority cannot be empty")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		CustomerID:        customerID,
		Amount:            amount,
		Status:            StatusPending,
		Authority:         authority,
	}, nil
}

// IsPending returns true if the attempt awaits verification
func (p *Payment) IsPending() bool {
	return p.Status == StatusPending
}

// IsSucceeded returns true if the attempt settled
func (p *Payment) IsSucceeded() bool {
	return p.Status == StatusSucceeded
}

// IsFailed returns true if the attempt was aborted or rejected
func (p *Payment) IsFailed() bool {
	return p.Status == StatusFailed
}

// MarkSucceeded settles the attempt with the gateway reference
func (p *Payment) MarkSucceeded(refID string) error {
	if p.Status != StatusPending {
		return shared.ErrInvalidState
	}

	p.Status = StatusSucceeded
	if refID != "" {
		p.RefID = &refID
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkFailed records a failed or aborted attempt
func (p *Payment) MarkFailed() error {
	if p.Status != StatusPending {
		return shared.ErrInvalidState
	}

	p.Status = StatusFailed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

package wallet

import (
	"time"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TopUpStatus represents the state of a wallet credit request
type TopUpStatus string

const (
	TopUpStatusPending   TopUpStatus = "pending"
	TopUpStatusSucceeded TopUpStatus = "succeeded"
	TopUpStatusFailed    TopUpStatus = "failed"
)

// IsValid returns true if the status is known
func (s TopUpStatus) IsValid() bool {
	switch s {
	case TopUpStatusPending, TopUpStatusSucceeded, TopUpStatusFailed:
		return true
	}
	return false
}

// TopUp is a pending or settled wallet credit request paid through the
// online gateway. The gateway authority ties the callback back to it.
type TopUp struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount     valueobject.Money `gorm:"type:decimal(18,0);not null"`
	Status     TopUpStatus       `gorm:"type:varchar(10);not null;default:'pending'"`
	Authority  string            `gorm:"type:varchar(100);not null;uniqueIndex"`
	RefID      *string           `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (TopUp) TableName() string {
	return "wallet_topups"
}

// NewTopUp creates a pending top-up bound to a gateway authority
func NewTopUp(customerID uuid.UUID, amount valueobject.Money, authority string) (*TopUp, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Top-up amount must be positive")
	}
	if authority == "" {
		return nil, shared.NewDomainError("INVALID_AUTHORITY", "Gateway authority cannot be empty")
	}

	return &TopUp{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Amount:            amount,
		Status:            TopUpStatusPending,
		Authority:         authority,
	}, nil
}

// IsPending returns true if the top-up awaits verification
func (t *TopUp) IsPending() bool {
	return t.Status == TopUpStatusPending
}

// IsSucceeded returns true if the top-up has been credited
func (t *TopUp) IsSucceeded() bool {
	return t.Status == TopUpStatusSucceeded
}

// MarkSucceeded settles the top-up with the gateway reference
func (t *TopUp) MarkSucceeded(refID string) error {
	if t.Status != TopUpStatusPending {
		return shared.ErrInvalidState
	}

	t.Status = TopUpStatusSucceeded
	if refID != "" {
		t.RefID = &refID
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// MarkFailed records a failed or aborted top-up
func (t *TopUp) MarkFailed() error {
	if t.Status != TopUpStatusPending {
		return shared.ErrInvalidState
	}

	t.Status = TopUpStatusFailed
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

package order

import (
	"strings"

	"github.com/bazaar/backend/internal/domain/shared"
)

// Status represents the order lifecycle state.
// The single-letter values are the storage encoding.
type Status string

const (
	StatusUnpaid   Status = "u"
	StatusPaid     Status = "p"
	StatusCanceled Status = "c"
)

// IsValid returns true if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusPaid, StatusCanceled:
		return true
	}
	return false
}

// String returns the API representation of the status
func (s Status) String() string {
	switch s {
	case StatusUnpaid:
		return "UNPAID"
	case StatusPaid:
		return "PAID"
	case StatusCanceled:
		return "CANCELED"
	}
	return string(s)
}

// CanTransitionTo reports whether the transition is allowed.
// Paid and canceled are terminal except for the admin reopen of a
// canceled order back to unpaid.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusUnpaid:
		return target == StatusPaid || target == StatusCanceled
	case StatusCanceled:
		return target == StatusUnpaid
	default:
		return false
	}
}

// ParseStatus accepts both the API names and the storage codes
func ParseStatus(raw string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "UNPAID", "U":
		return StatusUnpaid, nil
	case "PAID", "P":
		return StatusPaid, nil
	case "CANCELED", "C":
		return StatusCanceled, nil
	}
	return "", shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+raw)
}

// PaymentMethod records how a paid order was settled
type PaymentMethod string

const (
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodOnline PaymentMethod = "online"
)

// IsValid returns true if the payment method is known
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodWallet || m == PaymentMethodOnline
}

package payment

import (
	"context"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
)

// Gateway error sentinels
var (
	ErrGatewayRequestFailed = shared.NewDomainError("GATEWAY_REQUEST_FAILED", "Payment gateway request failed")
	ErrVerificationFailed   = shared.NewDomainError("GATEWAY_VERIFICATION_FAILED", "Payment verification failed")
)

// Verification result codes returned by the gateway
const (
	// CodeVerified means the payment was verified successfully
	CodeVerified = 100
	// CodeAlreadyVerified means the payment had already been verified.
	// Callers treat it as success without repeating side effects.
	CodeAlreadyVerified = 101
)

// PaymentRequest asks the gateway to open a hosted payment session
type PaymentRequest struct {
	Amount      valueobject.Money
	Description string
	CallbackURL string
	Mobile      string
	Email       string
}

// Validate checks the request fields
func (r PaymentRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if r.Description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Payment description cannot be empty")
	}
	if r.CallbackURL == "" {
		return shared.NewDomainError("INVALID_CALLBACK_URL", "Callback URL cannot be empty")
	}
	return nil
}

// PaymentRequestResult carries the gateway session handle
type PaymentRequestResult struct {
	// Authority identifies the payment session at the gateway
	Authority string
	// PaymentURL is the hosted page the customer is redirected to
	PaymentURL string
}

// VerifyRequest asks the gateway to confirm a completed payment
type VerifyRequest struct {
	Authority string
	Amount    valueobject.Money
}

// Validate checks the request fields
func (r VerifyRequest) Validate() error {
	if r.Authority == "" {
		return shared.NewDomainError("INVALID_AUTHORITY", "Authority cannot be empty")
	}
	if !r.Amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	return nil
}

// VerifyResult carries the gateway's verification verdict
type VerifyResult struct {
	// Code is CodeVerified, CodeAlreadyVerified, or a gateway failure code
	Code int
	// RefID is the settlement reference, set when the payment is verified
	RefID string
}

// Verified reports whether the code counts as a successful verification
func (r VerifyResult) Verified() bool {
	return r.Code == CodeVerified || r.Code == CodeAlreadyVerified
}

// Gateway is the port to an online payment provider following the
// request/verify protocol
type Gateway interface {
	// RequestPayment opens a payment session and returns the authority
	// plus the hosted page URL to redirect the customer to
	RequestPayment(ctx context.Context, req PaymentRequest) (*PaymentRequestResult, error)

	// VerifyPayment confirms the payment identified by the authority
	VerifyPayment(ctx context.Context, req VerifyRequest) (*VerifyResult, error)
}

package payment

import (
	"errors"
	"time"
)

// Errors for configuration validation
var (
	ErrZarinPalMissingMerchantID = errors.New("zarinpal: missing merchant ID")
)

// ZarinPalConfig contains configuration for the ZarinPal REST API v4
type ZarinPalConfig struct {
	// MerchantID is the merchant identifier issued by ZarinPal
	MerchantID string
	// Sandbox switches to the sandbox environment
	Sandbox bool
	// BaseURL overrides the API base URL. Empty means the environment
	// default. Used by tests.
	BaseURL string
	// Timeout is the HTTP request timeout. Zero means 30 seconds.
	Timeout time.Duration
}

// Validate validates the configuration
func (c *ZarinPalConfig) Validate() error {
	if c.MerchantID == "" {
		return ErrZarinPalMissingMerchantID
	}
	return nil
}

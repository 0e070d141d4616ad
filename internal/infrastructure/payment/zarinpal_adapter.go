package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	domainpayment "github.com/bazaar/backend/internal/domain/payment"
)

const (
	zarinpalAPIBaseURL        = "https://payment.zarinpal.com"
	zarinpalSandboxAPIBaseURL = "https://sandbox.zarinpal.com"

	zarinpalRequestPath = "/pg/v4/payment/request.json"
	zarinpalVerifyPath  = "/pg/v4/payment/verify.json"
	zarinpalStartPath   = "/pg/StartPay/"

	zarinpalCurrency = "IRR"
)

// ZarinPalAdapter implements the payment gateway port for ZarinPal
type ZarinPalAdapter struct {
	config     *ZarinPalConfig
	httpClient *http.Client
}

// NewZarinPalAdapter creates a new ZarinPal adapter
func NewZarinPalAdapter(config *ZarinPalConfig) (*ZarinPalAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &ZarinPalAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// RequestPayment opens a payment session and returns the authority plus
// the hosted page URL
func (a *ZarinPalAdapter) RequestPayment(ctx context.Context, req domainpayment.PaymentRequest) (*domainpayment.PaymentRequestResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := zarinpalPaymentRequest{
		MerchantID:  a.config.MerchantID,
		Amount:      req.Amount.RialAmount(),
		Currency:    zarinpalCurrency,
		Description: req.Description,
		CallbackURL: req.CallbackURL,
		Metadata: zarinpalMetadata{
			Mobile: req.Mobile,
			Email:  req.Email,
		},
	}

	respBody, err := a.doRequest(ctx, zarinpalRequestPath, body)
	if err != nil {
		return nil, err
	}

	var envelope zarinpalEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("zarinpal: failed to parse response: %w", err)
	}

	if !isJSONObject(envelope.Data) {
		return nil, gatewayError(domainpayment.ErrGatewayRequestFailed, envelope.Errors)
	}

	var data zarinpalPaymentData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("zarinpal: failed to parse data section: %w", err)
	}

	if data.Code != domainpayment.CodeVerified || data.Authority == "" {
		return nil, fmt.Errorf("%w: code %d %s", domainpayment.ErrGatewayRequestFailed, data.Code, data.Message)
	}

	return &domainpayment.PaymentRequestResult{
		Authority:  data.Authority,
		PaymentURL: a.startPayURL(data.Authority),
	}, nil
}

// VerifyPayment confirms the payment identified by the authority
func (a *ZarinPalAdapter) VerifyPayment(ctx context.Context, req domainpayment.VerifyRequest) (*domainpayment.VerifyResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := zarinpalVerifyRequest{
		MerchantID: a.config.MerchantID,
		Amount:     req.Amount.RialAmount(),
		Authority:  req.Authority,
	}

	respBody, err := a.doRequest(ctx, zarinpalVerifyPath, body)
	if err != nil {
		return nil, err
	}

	var envelope zarinpalEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("zarinpal: failed to parse response: %w", err)
	}

	// A rejected verification comes back in the errors section with its
	// own code. It is a verdict, not a transport failure.
	if !isJSONObject(envelope.Data) {
		var apiErr zarinpalError
		if isJSONObject(envelope.Errors) {
			if err := json.Unmarshal(envelope.Errors, &apiErr); err == nil && apiErr.Code != 0 {
				return &domainpayment.VerifyResult{Code: apiErr.Code}, nil
			}
		}
		return nil, gatewayError(domainpayment.ErrVerificationFailed, envelope.Errors)
	}

	var data zarinpalVerifyData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("zarinpal: failed to parse data section: %w", err)
	}

	result := &domainpayment.VerifyResult{Code: data.Code}
	if data.RefID != 0 {
		result.RefID = strconv.FormatInt(data.RefID, 10)
	}

	return result, nil
}

// startPayURL builds the hosted payment page URL for an authority
func (a *ZarinPalAdapter) startPayURL(authority string) string {
	return a.baseURL() + zarinpalStartPath + authority
}

func (a *ZarinPalAdapter) baseURL() string {
	if a.config.BaseURL != "" {
		return a.config.BaseURL
	}
	if a.config.Sandbox {
		return zarinpalSandboxAPIBaseURL
	}
	return zarinpalAPIBaseURL
}

// doRequest performs a JSON POST to the ZarinPal API
func (a *ZarinPalAdapter) doRequest(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("zarinpal: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL()+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("zarinpal: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainpayment.ErrGatewayRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("zarinpal: failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: HTTP %d", domainpayment.ErrGatewayRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}

// gatewayError wraps the errors section of a failed call
func gatewayError(sentinel error, raw json.RawMessage) error {
	var apiErr zarinpalError
	if isJSONObject(raw) {
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: code %d %s", sentinel, apiErr.Code, apiErr.Message)
		}
	}
	return sentinel
}

// Ensure ZarinPalAdapter implements the gateway port
var _ domainpayment.Gateway = (*ZarinPalAdapter)(nil)

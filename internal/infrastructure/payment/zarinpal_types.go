package payment

import "encoding/json"

// zarinpalPaymentRequest is the body of a payment request call
type zarinpalPaymentRequest struct {
	MerchantID  string           `json:"merchant_id"`
	Amount      int64            `json:"amount"`
	Currency    string           `json:"currency"`
	Description string           `json:"description"`
	CallbackURL string           `json:"callback_url"`
	Metadata    zarinpalMetadata `json:"metadata,omitempty"`
}

// zarinpalMetadata carries optional customer contact details
type zarinpalMetadata struct {
	Mobile string `json:"mobile,omitempty"`
	Email  string `json:"email,omitempty"`
}

// zarinpalVerifyRequest is the body of a verify call
type zarinpalVerifyRequest struct {
	MerchantID string `json:"merchant_id"`
	Amount     int64  `json:"amount"`
	Authority  string `json:"authority"`
}

// zarinpalPaymentData is the data section of a payment request response
type zarinpalPaymentData struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Authority string `json:"authority"`
	FeeType   string `json:"fee_type"`
	Fee       int64  `json:"fee"`
}

// zarinpalVerifyData is the data section of a verify response
type zarinpalVerifyData struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	CardPan  string `json:"card_pan"`
	CardHash string `json:"card_hash"`
	RefID    int64  `json:"ref_id"`
	FeeType  string `json:"fee_type"`
	Fee      int64  `json:"fee"`
}

// zarinpalError is the errors section of a failed call
type zarinpalError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// zarinpalEnvelope wraps every API response. On success data holds an
// object and errors an empty array; on failure the roles swap. Both are
// decoded lazily for that reason.
type zarinpalEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// isJSONObject reports whether the raw section holds a JSON object
func isJSONObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

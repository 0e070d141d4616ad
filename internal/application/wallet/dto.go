package wallet

// TopUpRequest opens a gateway session to credit the wallet
type TopUpRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// TopUpRedirectResponse points the customer at the gateway's hosted page
type TopUpRedirectResponse struct {
	Authority  string `json:"authority"`
	PaymentURL string `json:"payment_url"`
}

// TopUpCallbackResult reports the outcome of a top-up callback
type TopUpCallbackResult struct {
	Success          bool   `json:"success"`
	AlreadyProcessed bool   `json:"already_processed,omitempty"`
	RefID            string `json:"ref_id,omitempty"`
	Balance          string `json:"balance,omitempty"`
}

// BalanceResponse reports the customer's wallet balance
type BalanceResponse struct {
	Balance string `json:"balance"`
}

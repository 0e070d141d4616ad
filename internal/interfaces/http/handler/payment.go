package handler

import (
	accountapp "github.com/bazaar/backend/internal/application/account"
	orderapp "github.com/bazaar/backend/internal/application/order"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles order payment endpoints. The callback endpoint is
// public; the gateway redirects the customer's browser there.
type PaymentHandler struct {
	BaseHandler
	accounts  *accountapp.Service
	payments  *orderapp.PaymentService
	callbacks *orderapp.CallbackService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(accounts *accountapp.Service, payments *orderapp.PaymentService, callbacks *orderapp.CallbackService) *PaymentHandler {
	return &PaymentHandler{
		accounts:  accounts,
		payments:  payments,
		callbacks: callbacks,
	}
}

// PayWithWallet handles POST /orders/:id/pay/wallet
func (h *PaymentHandler) PayWithWallet(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.payments.PayWithWallet(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PayOnline handles POST /orders/:id/pay/online
func (h *PaymentHandler) PayOnline(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.payments.RequestOnlinePayment(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Callback handles GET /payments/callback. The gateway appends
// Authority and Status ("OK" or "NOK") as query parameters.
func (h *PaymentHandler) Callback(c *gin.Context) {
	authority := c.Query("Authority")
	if authority == "" {
		h.BadRequest(c, "Missing Authority parameter")
		return
	}
	statusOK := c.Query("Status") == "OK"

	result, err := h.callbacks.HandleCallback(c.Request.Context(), authority, statusOK)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("/:id/pay/wallet", h.PayWithWallet)
		orders.POST("/:id/pay/online", h.PayOnline)
	}
	rg.GET("/payments/callback", h.Callback)
}

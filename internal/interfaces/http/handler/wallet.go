package handler

import (
	accountapp "github.com/bazaar/backend/internal/application/account"
	walletapp "github.com/bazaar/backend/internal/application/wallet"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet balance and top-up endpoints
type WalletHandler struct {
	BaseHandler
	accounts *accountapp.Service
	topups   *walletapp.TopUpService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(accounts *accountapp.Service, topups *walletapp.TopUpService) *WalletHandler {
	return &WalletHandler{
		accounts: accounts,
		topups:   topups,
	}
}

// Balance handles GET /wallet
func (h *WalletHandler) Balance(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	resp, err := h.topups.Balance(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RequestTopUp handles POST /wallet/topup
func (h *WalletHandler) RequestTopUp(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	var req walletapp.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.topups.RequestTopUp(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Callback handles GET /wallet/topup/callback. The gateway appends
// Authority and Status ("OK" or "NOK") as query parameters.
func (h *WalletHandler) Callback(c *gin.Context) {
	authority := c.Query("Authority")
	if authority == "" {
		h.BadRequest(c, "Missing Authority parameter")
		return
	}
	statusOK := c.Query("Status") == "OK"

	result, err := h.topups.HandleCallback(c.Request.Context(), authority, statusOK)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers wallet routes
func (h *WalletHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wallet := rg.Group("/wallet")
	{
		wallet.GET("", h.Balance)
		wallet.POST("/topup", h.RequestTopUp)
		wallet.GET("/topup/callback", h.Callback)
	}
}

package handler

import (
	accountapp "github.com/bazaar/backend/internal/application/account"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles the customer profile endpoints
type CustomerHandler struct {
	BaseHandler
	accounts *accountapp.Service
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(accounts *accountapp.Service) *CustomerHandler {
	return &CustomerHandler{accounts: accounts}
}

// GetProfile handles GET /customers/me
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	profile, err := h.accounts.GetProfile(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile handles PUT /customers/me
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	var req accountapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.accounts.UpdateProfile(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// RegisterRoutes registers customer profile routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("/me", h.GetProfile)
		customers.PUT("/me", h.UpdateProfile)
	}
}

package handler

import (
	accountapp "github.com/bazaar/backend/internal/application/account"
	"github.com/gin-gonic/gin"
)

// AddressHandler handles the customer's address book
type AddressHandler struct {
	BaseHandler
	accounts  *accountapp.Service
	addresses *accountapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(accounts *accountapp.Service, addresses *accountapp.AddressService) *AddressHandler {
	return &AddressHandler{
		accounts:  accounts,
		addresses: addresses,
	}
}

// List handles GET /addresses
func (h *AddressHandler) List(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	addresses, err := h.addresses.List(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// Create handles POST /addresses
func (h *AddressHandler) Create(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	var req accountapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addresses.Create(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, address)
}

// Update handles PUT /addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}
	addressID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	var req accountapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addresses.Update(c.Request.Context(), customerID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}

// Delete handles DELETE /addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}
	addressID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.addresses.Delete(c.Request.Context(), customerID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers address routes
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	addresses := rg.Group("/addresses")
	{
		addresses.GET("", h.List)
		addresses.POST("", h.Create)
		addresses.PUT("/:id", h.Update)
		addresses.DELETE("/:id", h.Delete)
	}
}

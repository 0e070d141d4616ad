package handler

import (
	accountapp "github.com/bazaar/backend/internal/application/account"
	cartapp "github.com/bazaar/backend/internal/application/cart"
	"github.com/gin-gonic/gin"
)

// CartHandler handles the customer's shopping cart
type CartHandler struct {
	BaseHandler
	accounts *accountapp.Service
	carts    *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(accounts *accountapp.Service, carts *cartapp.Service) *CartHandler {
	return &CartHandler{
		accounts: accounts,
		carts:    carts,
	}
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	cart, err := h.carts.Get(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.carts.UpdateItem(c.Request.Context(), customerID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), customerID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	cart, err := h.carts.Clear(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.DELETE("", h.Clear)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:id", h.UpdateItem)
		cart.DELETE("/items/:id", h.RemoveItem)
	}
}

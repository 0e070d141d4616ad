package handler

import (
	accountapp "github.com/bazaar/backend/internal/application/account"
	orderapp "github.com/bazaar/backend/internal/application/order"
	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/interfaces/http/dto"
	"github.com/bazaar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	accounts *accountapp.Service
	checkout *orderapp.CheckoutService
	orders   *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(accounts *accountapp.Service, checkout *orderapp.CheckoutService, orders *orderapp.Service) *OrderHandler {
	return &OrderHandler{
		accounts: accounts,
		checkout: checkout,
		orders:   orders,
	}
}

// DeliveryDates handles GET /orders/delivery-dates
func (h *OrderHandler) DeliveryDates(c *gin.Context) {
	h.Success(c, h.checkout.DeliveryDates())
}

// Checkout handles POST /orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	placed, err := h.checkout.Checkout(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, placed)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := toFilter(req)

	if raw := c.Query("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			h.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Filters["status"] = string(status)
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orders.GetOrder(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orders.Cancel(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	customerID, ok := h.resolveCustomer(c, h.accounts)
	if !ok {
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orders.Delete(c.Request.Context(), customerID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// OverrideStatus handles PUT /orders/:id/status (admin only)
func (h *OrderHandler) OverrideStatus(c *gin.Context) {
	if !middleware.IsJWTAdmin(c) {
		h.Forbidden(c, "Admin access required")
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.OverrideStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("/delivery-dates", h.DeliveryDates)
		orders.POST("", h.Checkout)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/cancel", h.Cancel)
		orders.DELETE("/:id", h.Delete)
		orders.PUT("/:id/status", h.OverrideStatus)
	}
}

package handler

import (
	accountapp "github.com/bazaar/backend/internal/application/account"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SellerHandler handles seller registration and profile endpoints
type SellerHandler struct {
	BaseHandler
	sellers *accountapp.SellerService
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(sellers *accountapp.SellerService) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

func (h *SellerHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// Register handles POST /sellers
func (h *SellerHandler) Register(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req accountapp.RegisterSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	seller, err := h.sellers.Register(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, seller)
}

// GetProfile handles GET /sellers/me
func (h *SellerHandler) GetProfile(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	seller, err := h.sellers.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, seller)
}

// UpdateProfile handles PUT /sellers/me
func (h *SellerHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req accountapp.UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	seller, err := h.sellers.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, seller)
}

// RegisterRoutes registers seller routes
func (h *SellerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sellers := rg.Group("/sellers")
	{
		sellers.POST("", h.Register)
		sellers.GET("/me", h.GetProfile)
		sellers.PUT("/me", h.UpdateProfile)
	}
}

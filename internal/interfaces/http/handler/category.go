package handler

import (
	catalogapp "github.com/bazaar/backend/internal/application/catalog"
	"github.com/bazaar/backend/internal/interfaces/http/dto"
	"github.com/bazaar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category API endpoints. Reads are public,
// writes require the admin flag.
type CategoryHandler struct {
	BaseHandler
	categories *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) requireAdmin(c *gin.Context) bool {
	if !middleware.IsJWTAdmin(c) {
		h.Forbidden(c, "Admin access required")
		return false
	}
	return true
}

// List handles GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categories, err := h.categories.List(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req catalogapp.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update handles PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalogapp.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.Update(c.Request.Context(), categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categories.Delete(c.Request.Context(), categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.PUT("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}

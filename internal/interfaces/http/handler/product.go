package handler

import (
	accountapp "github.com/bazaar/backend/internal/application/account"
	catalogapp "github.com/bazaar/backend/internal/application/catalog"
	"github.com/bazaar/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler handles product API endpoints. Reads are public, writes
// are scoped to the calling seller.
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	sellers  *accountapp.SellerService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService, sellers *accountapp.SellerService) *ProductHandler {
	return &ProductHandler{
		products: products,
		sellers:  sellers,
	}
}

// sellerID resolves the calling user to their seller record
func (h *ProductHandler) sellerID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	seller, err := h.sellers.Resolve(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, false
	}
	return seller.ID, true
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid category_id")
			return
		}
		categoryID = &id
	}

	products, err := h.products.List(c.Request.Context(), categoryID, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.products.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetBySlug handles GET /products/slug/:slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Create(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), sellerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetPrice handles PUT /products/:id/price
func (h *ProductHandler) SetPrice(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.SetPrice(c.Request.Context(), sellerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetInventory handles PUT /products/:id/inventory
func (h *ProductHandler) SetInventory(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.SetInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.SetInventory(c.Request.Context(), sellerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.products.Delete(c.Request.Context(), sellerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.GET("/slug/:slug", h.GetBySlug)
		products.POST("", h.Create)
		products.PUT("/:id", h.Update)
		products.PUT("/:id/price", h.SetPrice)
		products.PUT("/:id/inventory", h.SetInventory)
		products.DELETE("/:id", h.Delete)
	}
}

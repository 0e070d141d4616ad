package catalog

import (
	"time"

	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateProductRequest creates a product for the calling seller
type CreateProductRequest struct {
	Name        string     `json:"name" binding:"required"`
	Slug        string     `json:"slug" binding:"required"`
	Description string     `json:"description"`
	Price       string     `json:"price" binding:"required"`
	Inventory   int        `json:"inventory"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// UpdateProductRequest updates a product's descriptive fields
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SetPriceRequest changes a product's price
type SetPriceRequest struct {
	Price string `json:"price" binding:"required"`
}

// SetInventoryRequest replaces a product's on-hand inventory
type SetInventoryRequest struct {
	Inventory int `json:"inventory"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID          uuid.UUID  `json:"id"`
	SellerID    uuid.UUID  `json:"seller_id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Price       string     `json:"price"`
	Inventory   int        `json:"inventory"`
	InStock     bool       `json:"in_stock"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryRequest creates or updates a category
type CategoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToProductResponse maps a product to its API representation
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.Amount().String(),
		Inventory:   p.Inventory,
		InStock:     p.Inventory > 0,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToCategoryResponse maps a category to its API representation
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

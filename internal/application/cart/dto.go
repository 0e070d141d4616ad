package cart

import (
	"github.com/bazaar/backend/internal/domain/cart"
	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AddItemRequest puts a product in the customer's cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest replaces an item's quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ItemResponse is one cart line in API responses
type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	UnitPrice string    `json:"unit_price,omitempty"`
	Quantity  int       `json:"quantity"`
	LineTotal string    `json:"line_total,omitempty"`
}

// CartResponse is the API representation of a cart
type CartResponse struct {
	ID    uuid.UUID      `json:"id"`
	Items []ItemResponse `json:"items"`
	Total string         `json:"total,omitempty"`
}

// ToCartResponse maps a cart to its API representation, enriched with the
// live products when available
func ToCartResponse(c *cart.Cart, products map[uuid.UUID]catalog.Product) *CartResponse {
	resp := &CartResponse{
		ID:    c.ID,
		Items: make([]ItemResponse, 0, len(c.Items)),
	}

	total := valueobject.ZeroIRR()
	complete := true
	for _, item := range c.Items {
		ir := ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if p, ok := products[item.ProductID]; ok {
			line := p.Price.MultiplyByInt(int64(item.Quantity))
			ir.Name = p.Name
			ir.UnitPrice = p.Price.Amount().String()
			ir.LineTotal = line.Amount().String()
			if sum, err := total.Add(line); err == nil {
				total = sum
			} else {
				complete = false
			}
		} else {
			complete = false
		}
		resp.Items = append(resp.Items, ir)
	}

	if complete {
		resp.Total = total.Amount().String()
	}

	return resp
}

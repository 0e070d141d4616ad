package catalog

import (
	"strings"
	"time"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Product represents a seller's listing in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	SellerID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID        `gorm:"type:uuid;index"`
	Name        string            `gorm:"type:varchar(200);not null"`
	Slug        string            `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string            `gorm:"type:text"`
	Price       valueobject.Money `gorm:"type:decimal(18,0);not null"`
	Inventory   int               `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product listing
func NewProduct(sellerID uuid.UUID, name, slug string, price valueobject.Money, inventory int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price must be positive")
	}
	if inventory < 0 {
		return nil, shared.NewDomainError("INVALID_INVENTORY", "Inventory cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		Name:              name,
		Slug:              strings.ToLower(slug),
		Price:             price,
		Inventory:         inventory,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetPrice updates the product price
func (p *Product) SetPrice(price valueobject.Money) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Product price must be positive")
	}

	oldPrice := p.Price
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// SetInventory sets the absolute inventory level.
// Returns the previous level so callers can detect a decrease.
func (p *Product) SetInventory(inventory int) (int, error) {
	if inventory < 0 {
		return p.Inventory, shared.NewDomainError("INVALID_INVENTORY", "Inventory cannot be negative")
	}

	previous := p.Inventory
	p.Inventory = inventory
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if inventory < previous {
		p.AddDomainEvent(NewInventoryDecreasedEvent(p, previous))
	}

	return previous, nil
}

// DecreaseInventory reduces the inventory by the given quantity
func (p *Product) DecreaseInventory(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > p.Inventory {
		return shared.ErrInsufficientInventory
	}

	previous := p.Inventory
	p.Inventory -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewInventoryDecreasedEvent(p, previous))

	return nil
}

// IncreaseInventory raises the inventory by the given quantity
func (p *Product) IncreaseInventory(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.Inventory += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// InStock returns true if at least the given quantity is available
func (p *Product) InStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Inventory
}

// HasCategory returns true if the product has a category assigned
func (p *Product) HasCategory() bool {
	return p.CategoryID != nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateSlug validates the product slug
func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}
	if len(slug) > 200 {
		return shared.NewDomainError("INVALID_SLUG", "Product slug cannot exceed 200 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Product slug can only contain letters, numbers, and hyphens")
		}
	}
	return nil
}

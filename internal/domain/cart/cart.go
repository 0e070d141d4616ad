package cart

import (
	"time"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Cart holds a customer's pending items before checkout
// It is the aggregate root; items are child entities
type Cart struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one product line in a cart.
// A product appears at most once per cart; adding it again merges quantities.
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product,priority:2"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart for a customer
func NewCart(customerID uuid.UUID) *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Items:             make([]CartItem, 0),
	}
}

// AddItem adds a product to the cart, merging quantity when the product
// is already present
func (c *Cart) AddItem(productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].UpdatedAt = time.Now()
			c.touch()
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	c.touch()

	return nil
}

// UpdateItemQuantity replaces the quantity of an existing item
func (c *Cart) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.Items[i].UpdatedAt = time.Now()
			c.touch()
			return nil
		}
	}

	return shared.ErrNotFound
}

// RemoveItem removes an item from the cart
func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return nil
		}
	}

	return shared.ErrNotFound
}

// Clear removes all items from the cart
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.touch()
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemFor returns the cart item holding the given product, or nil
func (c *Cart) ItemFor(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Total computes the cart total from live unit prices keyed by product ID
func (c *Cart) Total(prices map[uuid.UUID]valueobject.Money) (valueobject.Money, error) {
	total := valueobject.ZeroIRR()
	for _, item := range c.Items {
		price, ok := prices[item.ProductID]
		if !ok {
			return valueobject.Money{}, shared.NewDomainError("MISSING_PRICE", "No price available for product "+item.ProductID.String())
		}
		sum, err := total.Add(price.MultiplyByInt(int64(item.Quantity)))
		if err != nil {
			return valueobject.Money{}, err
		}
		total = sum
	}
	return total, nil
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

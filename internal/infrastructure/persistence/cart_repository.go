package persistence

import (
	"context"
	"errors"

	"github.com/bazaar/backend/internal/domain/cart"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID, items included
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByCustomer finds the customer's cart, items included
func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&c, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save persists the cart and its items, removing items deleted in memory
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(c).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(c.Items))
		for i, item := range c.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("cart_id = ? AND id NOT IN ?", c.ID, currentItemIDs).
				Delete(&cart.CartItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("cart_id = ?", c.ID).
				Delete(&cart.CartItem{}).Error; err != nil {
				return err
			}
		}

		for i := range c.Items {
			c.Items[i].CartID = c.ID
			if err := tx.Save(&c.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteItemsOverQuantity removes every cart item for the product whose
// quantity exceeds the given limit
func (r *GormCartRepository) DeleteItemsOverQuantity(ctx context.Context, productID uuid.UUID, limit int) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("product_id = ? AND quantity > ?", productID, limit).
		Delete(&cart.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ cart.Repository = (*GormCartRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/bazaar/backend/internal/domain/order"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, items included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByCustomer finds all orders of a customer
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Preload("Items").
		Where("customer_id = ?", customerID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	query = applyFilter(query, filter)
	if filter.OrderBy == "" {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists the order and its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(o).Error; err != nil {
			return err
		}
		return saveOrderItems(tx, o)
	})
}

// SaveWithLock updates an order with an optimistic version check. The
// version the aggregate carried when loaded must still be in the row.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&order.Order{}).
			Where("id = ? AND version = ?", o.ID, o.Version-1).
			Updates(map[string]interface{}{
				"status":         o.Status,
				"payment_method": o.PaymentMethod,
				"delivery_date":  o.DeliveryDate,
				"paid_at":        o.PaidAt,
				"gateway_ref_id": o.GatewayRefID,
				"version":        o.Version,
				"updated_at":     o.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return saveOrderItems(tx, o)
	})
}

func saveOrderItems(tx *gorm.DB, o *order.Order) error {
	currentItemIDs := make([]uuid.UUID, len(o.Items))
	for i, item := range o.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", o.ID, currentItemIDs).
			Delete(&order.Item{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", o.ID).
			Delete(&order.Item{}).Error; err != nil {
			return err
		}
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if err := tx.Save(&o.Items[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete removes the order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.Item{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&order.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteUnsettledItemsOverQuantity removes every item for the product whose
// quantity exceeds the limit and whose order has not been paid
func (r *GormOrderRepository) DeleteUnsettledItemsOverQuantity(ctx context.Context, productID uuid.UUID, limit int) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("product_id = ? AND quantity > ? AND order_id IN (?)",
			productID, limit,
			r.db.Model(&order.Order{}).Select("id").
				Where("status IN ?", []order.Status{order.StatusUnpaid, order.StatusCanceled}),
		).
		Delete(&order.Item{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ order.Repository = (*GormOrderRepository)(nil)

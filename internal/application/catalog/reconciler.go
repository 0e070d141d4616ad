package catalog

import (
	"context"

	"github.com/bazaar/backend/internal/domain/cart"
	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/order"
	"go.uber.org/zap"
)

// Reconciler removes cart lines and unsettled order lines whose quantity
// no longer fits the reduced inventory. Both unpaid and canceled orders
// are pruned; paid orders are never touched.
type Reconciler struct {
	carts  cart.Repository
	orders order.Repository
	logger *zap.Logger
}

// NewReconciler creates a Reconciler over transaction-bound repositories
func NewReconciler(carts cart.Repository, orders order.Repository, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		carts:  carts,
		orders: orders,
		logger: logger,
	}
}

// OnInventoryDecreased implements catalog.InventoryObserver
func (r *Reconciler) OnInventoryDecreased(ctx context.Context, product *catalog.Product, newInventory int) error {
	cartLines, err := r.carts.DeleteItemsOverQuantity(ctx, product.ID, newInventory)
	if err != nil {
		return err
	}
	orderLines, err := r.orders.DeleteUnsettledItemsOverQuantity(ctx, product.ID, newInventory)
	if err != nil {
		return err
	}

	if cartLines > 0 || orderLines > 0 {
		r.logger.Info("inventory reconciliation removed stale lines",
			zap.String("product_id", product.ID.String()),
			zap.Int("inventory", newInventory),
			zap.Int64("cart_lines", cartLines),
			zap.Int64("order_lines", orderLines),
		)
	}

	return nil
}

// ReconcilerFactory returns an ObserverFactory that binds a Reconciler to
// the repositories of the active transaction
func ReconcilerFactory(logger *zap.Logger) ObserverFactory {
	return func(repos TransactionalRepositories) catalog.InventoryObserver {
		return NewReconciler(repos.Carts(), repos.Orders(), logger)
	}
}

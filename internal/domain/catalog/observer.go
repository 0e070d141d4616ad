package catalog

import "context"

// InventoryObserver is notified synchronously whenever a product's inventory
// is reduced, before the surrounding transaction commits. An observer error
// aborts the whole transaction.
type InventoryObserver interface {
	OnInventoryDecreased(ctx context.Context, product *Product, newInventory int) error
}

// InventoryObserverFunc adapts a function to the InventoryObserver interface
type InventoryObserverFunc func(ctx context.Context, product *Product, newInventory int) error

// OnInventoryDecreased calls the wrapped function
func (f InventoryObserverFunc) OnInventoryDecreased(ctx context.Context, product *Product, newInventory int) error {
	return f(ctx, product, newInventory)
}

package cart

import (
	"context"
	"errors"

	"github.com/bazaar/backend/internal/domain/cart"
	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles the customer's cart. Every operation stays within the
// single cart aggregate, so no transaction scope is needed here.
type Service struct {
	carts    cart.Repository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewService creates a new cart Service
func NewService(carts cart.Repository, products catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// Get returns the customer's cart with live product details.
// A customer without a cart gets an empty one.
func (s *Service) Get(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartFor(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

// AddItem puts a product in the cart, merging quantity when it is already
// there. The combined quantity must fit the product's inventory.
func (s *Service) AddItem(ctx context.Context, customerID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.cartFor(ctx, customerID)
	if err != nil {
		return nil, err
	}

	wanted := req.Quantity
	if existing := c.ItemFor(req.ProductID); existing != nil {
		wanted += existing.Quantity
	}
	if !product.InStock(wanted) {
		return nil, shared.ErrInsufficientInventory
	}

	if err := c.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("cart item added",
		zap.String("customer_id", customerID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity),
	)

	return s.respond(ctx, c)
}

// UpdateItem replaces an item's quantity, bounded by the product's inventory
func (s *Service) UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.cartFor(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var productID uuid.UUID
	for _, item := range c.Items {
		if item.ID == itemID {
			productID = item.ProductID
			break
		}
	}
	if productID == uuid.Nil {
		return nil, shared.ErrNotFound
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock(req.Quantity) {
		return nil, shared.ErrInsufficientInventory
	}

	if err := c.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.respond(ctx, c)
}

// RemoveItem removes one item from the cart
func (s *Service) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartFor(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartFor(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

// cartFor loads the customer's cart, creating an empty one on first use
func (s *Service) cartFor(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	c, err := s.carts.FindByCustomer(ctx, customerID)
	if errors.Is(err, shared.ErrNotFound) {
		return cart.NewCart(customerID), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) respond(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	if c.IsEmpty() {
		return ToCartResponse(c, nil), nil
	}

	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return ToCartResponse(c, byID), nil
}

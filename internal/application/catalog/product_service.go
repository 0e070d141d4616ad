package catalog

import (
	"context"
	"errors"

	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObserverFactory builds an inventory observer bound to the repositories of
// the active transaction, so observer writes commit with the inventory change
type ObserverFactory func(repos TransactionalRepositories) catalog.InventoryObserver

// ProductService handles product listing operations for sellers
type ProductService struct {
	scope     TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
	observers []ObserverFactory
}

// NewProductService creates a new ProductService
func NewProductService(scope TransactionScope, publisher shared.EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		scope:     scope,
		publisher: publisher,
		logger:    logger,
	}
}

// RegisterInventoryObserver adds an observer factory. Observers run inside
// the transaction of every inventory decrease, in registration order.
func (s *ProductService) RegisterInventoryObserver(factory ObserverFactory) {
	s.observers = append(s.observers, factory)
}

// Create creates a new product listing for the seller
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	price, err := valueobject.NewMoneyIRRFromString(req.Price)
	if err != nil {
		return nil, err
	}

	var created *catalog.Product
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.Products().FindBySlug(ctx, req.Slug)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
		}

		if req.CategoryID != nil {
			if _, err := repos.Categories().FindByID(ctx, *req.CategoryID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
				}
				return err
			}
		}

		product, err := catalog.NewProduct(sellerID, req.Name, req.Slug, price, req.Inventory)
		if err != nil {
			return err
		}
		if req.Description != "" {
			product.Description = req.Description
		}
		if req.CategoryID != nil {
			product.SetCategory(req.CategoryID)
		}

		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, created)
	s.logger.Info("product created",
		zap.String("product_id", created.ID.String()),
		zap.String("seller_id", sellerID.String()),
	)

	return ToProductResponse(created), nil
}

// Update updates a product's name and description. Only the listing seller
// may change it.
func (s *ProductService) Update(ctx context.Context, sellerID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	var updated *catalog.Product
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if product.SellerID != sellerID {
			return shared.ErrForbidden
		}
		if err := product.Update(req.Name, req.Description); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated)
	return ToProductResponse(updated), nil
}

// SetPrice changes a product's price
func (s *ProductService) SetPrice(ctx context.Context, sellerID, productID uuid.UUID, req SetPriceRequest) (*ProductResponse, error) {
	price, err := valueobject.NewMoneyIRRFromString(req.Price)
	if err != nil {
		return nil, err
	}

	var updated *catalog.Product
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if product.SellerID != sellerID {
			return shared.ErrForbidden
		}
		if err := product.SetPrice(price); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated)
	return ToProductResponse(updated), nil
}

// SetInventory replaces a product's on-hand inventory. When the level drops,
// registered observers run inside the same transaction so dependent rows
// (cart lines, unsettled order lines) are reconciled atomically.
func (s *ProductService) SetInventory(ctx context.Context, sellerID, productID uuid.UUID, req SetInventoryRequest) (*ProductResponse, error) {
	var updated *catalog.Product
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if product.SellerID != sellerID {
			return shared.ErrForbidden
		}

		previous, err := product.SetInventory(req.Inventory)
		if err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}

		if req.Inventory < previous {
			for _, factory := range s.observers {
				if err := factory(repos).OnInventoryDecreased(ctx, product, req.Inventory); err != nil {
					return err
				}
			}
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated)
	s.logger.Info("product inventory set",
		zap.String("product_id", productID.String()),
		zap.Int("inventory", req.Inventory),
	)

	return ToProductResponse(updated), nil
}

// Get returns one product by ID
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	var resp *ProductResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		resp = ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetBySlug returns one product by its slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	var resp *ProductResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindBySlug(ctx, slug)
		if err != nil {
			return err
		}
		resp = ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns products matching the filter, optionally narrowed to a category
func (s *ProductService) List(ctx context.Context, categoryID *uuid.UUID, filter shared.Filter) ([]ProductResponse, error) {
	var responses []ProductResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var (
			products []catalog.Product
			err      error
		)
		if categoryID != nil {
			products, err = repos.Products().FindByCategory(ctx, *categoryID, filter)
		} else {
			products, err = repos.Products().FindAll(ctx, filter)
		}
		if err != nil {
			return err
		}
		responses = make([]ProductResponse, 0, len(products))
		for i := range products {
			responses = append(responses, *ToProductResponse(&products[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// Delete removes a product listing. Only the listing seller may delete it.
func (s *ProductService) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if product.SellerID != sellerID {
			return shared.ErrForbidden
		}
		return repos.Products().Delete(ctx, productID)
	})
}

func (s *ProductService) publish(ctx context.Context, p *catalog.Product) {
	if s.publisher == nil || p == nil {
		return
	}
	if err := s.publisher.Publish(ctx, p.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish product events", zap.Error(err))
	}
	p.ClearDomainEvents()
}

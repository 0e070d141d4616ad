package catalog

import (
	"context"

	"github.com/bazaar/backend/internal/domain/catalog"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService handles category management (admin only)
type CategoryService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(scope TransactionScope, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		scope:  scope,
		logger: logger,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.Categories().Save(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.String("category_id", category.ID.String()))
	return ToCategoryResponse(category), nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, categoryID uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	var updated *catalog.Category
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		category, err := repos.Categories().FindByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if err := category.Update(req.Title, req.Description); err != nil {
			return err
		}
		if err := repos.Categories().Save(ctx, category); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(updated), nil
}

// List returns all categories matching the filter
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	var responses []CategoryResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		categories, err := repos.Categories().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		responses = make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			responses = append(responses, *ToCategoryResponse(&categories[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// Delete removes a category. Products keep their listing but lose the link.
func (s *CategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Categories().FindByID(ctx, categoryID); err != nil {
			return err
		}
		return repos.Categories().Delete(ctx, categoryID)
	})
}

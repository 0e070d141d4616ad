package catalog

import (
	"time"

	"github.com/bazaar/backend/internal/domain/shared"
)

// Category groups products for browsing
type Category struct {
	shared.BaseAggregateRoot
	Title       string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(title, description string) (*Category, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Category title cannot be empty")
	}
	if len(title) > 100 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Category title cannot exceed 100 characters")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Description:       description,
	}, nil
}

// Update updates the category
func (c *Category) Update(title, description string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Category title cannot be empty")
	}
	if len(title) > 100 {
		return shared.NewDomainError("INVALID_TITLE", "Category title cannot exceed 100 characters")
	}

	c.Title = title
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

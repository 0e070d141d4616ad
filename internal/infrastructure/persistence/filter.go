package persistence

import (
	"strings"

	"github.com/bazaar/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedSortColumns guards ORDER BY against injection; only plain column
// names listed here may be sorted on
var allowedSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"title":      true,
	"slug":       true,
	"price":      true,
	"inventory":  true,
	"status":     true,
}

// applyFilter applies pagination and ordering from the filter to the query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" && allowedSortColumns[filter.OrderBy] {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	}

	return query
}

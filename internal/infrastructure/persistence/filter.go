package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/ovnstore/backend/internal/domain/shared"
)

// filterFunc applies entity-specific search and attribute filters to a query
type filterFunc func(query *gorm.DB, filter shared.Filter) *gorm.DB

// applyFilter applies entity filters, ordering, and pagination to a query.
// Ordering falls back to created_at when the requested column is not in the
// entity's whitelist, which keeps user input out of the ORDER BY clause.
func applyFilter(query *gorm.DB, filter shared.Filter, allowed map[string]bool, filters filterFunc) *gorm.DB {
	query = filters(query, filter)

	orderBy := validateSortField(filter.OrderBy, allowed, "created_at")
	query = query.Order(orderBy + " " + validateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// validateSortOrder normalizes the sort direction, defaulting to DESC
func validateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// validateSortField validates the sort field against a whitelist of allowed fields
func validateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// categorySortFields contains allowed sort fields for categories
var categorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"slug":       true,
}

// productSortFields contains allowed sort fields for products
var productSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"slug":           true,
	"sku":            true,
	"price":          true,
	"stock_quantity": true,
	"stock_status":   true,
}

// reviewSortFields contains allowed sort fields for reviews
var reviewSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"rating":        true,
	"status":        true,
	"helpful_count": true,
}

// orderSortFields contains allowed sort fields for orders
var orderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"status":       true,
	"total_amount": true,
}

// contactSortFields contains allowed sort fields for contact messages
var contactSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
}

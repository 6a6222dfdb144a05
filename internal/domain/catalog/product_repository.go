package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// ProductRepository defines the persistence port for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)
	// FindBatch returns up to limit products with ID greater than afterID,
	// ordered by ID ascending. Used for stable full enumeration.
	FindBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	// ClearCategory detaches all products from a category, leaving them
	// uncategorised rather than cascading the delete.
	ClearCategory(ctx context.Context, categoryID uuid.UUID) error
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

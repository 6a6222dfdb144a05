package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// CategoryRepository defines the persistence port for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	// FindBatch returns up to limit categories with ID greater than afterID,
	// ordered by ID ascending. Used for stable full enumeration.
	FindBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// ReviewStats aggregates the published rating of a product
type ReviewStats struct {
	AverageRating float64
	ReviewCount   int64
}

// ReviewRepository defines the persistence port for reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Review, error)
	// FindBatch returns up to limit reviews with ID greater than afterID,
	// ordered by ID ascending. Used for stable full enumeration.
	FindBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]Review, error)
	// ApprovedStats returns the average rating and count over approved
	// reviews of a product. A product with no approved reviews yields zeros.
	ApprovedStats(ctx context.Context, productID uuid.UUID) (ReviewStats, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

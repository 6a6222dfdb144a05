package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductImageRepository defines the persistence port for product images
type ProductImageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductImage, error)
	// FindByProduct returns the product's images, main image first then by
	// creation time. The order is stable so projections are deterministic.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)
	Save(ctx context.Context, image *ProductImage) error
	// DemoteMain clears the main flag on all images of a product
	DemoteMain(ctx context.Context, productID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// OrderRepository defines the persistence port for orders.
// All reads load the order together with its items.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	// FindBatch returns up to limit orders with ID greater than afterID,
	// ordered by ID ascending, items included. Used for full enumeration.
	FindBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

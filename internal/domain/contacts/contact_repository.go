package contacts

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// ContactRepository defines the persistence port for contact messages
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Contact, error)
	// FindBatch returns up to limit contacts with ID greater than afterID,
	// ordered by ID ascending. Used for stable full enumeration.
	FindBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]Contact, error)
	Save(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

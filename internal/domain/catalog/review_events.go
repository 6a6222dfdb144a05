package catalog

import (
	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeReview = "Review"

// Event type constants
const (
	EventTypeReviewCreated = "ReviewCreated"
	EventTypeReviewUpdated = "ReviewUpdated"
	EventTypeReviewDeleted = "ReviewDeleted"
)

// ReviewCreatedEvent is published when a review is submitted
type ReviewCreatedEvent struct {
	shared.BaseDomainEvent
	ReviewID  uuid.UUID `json:"review_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
}

// NewReviewCreatedEvent creates a new ReviewCreatedEvent
func NewReviewCreatedEvent(review *Review) *ReviewCreatedEvent {
	return &ReviewCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewCreated, AggregateTypeReview, review.ID, shared.OperationCreate),
		ReviewID:        review.ID,
		ProductID:       review.ProductID,
		Rating:          review.Rating,
	}
}

// ReviewUpdatedEvent is published when a review changes, including
// moderation transitions that alter the product's published rating
type ReviewUpdatedEvent struct {
	shared.BaseDomainEvent
	ReviewID  uuid.UUID    `json:"review_id"`
	ProductID uuid.UUID    `json:"product_id"`
	Status    ReviewStatus `json:"status"`
}

// NewReviewUpdatedEvent creates a new ReviewUpdatedEvent
func NewReviewUpdatedEvent(review *Review) *ReviewUpdatedEvent {
	return &ReviewUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewUpdated, AggregateTypeReview, review.ID, shared.OperationUpdate),
		ReviewID:        review.ID,
		ProductID:       review.ProductID,
		Status:          review.Status,
	}
}

// ReviewDeletedEvent is published when a review is deleted
type ReviewDeletedEvent struct {
	shared.BaseDomainEvent
	ReviewID  uuid.UUID `json:"review_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewReviewDeletedEvent creates a new ReviewDeletedEvent
func NewReviewDeletedEvent(review *Review) *ReviewDeletedEvent {
	return &ReviewDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewDeleted, AggregateTypeReview, review.ID, shared.OperationDelete),
		ReviewID:        review.ID,
		ProductID:       review.ProductID,
	}
}

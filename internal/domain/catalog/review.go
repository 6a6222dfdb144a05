package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// ReviewStatus represents the moderation state of a review
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review is a customer review of a product. Only approved reviews count
// toward the product's published rating.
type Review struct {
	shared.BaseAggregateRoot
	ProductID          uuid.UUID    `gorm:"type:uuid;not null;index"`
	AuthorName         string       `gorm:"type:varchar(100);not null"`
	AuthorEmail        string       `gorm:"type:varchar(200);not null"`
	Rating             int          `gorm:"not null"`
	Title              string       `gorm:"type:varchar(200)"`
	Comment            string       `gorm:"type:text;not null"`
	Status             ReviewStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	AdminResponse      string       `gorm:"type:text"`
	IsVerifiedPurchase bool         `gorm:"not null;default:false"`
	HelpfulCount       int          `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a new review in pending state
func NewReview(productID uuid.UUID, authorName, authorEmail string, rating int, title, comment string) (*Review, error) {
	if authorName == "" {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author name cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if comment == "" {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot be empty")
	}

	review := &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		AuthorName:        authorName,
		AuthorEmail:       authorEmail,
		Rating:            rating,
		Title:             title,
		Comment:           comment,
		Status:            ReviewStatusPending,
	}

	review.AddDomainEvent(NewReviewCreatedEvent(review))

	return review, nil
}

// Approve publishes the review
func (r *Review) Approve() error {
	if r.Status == ReviewStatusApproved {
		return shared.NewDomainError("ALREADY_APPROVED", "Review is already approved")
	}
	r.Status = ReviewStatusApproved
	r.touch()

	r.AddDomainEvent(NewReviewUpdatedEvent(r))

	return nil
}

// Reject hides the review
func (r *Review) Reject() error {
	if r.Status == ReviewStatusRejected {
		return shared.NewDomainError("ALREADY_REJECTED", "Review is already rejected")
	}
	r.Status = ReviewStatusRejected
	r.touch()

	r.AddDomainEvent(NewReviewUpdatedEvent(r))

	return nil
}

// Respond records an admin reply to the review
func (r *Review) Respond(response string) {
	r.AdminResponse = response
	r.touch()

	r.AddDomainEvent(NewReviewUpdatedEvent(r))
}

// MarkVerifiedPurchase flags the review as coming from a delivered order
func (r *Review) MarkVerifiedPurchase() {
	r.IsVerifiedPurchase = true
	r.touch()
}

// MarkHelpful increments the helpful counter
func (r *Review) MarkHelpful() {
	r.HelpfulCount++
	r.touch()
}

func (r *Review) touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

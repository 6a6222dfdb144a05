package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReviewService handles review submission and moderation
type ReviewService struct {
	reviews   catalog.ReviewRepository
	products  catalog.ProductRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviews catalog.ReviewRepository,
	products catalog.ProductRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// Create submits a review for a product. New reviews start pending and do
// not count toward the published rating until approved.
func (s *ReviewService) Create(ctx context.Context, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	review, err := catalog.NewReview(req.ProductID, req.AuthorName, req.AuthorEmail, req.Rating, req.Title, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, review)

	response := ToReviewResponse(review)
	return &response, nil
}

// GetByID retrieves a review by ID
func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToReviewResponse(review)
	return &response, nil
}

// ListByProduct lists a product's reviews
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]ReviewResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	reviews, err := s.reviews.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}

// List lists reviews across products, for moderation queues
func (s *ReviewService) List(ctx context.Context, filter shared.Filter) ([]ReviewResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	reviews, err := s.reviews.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviews.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToReviewResponses(reviews), total, nil
}

// Approve publishes a review
func (s *ReviewService) Approve(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, id, (*catalog.Review).Approve)
}

// Reject hides a review
func (s *ReviewService) Reject(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, id, (*catalog.Review).Reject)
}

func (s *ReviewService) moderate(ctx context.Context, id uuid.UUID, transition func(*catalog.Review) error) (*ReviewResponse, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := transition(review); err != nil {
		return nil, err
	}
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, review)

	response := ToReviewResponse(review)
	return &response, nil
}

// Respond records an admin reply to a review
func (s *ReviewService) Respond(ctx context.Context, id uuid.UUID, req RespondReviewRequest) (*ReviewResponse, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	review.Respond(req.Response)
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, review)

	response := ToReviewResponse(review)
	return &response, nil
}

// MarkHelpful increments a review's helpful counter
func (s *ReviewService) MarkHelpful(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	review.MarkHelpful()
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, review)

	response := ToReviewResponse(review)
	return &response, nil
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, catalog.NewReviewDeletedEvent(review))
	return nil
}

func (s *ReviewService) publishEvents(ctx context.Context, review *catalog.Review) {
	events := review.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish review events", zap.Error(err))
	}
	review.ClearDomainEvents()
}

func (s *ReviewService) publish(ctx context.Context, event shared.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish review event",
			zap.String("event_type", event.EventType()), zap.Error(err))
	}
}

package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// maxSlugAttempts bounds the slug uniqueness retry loop
const maxSlugAttempts = 50

// CategoryService handles category business operations
type CategoryService struct {
	categories catalog.CategoryRepository
	products   catalog.ProductRepository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categories catalog.CategoryRepository,
	products catalog.ProductRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create creates a new category, deriving a unique slug from the name
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	slug, err := s.uniqueSlug(ctx, req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	category, err := catalog.NewCategory(req.Name, slug)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := category.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != "" {
		category.SetImage(req.ImageURL)
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &category.BaseAggregateRoot)

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetBySlug retrieves a category by slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves categories with pagination
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	categories, err := s.categories.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categories.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToCategoryResponses(categories), total, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := category.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := category.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := category.Update(name, description); err != nil {
		return nil, err
	}

	if req.ImageURL != nil {
		category.SetImage(*req.ImageURL)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			_ = category.Activate()
		} else {
			_ = category.Deactivate()
		}
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &category.BaseAggregateRoot)

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category. Its products are detached, not deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.ClearCategory(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, catalog.NewCategoryDeletedEvent(category))
	return nil
}

// uniqueSlug derives a slug not yet taken by another category
func (s *CategoryService) uniqueSlug(ctx context.Context, name, requested string) (string, error) {
	base := requested
	if base == "" {
		base = catalog.Slugify(name)
	}
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := catalog.NextSlug(base, attempt)
		exists, err := s.categories.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("SLUG_EXHAUSTED", "Could not derive a unique slug")
}

// publishEvents drains the aggregate's events onto the bus. Publish failures
// are logged, never returned: the primary write already committed.
func (s *CategoryService) publishEvents(ctx context.Context, root *shared.BaseAggregateRoot) {
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish category events", zap.Error(err))
	}
	root.ClearDomainEvents()
}

func (s *CategoryService) publish(ctx context.Context, event shared.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish category event",
			zap.String("event_type", event.EventType()), zap.Error(err))
	}
}

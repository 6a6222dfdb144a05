package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Review, error) {
	var review catalog.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindByProduct finds reviews of a product matching the filter
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]catalog.Review, error) {
	var reviews []catalog.Review
	query := applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Review{}).Where("product_id = ?", productID),
		filter, reviewSortFields, r.applyFilters,
	)

	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindAll finds all reviews matching the filter
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Review, error) {
	var reviews []catalog.Review
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Review{}), filter, reviewSortFields, r.applyFilters)

	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindBatch returns up to limit reviews with ID greater than afterID, ordered by ID
func (r *GormReviewRepository) FindBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]catalog.Review, error) {
	var reviews []catalog.Review
	if err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ApprovedStats returns the average rating and count over approved reviews of a product
func (r *GormReviewRepository) ApprovedStats(ctx context.Context, productID uuid.UUID) (catalog.ReviewStats, error) {
	var row struct {
		AverageRating *float64
		ReviewCount   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&catalog.Review{}).
		Select("AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Where("product_id = ? AND status = ?", productID, catalog.ReviewStatusApproved).
		Scan(&row).Error; err != nil {
		return catalog.ReviewStats{}, err
	}

	stats := catalog.ReviewStats{ReviewCount: row.ReviewCount}
	if row.AverageRating != nil {
		stats.AverageRating = *row.AverageRating
	}
	return stats, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProduct deletes all reviews of a product
func (r *GormReviewRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.Review{}, "product_id = ?", productID).Error
}

// Count counts reviews matching the filter
func (r *GormReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&catalog.Review{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormReviewRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "rating":
			query = query.Where("rating = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	return query
}

// Ensure GormReviewRepository implements ReviewRepository
var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovnstore/backend/internal/domain/contacts"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact message by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*contacts.Contact, error) {
	var contact contacts.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindAll finds all contact messages matching the filter
func (r *GormContactRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contacts.Contact, error) {
	var result []contacts.Contact
	query := applyFilter(r.db.WithContext(ctx).Model(&contacts.Contact{}), filter, contactSortFields, r.applyFilters)

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindBatch returns up to limit contacts with ID greater than afterID, ordered by ID
func (r *GormContactRepository) FindBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]contacts.Contact, error) {
	var result []contacts.Contact
	if err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Save creates or updates a contact message
func (r *GormContactRepository) Save(ctx context.Context, contact *contacts.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete deletes a contact message
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&contacts.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts contact messages matching the filter
func (r *GormContactRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&contacts.Contact{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormContactRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_read":
			query = query.Where("is_read = ?", value)
		}
	}

	return query
}

// Ensure GormContactRepository implements ContactRepository
var _ contacts.ContactRepository = (*GormContactRepository)(nil)

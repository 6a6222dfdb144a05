package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCategoryService() (*CategoryService, *MockCategoryRepository, *MockProductRepository, *MockEventPublisher) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	publisher := &MockEventPublisher{}
	service := NewCategoryService(categories, products, publisher, zap.NewNop())
	return service, categories, products, publisher
}

func TestCategoryService_Create(t *testing.T) {
	service, categories, _, publisher := newCategoryService()
	categories.On("ExistsBySlug", mock.Anything, "electronics").Return(false, nil)
	categories.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

	resp, err := service.Create(context.Background(), CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)

	assert.Equal(t, "Electronics", resp.Name)
	assert.Equal(t, "electronics", resp.Slug)
	assert.True(t, resp.IsActive)
	require.Len(t, publisher.ByType(catalog.EventTypeCategoryCreated), 1)
}

func TestCategoryService_CreateRetriesSlug(t *testing.T) {
	service, categories, _, _ := newCategoryService()
	categories.On("ExistsBySlug", mock.Anything, "electronics").Return(true, nil)
	categories.On("ExistsBySlug", mock.Anything, "electronics-1").Return(false, nil)
	categories.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

	resp, err := service.Create(context.Background(), CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	assert.Equal(t, "electronics-1", resp.Slug)
}

func TestCategoryService_Update(t *testing.T) {
	service, categories, _, publisher := newCategoryService()
	category, err := catalog.NewCategory("Books", "")
	require.NoError(t, err)
	category.ClearDomainEvents()

	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	categories.On("Save", mock.Anything, category).Return(nil)

	name := "Books & Media"
	resp, err := service.Update(context.Background(), category.ID, UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Books & Media", resp.Name)
	assert.NotEmpty(t, publisher.ByType(catalog.EventTypeCategoryUpdated))
}

func TestCategoryService_UpdateNotFound(t *testing.T) {
	service, categories, _, _ := newCategoryService()
	categories.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	name := "x"
	_, err := service.Update(context.Background(), uuid.New(), UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCategoryService_DeleteDetachesProducts(t *testing.T) {
	service, categories, products, publisher := newCategoryService()
	category, err := catalog.NewCategory("Books", "")
	require.NoError(t, err)

	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	products.On("ClearCategory", mock.Anything, category.ID).Return(nil)
	categories.On("Delete", mock.Anything, category.ID).Return(nil)

	require.NoError(t, service.Delete(context.Background(), category.ID))

	products.AssertCalled(t, "ClearCategory", mock.Anything, category.ID)
	require.Len(t, publisher.ByType(catalog.EventTypeCategoryDeleted), 1)
}

package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productServiceFixture struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	images     *MockProductImageRepository
	reviews    *MockReviewRepository
	publisher  *MockEventPublisher
	service    *ProductService
}

func newProductServiceFixture() *productServiceFixture {
	f := &productServiceFixture{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		images:     new(MockProductImageRepository),
		reviews:    new(MockReviewRepository),
		publisher:  &MockEventPublisher{},
	}
	f.service = NewProductService(f.products, f.categories, f.images, f.reviews, f.publisher, zap.NewNop())
	return f
}

func TestProductService_Create(t *testing.T) {
	f := newProductServiceFixture()
	f.products.On("ExistsBySlug", mock.Anything, "desk-lamp").Return(false, nil)
	f.products.On("ExistsBySKU", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	stock := 25
	resp, err := f.service.Create(context.Background(), CreateProductRequest{
		Name:          "Desk Lamp",
		Price:         decimal.NewFromFloat(45.00),
		StockQuantity: &stock,
	})
	require.NoError(t, err)

	assert.Equal(t, "desk-lamp", resp.Slug)
	assert.NotEmpty(t, resp.SKU)
	assert.Equal(t, 25, resp.StockQuantity)
	assert.Equal(t, string(catalog.StockStatusInStock), resp.StockStatus)
	require.Len(t, f.publisher.ByType(catalog.EventTypeProductCreated), 1)
}

func TestProductService_CreateRejectsUnknownCategory(t *testing.T) {
	f := newProductServiceFixture()
	categoryID := uuid.New()
	f.categories.On("FindByID", mock.Anything, categoryID).Return(nil, shared.ErrNotFound)

	_, err := f.service.Create(context.Background(), CreateProductRequest{
		Name:       "Desk Lamp",
		Price:      decimal.NewFromFloat(45.00),
		CategoryID: &categoryID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
}

func TestProductService_CreateRejectsDuplicateSKU(t *testing.T) {
	f := newProductServiceFixture()
	f.products.On("ExistsBySlug", mock.Anything, mock.Anything).Return(false, nil)
	f.products.On("ExistsBySKU", mock.Anything, "LAMP-1").Return(true, nil)

	_, err := f.service.Create(context.Background(), CreateProductRequest{
		Name:  "Desk Lamp",
		SKU:   "LAMP-1",
		Price: decimal.NewFromFloat(45.00),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestProductService_UpdateStockDerivesStatus(t *testing.T) {
	f := newProductServiceFixture()
	product, err := catalog.NewProduct("Desk Lamp", "", "", "", decimal.NewFromFloat(45))
	require.NoError(t, err)
	product.ClearDomainEvents()

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("Save", mock.Anything, product).Return(nil)

	low := 3
	resp, err := f.service.Update(context.Background(), product.ID, UpdateProductRequest{StockQuantity: &low})
	require.NoError(t, err)

	assert.Equal(t, string(catalog.StockStatusLowStock), resp.StockStatus)
	assert.NotEmpty(t, f.publisher.ByType(catalog.EventTypeProductUpdated))
}

func TestProductService_FlashSale(t *testing.T) {
	f := newProductServiceFixture()
	product, err := catalog.NewProduct("Desk Lamp", "", "", "", decimal.NewFromFloat(45))
	require.NoError(t, err)
	product.ClearDomainEvents()

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("Save", mock.Anything, product).Return(nil)

	resp, err := f.service.StartFlashSale(context.Background(), product.ID, FlashSaleRequest{Price: decimal.NewFromFloat(30)})
	require.NoError(t, err)
	assert.True(t, resp.IsFlashSale)
	assert.True(t, resp.EffectivePrice.Equal(decimal.NewFromFloat(30)))

	_, err = f.service.StartFlashSale(context.Background(), product.ID, FlashSaleRequest{Price: decimal.NewFromFloat(99)})
	assert.Error(t, err)
}

func TestProductService_DeleteCascades(t *testing.T) {
	f := newProductServiceFixture()
	product, err := catalog.NewProduct("Desk Lamp", "", "", "", decimal.NewFromFloat(45))
	require.NoError(t, err)
	review, err := catalog.NewReview(product.ID, "Maya", "maya@example.com", 4, "", "Nice")
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.reviews.On("FindByProduct", mock.Anything, product.ID, mock.Anything).Return([]catalog.Review{*review}, nil)
	f.reviews.On("DeleteByProduct", mock.Anything, product.ID).Return(nil)
	f.images.On("DeleteByProduct", mock.Anything, product.ID).Return(nil)
	f.products.On("Delete", mock.Anything, product.ID).Return(nil)

	require.NoError(t, f.service.Delete(context.Background(), product.ID))

	require.Len(t, f.publisher.ByType(catalog.EventTypeProductDeleted), 1)
	require.Len(t, f.publisher.ByType(catalog.EventTypeReviewDeleted), 1)
}

func TestProductService_AddMainImageDemotesOthers(t *testing.T) {
	f := newProductServiceFixture()
	product, err := catalog.NewProduct("Desk Lamp", "", "", "", decimal.NewFromFloat(45))
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.images.On("DemoteMain", mock.Anything, product.ID).Return(nil)
	f.images.On("Save", mock.Anything, mock.AnythingOfType("*catalog.ProductImage")).Return(nil)

	resp, err := f.service.AddImage(context.Background(), product.ID, AddImageRequest{
		URL:    "https://cdn.example.com/a.jpg",
		IsMain: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsMain)
	f.images.AssertCalled(t, "DemoteMain", mock.Anything, product.ID)
	require.Len(t, f.publisher.ByType(catalog.EventTypeProductUpdated), 1)
}

package sync

import (
	"testing"
	"time"

	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/contacts"
	"github.com/ovnstore/backend/internal/domain/orders"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Wireless Mouse", "wireless-mouse", "WIR-EL-1234", "A mouse", decimal.NewFromFloat(29.99))
	require.NoError(t, err)
	return product
}

func TestTransformProduct_WithCategory(t *testing.T) {
	product := testProduct(t)
	category, err := catalog.NewCategory("Electronics", "")
	require.NoError(t, err)
	product.SetCategory(&category.ID)

	doc := TransformProduct(product, category, nil, catalog.ReviewStats{AverageRating: 4.25, ReviewCount: 8})

	assert.Equal(t, product.ID.String(), doc.SourceID)
	require.NotNil(t, doc.CategoryID)
	assert.Equal(t, category.ID.String(), *doc.CategoryID)
	assert.Equal(t, "Electronics", doc.CategoryName)
	assert.Equal(t, 29.99, doc.Price)
	assert.Equal(t, 4.3, doc.AvgRating)
	assert.Equal(t, int64(8), doc.ReviewCount)
	assert.NotNil(t, doc.Images)
	assert.Empty(t, doc.Images)
}

func TestTransformProduct_MissingCategoryDegrades(t *testing.T) {
	product := testProduct(t)

	doc := TransformProduct(product, nil, nil, catalog.ReviewStats{})

	assert.Nil(t, doc.CategoryID)
	assert.Equal(t, FallbackCategoryName, doc.CategoryName)
	assert.Zero(t, doc.AvgRating)
	assert.Zero(t, doc.ReviewCount)
}

func TestTransformProduct_ImagesAndMainImage(t *testing.T) {
	product := testProduct(t)
	first, err := catalog.NewProductImage(product.ID, "https://cdn.example.com/a.jpg", "front", false)
	require.NoError(t, err)
	main, err := catalog.NewProductImage(product.ID, "https://cdn.example.com/b.jpg", "side", true)
	require.NoError(t, err)

	doc := TransformProduct(product, nil, []catalog.ProductImage{*first, *main}, catalog.ReviewStats{})

	require.Len(t, doc.Images, 2)
	assert.Equal(t, "https://cdn.example.com/b.jpg", doc.MainImage)

	// No image flagged main falls back to the first one
	doc = TransformProduct(product, nil, []catalog.ProductImage{*first}, catalog.ReviewStats{})
	assert.Equal(t, "https://cdn.example.com/a.jpg", doc.MainImage)
}

func TestTransformProduct_FlashSalePrice(t *testing.T) {
	product := testProduct(t)
	require.NoError(t, product.StartFlashSale(decimal.NewFromFloat(19.99)))

	doc := TransformProduct(product, nil, nil, catalog.ReviewStats{})

	assert.True(t, doc.IsFlashSale)
	require.NotNil(t, doc.FlashSalePrice)
	assert.Equal(t, 19.99, *doc.FlashSalePrice)

	product.EndFlashSale()
	doc = TransformProduct(product, nil, nil, catalog.ReviewStats{})
	assert.False(t, doc.IsFlashSale)
	assert.Nil(t, doc.FlashSalePrice)
}

func TestTransformProduct_Deterministic(t *testing.T) {
	product := testProduct(t)
	category, err := catalog.NewCategory("Electronics", "")
	require.NoError(t, err)
	stats := catalog.ReviewStats{AverageRating: 3.5, ReviewCount: 2}

	first := TransformProduct(product, category, nil, stats)
	time.Sleep(5 * time.Millisecond)
	second := TransformProduct(product, category, nil, stats)

	assert.Equal(t, first, second)
}

func TestTransformCategory(t *testing.T) {
	category, err := catalog.NewCategory("Home & Garden", "")
	require.NoError(t, err)
	category.SetImage("https://cdn.example.com/home.jpg")

	doc := TransformCategory(category)

	assert.Equal(t, category.ID.String(), doc.SourceID)
	assert.Equal(t, "Home & Garden", doc.Name)
	assert.Equal(t, "home-garden", doc.Slug)
	assert.Equal(t, "https://cdn.example.com/home.jpg", doc.Image)
	assert.True(t, doc.IsActive)
	assert.Equal(t, doc.CreatedAt, timestamp(category.CreatedAt))
}

func TestTransformOrder_EmbedsItems(t *testing.T) {
	order, err := orders.NewOrder("buyer@example.com", true, "12 High St", "12 High St")
	require.NoError(t, err)
	product := testProduct(t)
	require.NoError(t, order.AddItem(product.ID, product.Name, product.SKU, 2, decimal.NewFromFloat(29.99)))
	require.NoError(t, order.SetCharges(decimal.NewFromFloat(6.00), decimal.NewFromFloat(4.99), decimal.Zero))

	doc := TransformOrder(order)

	assert.Equal(t, order.ID.String(), doc.SourceID)
	assert.Equal(t, order.OrderNumber, doc.OrderNumber)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, product.ID.String(), doc.Items[0].ProductID)
	assert.Equal(t, 2, doc.Items[0].Quantity)
	assert.Equal(t, 59.98, doc.Items[0].TotalPrice)
	assert.Equal(t, 70.97, doc.TotalAmount)
	assert.Nil(t, doc.ShippedAt)
	assert.Nil(t, doc.DeliveredAt)
}

func TestTransformOrder_ShippedTimestamp(t *testing.T) {
	order, err := orders.NewOrder("buyer@example.com", false, "", "")
	require.NoError(t, err)
	require.NoError(t, order.UpdateStatus(orders.OrderStatusShipped))

	doc := TransformOrder(order)

	require.NotNil(t, doc.ShippedAt)
	assert.Equal(t, timestamp(*order.ShippedAt), *doc.ShippedAt)
}

func TestTransformReview(t *testing.T) {
	product := testProduct(t)
	review, err := catalog.NewReview(product.ID, "Maya", "maya@example.com", 4, "Solid", "Works well")
	require.NoError(t, err)
	require.NoError(t, review.Approve())

	doc := TransformReview(review, product.Name)

	assert.Equal(t, review.ID.String(), doc.SourceID)
	assert.Equal(t, product.ID.String(), doc.ProductID)
	assert.Equal(t, "Wireless Mouse", doc.ProductName)
	assert.Equal(t, "approved", doc.Status)

	// The lookup may fail; the document still carries the product id
	doc = TransformReview(review, "")
	assert.Empty(t, doc.ProductName)
	assert.Equal(t, product.ID.String(), doc.ProductID)
}

func TestTransformContact(t *testing.T) {
	contact, err := contacts.NewContact("Ade", "ade@example.com", "", "Delivery", "Where is my parcel?")
	require.NoError(t, err)

	doc := TransformContact(contact)

	assert.Equal(t, contact.ID.String(), doc.SourceID)
	assert.Equal(t, "Ade", doc.Name)
	assert.False(t, doc.IsRead)
}

func TestTimestampIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, loc)

	assert.Equal(t, "2025-03-14T02:26:53Z", timestamp(at))
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.7, roundRating(4.666))
	assert.Equal(t, 1.0, roundRating(1.04))
	assert.Zero(t, roundRating(0))
}

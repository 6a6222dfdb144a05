package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/contacts"
	"github.com/ovnstore/backend/internal/domain/orders"
	"github.com/ovnstore/backend/internal/domain/shared"
	domainsync "github.com/ovnstore/backend/internal/domain/sync"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type resyncFixture struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	images     *MockProductImageRepository
	reviews    *MockReviewRepository
	orders     *MockOrderRepository
	contacts   *MockContactRepository
	writer     *fakeWriter
	service    *ResyncService
}

func newResyncFixture() *resyncFixture {
	f := &resyncFixture{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		images:     new(MockProductImageRepository),
		reviews:    new(MockReviewRepository),
		orders:     new(MockOrderRepository),
		contacts:   new(MockContactRepository),
		writer:     newFakeWriter(),
	}
	f.service = NewResyncService(
		f.products, f.categories, f.images, f.reviews, f.orders, f.contacts,
		f.writer, nil, zap.NewNop(),
	)
	return f
}

// expectEmpty stubs every enumeration to return nothing
func (f *resyncFixture) expectEmpty() {
	f.categories.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Category{}, nil)
	f.products.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)
	f.orders.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]orders.Order{}, nil)
	f.reviews.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Review{}, nil)
	f.contacts.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]contacts.Contact{}, nil)
}

// expectBatchThenEmpty returns one page then the empty terminator
func expectBatchThenEmpty[T any](m *mock.Mock, batch []T) {
	m.On("FindBatch", mock.Anything, uuid.Nil, mock.Anything).Return(batch, nil).Once()
	m.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]T{}, nil)
}

func TestResync_EmptyStoreCompletes(t *testing.T) {
	f := newResyncFixture()
	f.expectEmpty()

	summary, err := f.service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ResyncStateCompleted, summary.Status)
	assert.Len(t, summary.Collections, 5)
	assert.Zero(t, summary.TotalSynced())
	assert.Empty(t, summary.Errors)
}

func TestResync_WritesAllCollections(t *testing.T) {
	f := newResyncFixture()

	category, err := catalog.NewCategory("Electronics", "")
	require.NoError(t, err)
	product, err := catalog.NewProduct("Desk Lamp", "", "", "", decimal.NewFromFloat(45))
	require.NoError(t, err)
	product.SetCategory(&category.ID)
	order, err := orders.NewOrder("buyer@example.com", false, "", "")
	require.NoError(t, err)
	review, err := catalog.NewReview(product.ID, "Maya", "maya@example.com", 4, "", "Nice")
	require.NoError(t, err)
	contact, err := contacts.NewContact("Ade", "ade@example.com", "", "", "Hello")
	require.NoError(t, err)

	expectBatchThenEmpty(&f.categories.Mock, []catalog.Category{*category})
	expectBatchThenEmpty(&f.products.Mock, []catalog.Product{*product})
	expectBatchThenEmpty(&f.orders.Mock, []orders.Order{*order})
	expectBatchThenEmpty(&f.reviews.Mock, []catalog.Review{*review})
	expectBatchThenEmpty(&f.contacts.Mock, []contacts.Contact{*contact})

	f.categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.images.On("FindByProduct", mock.Anything, product.ID).Return([]catalog.ProductImage{}, nil)
	f.reviews.On("ApprovedStats", mock.Anything, product.ID).Return(catalog.ReviewStats{}, nil)

	summary, err := f.service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ResyncStateCompleted, summary.Status)
	assert.Equal(t, int64(5), summary.TotalSynced())

	doc, ok := f.writer.get(domainsync.CollectionProducts, product.ID.String())
	require.True(t, ok)
	assert.Equal(t, "Electronics", doc.(domainsync.ProductDocument).CategoryName)
}

func TestResync_PrunesStaleDocuments(t *testing.T) {
	f := newResyncFixture()
	f.expectEmpty()

	stale := uuid.New().String()
	require.NoError(t, f.writer.Upsert(context.Background(), domainsync.CollectionProducts, stale, domainsync.ProductDocument{}))

	summary, err := f.service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ResyncStateCompleted, summary.Status)
	_, ok := f.writer.get(domainsync.CollectionProducts, stale)
	assert.False(t, ok)

	var productResult CollectionResult
	for _, c := range summary.Collections {
		if c.Collection == domainsync.CollectionProducts {
			productResult = c
		}
	}
	assert.Equal(t, int64(1), productResult.Pruned)
}

func TestResync_UpsertFailureKeepsOldDocument(t *testing.T) {
	f := newResyncFixture()

	product, err := catalog.NewProduct("Desk Lamp", "", "", "", decimal.NewFromFloat(45))
	require.NoError(t, err)

	f.categories.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Category{}, nil)
	expectBatchThenEmpty(&f.products.Mock, []catalog.Product{*product})
	f.orders.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]orders.Order{}, nil)
	f.reviews.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Review{}, nil)
	f.contacts.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]contacts.Contact{}, nil)
	f.images.On("FindByProduct", mock.Anything, product.ID).Return([]catalog.ProductImage{}, nil)
	f.reviews.On("ApprovedStats", mock.Anything, product.ID).Return(catalog.ReviewStats{}, nil)

	// Seed the old document, then make its rewrite fail
	old := domainsync.ProductDocument{Name: "old"}
	require.NoError(t, f.writer.Upsert(context.Background(), domainsync.CollectionProducts, product.ID.String(), old))
	f.writer.failUpsert[product.ID.String()] = errors.New("write timeout")

	summary, err := f.service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ResyncStateCompletedWithErrors, summary.Status)
	assert.Equal(t, int64(1), summary.TotalFailed())

	// The stale document survives the prune; a write failure must never
	// become a deletion.
	doc, ok := f.writer.get(domainsync.CollectionProducts, product.ID.String())
	require.True(t, ok)
	assert.Equal(t, "old", doc.(domainsync.ProductDocument).Name)
}

func TestResync_EnumerationFailureSkipsPrune(t *testing.T) {
	f := newResyncFixture()

	f.categories.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Category{}, nil)
	f.products.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db gone"))
	f.orders.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]orders.Order{}, nil)
	f.reviews.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Review{}, nil)
	f.contacts.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]contacts.Contact{}, nil)

	// The product collection holds a document that enumeration never
	// reached; it must survive.
	existing := uuid.New().String()
	require.NoError(t, f.writer.Upsert(context.Background(), domainsync.CollectionProducts, existing, domainsync.ProductDocument{}))

	summary, err := f.service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ResyncStateCompletedWithErrors, summary.Status)
	_, ok := f.writer.get(domainsync.CollectionProducts, existing)
	assert.True(t, ok)
}

func TestResync_UnreachableStoreAborts(t *testing.T) {
	f := newResyncFixture()

	existing := uuid.New().String()
	require.NoError(t, f.writer.Upsert(context.Background(), domainsync.CollectionCategories, existing, domainsync.CategoryDocument{}))
	f.writer.pingErr = errors.New("no route to host")

	summary, err := f.service.Run(context.Background())
	require.Error(t, err)

	require.NotNil(t, summary)
	assert.Equal(t, ResyncStateAborted, summary.Status)
	assert.Equal(t, 1, f.writer.upserts) // only the seed write happened

	_, ok := f.writer.get(domainsync.CollectionCategories, existing)
	assert.True(t, ok)
}

func TestResync_SecondRunRejectedWhileRunning(t *testing.T) {
	f := newResyncFixture()

	release := make(chan struct{})
	started := make(chan struct{})
	f.categories.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]catalog.Category{}, nil)
	f.products.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)
	f.orders.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]orders.Order{}, nil)
	f.reviews.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Review{}, nil)
	f.contacts.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]contacts.Contact{}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = f.service.Run(context.Background())
	}()

	<-started
	assert.Equal(t, ResyncStateRunning, f.service.Status().State)

	_, err := f.service.Run(context.Background())
	assert.ErrorIs(t, err, shared.ErrResyncInProgress)

	close(release)
	wg.Wait()

	assert.Equal(t, ResyncStateIdle, f.service.Status().State)
	require.NotNil(t, f.service.Status().Last)
	assert.Equal(t, ResyncStateCompleted, f.service.Status().Last.Status)
}

func TestResync_CancelledContextAborts(t *testing.T) {
	f := newResyncFixture()
	f.expectEmpty()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := f.service.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, ResyncStateAborted, summary.Status)
}

func TestResync_RemovesDeletedRecordAndKeepsSurvivor(t *testing.T) {
	f := newResyncFixture()

	kept, err := catalog.NewProduct("Desk Lamp", "", "", "", decimal.NewFromFloat(45))
	require.NoError(t, err)
	deleted, err := catalog.NewProduct("Old Chair", "", "", "", decimal.NewFromFloat(80))
	require.NoError(t, err)

	// Both products were projected incrementally before the second one was
	// removed from the primary store.
	ctx := context.Background()
	for _, p := range []*catalog.Product{kept, deleted} {
		doc := domainsync.TransformProduct(p, nil, nil, catalog.ReviewStats{})
		require.NoError(t, f.writer.Upsert(ctx, domainsync.CollectionProducts, p.ID.String(), doc))
	}

	f.categories.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Category{}, nil)
	f.orders.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]orders.Order{}, nil)
	f.reviews.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Review{}, nil)
	f.contacts.On("FindBatch", mock.Anything, mock.Anything, mock.Anything).Return([]contacts.Contact{}, nil)
	expectBatchThenEmpty(&f.products.Mock, []catalog.Product{*kept})
	f.images.On("FindByProduct", mock.Anything, kept.ID).Return([]catalog.ProductImage{}, nil)
	f.reviews.On("ApprovedStats", mock.Anything, kept.ID).Return(catalog.ReviewStats{}, nil)

	summary, err := f.service.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, ResyncStateCompleted, summary.Status)

	keys, err := f.writer.Keys(ctx, domainsync.CollectionProducts)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.ID.String()}, keys)

	doc, ok := f.writer.get(domainsync.CollectionProducts, kept.ID.String())
	require.True(t, ok)
	assert.Equal(t, domainsync.TransformProduct(kept, nil, nil, catalog.ReviewStats{}), doc)
}

func TestResync_StatusStartsIdle(t *testing.T) {
	f := newResyncFixture()
	status := f.service.Status()
	assert.Equal(t, ResyncStateIdle, status.State)
	assert.Nil(t, status.Last)
}

func TestResync_SummaryTimestamps(t *testing.T) {
	f := newResyncFixture()
	f.expectEmpty()

	before := time.Now().UTC()
	summary, err := f.service.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, summary.StartedAt.Before(before.Add(-time.Second)))
	assert.False(t, summary.FinishedAt.Before(summary.StartedAt))
}

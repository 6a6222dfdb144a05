package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/contacts"
	"github.com/ovnstore/backend/internal/domain/orders"
	"github.com/ovnstore/backend/internal/domain/shared"
	domainsync "github.com/ovnstore/backend/internal/domain/sync"
	"go.uber.org/zap"
)

// DefaultHandleTimeout bounds a single projection attempt so a slow
// document store cannot stall the event bus worker.
const DefaultHandleTimeout = 10 * time.Second

// Task identifies one document to bring up to date in the secondary store.
// Tasks are what the retry queue carries; they are built from domain events
// and re-runnable at any later time because the projection always reads the
// current primary state.
type Task struct {
	AggregateType string
	AggregateID   uuid.UUID
	// RelatedProductID is set on review tasks so the product document can
	// be refreshed alongside; rating aggregates live on the product.
	RelatedProductID uuid.UUID
	Operation        shared.Operation
	Attempts         int
}

// RetryEnqueuer accepts failed projection tasks for later retry.
// Enqueue reports whether the task was accepted.
type RetryEnqueuer interface {
	Enqueue(task Task) bool
}

// ProjectionHandler keeps the document store in step with the primary store.
// It subscribes to domain events, re-reads the mutated aggregate, and writes
// the denormalized document. Errors never reach the caller that performed
// the primary mutation; the bus logs them and the handler queues a retry.
type ProjectionHandler struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	images     catalog.ProductImageRepository
	reviews    catalog.ReviewRepository
	orders     orders.OrderRepository
	contacts   contacts.ContactRepository
	writer     domainsync.DocumentWriter
	retry      RetryEnqueuer
	logger     *zap.Logger
	timeout    time.Duration
}

// NewProjectionHandler creates a projection handler. retry may be nil when
// no queue is wired, for example inside the one-shot resync command.
func NewProjectionHandler(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	images catalog.ProductImageRepository,
	reviews catalog.ReviewRepository,
	orderRepo orders.OrderRepository,
	contactRepo contacts.ContactRepository,
	writer domainsync.DocumentWriter,
	retry RetryEnqueuer,
	logger *zap.Logger,
) *ProjectionHandler {
	return &ProjectionHandler{
		products:   products,
		categories: categories,
		images:     images,
		reviews:    reviews,
		orders:     orderRepo,
		contacts:   contactRepo,
		writer:     writer,
		retry:      retry,
		logger:     logger,
		timeout:    DefaultHandleTimeout,
	}
}

// SetTimeout overrides the per-attempt timeout
func (h *ProjectionHandler) SetTimeout(d time.Duration) {
	if d > 0 {
		h.timeout = d
	}
}

// SetRetry wires the retry queue after construction. The queue's applier is
// the handler itself, so the two are connected in a second step.
func (h *ProjectionHandler) SetRetry(retry RetryEnqueuer) {
	h.retry = retry
}

// EventTypes returns the event types this handler subscribes to
func (h *ProjectionHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeProductCreated, catalog.EventTypeProductUpdated, catalog.EventTypeProductDeleted,
		catalog.EventTypeCategoryCreated, catalog.EventTypeCategoryUpdated, catalog.EventTypeCategoryDeleted,
		catalog.EventTypeReviewCreated, catalog.EventTypeReviewUpdated, catalog.EventTypeReviewDeleted,
		orders.EventTypeOrderCreated, orders.EventTypeOrderUpdated, orders.EventTypeOrderDeleted,
		contacts.EventTypeContactCreated, contacts.EventTypeContactUpdated, contacts.EventTypeContactDeleted,
	}
}

// Handle projects the aggregate behind the event into the document store.
// On failure the task goes to the retry queue and the error is returned for
// the bus to log.
func (h *ProjectionHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	task := taskFromEvent(event)

	if err := h.Apply(ctx, task); err != nil {
		h.logger.Warn("projection failed, queueing retry",
			zap.String("aggregate_type", task.AggregateType),
			zap.String("aggregate_id", task.AggregateID.String()),
			zap.String("operation", string(task.Operation)),
			zap.Error(err))
		if h.retry != nil && !h.retry.Enqueue(task) {
			h.logger.Error("retry queue full, projection task dropped",
				zap.String("aggregate_type", task.AggregateType),
				zap.String("aggregate_id", task.AggregateID.String()))
		}
		return err
	}
	return nil
}

func taskFromEvent(event shared.DomainEvent) Task {
	task := Task{
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		Operation:     event.Operation(),
	}
	switch e := event.(type) {
	case *catalog.ReviewCreatedEvent:
		task.RelatedProductID = e.ProductID
	case *catalog.ReviewUpdatedEvent:
		task.RelatedProductID = e.ProductID
	case *catalog.ReviewDeletedEvent:
		task.RelatedProductID = e.ProductID
	}
	return task
}

// Apply performs one projection attempt for the task. It is idempotent and
// reads the current primary state, so a stale task converges to the latest
// document rather than replaying an old one.
func (h *ProjectionHandler) Apply(ctx context.Context, task Task) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	switch task.AggregateType {
	case catalog.AggregateTypeProduct:
		return h.applyProduct(ctx, task.AggregateID, task.Operation)
	case catalog.AggregateTypeCategory:
		return h.applyCategory(ctx, task.AggregateID, task.Operation)
	case catalog.AggregateTypeReview:
		return h.applyReview(ctx, task)
	case orders.AggregateTypeOrder:
		return h.applyOrder(ctx, task.AggregateID, task.Operation)
	case contacts.AggregateTypeContact:
		return h.applyContact(ctx, task.AggregateID, task.Operation)
	default:
		h.logger.Debug("ignoring event for unprojected aggregate",
			zap.String("aggregate_type", task.AggregateType))
		return nil
	}
}

func (h *ProjectionHandler) applyProduct(ctx context.Context, id uuid.UUID, op shared.Operation) error {
	if op == shared.OperationDelete {
		return h.writer.Delete(ctx, domainsync.CollectionProducts, id.String())
	}

	product, err := h.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Deleted between the event and now; converge to absence
			return h.writer.Delete(ctx, domainsync.CollectionProducts, id.String())
		}
		return err
	}

	doc := domainsync.TransformProduct(product, h.loadCategory(ctx, product.CategoryID), h.loadImages(ctx, id), h.loadStats(ctx, id))
	return h.writer.Upsert(ctx, domainsync.CollectionProducts, doc.SourceID, doc)
}

func (h *ProjectionHandler) applyCategory(ctx context.Context, id uuid.UUID, op shared.Operation) error {
	if op == shared.OperationDelete {
		return h.writer.Delete(ctx, domainsync.CollectionCategories, id.String())
	}

	category, err := h.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return h.writer.Delete(ctx, domainsync.CollectionCategories, id.String())
		}
		return err
	}

	doc := domainsync.TransformCategory(category)
	return h.writer.Upsert(ctx, domainsync.CollectionCategories, doc.SourceID, doc)
}

func (h *ProjectionHandler) applyReview(ctx context.Context, task Task) error {
	if task.Operation == shared.OperationDelete {
		if err := h.writer.Delete(ctx, domainsync.CollectionReviews, task.AggregateID.String()); err != nil {
			return err
		}
		return h.refreshProduct(ctx, task.RelatedProductID)
	}

	review, err := h.reviews.FindByID(ctx, task.AggregateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			if err := h.writer.Delete(ctx, domainsync.CollectionReviews, task.AggregateID.String()); err != nil {
				return err
			}
			return h.refreshProduct(ctx, task.RelatedProductID)
		}
		return err
	}

	productName := ""
	if product, err := h.products.FindByID(ctx, review.ProductID); err == nil {
		productName = product.Name
	}

	doc := domainsync.TransformReview(review, productName)
	if err := h.writer.Upsert(ctx, domainsync.CollectionReviews, doc.SourceID, doc); err != nil {
		return err
	}

	// Moderation and rating changes move the product's published average
	return h.refreshProduct(ctx, review.ProductID)
}

func (h *ProjectionHandler) applyOrder(ctx context.Context, id uuid.UUID, op shared.Operation) error {
	if op == shared.OperationDelete {
		return h.writer.Delete(ctx, domainsync.CollectionOrders, id.String())
	}

	order, err := h.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return h.writer.Delete(ctx, domainsync.CollectionOrders, id.String())
		}
		return err
	}

	doc := domainsync.TransformOrder(order)
	return h.writer.Upsert(ctx, domainsync.CollectionOrders, doc.SourceID, doc)
}

func (h *ProjectionHandler) applyContact(ctx context.Context, id uuid.UUID, op shared.Operation) error {
	if op == shared.OperationDelete {
		return h.writer.Delete(ctx, domainsync.CollectionContacts, id.String())
	}

	contact, err := h.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return h.writer.Delete(ctx, domainsync.CollectionContacts, id.String())
		}
		return err
	}

	doc := domainsync.TransformContact(contact)
	return h.writer.Upsert(ctx, domainsync.CollectionContacts, doc.SourceID, doc)
}

func (h *ProjectionHandler) refreshProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return nil
	}
	return h.applyProduct(ctx, productID, shared.OperationUpdate)
}

// loadCategory resolves the product's category, nil when unset or unresolved
func (h *ProjectionHandler) loadCategory(ctx context.Context, categoryID *uuid.UUID) *catalog.Category {
	if categoryID == nil {
		return nil
	}
	category, err := h.categories.FindByID(ctx, *categoryID)
	if err != nil {
		h.logger.Debug("category lookup failed, projecting degraded product document",
			zap.String("category_id", categoryID.String()), zap.Error(err))
		return nil
	}
	return category
}

func (h *ProjectionHandler) loadImages(ctx context.Context, productID uuid.UUID) []catalog.ProductImage {
	images, err := h.images.FindByProduct(ctx, productID)
	if err != nil {
		h.logger.Debug("image lookup failed, projecting product without images",
			zap.String("product_id", productID.String()), zap.Error(err))
		return nil
	}
	return images
}

func (h *ProjectionHandler) loadStats(ctx context.Context, productID uuid.UUID) catalog.ReviewStats {
	stats, err := h.reviews.ApprovedStats(ctx, productID)
	if err != nil {
		h.logger.Debug("review stats lookup failed, projecting zero rating",
			zap.String("product_id", productID.String()), zap.Error(err))
		return catalog.ReviewStats{}
	}
	return stats
}

package sync

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/contacts"
	"github.com/ovnstore/backend/internal/domain/orders"
	"github.com/ovnstore/backend/internal/domain/shared"
	domainsync "github.com/ovnstore/backend/internal/domain/sync"
	"go.uber.org/zap"
)

// Resync outcome states
const (
	ResyncStateIdle                = "idle"
	ResyncStateRunning             = "running"
	ResyncStateCompleted           = "completed"
	ResyncStateCompletedWithErrors = "completed_with_errors"
	ResyncStateAborted             = "aborted"
)

// DefaultResyncBatchSize is the enumeration page size for full rebuilds
const DefaultResyncBatchSize = 500

// ResyncLock serializes full rebuilds across processes. The in-process
// atomic flag already prevents concurrent runs within one server; the lock
// extends that guarantee to multiple replicas sharing one document store.
type ResyncLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// CollectionResult reports one collection's share of a rebuild
type CollectionResult struct {
	Collection string `json:"collection"`
	Synced     int64  `json:"synced"`
	Failed     int64  `json:"failed"`
	Pruned     int64  `json:"pruned"`
}

// Summary is the record of one full rebuild
type Summary struct {
	Status      string             `json:"status"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Collections []CollectionResult `json:"collections"`
	Errors      []string           `json:"errors,omitempty"`
}

// TotalSynced sums synced documents across collections
func (s *Summary) TotalSynced() int64 {
	var n int64
	for _, c := range s.Collections {
		n += c.Synced
	}
	return n
}

// TotalFailed sums failed documents across collections
func (s *Summary) TotalFailed() int64 {
	var n int64
	for _, c := range s.Collections {
		n += c.Failed
	}
	return n
}

// Status is the externally visible resync state
type Status struct {
	State string   `json:"state"`
	Last  *Summary `json:"last_run,omitempty"`
}

// ResyncService rebuilds the whole document store from the primary store.
// A rebuild writes every live record first and prunes stale documents after,
// so readers never observe a half-cleared collection.
type ResyncService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	images     catalog.ProductImageRepository
	reviews    catalog.ReviewRepository
	orders     orders.OrderRepository
	contacts   contacts.ContactRepository
	writer     domainsync.DocumentWriter
	lock       ResyncLock
	logger     *zap.Logger
	batchSize  int

	running atomic.Bool
	mu      sync.RWMutex
	last    *Summary
}

// NewResyncService creates a resync service. lock may be nil for
// single-process deployments and the one-shot command.
func NewResyncService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	images catalog.ProductImageRepository,
	reviews catalog.ReviewRepository,
	orderRepo orders.OrderRepository,
	contactRepo contacts.ContactRepository,
	writer domainsync.DocumentWriter,
	lock ResyncLock,
	logger *zap.Logger,
) *ResyncService {
	return &ResyncService{
		products:   products,
		categories: categories,
		images:     images,
		reviews:    reviews,
		orders:     orderRepo,
		contacts:   contactRepo,
		writer:     writer,
		lock:       lock,
		logger:     logger,
		batchSize:  DefaultResyncBatchSize,
	}
}

// SetBatchSize overrides the enumeration page size
func (s *ResyncService) SetBatchSize(size int) {
	if size > 0 {
		s.batchSize = size
	}
}

// Status reports whether a rebuild is running and the last run's summary
func (s *ResyncService) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := ResyncStateIdle
	if s.running.Load() {
		state = ResyncStateRunning
	}
	return Status{State: state, Last: s.last}
}

// Run performs a full rebuild of every collection. Only one run may be in
// flight; a second call returns ErrResyncInProgress immediately. The summary
// is returned for terminal states including aborted runs.
func (s *ResyncService) Run(ctx context.Context) (*Summary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, shared.ErrResyncInProgress
	}
	defer s.running.Store(false)

	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire resync lock: %w", err)
		}
		if !acquired {
			return nil, shared.ErrResyncInProgress
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to release resync lock", zap.Error(err))
			}
		}()
	}

	summary := &Summary{
		Status:    ResyncStateRunning,
		StartedAt: time.Now().UTC(),
	}

	// An unreachable store aborts before any write; the previous contents
	// stay intact.
	if err := s.writer.Ping(ctx); err != nil {
		summary.Status = ResyncStateAborted
		summary.Errors = append(summary.Errors, fmt.Sprintf("document store unreachable: %v", err))
		s.finish(summary)
		return summary, fmt.Errorf("document store unreachable: %w", err)
	}

	s.logger.Info("full resync started", zap.Int("batch_size", s.batchSize))

	steps := []struct {
		collection string
		run        func(ctx context.Context, result *CollectionResult, errs *[]string) error
	}{
		{domainsync.CollectionCategories, s.resyncCategories},
		{domainsync.CollectionProducts, s.resyncProducts},
		{domainsync.CollectionOrders, s.resyncOrders},
		{domainsync.CollectionReviews, s.resyncReviews},
		{domainsync.CollectionContacts, s.resyncContacts},
	}

	aborted := false
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", step.collection, err))
			aborted = true
			break
		}

		result := CollectionResult{Collection: step.collection}
		if err := step.run(ctx, &result, &summary.Errors); err != nil {
			// Enumeration broke mid-collection; what was written stays,
			// but nothing is pruned for this collection.
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", step.collection, err))
			summary.Collections = append(summary.Collections, result)
			if ctx.Err() != nil {
				aborted = true
				break
			}
			continue
		}
		summary.Collections = append(summary.Collections, result)

		s.logger.Info("collection resynced",
			zap.String("collection", result.Collection),
			zap.Int64("synced", result.Synced),
			zap.Int64("failed", result.Failed),
			zap.Int64("pruned", result.Pruned))
	}

	switch {
	case aborted:
		summary.Status = ResyncStateAborted
	case len(summary.Errors) > 0 || summary.TotalFailed() > 0:
		summary.Status = ResyncStateCompletedWithErrors
	default:
		summary.Status = ResyncStateCompleted
	}
	s.finish(summary)

	s.logger.Info("full resync finished",
		zap.String("status", summary.Status),
		zap.Int64("synced", summary.TotalSynced()),
		zap.Int64("failed", summary.TotalFailed()),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)))

	return summary, nil
}

func (s *ResyncService) finish(summary *Summary) {
	summary.FinishedAt = time.Now().UTC()
	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()
}

// prune removes documents for records no longer in the primary store. It
// only runs after the full enumeration succeeded, and keys whose upsert
// failed are kept so a write failure never turns into a deletion.
func (s *ResyncService) prune(ctx context.Context, collection string, keep []string, result *CollectionResult, errs *[]string) {
	pruned, err := s.writer.DeleteAbsent(ctx, collection, keep)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: prune: %v", collection, err))
		return
	}
	result.Pruned = pruned
}

func (s *ResyncService) resyncCategories(ctx context.Context, result *CollectionResult, errs *[]string) error {
	var keep []string
	after := uuid.Nil
	for {
		batch, err := s.categories.FindBatch(ctx, after, s.batchSize)
		if err != nil {
			return fmt.Errorf("enumerate: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for i := range batch {
			doc := domainsync.TransformCategory(&batch[i])
			if err := s.writer.Upsert(ctx, domainsync.CollectionCategories, doc.SourceID, doc); err != nil {
				result.Failed++
				*errs = append(*errs, fmt.Sprintf("category %s: %v", doc.SourceID, err))
				keep = append(keep, doc.SourceID)
				continue
			}
			result.Synced++
			keep = append(keep, doc.SourceID)
		}
		after = batch[len(batch)-1].ID
	}
	s.prune(ctx, domainsync.CollectionCategories, keep, result, errs)
	return nil
}

func (s *ResyncService) resyncProducts(ctx context.Context, result *CollectionResult, errs *[]string) error {
	var keep []string
	after := uuid.Nil
	for {
		batch, err := s.products.FindBatch(ctx, after, s.batchSize)
		if err != nil {
			return fmt.Errorf("enumerate: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for i := range batch {
			product := &batch[i]

			var category *catalog.Category
			if product.CategoryID != nil {
				if c, err := s.categories.FindByID(ctx, *product.CategoryID); err == nil {
					category = c
				}
			}
			images, err := s.images.FindByProduct(ctx, product.ID)
			if err != nil {
				images = nil
			}
			stats, err := s.reviews.ApprovedStats(ctx, product.ID)
			if err != nil {
				stats = catalog.ReviewStats{}
			}

			doc := domainsync.TransformProduct(product, category, images, stats)
			if err := s.writer.Upsert(ctx, domainsync.CollectionProducts, doc.SourceID, doc); err != nil {
				result.Failed++
				*errs = append(*errs, fmt.Sprintf("product %s: %v", doc.SourceID, err))
				keep = append(keep, doc.SourceID)
				continue
			}
			result.Synced++
			keep = append(keep, doc.SourceID)
		}
		after = batch[len(batch)-1].ID
	}
	s.prune(ctx, domainsync.CollectionProducts, keep, result, errs)
	return nil
}

func (s *ResyncService) resyncOrders(ctx context.Context, result *CollectionResult, errs *[]string) error {
	var keep []string
	after := uuid.Nil
	for {
		batch, err := s.orders.FindBatch(ctx, after, s.batchSize)
		if err != nil {
			return fmt.Errorf("enumerate: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for i := range batch {
			doc := domainsync.TransformOrder(&batch[i])
			if err := s.writer.Upsert(ctx, domainsync.CollectionOrders, doc.SourceID, doc); err != nil {
				result.Failed++
				*errs = append(*errs, fmt.Sprintf("order %s: %v", doc.SourceID, err))
				keep = append(keep, doc.SourceID)
				continue
			}
			result.Synced++
			keep = append(keep, doc.SourceID)
		}
		after = batch[len(batch)-1].ID
	}
	s.prune(ctx, domainsync.CollectionOrders, keep, result, errs)
	return nil
}

func (s *ResyncService) resyncReviews(ctx context.Context, result *CollectionResult, errs *[]string) error {
	// Product names are looked up per review; a tiny cache keeps the
	// rebuild from hammering the products table.
	names := make(map[uuid.UUID]string)
	productName := func(id uuid.UUID) string {
		if name, ok := names[id]; ok {
			return name
		}
		name := ""
		if product, err := s.products.FindByID(ctx, id); err == nil {
			name = product.Name
		}
		names[id] = name
		return name
	}

	var keep []string
	after := uuid.Nil
	for {
		batch, err := s.reviews.FindBatch(ctx, after, s.batchSize)
		if err != nil {
			return fmt.Errorf("enumerate: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for i := range batch {
			review := &batch[i]
			doc := domainsync.TransformReview(review, productName(review.ProductID))
			if err := s.writer.Upsert(ctx, domainsync.CollectionReviews, doc.SourceID, doc); err != nil {
				result.Failed++
				*errs = append(*errs, fmt.Sprintf("review %s: %v", doc.SourceID, err))
				keep = append(keep, doc.SourceID)
				continue
			}
			result.Synced++
			keep = append(keep, doc.SourceID)
		}
		after = batch[len(batch)-1].ID
	}
	s.prune(ctx, domainsync.CollectionReviews, keep, result, errs)
	return nil
}

func (s *ResyncService) resyncContacts(ctx context.Context, result *CollectionResult, errs *[]string) error {
	var keep []string
	after := uuid.Nil
	for {
		batch, err := s.contacts.FindBatch(ctx, after, s.batchSize)
		if err != nil {
			return fmt.Errorf("enumerate: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for i := range batch {
			doc := domainsync.TransformContact(&batch[i])
			if err := s.writer.Upsert(ctx, domainsync.CollectionContacts, doc.SourceID, doc); err != nil {
				result.Failed++
				*errs = append(*errs, fmt.Sprintf("contact %s: %v", doc.SourceID, err))
				keep = append(keep, doc.SourceID)
				continue
			}
			result.Synced++
			keep = append(keep, doc.SourceID)
		}
		after = batch[len(batch)-1].ID
	}
	s.prune(ctx, domainsync.CollectionContacts, keep, result, errs)
	return nil
}

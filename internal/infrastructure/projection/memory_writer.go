package projection

import (
	"context"
	"sync"

	domainsync "github.com/ovnstore/backend/internal/domain/sync"
)

// MemoryWriter is an in-process DocumentWriter holding projections in a map.
// It backs development deployments without a MongoDB instance and test
// fixtures. Documents are stored as given; no serialization happens.
type MemoryWriter struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

// NewMemoryWriter creates an empty MemoryWriter
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{docs: make(map[string]map[string]any)}
}

func (w *MemoryWriter) Upsert(ctx context.Context, collection, sourceID string, document any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.docs[collection] == nil {
		w.docs[collection] = make(map[string]any)
	}
	w.docs[collection][sourceID] = document
	return nil
}

func (w *MemoryWriter) Delete(ctx context.Context, collection, sourceID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs[collection], sourceID)
	return nil
}

func (w *MemoryWriter) Keys(ctx context.Context, collection string) ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	keys := make([]string, 0, len(w.docs[collection]))
	for k := range w.docs[collection] {
		keys = append(keys, k)
	}
	return keys, nil
}

func (w *MemoryWriter) DeleteAbsent(ctx context.Context, collection string, keep []string) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	keepSet := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		keepSet[k] = struct{}{}
	}
	var removed int64
	for k := range w.docs[collection] {
		if _, ok := keepSet[k]; !ok {
			delete(w.docs[collection], k)
			removed++
		}
	}
	return removed, nil
}

func (w *MemoryWriter) Count(ctx context.Context, collection string) (int64, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return int64(len(w.docs[collection])), nil
}

func (w *MemoryWriter) Ping(ctx context.Context) error { return nil }

// Get returns the stored document and whether it exists. Test helper.
func (w *MemoryWriter) Get(collection, sourceID string) (any, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc, ok := w.docs[collection][sourceID]
	return doc, ok
}

var _ domainsync.DocumentWriter = (*MemoryWriter)(nil)

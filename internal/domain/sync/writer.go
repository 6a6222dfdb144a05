package sync

import "context"

// DocumentWriter is the port to the secondary document store. Implementations
// must make Upsert and Delete idempotent: replaying the same mutation leaves
// the store unchanged.
type DocumentWriter interface {
	// Upsert inserts or replaces the document keyed by sourceID in collection
	Upsert(ctx context.Context, collection, sourceID string, document any) error

	// Delete removes the document keyed by sourceID from collection.
	// Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, sourceID string) error

	// Keys returns every source id currently present in collection
	Keys(ctx context.Context, collection string) ([]string, error)

	// DeleteAbsent removes documents from collection whose source id is not
	// in keep, returning the number removed. Used to prune stale documents
	// after a full rebuild has written the fresh set.
	DeleteAbsent(ctx context.Context, collection string, keep []string) (int64, error)

	// Count returns the number of documents in collection
	Count(ctx context.Context, collection string) (int64, error)

	// Ping verifies the store is reachable
	Ping(ctx context.Context) error
}

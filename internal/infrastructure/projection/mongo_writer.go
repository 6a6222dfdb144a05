package projection

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	domainsync "github.com/ovnstore/backend/internal/domain/sync"
	"github.com/ovnstore/backend/internal/infrastructure/config"
)

// NewMongoClient connects to the document store with the configured timeout
// and pool size
func NewMongoClient(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// MongoWriter implements the document store port on a MongoDB database.
// Documents are keyed by source_id, the primary store's aggregate ID, so
// every write is a full replace and replays are harmless.
type MongoWriter struct {
	db *mongo.Database
}

// NewMongoWriter creates a writer over the given database
func NewMongoWriter(client *mongo.Client, database string) *MongoWriter {
	return &MongoWriter{db: client.Database(database)}
}

// Upsert inserts or replaces the document keyed by sourceID in collection
func (w *MongoWriter) Upsert(ctx context.Context, collection, sourceID string, document any) error {
	_, err := w.db.Collection(collection).ReplaceOne(ctx,
		bson.M{domainsync.KeyField: sourceID},
		document,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", collection, sourceID, err)
	}
	return nil
}

// Delete removes the document keyed by sourceID; deleting an absent document is not an error
func (w *MongoWriter) Delete(ctx context.Context, collection, sourceID string) error {
	_, err := w.db.Collection(collection).DeleteOne(ctx, bson.M{domainsync.KeyField: sourceID})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, sourceID, err)
	}
	return nil
}

// Keys returns every source id currently present in collection
func (w *MongoWriter) Keys(ctx context.Context, collection string) ([]string, error) {
	raw, err := w.db.Collection(collection).Distinct(ctx, domainsync.KeyField, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list keys of %s: %w", collection, err)
	}

	keys := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			keys = append(keys, s)
		}
	}
	return keys, nil
}

// DeleteAbsent removes documents whose source id is not in keep.
// An empty keep list clears the collection; that is the correct outcome when
// the primary store holds no records of this kind.
func (w *MongoWriter) DeleteAbsent(ctx context.Context, collection string, keep []string) (int64, error) {
	if keep == nil {
		keep = []string{}
	}
	result, err := w.db.Collection(collection).DeleteMany(ctx,
		bson.M{domainsync.KeyField: bson.M{"$nin": keep}},
	)
	if err != nil {
		return 0, fmt.Errorf("prune %s: %w", collection, err)
	}
	return result.DeletedCount, nil
}

// Count returns the number of documents in collection
func (w *MongoWriter) Count(ctx context.Context, collection string) (int64, error) {
	n, err := w.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// Ping verifies the store is reachable
func (w *MongoWriter) Ping(ctx context.Context) error {
	return w.db.Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique source_id index on every synced collection
func (w *MongoWriter) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: domainsync.KeyField, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, collection := range domainsync.Collections {
		if _, err := w.db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("ensure index on %s: %w", collection, err)
		}
	}
	return nil
}

var _ domainsync.DocumentWriter = (*MongoWriter)(nil)

package vectorstore

import (
	"context"

	"github.com/bloop16/homestate/core"
)

// SearchParams tunes a similarity search.
type SearchParams struct {
	// Limit caps the number of hits. Required, must be > 0.
	Limit int

	// ScoreThreshold drops hits below the given cosine similarity.
	// Zero disables the threshold.
	ScoreThreshold float32

	// DatapointIDs restricts hits to points owned by the given datapoints.
	// Empty means no restriction.
	DatapointIDs []string
}

// CollectionStats summarizes a collection.
type CollectionStats struct {
	Points uint64
	Status string
}

// Store is the gateway to the vector database. Implementations must be
// thread-safe; any backend failure surfaces as an error wrapping
// ErrStoreUnavailable.
type Store interface {
	// EnsureCollection creates the collection with the given vector
	// dimension and cosine distance if it does not already exist.
	// Idempotent: never errors when the collection is already present.
	EnsureCollection(ctx context.Context, collection string, dim uint64) error

	// Upsert writes one record as a point. Re-upserting the same point ID
	// overwrites the existing point.
	Upsert(ctx context.Context, collection string, record *core.DatapointRecord) error

	// Search returns results sorted by similarity score descending.
	// Callers apply any secondary ordering (such as recency) themselves.
	Search(ctx context.Context, collection string, vector []float32, params SearchParams) ([]core.SearchResult, error)

	// ListByDatapoint scrolls all points owned by one datapoint.
	ListByDatapoint(ctx context.Context, collection, datapointID string) ([]*core.DatapointRecord, error)

	// DatapointIDs scans the collection and returns the distinct set of
	// owning datapoint IDs.
	DatapointIDs(ctx context.Context, collection string) ([]string, error)

	// Delete removes the given points in one batch.
	Delete(ctx context.Context, collection string, ids []core.ID) error

	// DeleteByDatapoint removes every point owned by one datapoint.
	DeleteByDatapoint(ctx context.Context, collection, datapointID string) error

	// Stats returns point count and status for a collection.
	Stats(ctx context.Context, collection string) (CollectionStats, error)

	// Close releases the connection to the backend.
	Close() error
}

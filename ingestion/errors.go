package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrLimiterRequired is returned when a limiter is not provided.
	ErrLimiterRequired = errors.New("limiter required")

	// ErrWriteCacheRequired is returned when a write cache is not provided.
	ErrWriteCacheRequired = errors.New("write cache required")

	// ErrInvalidWindow is returned for a non-positive suppression window.
	ErrInvalidWindow = errors.New("suppression window must be positive")
)

package vectorstore

import "errors"

var (
	// ErrStoreUnavailable indicates the vector database is unreachable or
	// rejected the request. Ingestion aborts on this error; read-side
	// resolution falls back to non-vector strategies.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrCollectionRequired indicates an empty collection name.
	ErrCollectionRequired = errors.New("collection name required")

	// ErrEmptyVector indicates a search or upsert with no vector.
	ErrEmptyVector = errors.New("vector cannot be empty")

	// ErrInvalidLimit indicates a search limit of zero or less.
	ErrInvalidLimit = errors.New("search limit must be positive")
)

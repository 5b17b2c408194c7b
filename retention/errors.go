package retention

import "errors"

var (
	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrInvalidInterval is returned for a non-positive schedule interval.
	ErrInvalidInterval = errors.New("schedule interval must be positive")
)

package storage

import (
	"time"
)

// WriteCache records the last accepted write per suppression key. The
// ingestion limiter keys it two ways: once per (datapoint, value) pair for
// exact-value dedup and once per datapoint for rate limiting. Entries
// carry a TTL matching the suppression window, so the cache stays bounded
// without explicit eviction.
//
// Implementations must be thread-safe and support concurrent access.
type WriteCache interface {
	// LastWrite returns the stamp stored under key, and whether one exists.
	// A missing or expired entry is (zero, false, nil), not an error.
	LastWrite(key string) (time.Time, bool, error)

	// Stamp records the given time under key with the given TTL,
	// overwriting any previous stamp.
	Stamp(key string, at time.Time, ttl time.Duration) error

	// Close closes the cache and releases resources.
	Close() error
}

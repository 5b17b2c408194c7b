// Package storage defines the local persistence used by the write side:
// a TTL-based write-suppression cache. Keeping the cache in BadgerDB
// (see storage/badger) lets suppression windows survive process restarts,
// so a restart does not re-embed a burst of retained states.
package storage

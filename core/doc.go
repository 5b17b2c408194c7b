// Package core defines the domain model for smart-home state retrieval.
//
// The central type is DatapointRecord: one immutable vector-store point per
// qualifying state change, carrying the raw value, display metadata, the
// formatted text that was embedded, and the embedding itself. Point IDs are
// content-derived so re-ingesting the same (datapoint, timestamp) pair is a
// safe overwrite.
//
// The Registry tracks which datapoints are currently readable for retrieval
// and which subset is writable for automated control.
package core

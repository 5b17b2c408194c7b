// Package ingestion provides the write-side pipeline for datapoint state.
//
// The Pipeline type manages the ingestion workflow for state changes,
// including:
//   - Suppressing redundant writes via the Limiter (exact-value dedup and
//     per-datapoint rate limiting)
//   - Formatting state into embeddable text
//   - Generating embeddings and upserting points into the vector store
//
// Events may be processed synchronously or through a worker pool. Errors
// during async processing are logged but do not fail the submission.
package ingestion

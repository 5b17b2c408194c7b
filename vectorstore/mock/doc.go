// Package mock provides an in-memory vectorstore.Store with real
// cosine-similarity ranking, for exercising ingestion, retention, and
// resolution without a running Qdrant server.
package mock

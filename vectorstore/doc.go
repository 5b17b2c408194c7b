// Package vectorstore is the gateway to the vector database holding
// datapoint state records. The Store interface covers collection
// lifecycle, point upsert, similarity search, scrolled listing, and
// deletion; Qdrant is the production implementation, and
// vectorstore/mock provides an in-memory store for tests.
package vectorstore

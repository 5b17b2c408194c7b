package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Fails with an error wrapping ErrEmbeddingUnavailable on any transport
	// or model failure; there are no partial results.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel turns a message sequence into a single text answer.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Generate produces the model's answer for the given messages.
	// Fails with an error wrapping ErrChatUnavailable on any transport
	// or model failure.
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// ChatModel instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// ChatModel returns the answer generation service.
	ChatModel() ChatModel

	// Close releases resources held by the provider and its services.
	Close() error
}

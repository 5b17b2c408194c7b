package ai

import "errors"

var (
	// ErrEmbeddingUnavailable indicates the embedding service failed.
	// Callers must not substitute a placeholder vector: a zero or garbage
	// embedding would poison similarity search for the lifetime of the point.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrChatUnavailable indicates the chat model failed to generate.
	ErrChatUnavailable = errors.New("chat service unavailable")

	// ErrEmptyHost indicates the service host URL is empty.
	ErrEmptyHost = errors.New("host cannot be empty")

	// ErrInvalidHost indicates the service host URL is not a valid URL.
	ErrInvalidHost = errors.New("host must be a valid URL with scheme")

	// ErrEmptyEmbeddingModel indicates no embedding model was configured.
	ErrEmptyEmbeddingModel = errors.New("embedding model cannot be empty")

	// ErrEmptyChatModel indicates no chat model was configured.
	ErrEmptyChatModel = errors.New("chat model cannot be empty")
)

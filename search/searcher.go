package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bloop16/homestate/ai"
	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/vectorstore"
)

// DefaultMaxResults caps context retrieval when the caller passes a
// non-positive limit.
const DefaultMaxResults = 10

const answerSystemPrompt = "You are a smart home assistant. Answer using only the " +
	"device states listed below. Each line is one recorded state; the line tagged " +
	MostRecentTag + " is the current one. If the states do not contain the answer, say so.\n\n"

// Searcher retrieves stored device states for a query and grounds chat
// answers in them.
type Searcher struct {
	store      vectorstore.Store
	embedder   ai.Embedder
	chat       ai.ChatModel
	registry   *core.Registry
	collection string
	logger     *slog.Logger
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher) error

// WithSearcherCollection sets the collection to search.
func WithSearcherCollection(name string) SearcherOption {
	return func(s *Searcher) error {
		if name != "" {
			s.collection = name
		}
		return nil
	}
}

// WithSearcherLogger sets a custom logger.
// Default is slog.Default().
func WithSearcherLogger(logger *slog.Logger) SearcherOption {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher. The chat model may be nil when only
// BuildContext is needed; the registry may be nil to search without a
// readable-set restriction.
func NewSearcher(
	store vectorstore.Store,
	embedder ai.Embedder,
	chat ai.ChatModel,
	registry *core.Registry,
	opts ...SearcherOption,
) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		store:      store,
		embedder:   embedder,
		chat:       chat,
		registry:   registry,
		collection: "homestate",
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search embeds the query and returns the raw scored hits.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]core.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	params := vectorstore.SearchParams{Limit: maxResults}
	if s.registry != nil {
		params.DatapointIDs = s.registry.Readable()
	}

	return s.store.Search(ctx, s.collection, vector, params)
}

// BuildContext retrieves the states most relevant to the query and
// renders them as a recency-ordered context block. Retrieval failures
// degrade to an empty block: an answer without grounding is still more
// useful than no answer, and the miss is logged.
func (s *Searcher) BuildContext(ctx context.Context, query string, maxResults int) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	hits, err := s.Search(ctx, query, maxResults)
	if err != nil {
		s.logger.Warn("context retrieval failed, answering without device state", "query", query, "err", err)
		return "", nil
	}

	return RenderContext(hits), nil
}

// Answer retrieves context for the query and asks the chat model for a
// grounded answer.
func (s *Searcher) Answer(ctx context.Context, query string, maxResults int) (string, error) {
	if s.chat == nil {
		return "", ErrChatModelRequired
	}

	contextBlock, err := s.BuildContext(ctx, query, maxResults)
	if err != nil {
		return "", err
	}
	if contextBlock == "" {
		contextBlock = "No device states recorded."
	}

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: answerSystemPrompt + contextBlock},
		{Role: ai.RoleUser, Content: query},
	}
	return s.chat.Generate(ctx, messages)
}

// Copyright 2025 Bloop16
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/bloop16/homestate/ai"
	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/vectorstore"
)

const (
	// DefaultContainmentScore is the minimum similarity for a candidate
	// accepted on description or location containment.
	DefaultContainmentScore float32 = 0.6

	// DefaultSimilarityScore is the minimum similarity for a candidate
	// accepted on vector proximity alone.
	DefaultSimilarityScore float32 = 0.8

	// DefaultCandidateLimit is how many vector hits the last stage ranks.
	DefaultCandidateLimit = 10
)

// Resolver maps free-text or partial identifiers to full datapoint IDs.
// Cheap lexical stages run first over the readable set; vector similarity
// is the last resort. A resolver is safe for concurrent use.
type Resolver struct {
	registry *core.Registry
	embedder ai.Embedder
	store    vectorstore.Store

	collection       string
	containmentScore float32
	similarityScore  float32
	candidateLimit   int
	logger           *slog.Logger

	mu           sync.Mutex
	aliases      *aliasTable
	aliasVersion uint64
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver) error

// WithResolverCollection sets the collection queried by the vector stage.
func WithResolverCollection(name string) ResolverOption {
	return func(r *Resolver) error {
		if name != "" {
			r.collection = name
		}
		return nil
	}
}

// WithContainmentScore overrides the similarity floor for candidates
// accepted on description/location containment. The default is tuned
// empirically, not derived; adjust per deployment.
func WithContainmentScore(score float32) ResolverOption {
	return func(r *Resolver) error {
		if score < 0 || score > 1 {
			return ErrInvalidThreshold
		}
		r.containmentScore = score
		return nil
	}
}

// WithSimilarityScore overrides the similarity floor for candidates
// accepted on vector proximity alone.
func WithSimilarityScore(score float32) ResolverOption {
	return func(r *Resolver) error {
		if score < 0 || score > 1 {
			return ErrInvalidThreshold
		}
		r.similarityScore = score
		return nil
	}
}

// WithCandidateLimit sets how many vector hits the last stage considers.
func WithCandidateLimit(limit int) ResolverOption {
	return func(r *Resolver) error {
		if limit <= 0 {
			return ErrInvalidLimit
		}
		r.candidateLimit = limit
		return nil
	}
}

// WithResolverLogger sets a custom logger.
// Default is slog.Default().
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a resolver over the given readable set. The store
// and embedder may be nil, which disables the vector stage.
func NewResolver(
	registry *core.Registry,
	embedder ai.Embedder,
	store vectorstore.Store,
	opts ...ResolverOption,
) (*Resolver, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	r := &Resolver{
		registry:         registry,
		embedder:         embedder,
		store:            store,
		collection:       "homestate",
		containmentScore: DefaultContainmentScore,
		similarityScore:  DefaultSimilarityScore,
		candidateLimit:   DefaultCandidateLimit,
		logger:           slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve maps a query to a full datapoint ID from the readable set.
// A miss is not an error: the second return value reports whether a
// match was found. Resolve errors only on a blank query.
func (r *Resolver) Resolve(ctx context.Context, query string) (string, bool, error) {
	return r.ResolveWithMonitor(ctx, query, nil)
}

// ResolveWithMonitor resolves with stage callbacks for observability.
func (r *Resolver) ResolveWithMonitor(ctx context.Context, query string, monitor ResolveMonitor) (string, bool, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", false, ErrEmptyQuery
	}

	monitor.Start(query)

	// 1. The query already is a full readable ID.
	if r.registry.IsReadable(query) {
		monitor.ExactMatch(query)
		return query, true, nil
	}

	aliases := r.aliasTable()

	// 2. Exact alias hit on the short device name.
	if id, ok := aliases.lookup(query); ok {
		monitor.AliasMatch(query, id)
		return id, true, nil
	}

	// 3. Case-insensitive containment against alias keys.
	if alias, id, ok := aliases.substringMatch(query); ok {
		monitor.SubstringMatch(alias, id)
		return id, true, nil
	}

	// 4. Every query token appears somewhere in a full ID.
	if id, ok := aliases.wordOverlapMatch(query); ok {
		monitor.WordOverlapMatch(id)
		return id, true, nil
	}

	// 5. Vector similarity over stored points, restricted to readable
	// datapoints. Store or embedder failures degrade to no-match: the
	// lexical stages already had their chance and a resolution miss is
	// recoverable for the caller.
	if id, score, ok := r.resolveByVector(ctx, query, aliases.ids, monitor); ok {
		monitor.VectorMatch(id, score)
		return id, true, nil
	}

	monitor.NoMatch(query)
	return "", false, nil
}

func (r *Resolver) resolveByVector(ctx context.Context, query string, readable []string, monitor ResolveMonitor) (string, float32, bool) {
	if r.embedder == nil || r.store == nil || len(readable) == 0 {
		return "", 0, false
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Warn("query embedding failed, skipping vector stage", "err", err)
		return "", 0, false
	}

	hits, err := r.store.Search(ctx, r.collection, vector, vectorstore.SearchParams{
		Limit:        r.candidateLimit,
		DatapointIDs: readable,
	})
	if err != nil {
		r.logger.Warn("vector search failed, skipping vector stage", "err", err)
		return "", 0, false
	}
	monitor.AfterVectorSearch(hits)

	q := strings.ToLower(query)

	// Literal device-name containment beats any similarity score: home
	// automation names are short and ambiguous, so embedding proximity
	// is the weakest signal.
	for _, hit := range hits {
		name := strings.ToLower(hit.Record.DeviceName)
		if name != "" && (strings.Contains(name, q) || strings.Contains(q, name)) {
			return hit.Record.DatapointID, hit.Score, true
		}
	}

	for _, hit := range hits {
		if hit.Score > r.containmentScore && metadataContains(hit.Record, q) {
			return hit.Record.DatapointID, hit.Score, true
		}
	}

	for _, hit := range hits {
		if hit.Score > r.similarityScore {
			return hit.Record.DatapointID, hit.Score, true
		}
	}

	return "", 0, false
}

func metadataContains(record *core.DatapointRecord, q string) bool {
	for _, field := range []string{record.Description, record.Location} {
		f := strings.ToLower(field)
		if f != "" && (strings.Contains(f, q) || strings.Contains(q, f)) {
			return true
		}
	}
	return false
}

// aliasTable returns the current alias table, rebuilding it when the
// readable set has changed since the last build.
func (r *Resolver) aliasTable() *aliasTable {
	r.mu.Lock()
	defer r.mu.Unlock()

	version := r.registry.Version()
	if r.aliases == nil || r.aliasVersion != version {
		r.aliases = buildAliasTable(r.registry.Readable())
		r.aliasVersion = version
		r.logger.Debug("alias table rebuilt", "datapoints", len(r.aliases.ids), "version", version)
	}
	return r.aliases
}

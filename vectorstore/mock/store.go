package mock

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/vectorstore"
)

// Store is an in-memory vectorstore.Store for tests. It performs real
// cosine-similarity search over stored embeddings and counts calls so
// tests can assert on suppression behavior.
type Store struct {
	mu          sync.Mutex
	collections map[string]map[core.ID]*core.DatapointRecord
	dims        map[string]uint64

	// FailWith, when set, is returned by every operation. Use it to
	// simulate an unreachable backend.
	FailWith error

	upsertCalls int
	ensureCalls int
}

var _ vectorstore.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]map[core.ID]*core.DatapointRecord),
		dims:        make(map[string]uint64),
	}
}

// EnsureCollection creates the collection if missing. Idempotent.
func (s *Store) EnsureCollection(_ context.Context, collection string, dim uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}
	s.ensureCalls++
	if _, ok := s.collections[collection]; ok {
		return nil
	}
	s.collections[collection] = make(map[core.ID]*core.DatapointRecord)
	s.dims[collection] = dim
	return nil
}

// Upsert stores a copy of the record keyed by its point ID.
func (s *Store) Upsert(_ context.Context, collection string, record *core.DatapointRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}
	if len(record.Embedding) == 0 {
		return vectorstore.ErrEmptyVector
	}
	s.upsertCalls++
	points, ok := s.collections[collection]
	if !ok {
		points = make(map[core.ID]*core.DatapointRecord)
		s.collections[collection] = points
		s.dims[collection] = uint64(len(record.Embedding))
	}
	clone := *record
	points[record.Id] = &clone
	return nil
}

// Search ranks stored points by cosine similarity, descending.
func (s *Store) Search(_ context.Context, collection string, vector []float32, params vectorstore.SearchParams) ([]core.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if collection == "" {
		return nil, vectorstore.ErrCollectionRequired
	}
	if len(vector) == 0 {
		return nil, vectorstore.ErrEmptyVector
	}
	if params.Limit <= 0 {
		return nil, vectorstore.ErrInvalidLimit
	}

	var allowed map[string]struct{}
	if len(params.DatapointIDs) > 0 {
		allowed = make(map[string]struct{}, len(params.DatapointIDs))
		for _, id := range params.DatapointIDs {
			allowed[id] = struct{}{}
		}
	}

	var results []core.SearchResult
	for _, record := range s.collections[collection] {
		if allowed != nil {
			if _, ok := allowed[record.DatapointID]; !ok {
				continue
			}
		}
		score := cosineSimilarity(vector, record.Embedding)
		if params.ScoreThreshold > 0 && score < params.ScoreThreshold {
			continue
		}
		clone := *record
		results = append(results, core.SearchResult{Record: &clone, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > params.Limit {
		results = results[:params.Limit]
	}
	return results, nil
}

// ListByDatapoint returns copies of every point owned by one datapoint.
func (s *Store) ListByDatapoint(_ context.Context, collection, datapointID string) ([]*core.DatapointRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var records []*core.DatapointRecord
	for _, record := range s.collections[collection] {
		if record.DatapointID == datapointID {
			clone := *record
			records = append(records, &clone)
		}
	}
	return records, nil
}

// DatapointIDs returns the distinct owning datapoint IDs, sorted.
func (s *Store) DatapointIDs(_ context.Context, collection string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	seen := make(map[string]struct{})
	for _, record := range s.collections[collection] {
		seen[record.DatapointID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the given points.
func (s *Store) Delete(_ context.Context, collection string, ids []core.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	points := s.collections[collection]
	for _, id := range ids {
		delete(points, id)
	}
	return nil
}

// DeleteByDatapoint removes every point owned by one datapoint.
func (s *Store) DeleteByDatapoint(_ context.Context, collection, datapointID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	for id, record := range s.collections[collection] {
		if record.DatapointID == datapointID {
			delete(s.collections[collection], id)
		}
	}
	return nil
}

// Stats returns the point count for a collection.
func (s *Store) Stats(_ context.Context, collection string) (vectorstore.CollectionStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return vectorstore.CollectionStats{}, s.FailWith
	}
	return vectorstore.CollectionStats{
		Points: uint64(len(s.collections[collection])),
		Status: "green",
	}, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// UpsertCalls returns how many upserts were issued.
func (s *Store) UpsertCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertCalls
}

// EnsureCalls returns how many EnsureCollection calls were issued.
func (s *Store) EnsureCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureCalls
}

// Collections returns the number of existing collections.
func (s *Store) Collections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections)
}

// PointCount returns the number of points in a collection.
func (s *Store) PointCount(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[collection])
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

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


package vectorstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bloop16/homestate/core"
	"github.com/qdrant/go-client/qdrant"
)

const defaultScrollPageSize = 256

// Qdrant implements Store against a Qdrant server over gRPC.
type Qdrant struct {
	client         *qdrant.Client
	scrollPageSize uint32
	logger         *slog.Logger
}

var _ Store = (*Qdrant)(nil)

// Option configures a Qdrant store.
type Option func(*Qdrant) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(q *Qdrant) error {
		if logger == nil {
			logger = slog.Default()
		}
		q.logger = logger
		return nil
	}
}

// WithScrollPageSize sets the page size for scrolled listings.
func WithScrollPageSize(size uint32) Option {
	return func(q *Qdrant) error {
		if size == 0 {
			return fmt.Errorf("scroll page size must be positive")
		}
		q.scrollPageSize = size
		return nil
	}
}

// NewQdrant connects to a Qdrant server.
func NewQdrant(host string, port int, opts ...Option) (*Qdrant, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	q := &Qdrant{
		client:         client,
		scrollPageSize: defaultScrollPageSize,
		logger:         slog.Default().With("component", "qdrant"),
	}

	for _, opt := range opts {
		if err := opt(q); err != nil {
			client.Close()
			return nil, err
		}
	}

	return q, nil
}

// EnsureCollection creates the collection if it does not already exist.
func (q *Qdrant) EnsureCollection(ctx context.Context, collection string, dim uint64) error {
	if collection == "" {
		return ErrCollectionRequired
	}

	exists, err := q.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if exists {
		return nil
	}

	q.logger.Info("creating collection", "collection", collection, "dim", dim)
	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dim,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		// Two ingesters can race past the existence check; re-check before
		// treating creation failure as fatal.
		if exists, checkErr := q.client.CollectionExists(ctx, collection); checkErr == nil && exists {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Upsert writes one record as a point.
func (q *Qdrant) Upsert(ctx context.Context, collection string, record *core.DatapointRecord) error {
	if collection == "" {
		return ErrCollectionRequired
	}
	if len(record.Embedding) == 0 {
		return ErrEmptyVector
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           qdrant.PtrOf(true),
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewIDNum(uint64(record.Id)),
			Vectors: qdrant.NewVectors(record.Embedding...),
			Payload: qdrant.NewValueMap(RecordPayload(record)),
		}},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Search returns results sorted by similarity score descending.
func (q *Qdrant) Search(ctx context.Context, collection string, vector []float32, params SearchParams) ([]core.SearchResult, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}
	if len(vector) == 0 {
		return nil, ErrEmptyVector
	}
	if params.Limit <= 0 {
		return nil, ErrInvalidLimit
	}

	req := &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(params.Limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if params.ScoreThreshold > 0 {
		req.ScoreThreshold = qdrant.PtrOf(params.ScoreThreshold)
	}
	if len(params.DatapointIDs) > 0 {
		req.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchKeywords(KeyDatapointID, params.DatapointIDs...),
			},
		}
	}

	points, err := q.client.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	results := make([]core.SearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, core.SearchResult{
			Record: PayloadRecord(core.ID(point.GetId().GetNum()), valueMapToAny(point.GetPayload())),
			Score:  point.GetScore(),
		})
	}
	return results, nil
}

// ListByDatapoint scrolls all points owned by one datapoint.
func (q *Qdrant) ListByDatapoint(ctx context.Context, collection, datapointID string) ([]*core.DatapointRecord, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}

	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch(KeyDatapointID, datapointID),
		},
	}

	var records []*core.DatapointRecord
	err := q.scroll(ctx, collection, filter, qdrant.NewWithPayload(true), func(point *qdrant.RetrievedPoint) {
		records = append(records, PayloadRecord(core.ID(point.GetId().GetNum()), valueMapToAny(point.GetPayload())))
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DatapointIDs scans the collection and returns the distinct owning
// datapoint IDs. Only the datapoint_id payload field is fetched.
func (q *Qdrant) DatapointIDs(ctx context.Context, collection string) ([]string, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}

	seen := make(map[string]struct{})
	err := q.scroll(ctx, collection, nil, qdrant.NewWithPayloadInclude(KeyDatapointID), func(point *qdrant.RetrievedPoint) {
		if id := point.GetPayload()[KeyDatapointID].GetStringValue(); id != "" {
			seen[id] = struct{}{}
		}
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes the given points in one batch.
func (q *Qdrant) Delete(ctx context.Context, collection string, ids []core.ID) error {
	if collection == "" {
		return ErrCollectionRequired
	}
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*qdrant.PointId, len(ids))
	for i, id := range ids {
		pointIDs[i] = qdrant.NewIDNum(uint64(id))
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points:         qdrant.NewPointsSelector(pointIDs...),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteByDatapoint removes every point owned by one datapoint.
func (q *Qdrant) DeleteByDatapoint(ctx context.Context, collection, datapointID string) error {
	if collection == "" {
		return ErrCollectionRequired
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch(KeyDatapointID, datapointID),
			},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Stats returns point count and status for a collection.
func (q *Qdrant) Stats(ctx context.Context, collection string) (CollectionStats, error) {
	if collection == "" {
		return CollectionStats{}, ErrCollectionRequired
	}

	info, err := q.client.GetCollectionInfo(ctx, collection)
	if err != nil {
		return CollectionStats{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return CollectionStats{
		Points: info.GetPointsCount(),
		Status: info.GetStatus().String(),
	}, nil
}

// Close releases the gRPC connection.
func (q *Qdrant) Close() error {
	return q.client.Close()
}

// scroll pages through matching points, invoking fn for each one.
func (q *Qdrant) scroll(ctx context.Context, collection string, filter *qdrant.Filter, payload *qdrant.WithPayloadSelector, fn func(*qdrant.RetrievedPoint)) error {
	var offset *qdrant.PointId
	for {
		resp, err := q.client.GetPointsClient().Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: collection,
			Filter:         filter,
			Limit:          qdrant.PtrOf(q.scrollPageSize),
			Offset:         offset,
			WithPayload:    payload,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		for _, point := range resp.GetResult() {
			fn(point)
		}
		offset = resp.GetNextPageOffset()
		if offset == nil {
			return nil
		}
	}
}

// valueMapToAny converts a Qdrant payload into the generic map used by
// PayloadRecord. Nested structures do not occur in this payload shape.
func valueMapToAny(payload map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		switch kind := value.GetKind().(type) {
		case *qdrant.Value_BoolValue:
			out[key] = kind.BoolValue
		case *qdrant.Value_DoubleValue:
			out[key] = kind.DoubleValue
		case *qdrant.Value_IntegerValue:
			out[key] = kind.IntegerValue
		case *qdrant.Value_StringValue:
			out[key] = kind.StringValue
		default:
			// null or nested values carry no state we store
		}
	}
	return out
}

package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(datapointID string, ts time.Time, embedding []float32) *core.DatapointRecord {
	return &core.DatapointRecord{
		Id:          core.PointID(datapointID, ts),
		DatapointID: datapointID,
		Timestamp:   ts,
		Value:       true,
		Embedding:   embedding,
		DeviceName:  core.DeviceName(datapointID),
	}
}

func TestEnsureCollection_Idempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, "states", 3))
	require.NoError(t, s.EnsureCollection(ctx, "states", 3))
	assert.Equal(t, 1, s.Collections())
	assert.Equal(t, 2, s.EnsureCalls())
}

func TestSearch_RankingAndFilter(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Upsert(ctx, "states", record("zone1.a", now, []float32{1, 0, 0})))
	require.NoError(t, s.Upsert(ctx, "states", record("zone1.b", now, []float32{0.9, 0.1, 0})))
	require.NoError(t, s.Upsert(ctx, "states", record("zone1.c", now, []float32{0, 0, 1})))

	t.Run("sorted by score descending", func(t *testing.T) {
		results, err := s.Search(ctx, "states", []float32{1, 0, 0}, vectorstore.SearchParams{Limit: 10})
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "zone1.a", results[0].Record.DatapointID)
		assert.Equal(t, "zone1.b", results[1].Record.DatapointID)
		for i := 0; i < len(results)-1; i++ {
			assert.GreaterOrEqual(t, results[i].Score, results[i+1].Score)
		}
	})

	t.Run("score threshold", func(t *testing.T) {
		results, err := s.Search(ctx, "states", []float32{1, 0, 0}, vectorstore.SearchParams{Limit: 10, ScoreThreshold: 0.9})
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("datapoint filter", func(t *testing.T) {
		results, err := s.Search(ctx, "states", []float32{1, 0, 0}, vectorstore.SearchParams{
			Limit:        10,
			DatapointIDs: []string{"zone1.c"},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "zone1.c", results[0].Record.DatapointID)
	})

	t.Run("limit", func(t *testing.T) {
		results, err := s.Search(ctx, "states", []float32{1, 0, 0}, vectorstore.SearchParams{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestUpsert_OverwritesSameID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	r := record("zone1.a", ts, []float32{1, 0})
	require.NoError(t, s.Upsert(ctx, "states", r))
	require.NoError(t, s.Upsert(ctx, "states", r))
	assert.Equal(t, 1, s.PointCount("states"))
	assert.Equal(t, 2, s.UpsertCalls())
}

func TestDeleteOperations(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	a := record("zone1.a", now, []float32{1, 0})
	b := record("zone1.b", now, []float32{0, 1})
	require.NoError(t, s.Upsert(ctx, "states", a))
	require.NoError(t, s.Upsert(ctx, "states", b))

	require.NoError(t, s.Delete(ctx, "states", []core.ID{a.Id}))
	assert.Equal(t, 1, s.PointCount("states"))

	require.NoError(t, s.DeleteByDatapoint(ctx, "states", "zone1.b"))
	assert.Equal(t, 0, s.PointCount("states"))
}

func TestFailureInjection(t *testing.T) {
	s := NewStore()
	s.FailWith = vectorstore.ErrStoreUnavailable
	ctx := context.Background()

	_, err := s.Search(ctx, "states", []float32{1}, vectorstore.SearchParams{Limit: 1})
	assert.True(t, errors.Is(err, vectorstore.ErrStoreUnavailable))
	assert.Error(t, s.Upsert(ctx, "states", record("zone1.a", time.Now(), []float32{1})))
}

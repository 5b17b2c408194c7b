package search

import (
	"context"
	"testing"
	"time"

	"github.com/bloop16/homestate/ai/mock"
	"github.com/bloop16/homestate/core"
	storemock "github.com/bloop16/homestate/vectorstore/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(readable ...string) *core.Registry {
	reg := core.NewRegistry()
	reg.Update(readable, nil)
	return reg
}

// countingEmbedder wraps the mock embedder to detect vector-stage calls.
type countingEmbedder struct {
	*mock.MockEmbedder
	calls int
}

func (c *countingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.MockEmbedder.EmbedText(ctx, text)
}

func TestNewResolver(t *testing.T) {
	t.Run("nil registry", func(t *testing.T) {
		_, err := NewResolver(nil, nil, nil)
		assert.Equal(t, ErrRegistryRequired, err)
	})

	t.Run("nil store and embedder allowed", func(t *testing.T) {
		r, err := NewResolver(newRegistry(), nil, nil)
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("invalid thresholds", func(t *testing.T) {
		reg := newRegistry()
		_, err := NewResolver(reg, nil, nil, WithContainmentScore(1.5))
		assert.Equal(t, ErrInvalidThreshold, err)
		_, err = NewResolver(reg, nil, nil, WithSimilarityScore(-0.1))
		assert.Equal(t, ErrInvalidThreshold, err)
		_, err = NewResolver(reg, nil, nil, WithCandidateLimit(0))
		assert.Equal(t, ErrInvalidLimit, err)
	})
}

func TestResolver_EmptyQuery(t *testing.T) {
	r, err := NewResolver(newRegistry("zone1.temp"), nil, nil)
	require.NoError(t, err)

	_, _, err = r.Resolve(context.Background(), "   ")
	assert.Equal(t, ErrEmptyQuery, err)
}

func TestResolver_ExactID(t *testing.T) {
	r, err := NewResolver(newRegistry("zone1.livingroom.Temperatur_Wohnzimmer"), nil, nil)
	require.NoError(t, err)

	id, ok, err := r.Resolve(context.Background(), "zone1.livingroom.Temperatur_Wohnzimmer")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "zone1.livingroom.Temperatur_Wohnzimmer", id)
}

func TestResolver_AliasBeforeVector(t *testing.T) {
	embedder := &countingEmbedder{MockEmbedder: mock.NewMockEmbedder()}
	store := storemock.NewStore()

	r, err := NewResolver(newRegistry("zone1.livingroom.Temperatur_Wohnzimmer"), embedder, store)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
	}{
		{"short name", "Temperatur_Wohnzimmer"},
		{"lowercased", "temperatur_wohnzimmer"},
		{"spaces for underscores", "Temperatur Wohnzimmer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok, err := r.Resolve(context.Background(), tt.query)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "zone1.livingroom.Temperatur_Wohnzimmer", id)
		})
	}
	assert.Zero(t, embedder.calls, "alias stage must win before any vector call")
}

func TestResolver_Substring(t *testing.T) {
	r, err := NewResolver(newRegistry("hm-rpc.0.kitchen.Deckenlampe"), nil, nil)
	require.NoError(t, err)

	t.Run("query inside alias", func(t *testing.T) {
		id, ok, err := r.Resolve(context.Background(), "deckenlamp")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "hm-rpc.0.kitchen.Deckenlampe", id)
	})

	t.Run("alias inside query", func(t *testing.T) {
		id, ok, err := r.Resolve(context.Background(), "die deckenlampe bitte")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "hm-rpc.0.kitchen.Deckenlampe", id)
	})
}

func TestResolver_WordOverlap(t *testing.T) {
	r, err := NewResolver(newRegistry(
		"zone1.livingroom.Temperatur_Wohnzimmer",
		"zone1.bedroom.Temperatur_Schlafzimmer",
	), nil, nil)
	require.NoError(t, err)

	// Neither alias contains the whole query nor vice versa, but every
	// token longer than two characters appears in exactly one full ID.
	id, ok, err := r.Resolve(context.Background(), "schlafzimmer temperatur")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "zone1.bedroom.Temperatur_Schlafzimmer", id)
}

func TestResolver_NoMatchWithoutVectorStage(t *testing.T) {
	r, err := NewResolver(newRegistry("zone1.temp"), nil, nil)
	require.NoError(t, err)

	id, ok, err := r.Resolve(context.Background(), "garagentor")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func seedStore(t *testing.T, store *storemock.Store, records ...*core.DatapointRecord) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.EnsureCollection(ctx, "homestate", mock.DefaultDimension))
	for _, rec := range records {
		require.NoError(t, store.Upsert(ctx, "homestate", rec))
	}
}

func storedRecord(id string, vector []float32) *core.DatapointRecord {
	now := time.Now().UTC()
	return &core.DatapointRecord{
		Id:            core.PointID(id, now),
		DatapointID:   id,
		Timestamp:     now,
		Value:         true,
		Description:   "Beschreibung",
		Location:      "Zuhause",
		DataType:      core.DataTypeBoolean,
		FormattedText: "Beschreibung true (Zuhause) " + core.DeviceName(id) + " " + id,
		Embedding:     vector,
		DeviceName:    core.DeviceName(id),
		DeviceChannel: core.DeviceChannel(id),
	}
}

func TestResolver_VectorDeviceNameContainment(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	store := storemock.NewStore()
	ctx := context.Background()

	// The stored vector differs from the query vector, so the cosine
	// score stays below the pure-similarity floor. The stored device
	// name still contains the query, which must be enough. The device
	// name was recorded at ingestion time and no longer matches the
	// ID's current last segment, so the lexical stages cannot see it.
	queryVector, err := embedder.EmbedText(ctx, "aussensensor")
	require.NoError(t, err)
	stored := make([]float32, len(queryVector))
	copy(stored, queryVector)
	for i := 0; i < len(stored)/2; i++ {
		stored[i] = -stored[i]
	}

	rec := storedRecord("zone9.xq.VAL", stored)
	rec.DeviceName = "Aussensensor_Temperatur"
	seedStore(t, store, rec)

	r, err := NewResolver(newRegistry("zone9.xq.VAL"), embedder, store)
	require.NoError(t, err)

	id, ok, err := r.Resolve(ctx, "aussensensor")
	require.NoError(t, err)
	assert.True(t, ok, "device name containment accepts below the similarity floor")
	assert.Equal(t, "zone9.xq.VAL", id)
}

func TestResolver_VectorSimilarityFloor(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	store := storemock.NewStore()
	ctx := context.Background()

	queryVector, err := embedder.EmbedText(ctx, "wie warm ist es im bad")
	require.NoError(t, err)

	rec := storedRecord("zone9.xq.VAL", queryVector) // identical vector, score 1.0
	rec.Description = "Temperatur"
	seedStore(t, store, rec)

	r, err := NewResolver(newRegistry("zone9.xq.VAL"), embedder, store)
	require.NoError(t, err)

	id, ok, err := r.Resolve(ctx, "wie warm ist es im bad")
	require.NoError(t, err)
	assert.True(t, ok, "perfect similarity clears the 0.8 floor")
	assert.Equal(t, "zone9.xq.VAL", id)
}

func TestResolver_VectorRejectsWeakCandidates(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	store := storemock.NewStore()
	ctx := context.Background()

	queryVector, err := embedder.EmbedText(ctx, "unrelated question")
	require.NoError(t, err)
	weak := make([]float32, len(queryVector))
	copy(weak, queryVector)
	for i := 0; i < len(weak)/2; i++ {
		weak[i] = -weak[i]
	}

	rec := storedRecord("zone9.xq.VAL", weak)
	seedStore(t, store, rec)

	r, err := NewResolver(newRegistry("zone9.xq.VAL"), embedder, store)
	require.NoError(t, err)

	id, ok, err := r.Resolve(ctx, "unrelated question")
	require.NoError(t, err)
	assert.False(t, ok, "no name containment and weak similarity means no match")
	assert.Empty(t, id)
}

func TestResolver_VectorStageFailureDegradesToNoMatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	store := storemock.NewStore()
	store.FailWith = assert.AnError

	r, err := NewResolver(newRegistry("zone1.temp"), embedder, store)
	require.NoError(t, err)

	id, ok, err := r.Resolve(context.Background(), "irgendwas anderes")
	require.NoError(t, err, "vector stage failures must not surface")
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestResolver_AliasTableRebuiltOnRegistryChange(t *testing.T) {
	reg := newRegistry("zone1.old.Lampe_Flur")
	r, err := NewResolver(reg, nil, nil)
	require.NoError(t, err)
	ctx := context.Background()

	id, ok, err := r.Resolve(ctx, "Lampe_Flur")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "zone1.old.Lampe_Flur", id)

	reg.Update([]string{"zone2.new.Lampe_Flur"}, nil)

	id, ok, err = r.Resolve(ctx, "Lampe_Flur")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "zone2.new.Lampe_Flur", id, "stale alias table must not survive a registry update")
}

func TestResolver_Monitor(t *testing.T) {
	r, err := NewResolver(newRegistry("zone1.livingroom.Temperatur_Wohnzimmer"), nil, nil)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	id, ok, err := r.ResolveWithMonitor(context.Background(), "Temperatur_Wohnzimmer", monitor)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Temperatur_Wohnzimmer", monitor.started)
	assert.Equal(t, id, monitor.aliasID)
	assert.Empty(t, monitor.noMatch)
}

type recordingMonitor struct {
	noopMonitor
	started string
	aliasID string
	noMatch string
}

func (m *recordingMonitor) Start(query string)            { m.started = query }
func (m *recordingMonitor) AliasMatch(_, id string)       { m.aliasID = id }
func (m *recordingMonitor) NoMatch(query string)          { m.noMatch = query }

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"mixed separators", "Temperatur_Wohnzimmer.STATE", []string{"temperatur", "wohnzimmer", "state"}},
		{"short tokens dropped", "is it on", []string{}},
		{"hyphens and spaces", "hm-rpc kitchen lamp", []string{"rpc", "kitchen", "lamp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.query))
		})
	}
}

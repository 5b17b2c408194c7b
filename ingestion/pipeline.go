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


package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/bloop16/homestate/ai"
	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/vectorstore"
	"github.com/panjf2000/ants/v2"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "homestate"

// Pipeline turns qualifying state changes into stored vector points.
// Events for different datapoints may run concurrently; events for the
// same datapoint are effectively serialized by the rate limiter rather
// than by a lock.
type Pipeline struct {
	store      vectorstore.Store
	embedder   ai.Embedder
	limiter    *Limiter
	collection string
	pool       *ants.Pool
	logger     *slog.Logger

	ensureMu sync.Mutex
	ensured  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithCollection sets the target collection name.
// Default is DefaultCollection.
func WithCollection(name string) Option {
	return func(p *Pipeline) error {
		if name == "" {
			return vectorstore.ErrCollectionRequired
		}
		p.collection = name
		return nil
	}
}

// WithPoolSize sets the worker pool size for asynchronous ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	store vectorstore.Store,
	embedder ai.Embedder,
	limiter *Limiter,
	opts ...Option,
) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if limiter == nil {
		return nil, ErrLimiterRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:      store,
		embedder:   embedder,
		limiter:    limiter,
		collection: DefaultCollection,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest processes one state-change event synchronously. It returns
// whether a point was stored: suppressed events and datapoints without
// embedding enabled return (false, nil). Embedding or store failures
// abort the event; there is no retry and no placeholder vector, the next
// qualifying state change re-attempts naturally.
func (p *Pipeline) Ingest(ctx context.Context, datapointID string, state core.DatapointState, cfg core.DatapointConfig) (bool, error) {
	if datapointID == "" {
		return false, core.ErrEmptyDatapointID
	}
	if !cfg.Embed {
		return false, nil
	}
	if err := core.ValidateConfig(cfg); err != nil {
		return false, err
	}

	allowed, err := p.limiter.Allow(datapointID, state.Value)
	if err != nil {
		return false, err
	}
	if !allowed {
		return false, nil
	}

	text := core.FormatState(datapointID, cfg, state.Value)

	vector, err := p.embedder.EmbedText(ctx, text)
	if err != nil {
		return false, err
	}

	if err := p.ensureCollection(ctx, uint64(len(vector))); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	record := &core.DatapointRecord{
		Id:                core.PointID(datapointID, now),
		DatapointID:       datapointID,
		Timestamp:         now,
		Value:             state.Value,
		Description:       cfg.Description,
		Location:          cfg.Location,
		DataType:          cfg.DataType,
		FormattedText:     text,
		Embedding:         vector,
		AllowAutoChange:   cfg.AllowAutoChange,
		BooleanTrueValue:  cfg.BooleanTrueValue,
		BooleanFalseValue: cfg.BooleanFalseValue,
		DeviceName:        core.DeviceName(datapointID),
		DeviceChannel:     core.DeviceChannel(datapointID),
	}

	if err := p.store.Upsert(ctx, p.collection, record); err != nil {
		return false, err
	}

	p.logger.Debug("state ingested", "datapoint", datapointID, "point", record.Id)
	return true, nil
}

// IngestAsync submits an event to the worker pool. Errors during async
// processing are logged but do not surface to the caller; a suppressed
// or failed event is simply not stored.
func (p *Pipeline) IngestAsync(datapointID string, state core.DatapointState, cfg core.DatapointConfig) error {
	return p.pool.Submit(func() {
		if _, err := p.Ingest(context.Background(), datapointID, state, cfg); err != nil {
			p.logger.Error("ingestion failed", "datapoint", datapointID, "err", err)
		}
	})
}

// Collection returns the configured collection name.
func (p *Pipeline) Collection() string {
	return p.collection
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// ensureCollection creates the target collection on first use, sized to
// the embedder's output dimension. Failed attempts are retried on the
// next event rather than cached.
func (p *Pipeline) ensureCollection(ctx context.Context, dim uint64) error {
	p.ensureMu.Lock()
	defer p.ensureMu.Unlock()
	if p.ensured {
		return nil
	}
	if err := p.store.EnsureCollection(ctx, p.collection, dim); err != nil {
		return err
	}
	p.ensured = true
	return nil
}

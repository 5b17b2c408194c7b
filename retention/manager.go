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


package retention

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/vectorstore"
)

const (
	// DefaultMaxAgeDays is how long a point is kept by default.
	DefaultMaxAgeDays = 30

	// DefaultMaxEntries is how many points per datapoint are kept by default.
	DefaultMaxEntries = 100
)

// Policy bounds a datapoint's stored history. Zero fields fall back to
// the defaults; a negative field disables that bound.
type Policy struct {
	MaxAgeDays int
	MaxEntries int
}

func (p Policy) normalized() Policy {
	if p.MaxAgeDays == 0 {
		p.MaxAgeDays = DefaultMaxAgeDays
	}
	if p.MaxEntries == 0 {
		p.MaxEntries = DefaultMaxEntries
	}
	return p
}

// Report aggregates the outcome of a batch prune.
type Report struct {
	Processed int // Datapoints visited
	Removed   int // Points deleted
	Failed    int // Datapoints whose prune failed
}

// Manager prunes stored points by age and count.
type Manager struct {
	store      vectorstore.Store
	collection string
	policy     Policy
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager) error

// WithCollection sets the collection to prune.
func WithCollection(name string) Option {
	return func(m *Manager) error {
		if name != "" {
			m.collection = name
		}
		return nil
	}
}

// WithPolicy sets the default retention policy.
func WithPolicy(policy Policy) Option {
	return func(m *Manager) error {
		m.policy = policy.normalized()
		return nil
	}
}

// WithClock injects a time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) error {
		if now == nil {
			now = time.Now
		}
		m.now = now
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewManager creates a retention manager over the given store.
func NewManager(store vectorstore.Store, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	m := &Manager{
		store:      store,
		collection: "homestate",
		policy:     Policy{MaxAgeDays: DefaultMaxAgeDays, MaxEntries: DefaultMaxEntries},
		now:        time.Now,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// PruneDatapoint removes one datapoint's points that fall outside the
// policy: older than the age bound or beyond the count bound, as a
// union. Returns how many points were deleted.
func (m *Manager) PruneDatapoint(ctx context.Context, datapointID string, policy Policy) (int, error) {
	if datapointID == "" {
		return 0, core.ErrEmptyDatapointID
	}
	policy = policy.normalized()

	records, err := m.store.ListByDatapoint(ctx, m.collection, datapointID)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	var cutoff time.Time
	if policy.MaxAgeDays > 0 {
		cutoff = m.now().AddDate(0, 0, -policy.MaxAgeDays)
	}

	var doomed []core.ID
	for rank, rec := range records {
		beyondCount := policy.MaxEntries > 0 && rank >= policy.MaxEntries
		tooOld := policy.MaxAgeDays > 0 && rec.Timestamp.Before(cutoff)
		if beyondCount || tooOld {
			doomed = append(doomed, rec.Id)
		}
	}
	if len(doomed) == 0 {
		return 0, nil
	}

	if err := m.store.Delete(ctx, m.collection, doomed); err != nil {
		return 0, err
	}

	m.logger.Debug("datapoint pruned", "datapoint", datapointID, "removed", len(doomed), "kept", len(records)-len(doomed))
	return len(doomed), nil
}

// PruneAll prunes every enabled datapoint with the manager's policy.
// Per-datapoint failures are logged and counted but do not abort the
// batch.
func (m *Manager) PruneAll(ctx context.Context, enabled []string) Report {
	var report Report
	for _, id := range enabled {
		report.Processed++
		removed, err := m.PruneDatapoint(ctx, id, m.policy)
		if err != nil {
			report.Failed++
			m.logger.Warn("prune failed", "datapoint", id, "err", err)
			continue
		}
		report.Removed += removed
	}

	m.logger.Info("retention pass complete",
		"processed", report.Processed, "removed", report.Removed, "failed", report.Failed)
	return report
}

// PruneDisabled deletes the full history of every stored datapoint that
// is no longer in the enabled set. This is the only path that removes a
// datapoint's history entirely.
func (m *Manager) PruneDisabled(ctx context.Context, enabled []string) (Report, error) {
	stored, err := m.store.DatapointIDs(ctx, m.collection)
	if err != nil {
		return Report{}, err
	}

	enabledSet := make(map[string]struct{}, len(enabled))
	for _, id := range enabled {
		enabledSet[id] = struct{}{}
	}

	var report Report
	for _, id := range stored {
		if _, ok := enabledSet[id]; ok {
			continue
		}
		report.Processed++

		records, err := m.store.ListByDatapoint(ctx, m.collection, id)
		if err != nil {
			report.Failed++
			m.logger.Warn("listing disabled datapoint failed", "datapoint", id, "err", err)
			continue
		}
		if err := m.store.DeleteByDatapoint(ctx, m.collection, id); err != nil {
			report.Failed++
			m.logger.Warn("deleting disabled datapoint failed", "datapoint", id, "err", err)
			continue
		}

		report.Removed += len(records)
		m.logger.Info("disabled datapoint removed", "datapoint", id, "points", len(records))
	}
	return report, nil
}

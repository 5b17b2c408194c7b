package retention

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval is how often a scheduled retention pass runs.
const DefaultInterval = 24 * time.Hour

// EnabledFunc supplies the current enabled datapoint set for each pass.
type EnabledFunc func() []string

// Scheduler runs retention passes on a fixed interval with an initial
// delay, so pruning never competes with process start-up.
type Scheduler struct {
	manager      *Manager
	enabled      EnabledFunc
	interval     time.Duration
	initialDelay time.Duration
	logger       *slog.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler) error

// WithInterval sets the time between retention passes.
func WithInterval(interval time.Duration) SchedulerOption {
	return func(s *Scheduler) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		s.interval = interval
		return nil
	}
}

// WithInitialDelay sets the wait before the first pass.
func WithInitialDelay(delay time.Duration) SchedulerOption {
	return func(s *Scheduler) error {
		if delay < 0 {
			return ErrInvalidInterval
		}
		s.initialDelay = delay
		return nil
	}
}

// WithSchedulerLogger sets a custom logger.
// Default is slog.Default().
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScheduler creates a scheduler driving the given manager. The
// enabled function is consulted at the start of every pass.
func NewScheduler(manager *Manager, enabled EnabledFunc, opts ...SchedulerOption) (*Scheduler, error) {
	if manager == nil {
		return nil, ErrStoreRequired
	}

	s := &Scheduler{
		manager:      manager,
		enabled:      enabled,
		interval:     DefaultInterval,
		initialDelay: time.Minute,
		logger:       slog.Default(),
	}
	if s.enabled == nil {
		s.enabled = func() []string { return nil }
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Run executes retention passes until ctx is cancelled. It blocks.
func (s *Scheduler) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.initialDelay):
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.pass(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pass(ctx)
		}
	}
}

func (s *Scheduler) pass(ctx context.Context) {
	enabled := s.enabled()
	s.manager.PruneAll(ctx, enabled)

	if _, err := s.manager.PruneDisabled(ctx, enabled); err != nil {
		s.logger.Warn("disabled-datapoint cleanup failed", "err", err)
	}
}

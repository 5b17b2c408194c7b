package ingestion

import (
	"log/slog"
	"time"

	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/storage"
)

const (
	// DefaultDedupWindow suppresses repeated writes of an identical
	// (datapoint, value) pair. Legitimate oscillation (on/off/on) passes
	// because each flip changes the value key.
	DefaultDedupWindow = 5 * time.Minute

	// DefaultRateWindow bounds embedding-API call volume per datapoint,
	// regardless of value.
	DefaultRateWindow = 30 * time.Second

	rateLimitSuffix = "_ratelimit"
)

// Limiter decides whether a state change qualifies for ingestion. Two
// independent checks run against the write cache: exact-value dedup and a
// per-datapoint rate limit. Both must pass, and on pass both keys are
// stamped with the current time.
type Limiter struct {
	cache       storage.WriteCache
	dedupWindow time.Duration
	rateWindow  time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// LimiterOption configures a Limiter.
type LimiterOption func(*Limiter) error

// WithDedupWindow overrides the exact-value dedup window.
func WithDedupWindow(window time.Duration) LimiterOption {
	return func(l *Limiter) error {
		if window <= 0 {
			return ErrInvalidWindow
		}
		l.dedupWindow = window
		return nil
	}
}

// WithRateWindow overrides the per-datapoint rate-limit window.
func WithRateWindow(window time.Duration) LimiterOption {
	return func(l *Limiter) error {
		if window <= 0 {
			return ErrInvalidWindow
		}
		l.rateWindow = window
		return nil
	}
}

// WithClock injects a time source. Used by tests.
func WithClock(now func() time.Time) LimiterOption {
	return func(l *Limiter) error {
		if now == nil {
			now = time.Now
		}
		l.now = now
		return nil
	}
}

// WithLimiterLogger sets a custom logger.
// Default is slog.Default().
func WithLimiterLogger(logger *slog.Logger) LimiterOption {
	return func(l *Limiter) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLimiter creates a limiter backed by the given write cache.
func NewLimiter(cache storage.WriteCache, opts ...LimiterOption) (*Limiter, error) {
	if cache == nil {
		return nil, ErrWriteCacheRequired
	}

	l := &Limiter{
		cache:       cache,
		dedupWindow: DefaultDedupWindow,
		rateWindow:  DefaultRateWindow,
		now:         time.Now,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Allow reports whether the (datapoint, value) event passes both checks.
// A suppressed event is not an error: the caller treats it as a no-op.
func (l *Limiter) Allow(datapointID string, value any) (bool, error) {
	if datapointID == "" {
		return false, core.ErrEmptyDatapointID
	}

	valueKey := datapointID + "_" + core.FormatValue(value)
	rateKey := datapointID + rateLimitSuffix
	now := l.now()

	last, ok, err := l.cache.LastWrite(valueKey)
	if err != nil {
		return false, err
	}
	if ok && now.Sub(last) < l.dedupWindow {
		l.logger.Debug("duplicate value suppressed", "datapoint", datapointID, "age", now.Sub(last))
		return false, nil
	}

	last, ok, err = l.cache.LastWrite(rateKey)
	if err != nil {
		return false, err
	}
	if ok && now.Sub(last) < l.rateWindow {
		l.logger.Debug("rate limited", "datapoint", datapointID, "age", now.Sub(last))
		return false, nil
	}

	if err := l.cache.Stamp(valueKey, now, l.dedupWindow); err != nil {
		return false, err
	}
	if err := l.cache.Stamp(rateKey, now, l.rateWindow); err != nil {
		return false, err
	}
	return true, nil
}

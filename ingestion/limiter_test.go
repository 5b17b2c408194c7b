package ingestion

import (
	"testing"
	"time"

	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a manually advanced time source.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(t *testing.T, opts ...LimiterOption) (*Limiter, *testClock) {
	t.Helper()
	cache, backend, err := badger.NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter, err := NewLimiter(cache, append(opts, WithClock(clock.Now))...)
	require.NoError(t, err)
	return limiter, clock
}

func TestNewLimiter(t *testing.T) {
	t.Run("nil cache", func(t *testing.T) {
		_, err := NewLimiter(nil)
		assert.Equal(t, ErrWriteCacheRequired, err)
	})

	t.Run("invalid windows", func(t *testing.T) {
		cache, backend, err := badger.NewMemoryCache()
		require.NoError(t, err)
		defer backend.Close()

		_, err = NewLimiter(cache, WithDedupWindow(0))
		assert.Equal(t, ErrInvalidWindow, err)
		_, err = NewLimiter(cache, WithRateWindow(-time.Second))
		assert.Equal(t, ErrInvalidWindow, err)
	})
}

func TestLimiter_ExactValueDedup(t *testing.T) {
	limiter, clock := newTestLimiter(t)

	ok, err := limiter.Allow("zone1.door", true)
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("identical value inside window suppressed", func(t *testing.T) {
		clock.Advance(time.Minute)
		ok, err := limiter.Allow("zone1.door", true)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("identical value after window passes", func(t *testing.T) {
		clock.Advance(5 * time.Minute)
		ok, err := limiter.Allow("zone1.door", true)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter, clock := newTestLimiter(t)

	ok, err := limiter.Allow("zone1.temp", 21.0)
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("different value inside rate window suppressed", func(t *testing.T) {
		clock.Advance(10 * time.Second)
		ok, err := limiter.Allow("zone1.temp", 22.0)
		require.NoError(t, err)
		assert.False(t, ok, "rate limit applies regardless of value")
	})

	t.Run("different value after rate window passes", func(t *testing.T) {
		clock.Advance(30 * time.Second)
		ok, err := limiter.Allow("zone1.temp", 22.0)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("independent datapoints unaffected", func(t *testing.T) {
		ok, err := limiter.Allow("zone1.humidity", 55)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestLimiter_OscillationTolerated(t *testing.T) {
	// on/off/on with >30s spacing: the value key alternates, so only the
	// rate limit applies.
	limiter, clock := newTestLimiter(t)

	for i, value := range []bool{true, false, true} {
		if i > 0 {
			clock.Advance(31 * time.Second)
		}
		ok, err := limiter.Allow("zone1.switch", value)
		require.NoError(t, err)
		if i < 2 {
			assert.True(t, ok, "flip %d", i)
		} else {
			// Third event repeats the first value within 5 minutes.
			assert.False(t, ok, "repeat of recent value must be suppressed")
		}
	}
}

func TestLimiter_SuppressedEventDoesNotStamp(t *testing.T) {
	limiter, clock := newTestLimiter(t)

	ok, err := limiter.Allow("zone1.door", true)
	require.NoError(t, err)
	require.True(t, ok)

	// A suppressed event must not extend the rate window.
	clock.Advance(20 * time.Second)
	ok, err = limiter.Allow("zone1.door", false)
	require.NoError(t, err)
	require.False(t, ok)

	clock.Advance(11 * time.Second) // 31s after the accepted write
	ok, err = limiter.Allow("zone1.door", false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_EmptyDatapointID(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	_, err := limiter.Allow("", true)
	assert.ErrorIs(t, err, core.ErrEmptyDatapointID)
}

func TestLimiter_CustomWindows(t *testing.T) {
	limiter, clock := newTestLimiter(t, WithDedupWindow(time.Minute), WithRateWindow(time.Second))

	ok, err := limiter.Allow("zone1.a", 1)
	require.NoError(t, err)
	require.True(t, ok)

	clock.Advance(2 * time.Second)
	ok, err = limiter.Allow("zone1.a", 2)
	require.NoError(t, err)
	assert.True(t, ok, "short rate window elapsed")

	clock.Advance(2 * time.Second)
	ok, err = limiter.Allow("zone1.a", 1)
	require.NoError(t, err)
	assert.False(t, ok, "dedup window still open for value 1")
}

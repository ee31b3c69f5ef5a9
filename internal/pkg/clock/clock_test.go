package clock_test

import (
	"context"
	"testing"
	"time"

	"bikeshare/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReal_Sleep(t *testing.T) {
	t.Run("returns_after_delay", func(t *testing.T) {
		c := clock.NewReal()
		start := time.Now()

		require.NoError(t, c.Sleep(t.Context(), 10*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("returns_context_error_when_cancelled", func(t *testing.T) {
		c := clock.NewReal()
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := c.Sleep(ctx, time.Hour)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("zero_delay_returns_immediately", func(t *testing.T) {
		require.NoError(t, clock.NewReal().Sleep(t.Context(), 0))
	})
}

func TestAccelerated_Sleep(t *testing.T) {
	c := clock.NewAccelerated(1000)
	start := time.Now()

	require.NoError(t, c.Sleep(t.Context(), 5*time.Second))
	assert.Less(t, time.Since(start), time.Second)
}

func TestFake(t *testing.T) {
	start := time.Date(2025, 11, 16, 9, 0, 0, 0, time.UTC)

	t.Run("sleep_advances_time_and_records_delay", func(t *testing.T) {
		c := clock.NewFake(start)

		require.NoError(t, c.Sleep(t.Context(), 3*time.Second))
		require.NoError(t, c.Sleep(t.Context(), 2*time.Second))

		assert.Equal(t, start.Add(5*time.Second), c.Now())
		assert.Equal(t, []time.Duration{3 * time.Second, 2 * time.Second}, c.Sleeps())
	})

	t.Run("advance_moves_now", func(t *testing.T) {
		c := clock.NewFake(start)
		c.Advance(time.Minute)

		assert.Equal(t, start.Add(time.Minute), c.Now())
		assert.Empty(t, c.Sleeps())
	})

	t.Run("sleep_honours_cancelled_context", func(t *testing.T) {
		c := clock.NewFake(start)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		require.ErrorIs(t, c.Sleep(ctx, time.Second), context.Canceled)
		assert.Equal(t, start, c.Now())
	})
}

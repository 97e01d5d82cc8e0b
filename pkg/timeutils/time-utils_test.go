package timeutils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("succeeds on second attempt", func(t *testing.T) {
		calls := 0
		res, err := Retry(
			context.Background(),
			[]time.Duration{time.Millisecond, time.Millisecond, time.Millisecond},
			func(context.Context) (int, error) {
				calls++
				if calls < 2 {
					return 0, errBoom
				}
				return 42, nil
			},
			func(_ int, err error) bool { return err != nil },
		)
		require.NoError(t, err)
		assert.Equal(t, 42, res)
		assert.Equal(t, 2, calls)
	})

	t.Run("all attempts fail", func(t *testing.T) {
		calls := 0
		_, err := Retry(
			context.Background(),
			[]time.Duration{time.Millisecond, time.Millisecond},
			func(context.Context) (int, error) {
				calls++
				return 0, errBoom
			},
			func(_ int, err error) bool { return err != nil },
		)
		assert.ErrorIs(t, err, ErrAllAttemptsFailed)
		assert.Equal(t, 2, calls)
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Retry(
			ctx,
			[]time.Duration{time.Millisecond},
			func(context.Context) (int, error) { return 0, nil },
			func(int, error) bool { return false },
		)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSleepCtx(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepCtx(ctx, time.Hour), context.Canceled)
	assert.NoError(t, SleepCtx(context.Background(), time.Millisecond))
}

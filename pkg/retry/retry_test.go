package retry

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instant returns a policy whose waits are driven by a fake clock that a
// helper goroutine advances as soon as Do blocks.
func instant(t *testing.T, attempts int) (Config, *[]time.Duration) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	var waits []time.Duration

	cfg := DefaultConfig()
	cfg.MaxAttempts = attempts
	cfg.Jitter = 0
	cfg.Clock = clock
	cfg.OnRetry = func(_ int, _ error, delay time.Duration) {
		waits = append(waits, delay)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if clock.BlockUntilContext(ctx, 1) == nil {
				clock.Advance(delay)
			}
		}()
	}
	return cfg, &waits
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	cfg, waits := instant(t, 5)
	calls := 0

	err := Do(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)
}

func TestDo_GivesUp(t *testing.T) {
	cfg, waits := instant(t, 3)
	calls := 0

	err := Do(context.Background(), cfg, func() error {
		calls++
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "giving up after 3 attempts")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 3, calls)
	assert.Len(t, *waits, 2)
}

func TestDo_NonRetryableStops(t *testing.T) {
	cfg, waits := instant(t, 5)
	cfg.RetryableErrors = []string{"connection refused"}
	calls := 0

	err := Do(context.Background(), cfg, func() error {
		calls++
		return errors.New("password authentication failed")
	})

	assert.EqualError(t, err, "password authentication failed")
	assert.Equal(t, 1, calls)
	assert.Empty(t, *waits)
}

func TestDo_ContextCancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clock = clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	cfg.OnRetry = func(int, error, time.Duration) { cancel() }

	err := Do(ctx, cfg, func() error { return errors.New("refused") })

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_InvalidAttempts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 0

	err := Do(context.Background(), cfg, func() error { return nil })
	assert.Error(t, err)
}

func TestDoWithResult(t *testing.T) {
	cfg, _ := instant(t, 2)
	calls := 0

	got, err := DoWithResult(context.Background(), cfg, func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("i/o timeout")
		}
		return "ready", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ready", got)
}

func TestConfig_Backoff(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, time.Second, cfg.Backoff(-1))
	assert.Equal(t, time.Second, cfg.Backoff(0))
	assert.Equal(t, 4*time.Second, cfg.Backoff(2))
	assert.Equal(t, 30*time.Second, cfg.Backoff(10))
}

func TestConfig_Jitter(t *testing.T) {
	cfg := DefaultConfig()
	for i := 0; i < 50; i++ {
		d := cfg.jittered(time.Second)
		assert.GreaterOrEqual(t, d, 900*time.Millisecond)
		assert.LessOrEqual(t, d, 1100*time.Millisecond)
	}
	cfg.Jitter = 0
	assert.Equal(t, time.Second, cfg.jittered(time.Second))
}

func TestConfig_Retryable(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  error
		want bool
	}{
		{name: "nil", cfg: DefaultConfig(), err: nil, want: false},
		{name: "no patterns", cfg: DefaultConfig(), err: errors.New("anything"), want: true},
		{name: "postgres starting", cfg: PostgresConfig(), err: errors.New("FATAL: the database system is starting up"), want: true},
		{name: "postgres auth", cfg: PostgresConfig(), err: errors.New("password authentication failed"), want: false},
		{name: "redis loading", cfg: RedisConfig(), err: errors.New("LOADING Redis is loading the dataset in memory"), want: true},
		{name: "redis eof", cfg: RedisConfig(), err: errors.New("EOF"), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Retryable(tt.err))
		})
	}
}

func TestRedisConfig(t *testing.T) {
	cfg := RedisConfig()
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialDelay)
	assert.NotEmpty(t, cfg.RetryableErrors)
}

// Package retry retries connection attempts with capped exponential backoff.
package retry

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
)

// Config describes a backoff policy.
type Config struct {
	// MaxAttempts counts every call of fn, the first one included.
	MaxAttempts int
	// InitialDelay is the wait after the first failure.
	InitialDelay time.Duration
	// MaxDelay caps a single wait.
	MaxDelay time.Duration
	// Multiplier grows the wait after each failure.
	Multiplier float64
	// Jitter spreads each wait by up to ±Jitter of its length.
	Jitter float64
	// RetryableErrors are case-insensitive substrings of errors worth
	// retrying. Empty means every error is retried.
	RetryableErrors []string
	// OnRetry, when set, is called before waiting for the next attempt.
	OnRetry func(attempt int, err error, delay time.Duration)
	// Clock drives the waits. Nil means the real clock.
	Clock clockwork.Clock
}

// DefaultConfig returns five attempts starting at one second.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
		Jitter:       0.1,
	}
}

// PostgresConfig retries the failures seen while PostgreSQL is starting.
func PostgresConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryableErrors = []string{
		"connection refused",
		"connection reset",
		"connection timed out",
		"i/o timeout",
		"dial tcp",
		"network is unreachable",
		"no connection could be made",
		"server closed the connection",
		"too many connections",
		"the database system is starting up",
	}
	return cfg
}

// RedisConfig retries the initial Redis ping.
func RedisConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 4
	cfg.InitialDelay = 500 * time.Millisecond
	cfg.MaxDelay = 5 * time.Second
	cfg.RetryableErrors = []string{
		"connection refused",
		"connection reset",
		"i/o timeout",
		"dial tcp",
		"loading the dataset in memory",
		"eof",
	}
	return cfg
}

// Backoff returns the unjittered wait after the given failed attempt (0-based).
func (c Config) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}
	return time.Duration(delay)
}

// Retryable reports whether err matches the policy.
func (c Config) Retryable(err error) bool {
	if err == nil {
		return false
	}
	if len(c.RetryableErrors) == 0 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range c.RetryableErrors {
		if strings.Contains(msg, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

func (c Config) jittered(delay time.Duration) time.Duration {
	if c.Jitter <= 0 {
		return delay
	}
	//nolint:gosec // jitter needs no cryptographic randomness
	return delay + time.Duration(float64(delay)*c.Jitter*(rand.Float64()*2-1))
}

// Do calls fn until it succeeds, fails with a non-retryable error, the
// attempts run out or ctx ends.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult is Do for functions returning a value.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		return zero, errors.New("MaxAttempts must be greater than 0")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	var err error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}

		var result T
		if result, err = fn(); err == nil {
			return result, nil
		}
		if !cfg.Retryable(err) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		delay := cfg.jittered(cfg.Backoff(attempt))
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, err, delay)
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-clock.After(delay):
		}
	}

	return zero, errors.Wrapf(err, "giving up after %d attempts", cfg.MaxAttempts)
}

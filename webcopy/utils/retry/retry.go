// Package retry provides exponential backoff bounded by an elapsed-time budget.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDeadlineExceeded is returned when the next backoff would overrun Config.Deadline.
	ErrDeadlineExceeded = errors.New("retry deadline exceeded")
	// ErrMaxAttemptsExceeded is returned when max retry attempts are exceeded
	ErrMaxAttemptsExceeded = errors.New("max retry attempts exceeded")
	// ErrContextCancelled is returned when the context is cancelled during retry
	ErrContextCancelled = errors.New("context cancelled during retry")
)

// Config configures retry behavior
type Config struct {
	// InitialDelay is the delay before the first retry
	InitialDelay time.Duration
	// MaxDelay caps any single delay
	MaxDelay time.Duration
	// Multiplier grows the delay after every retry
	Multiplier float64
	// Deadline bounds the total elapsed time of one logical call, sleeps included. Zero means none.
	Deadline time.Duration
	// MaxAttempts bounds the number of attempts, including the first. Zero means unbounded.
	MaxAttempts int
	// IsRetryable determines if an error should be retried
	IsRetryable func(error) bool
	// Now and Sleep default to the wall clock; tests replace them.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultConfig returns the policy used for generation calls:
// 100ms initial delay doubling up to 60s, 600s total budget.
func DefaultConfig() Config {
	return Config{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
		Deadline:     600 * time.Second,
	}
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Config) setDefaults() {
	if c.InitialDelay <= 0 {
		c.InitialDelay = 100 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 60 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2.0
	}
	if c.IsRetryable == nil {
		c.IsRetryable = func(err error) bool { return err != nil }
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Sleep == nil {
		c.Sleep = SleepContext
	}
}

// Retry executes fn until it succeeds, returns a non-retryable error, or the
// attempt or deadline budget runs out. A delay that would end past the deadline
// is never started.
func Retry(ctx context.Context, config Config, fn func() error) error {
	config.setDefaults()

	start := config.Now()
	delay := config.InitialDelay

	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrContextCancelled, ctx.Err())
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !config.IsRetryable(err) {
			return err
		}
		if config.MaxAttempts > 0 && attempt >= config.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxAttemptsExceeded, attempt, err)
		}

		wait := min(delay, config.MaxDelay)
		if config.Deadline > 0 && config.Now().Sub(start)+wait > config.Deadline {
			return fmt.Errorf("%w after %d attempts (%s budget): %w", ErrDeadlineExceeded, attempt, config.Deadline, err)
		}
		if err := config.Sleep(ctx, wait); err != nil {
			return fmt.Errorf("%w: %w", ErrContextCancelled, err)
		}

		delay = min(time.Duration(float64(delay)*config.Multiplier), config.MaxDelay)
	}
}

// Package retry wraps a single pipeline invocation with bounded retries and
// exponential backoff.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/acailic/video-nugget/internal/application/common/slogger"
)

// Config defines retry behavior for one item.
type Config struct {
	Enabled    bool `json:"enabled"`
	MaxRetries int  `json:"max_retries"`
}

// MaxAttempts returns the invocation bound: 1 + MaxRetries when retries are
// enabled, exactly 1 otherwise.
func (c Config) MaxAttempts() int {
	if !c.Enabled || c.MaxRetries < 0 {
		return 1
	}
	return 1 + c.MaxRetries
}

// Operation represents an operation that can be retried.
type Operation func(ctx context.Context) error

// SleepFunc is a cancellable timed wait. Injectable for tests.
type SleepFunc func(ctx context.Context, delay time.Duration) error

// Executor handles retry logic with exponential backoff. The backoff is
// per-item: two executors backing off concurrently never coordinate.
type Executor struct {
	config  Config
	sleep   SleepFunc
	onRetry func(attempt int)
}

// NewExecutor creates a retry executor with the default cancellable sleep.
func NewExecutor(config Config) *Executor {
	return &Executor{
		config: config,
		sleep:  defaultSleep,
	}
}

// WithSleep overrides the backoff sleep function.
func (e *Executor) WithSleep(sleep SleepFunc) *Executor {
	if sleep != nil {
		e.sleep = sleep
	}
	return e
}

// WithOnRetry registers a hook invoked before each backoff wait. The hook
// receives the attempt number that just failed, starting at 1.
func (e *Executor) WithOnRetry(hook func(attempt int)) *Executor {
	e.onRetry = hook
	return e
}

// Execute runs the operation, retrying failed attempts with exponential
// backoff until the attempt bound is exhausted. The backoff wait must never
// be called while holding a job lock.
func (e *Executor) Execute(ctx context.Context, operation Operation) error {
	maxAttempts := e.config.MaxAttempts()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := operation(ctx)
		if err == nil {
			if attempt > 1 {
				slogger.Info(ctx, "Operation succeeded after retries", slogger.Fields{
					"attempt": attempt,
				})
			}
			return nil
		}

		lastErr = err

		if attempt == maxAttempts {
			break
		}

		if e.onRetry != nil {
			e.onRetry(attempt)
		}

		delay := BackoffDelay(attempt)
		slogger.Warn(ctx, "Operation failed, will retry", slogger.Fields3(
			"error", err.Error(),
			"attempt", attempt,
			"delay_seconds", delay.Seconds(),
		))

		if sleepErr := e.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}

	if maxAttempts > 1 {
		return fmt.Errorf("operation failed after %d attempts: %w", maxAttempts, lastErr)
	}
	return lastErr
}

// BackoffDelay returns the wait before retrying after the given failed
// attempt: 2^attempt seconds, attempt starting at 1.
func BackoffDelay(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

func defaultSleep(ctx context.Context, delay time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

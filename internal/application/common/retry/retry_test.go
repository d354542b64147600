package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky failure")

// recordedSleep captures backoff delays without waiting.
func recordedSleep(delays *[]time.Duration) SleepFunc {
	return func(_ context.Context, delay time.Duration) error {
		*delays = append(*delays, delay)
		return nil
	}
}

func TestConfigMaxAttempts(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   int
	}{
		{name: "disabled", config: Config{Enabled: false, MaxRetries: 3}, want: 1},
		{name: "enabled with retries", config: Config{Enabled: true, MaxRetries: 2}, want: 3},
		{name: "enabled zero retries", config: Config{Enabled: true, MaxRetries: 0}, want: 1},
		{name: "negative retries clamp to one", config: Config{Enabled: true, MaxRetries: -1}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.MaxAttempts())
		})
	}
}

func TestExecutorSucceedsFirstAttempt(t *testing.T) {
	var delays []time.Duration
	executor := NewExecutor(Config{Enabled: true, MaxRetries: 3}).WithSleep(recordedSleep(&delays))

	calls := 0
	err := executor.Execute(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays, "no backoff when the first attempt succeeds")
}

func TestExecutorRetriesWithExponentialBackoff(t *testing.T) {
	var delays []time.Duration
	executor := NewExecutor(Config{Enabled: true, MaxRetries: 2}).WithSleep(recordedSleep(&delays))

	calls := 0
	err := executor.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, delays)
}

func TestExecutorExhaustsAttempts(t *testing.T) {
	var delays []time.Duration
	executor := NewExecutor(Config{Enabled: true, MaxRetries: 2}).WithSleep(recordedSleep(&delays))

	calls := 0
	err := executor.Execute(context.Background(), func(context.Context) error {
		calls++
		return errFlaky
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, errFlaky)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Len(t, delays, 2, "no backoff after the final attempt")
}

func TestExecutorDisabledRunsOnce(t *testing.T) {
	executor := NewExecutor(Config{Enabled: false, MaxRetries: 5})

	calls := 0
	err := executor.Execute(context.Background(), func(context.Context) error {
		calls++
		return errFlaky
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, errFlaky, err, "single-attempt failures are returned unwrapped")
}

func TestExecutorOnRetryHook(t *testing.T) {
	var delays []time.Duration
	var attempts []int
	executor := NewExecutor(Config{Enabled: true, MaxRetries: 2}).
		WithSleep(recordedSleep(&delays)).
		WithOnRetry(func(attempt int) {
			attempts = append(attempts, attempt)
		})

	_ = executor.Execute(context.Background(), func(context.Context) error {
		return errFlaky
	})

	assert.Equal(t, []int{1, 2}, attempts, "hook fires with the failed attempt number")
}

func TestExecutorCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	executor := NewExecutor(Config{Enabled: true, MaxRetries: 3}).
		WithSleep(func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		})

	calls := 0
	err := executor.Execute(ctx, func(context.Context) error {
		calls++
		return errFlaky
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "cancellation during backoff stops further attempts")
}

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, BackoffDelay(1))
	assert.Equal(t, 4*time.Second, BackoffDelay(2))
	assert.Equal(t, 8*time.Second, BackoffDelay(3))
}

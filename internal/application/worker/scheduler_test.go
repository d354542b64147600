package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acailic/video-nugget/internal/adapter/outbound/storage"
	"github.com/acailic/video-nugget/internal/application/common/retry"
	"github.com/acailic/video-nugget/internal/domain/entity"
	"github.com/acailic/video-nugget/internal/domain/valueobject"
	"github.com/acailic/video-nugget/internal/port/outbound"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPipeline counts invocations and tracks the peak number of concurrent
// Process calls.
type stubPipeline struct {
	mu          sync.Mutex
	failures    map[string]int // remaining failures per URL
	calls       atomic.Int64
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
	delay       time.Duration
}

func newStubPipeline() *stubPipeline {
	return &stubPipeline{failures: make(map[string]int)}
}

func (p *stubPipeline) failTimes(url string, times int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[url] = times
}

func (p *stubPipeline) Process(
	_ context.Context,
	url string,
	_ entity.BatchConfig,
) (valueobject.PipelineOutput, error) {
	p.calls.Add(1)

	current := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		peak := p.maxInFlight.Load()
		if current <= peak || p.maxInFlight.CompareAndSwap(peak, current) {
			break
		}
	}

	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	p.mu.Lock()
	remaining := p.failures[url]
	if remaining > 0 {
		p.failures[url] = remaining - 1
		p.mu.Unlock()
		return valueobject.PipelineOutput{}, errors.New("pipeline failure")
	}
	p.mu.Unlock()

	return valueobject.PipelineOutput{
		VideoInfo: valueobject.VideoInfo{URL: url, Title: "stub", Duration: 60},
	}, nil
}

var _ outbound.VideoPipeline = (*stubPipeline)(nil)

func instantSleep(context.Context, time.Duration) error { return nil }

func runningJob(t *testing.T, store outbound.JobStore, config entity.BatchConfig, urls []string) *entity.BatchJob {
	t.Helper()
	job, err := entity.NewBatchJob("scheduler test", urls, config)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), job))
	require.NoError(t, store.Update(context.Background(), job.ID(), func(stored *entity.BatchJob) error {
		return stored.Start()
	}))
	return job
}

func schedulerConfig(t *testing.T, concurrency int) entity.BatchConfig {
	t.Helper()
	return entity.BatchConfig{
		OutputDirectory: t.TempDir(),
		ConcurrentJobs:  concurrency,
	}
}

func TestSchedulerProcessesEveryItem(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryJobStore()
	pipeline := newStubPipeline()
	scheduler := NewScheduler(pipeline, NewProgressTracker(store), nil)

	urls := []string{
		"https://example.com/1",
		"https://example.com/2",
		"https://example.com/3",
	}
	config := schedulerConfig(t, 2)
	job := runningJob(t, store, config, urls)

	scheduler.Run(ctx, job.ID(), urls, config)

	got, err := store.Get(ctx, job.ID())
	require.NoError(t, err)

	results := got.Results()
	require.Len(t, results, len(urls), "exactly one result per item")
	seen := make(map[string]bool, len(results))
	for _, result := range results {
		assert.Equal(t, valueobject.ProcessingStatusSuccess, result.Status)
		seen[result.URL] = true
	}
	assert.Len(t, seen, len(urls), "every URL reported exactly once")

	progress := got.Progress()
	assert.Equal(t, len(urls), progress.ProcessedVideos)
	assert.Zero(t, progress.FailedVideos)
}

func TestSchedulerHonorsConcurrencyBound(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryJobStore()
	pipeline := newStubPipeline()
	pipeline.delay = 20 * time.Millisecond
	scheduler := NewScheduler(pipeline, NewProgressTracker(store), nil)

	urls := make([]string, 8)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/%d", i)
	}
	config := schedulerConfig(t, 2)
	job := runningJob(t, store, config, urls)

	scheduler.Run(ctx, job.ID(), urls, config)

	assert.LessOrEqual(t, pipeline.maxInFlight.Load(), int64(2),
		"no more than ConcurrentJobs pipeline invocations at any instant")
	assert.Equal(t, int64(len(urls)), pipeline.calls.Load())
}

func TestSchedulerRetriesFailedItems(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryJobStore()
	pipeline := newStubPipeline()
	pipeline.failTimes("https://example.com/flaky", 2)
	scheduler := NewScheduler(pipeline, NewProgressTracker(store), nil).WithSleep(instantSleep)

	urls := []string{"https://example.com/flaky"}
	config := schedulerConfig(t, 1)
	config.RetryFailed = true
	config.MaxRetries = 2
	job := runningJob(t, store, config, urls)

	scheduler.Run(ctx, job.ID(), urls, config)

	assert.Equal(t, int64(3), pipeline.calls.Load(), "two retries after the initial attempt")

	got, err := store.Get(ctx, job.ID())
	require.NoError(t, err)
	results := got.Results()
	require.Len(t, results, 1)
	assert.Equal(t, valueobject.ProcessingStatusSuccess, results[0].Status)
}

func TestSchedulerBoundsRetryAttempts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryJobStore()
	pipeline := newStubPipeline()
	pipeline.failTimes("https://example.com/broken", 100)
	scheduler := NewScheduler(pipeline, NewProgressTracker(store), nil).WithSleep(instantSleep)

	urls := []string{"https://example.com/broken"}
	config := schedulerConfig(t, 1)
	config.RetryFailed = true
	config.MaxRetries = 1
	job := runningJob(t, store, config, urls)

	scheduler.Run(ctx, job.ID(), urls, config)

	assert.Equal(t, int64(2), pipeline.calls.Load(), "1 + MaxRetries invocations, then give up")

	got, err := store.Get(ctx, job.ID())
	require.NoError(t, err)
	results := got.Results()
	require.Len(t, results, 1)
	assert.Equal(t, valueobject.ProcessingStatusFailed, results[0].Status)
	require.NotNil(t, results[0].ErrorMessage)
	assert.Contains(t, *results[0].ErrorMessage, "pipeline failure")
}

func TestSchedulerNoRetryWhenDisabled(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryJobStore()
	pipeline := newStubPipeline()
	pipeline.failTimes("https://example.com/broken", 100)
	scheduler := NewScheduler(pipeline, NewProgressTracker(store), nil).WithSleep(instantSleep)

	urls := []string{"https://example.com/broken"}
	config := schedulerConfig(t, 1)
	job := runningJob(t, store, config, urls)

	scheduler.Run(ctx, job.ID(), urls, config)

	assert.Equal(t, int64(1), pipeline.calls.Load())
}

func TestSchedulerEmptyBatchReturnsImmediately(t *testing.T) {
	store := storage.NewMemoryJobStore()
	pipeline := newStubPipeline()
	scheduler := NewScheduler(pipeline, NewProgressTracker(store), nil)

	config := schedulerConfig(t, 3)
	job := runningJob(t, store, config, nil)

	scheduler.Run(context.Background(), job.ID(), nil, config)

	assert.Zero(t, pipeline.calls.Load())
}

func TestSchedulerSkipsRemainingItemsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := storage.NewMemoryJobStore()
	pipeline := newStubPipeline()
	scheduler := NewScheduler(pipeline, NewProgressTracker(store), nil)

	urls := []string{"https://example.com/1", "https://example.com/2"}
	config := schedulerConfig(t, 1)
	job := runningJob(t, store, config, urls)

	scheduler.Run(ctx, job.ID(), urls, config)

	got, err := store.Get(context.Background(), job.ID())
	require.NoError(t, err)

	results := got.Results()
	require.Len(t, results, len(urls), "the result stream still carries one entry per item")
	for _, result := range results {
		assert.Equal(t, valueobject.ProcessingStatusSkipped, result.Status)
	}
	assert.Zero(t, pipeline.calls.Load(), "cancelled before dispatch, nothing ran")
}

func TestNewSchedulerRequiresCollaborators(t *testing.T) {
	store := storage.NewMemoryJobStore()
	tracker := NewProgressTracker(store)

	assert.Panics(t, func() { NewScheduler(nil, tracker, nil) })
	assert.Panics(t, func() { NewScheduler(newStubPipeline(), nil, nil) })
	assert.Panics(t, func() { NewProgressTracker(nil) })
}

func TestSchedulerRetryConfigMatchesJobConfig(t *testing.T) {
	config := schedulerConfig(t, 1)
	config.RetryFailed = true
	config.MaxRetries = 2

	executor := retry.Config{Enabled: config.RetryFailed, MaxRetries: config.MaxRetries}
	assert.Equal(t, config.MaxAttempts(), executor.MaxAttempts())
}

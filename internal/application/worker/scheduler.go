// Package worker runs the per-item video pipeline over a batch under a
// bounded concurrency budget and streams results back to the job store.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/acailic/video-nugget/internal/application/common/retry"
	"github.com/acailic/video-nugget/internal/application/common/slogger"
	"github.com/acailic/video-nugget/internal/domain/entity"
	"github.com/acailic/video-nugget/internal/domain/valueobject"
	"github.com/acailic/video-nugget/internal/port/outbound"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Scheduler fans a job's items out to a bounded worker pool. Each worker
// invokes the retry-wrapped pipeline and publishes exactly one BatchResult on
// the completion stream; a single collector loop drains the stream and feeds
// the progress tracker. No lock is held across item execution — only the
// per-job record update inside the tracker is synchronized.
type Scheduler struct {
	pipeline outbound.VideoPipeline
	tracker  *ProgressTracker
	metrics  *PipelineMetrics
	sleep    retry.SleepFunc
}

// NewScheduler creates a scheduler. metrics may be nil to disable
// instrumentation.
func NewScheduler(pipeline outbound.VideoPipeline, tracker *ProgressTracker, metrics *PipelineMetrics) *Scheduler {
	if pipeline == nil {
		panic("pipeline cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}
	return &Scheduler{
		pipeline: pipeline,
		tracker:  tracker,
		metrics:  metrics,
	}
}

// WithSleep overrides the retry backoff sleep for all workers. Tests use this
// to avoid real multi-second waits.
func (s *Scheduler) WithSleep(sleep retry.SleepFunc) *Scheduler {
	s.sleep = sleep
	return s
}

// Run processes every item of the job and blocks until all results have been
// collected. Results arrive in completion order, which is unrelated to the
// item list's order. At no instant do more than
// min(config.ConcurrentJobs, len(urls)) pipeline invocations run.
func (s *Scheduler) Run(ctx context.Context, jobID uuid.UUID, urls []string, config entity.BatchConfig) {
	total := len(urls)
	if total == 0 {
		return
	}

	concurrency := config.EffectiveConcurrency(total)
	results := make(chan entity.BatchResult, concurrency)

	slogger.Info(ctx, "Dispatching batch items", slogger.Fields3(
		"job_id", jobID.String(),
		"total_items", total,
		"concurrency", concurrency,
	))

	batchStart := time.Now()
	go s.dispatch(ctx, jobID, urls, config, concurrency, results)

	for result := range results {
		s.tracker.Record(ctx, jobID, result)
	}

	s.metrics.RecordBatchDuration(ctx, time.Since(batchStart).Seconds())
}

// dispatch spawns one worker per item, gated by the semaphore, and closes the
// completion stream once every worker has reported.
func (s *Scheduler) dispatch(
	ctx context.Context,
	jobID uuid.UUID,
	urls []string,
	config entity.BatchConfig,
	concurrency int,
	results chan<- entity.BatchResult,
) {
	sem := semaphore.NewWeighted(int64(concurrency))
	var wg sync.WaitGroup

	for _, url := range urls {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Process-level cancellation: the remaining items never ran.
			results <- skippedResult(url, err)
			continue
		}

		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			defer sem.Release(1)

			s.tracker.TrackDispatch(ctx, jobID, url)
			results <- s.processItem(ctx, jobID, url, config)
		}(url)
	}

	wg.Wait()
	close(results)
}

// processItem runs the pipeline for one URL under the job's retry policy and
// turns the outcome into a single final BatchResult.
func (s *Scheduler) processItem(
	ctx context.Context,
	jobID uuid.UUID,
	url string,
	config entity.BatchConfig,
) entity.BatchResult {
	start := time.Now()

	executor := retry.NewExecutor(retry.Config{
		Enabled:    config.RetryFailed,
		MaxRetries: config.MaxRetries,
	})
	if s.sleep != nil {
		executor = executor.WithSleep(s.sleep)
	}
	executor = executor.WithOnRetry(func(attempt int) {
		s.metrics.RecordRetry(ctx, attempt)
		slogger.Debug(ctx, "Item entering retry backoff", slogger.Fields3(
			"job_id", jobID.String(),
			"url", url,
			"status", valueobject.ProcessingStatusRetrying.String(),
		))
	})

	var output valueobject.PipelineOutput
	err := executor.Execute(ctx, func(ctx context.Context) error {
		out, processErr := s.pipeline.Process(ctx, url, config)
		if processErr != nil {
			return processErr
		}
		output = out
		return nil
	})

	elapsed := time.Since(start).Seconds()
	s.metrics.RecordItem(ctx, elapsed, err == nil)

	if err != nil {
		return entity.NewFailedResult(url, err.Error(), elapsed)
	}
	return entity.NewSuccessResult(url, output, elapsed)
}

func skippedResult(url string, err error) entity.BatchResult {
	message := err.Error()
	return entity.BatchResult{
		URL:          url,
		Status:       valueobject.ProcessingStatusSkipped,
		ErrorMessage: &message,
	}
}

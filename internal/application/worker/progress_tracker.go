package worker

import (
	"context"

	"github.com/acailic/video-nugget/internal/application/common/slogger"
	"github.com/acailic/video-nugget/internal/domain/entity"
	"github.com/acailic/video-nugget/internal/port/outbound"

	"github.com/google/uuid"
)

// ProgressTracker applies streaming results to the job record. Every update
// runs under the job's store lock; failures are logged, never propagated,
// because a lost progress update must not abort the batch.
type ProgressTracker struct {
	store outbound.JobStore
}

// NewProgressTracker creates a progress tracker bound to the job store.
func NewProgressTracker(store outbound.JobStore) *ProgressTracker {
	if store == nil {
		panic("store cannot be nil")
	}
	return &ProgressTracker{store: store}
}

// Record appends one result to the job and recomputes its derived progress.
func (t *ProgressTracker) Record(ctx context.Context, jobID uuid.UUID, result entity.BatchResult) {
	err := t.store.Update(ctx, jobID, func(job *entity.BatchJob) error {
		job.AppendResult(result)
		return nil
	})
	if err != nil {
		slogger.ErrorWithError(ctx, err, "Failed to record batch result", slogger.Fields2(
			"job_id", jobID.String(),
			"url", result.URL,
		))
		return
	}

	slogger.Debug(ctx, "Recorded batch result", slogger.Fields3(
		"job_id", jobID.String(),
		"url", result.URL,
		"status", result.Status.String(),
	))
}

// TrackDispatch marks the item a worker just picked up as in flight.
func (t *ProgressTracker) TrackDispatch(ctx context.Context, jobID uuid.UUID, url string) {
	err := t.store.Update(ctx, jobID, func(job *entity.BatchJob) error {
		job.SetCurrentVideo(url)
		return nil
	})
	if err != nil {
		slogger.ErrorWithError(ctx, err, "Failed to track dispatched item", slogger.Fields2(
			"job_id", jobID.String(),
			"url", url,
		))
	}
}

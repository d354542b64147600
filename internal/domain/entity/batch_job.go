package entity

import (
	"time"

	"github.com/acailic/video-nugget/internal/domain/valueobject"

	"github.com/google/uuid"
)

// BatchJob represents a batch of video URLs processed under one configuration.
// The job is owned by the job store; mutations happen only through the
// controller and the scheduler's collector, serialized per job.
type BatchJob struct {
	id          uuid.UUID
	name        string
	urls        []string
	config      BatchConfig
	status      valueobject.BatchStatus
	createdAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time
	progress    BatchProgress
	results     []BatchResult
}

// NewBatchJob creates a new BatchJob in the pending state with zeroed progress.
func NewBatchJob(name string, urls []string, config BatchConfig) (*BatchJob, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &BatchJob{
		id:        uuid.New(),
		name:      name,
		urls:      append([]string(nil), urls...),
		config:    config.clone(),
		status:    valueobject.BatchStatusPending,
		createdAt: time.Now(),
		progress:  newBatchProgress(len(urls)),
		results:   make([]BatchResult, 0, len(urls)),
	}, nil
}

// ID returns the job ID.
func (j *BatchJob) ID() uuid.UUID {
	return j.id
}

// Name returns the display name.
func (j *BatchJob) Name() string {
	return j.name
}

// URLs returns a copy of the job's work item URLs.
func (j *BatchJob) URLs() []string {
	return append([]string(nil), j.urls...)
}

// Config returns the batch configuration.
func (j *BatchJob) Config() BatchConfig {
	return j.config.clone()
}

// Status returns the current batch status.
func (j *BatchJob) Status() valueobject.BatchStatus {
	return j.status
}

// CreatedAt returns the creation timestamp.
func (j *BatchJob) CreatedAt() time.Time {
	return j.createdAt
}

// StartedAt returns the start timestamp, nil until the job starts.
func (j *BatchJob) StartedAt() *time.Time {
	return j.startedAt
}

// CompletedAt returns the completion timestamp, nil until the job finishes.
func (j *BatchJob) CompletedAt() *time.Time {
	return j.completedAt
}

// Progress returns a copy of the derived progress.
func (j *BatchJob) Progress() BatchProgress {
	return j.progress.clone()
}

// Results returns a copy of the accumulated results in completion order.
func (j *BatchJob) Results() []BatchResult {
	results := make([]BatchResult, len(j.results))
	for i, result := range j.results {
		results[i] = result.clone()
	}
	return results
}

// IsTerminal returns true if the job is in a terminal state.
func (j *BatchJob) IsTerminal() bool {
	return j.status.IsTerminal()
}

// Duration returns the wall-clock job duration if the job finished.
func (j *BatchJob) Duration() *time.Duration {
	if j.startedAt == nil || j.completedAt == nil {
		return nil
	}
	duration := j.completedAt.Sub(*j.startedAt)
	return &duration
}

// Start marks the job as running and records the start instant.
func (j *BatchJob) Start() error {
	if j.status != valueobject.BatchStatusPending {
		return NewDomainError("cannot start job in current status", CodeInvalidStatusTransition)
	}

	now := time.Now()
	j.status = valueobject.BatchStatusRunning
	j.startedAt = &now
	j.progress.StartTime = &now
	return nil
}

// Pause flips a running job to paused. In-flight item work is not suspended.
func (j *BatchJob) Pause() error {
	if j.status != valueobject.BatchStatusRunning {
		return NewDomainError("can only pause running jobs", CodeInvalidStatusTransition)
	}
	j.status = valueobject.BatchStatusPaused
	return nil
}

// Resume flips a paused job back to running.
func (j *BatchJob) Resume() error {
	if j.status != valueobject.BatchStatusPaused {
		return NewDomainError("can only resume paused jobs", CodeInvalidStatusTransition)
	}
	j.status = valueobject.BatchStatusRunning
	return nil
}

// Cancel marks a running job as cancelled. The cancellation is advisory:
// already-dispatched item work runs to completion and still reports results.
func (j *BatchJob) Cancel() error {
	if j.status != valueobject.BatchStatusRunning {
		return NewDomainError("can only cancel running jobs", CodeInvalidStatusTransition)
	}

	now := time.Now()
	j.status = valueobject.BatchStatusCancelled
	j.completedAt = &now
	return nil
}

// AppendResult records one item outcome and recomputes the derived progress.
// Results arrive in completion order, not submission order.
func (j *BatchJob) AppendResult(result BatchResult) {
	j.results = append(j.results, result.clone())
	j.progress.ProcessedVideos = len(j.results)
	if result.IsFailed() {
		j.progress.FailedVideos++
	}
	j.progress.recalculate(time.Now())
}

// SetCurrentVideo records the most recently dispatched item URL.
func (j *BatchJob) SetCurrentVideo(url string) {
	j.progress.CurrentVideo = &url
}

// Complete marks the job as completed. Rejected for cancelled jobs, which keep
// their terminal status even after late results drain.
func (j *BatchJob) Complete() error {
	if !j.status.CanTransitionTo(valueobject.BatchStatusCompleted) {
		return NewDomainError("cannot complete job in current status", CodeInvalidStatusTransition)
	}

	now := time.Now()
	j.status = valueobject.BatchStatusCompleted
	j.completedAt = &now
	j.finalizeProgress()
	return nil
}

// Fail marks the job as failed. Reached when every item in a non-empty batch
// failed.
func (j *BatchJob) Fail() error {
	if !j.status.CanTransitionTo(valueobject.BatchStatusFailed) {
		return NewDomainError("cannot fail job in current status", CodeInvalidStatusTransition)
	}

	now := time.Now()
	j.status = valueobject.BatchStatusFailed
	j.completedAt = &now
	j.finalizeProgress()
	return nil
}

// AllItemsFailed reports whether every item of a non-empty batch failed.
func (j *BatchJob) AllItemsFailed() bool {
	total := j.progress.TotalVideos
	return total > 0 && j.progress.FailedVideos == total
}

// finalizeProgress pins the derived fields once the result stream is drained.
// Zero-item batches stay at 0% by definition.
func (j *BatchJob) finalizeProgress() {
	if j.progress.TotalVideos > 0 {
		j.progress.Percentage = percentComplete
	}
	eta := 0.0
	j.progress.ETAMinutes = &eta
	j.progress.CurrentVideo = nil
}

// Clone returns a deep copy of the job, safe to hand to readers while the
// scheduler keeps mutating the stored instance.
func (j *BatchJob) Clone() *BatchJob {
	cloned := &BatchJob{
		id:        j.id,
		name:      j.name,
		urls:      append([]string(nil), j.urls...),
		config:    j.config.clone(),
		status:    j.status,
		createdAt: j.createdAt,
		progress:  j.progress.clone(),
		results:   make([]BatchResult, len(j.results)),
	}
	for i, result := range j.results {
		cloned.results[i] = result.clone()
	}
	if j.startedAt != nil {
		started := *j.startedAt
		cloned.startedAt = &started
	}
	if j.completedAt != nil {
		completed := *j.completedAt
		cloned.completedAt = &completed
	}
	return cloned
}

// Equal compares two BatchJob entities by identity.
func (j *BatchJob) Equal(other *BatchJob) bool {
	if other == nil {
		return false
	}
	return j.id == other.id
}

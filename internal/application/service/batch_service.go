// Package service implements the batch engine's public operations: the job
// controller state machine and the report generator.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/acailic/video-nugget/internal/application/common"
	"github.com/acailic/video-nugget/internal/application/common/slogger"
	"github.com/acailic/video-nugget/internal/application/worker"
	"github.com/acailic/video-nugget/internal/domain/entity"
	domainerrors "github.com/acailic/video-nugget/internal/domain/errors/domain"
	"github.com/acailic/video-nugget/internal/domain/messaging"
	"github.com/acailic/video-nugget/internal/domain/valueobject"
	"github.com/acailic/video-nugget/internal/port/inbound"
	"github.com/acailic/video-nugget/internal/port/outbound"

	"github.com/google/uuid"
)

// DefaultBatchService implements the batch job controller. All mutating
// operations are serialized per job through the store; operations on
// different jobs never block each other.
type DefaultBatchService struct {
	store     outbound.JobStore
	scheduler *worker.Scheduler
	publisher outbound.EventPublisher
	playlist  outbound.PlaylistResolver
	reports   *ReportGenerator
}

// NewBatchService creates the batch controller. The playlist resolver is
// optional; the other collaborators are required.
func NewBatchService(
	store outbound.JobStore,
	scheduler *worker.Scheduler,
	publisher outbound.EventPublisher,
	playlist outbound.PlaylistResolver,
) *DefaultBatchService {
	if store == nil {
		panic("store cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if publisher == nil {
		panic("publisher cannot be nil")
	}
	return &DefaultBatchService{
		store:     store,
		scheduler: scheduler,
		publisher: publisher,
		playlist:  playlist,
		reports:   NewReportGenerator(store),
	}
}

// CreateBatchJob builds a pending job and registers it in the store.
func (s *DefaultBatchService) CreateBatchJob(
	ctx context.Context,
	name string,
	urls []string,
	config entity.BatchConfig,
) (uuid.UUID, error) {
	job, err := entity.NewBatchJob(name, urls, config)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.store.Save(ctx, job); err != nil {
		return uuid.Nil, common.WrapServiceError(common.OpSaveBatchJob, err)
	}

	slogger.Info(ctx, "Created batch job", slogger.Fields3(
		"job_id", job.ID().String(),
		"name", name,
		"total_items", len(urls),
	))
	s.publishEvent(ctx, job, messaging.EventTypeCreated)

	return job.ID(), nil
}

// CreateBatchFromPlaylist expands a playlist URL into items and creates a job
// from them.
func (s *DefaultBatchService) CreateBatchFromPlaylist(
	ctx context.Context,
	playlistURL, name string,
	config entity.BatchConfig,
) (uuid.UUID, error) {
	if s.playlist == nil {
		return uuid.Nil, common.WrapServiceError(common.OpResolvePlaylist, errors.New("no playlist resolver configured"))
	}

	urls, err := s.playlist.ResolvePlaylist(ctx, playlistURL)
	if err != nil {
		return uuid.Nil, common.WrapServiceError(common.OpResolvePlaylist, err)
	}

	return s.CreateBatchJob(ctx, name, urls, config)
}

// StartBatchJob transitions the job to running and processes every item. The
// call blocks until the result stream is drained; observe progress by polling
// GetBatchJob from another goroutine.
func (s *DefaultBatchService) StartBatchJob(ctx context.Context, id uuid.UUID) error {
	var urls []string
	var config entity.BatchConfig

	err := s.store.Update(ctx, id, func(job *entity.BatchJob) error {
		if err := job.Start(); err != nil {
			return err
		}
		urls = job.URLs()
		config = job.Config()
		return nil
	})
	if err != nil {
		return err
	}

	if job, getErr := s.store.Get(ctx, id); getErr == nil {
		s.publishEvent(ctx, job, messaging.EventTypeStarted)
	}

	s.scheduler.Run(ctx, id, urls, config)

	return s.finalizeBatch(ctx, id)
}

// finalizeBatch marks the drained job completed, or failed when every item of
// a non-empty batch failed. A job cancelled mid-run rejects both transitions
// and keeps its terminal status; its late results were still appended.
func (s *DefaultBatchService) finalizeBatch(ctx context.Context, id uuid.UUID) error {
	var finalStatus valueobject.BatchStatus

	err := s.store.Update(ctx, id, func(job *entity.BatchJob) error {
		var transitionErr error
		if job.AllItemsFailed() {
			transitionErr = job.Fail()
		} else {
			transitionErr = job.Complete()
		}
		if transitionErr != nil && job.Status() == valueobject.BatchStatusCancelled {
			// Advisory cancel won the race; the result set stays as drained.
			transitionErr = nil
		}
		finalStatus = job.Status()
		return transitionErr
	})
	if err != nil {
		return common.WrapServiceError(common.OpStartBatchJob, err)
	}

	slogger.Info(ctx, "Batch job finished", slogger.Fields2(
		"job_id", id.String(),
		"status", finalStatus.String(),
	))

	if job, getErr := s.store.Get(ctx, id); getErr == nil {
		switch finalStatus {
		case valueobject.BatchStatusCompleted:
			s.publishEvent(ctx, job, messaging.EventTypeCompleted)
		case valueobject.BatchStatusFailed:
			s.publishEvent(ctx, job, messaging.EventTypeFailed)
		default:
			// Cancelled while running; the cancel event was already published.
		}
	}

	return nil
}

// CancelBatchJob marks a running job cancelled. Already-dispatched item work
// is not interrupted; its results are still appended.
func (s *DefaultBatchService) CancelBatchJob(ctx context.Context, id uuid.UUID) error {
	err := s.store.Update(ctx, id, func(job *entity.BatchJob) error {
		return job.Cancel()
	})
	if err != nil {
		return err
	}
	s.publishEventByID(ctx, id, messaging.EventTypeCancelled)
	return nil
}

// PauseBatchJob flips a running job to paused without suspending in-flight
// workers.
func (s *DefaultBatchService) PauseBatchJob(ctx context.Context, id uuid.UUID) error {
	err := s.store.Update(ctx, id, func(job *entity.BatchJob) error {
		return job.Pause()
	})
	if err != nil {
		return err
	}
	s.publishEventByID(ctx, id, messaging.EventTypePaused)
	return nil
}

// ResumeBatchJob flips a paused job back to running.
func (s *DefaultBatchService) ResumeBatchJob(ctx context.Context, id uuid.UUID) error {
	err := s.store.Update(ctx, id, func(job *entity.BatchJob) error {
		return job.Resume()
	})
	if err != nil {
		return err
	}
	s.publishEventByID(ctx, id, messaging.EventTypeResumed)
	return nil
}

// DeleteBatchJob removes a job from the registry. Running jobs must be
// cancelled first.
func (s *DefaultBatchService) DeleteBatchJob(ctx context.Context, id uuid.UUID) error {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if job.Status() == valueobject.BatchStatusRunning {
		return fmt.Errorf("%w: cancel it first", domainerrors.ErrJobRunning)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return common.WrapServiceError(common.OpDeleteBatchJob, err)
	}

	slogger.Info(ctx, "Deleted batch job", slogger.Field("job_id", id.String()))
	return nil
}

// GetBatchJob returns a snapshot of the job.
func (s *DefaultBatchService) GetBatchJob(ctx context.Context, id uuid.UUID) (*entity.BatchJob, error) {
	return s.store.Get(ctx, id)
}

// ListBatchJobs returns snapshots of all registered jobs.
func (s *DefaultBatchService) ListBatchJobs(ctx context.Context) ([]*entity.BatchJob, error) {
	return s.store.List(ctx)
}

// GenerateBatchReport renders a human-readable summary of the job.
func (s *DefaultBatchService) GenerateBatchReport(ctx context.Context, id uuid.UUID) (string, error) {
	return s.reports.GenerateReport(ctx, id)
}

func (s *DefaultBatchService) publishEventByID(ctx context.Context, id uuid.UUID, eventType messaging.EventType) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return
	}
	s.publishEvent(ctx, job, eventType)
}

var _ inbound.BatchService = (*DefaultBatchService)(nil)

// publishEvent notifies observers of a lifecycle transition. Publish failures
// are logged and swallowed; eventing never aborts batch control flow.
func (s *DefaultBatchService) publishEvent(ctx context.Context, job *entity.BatchJob, eventType messaging.EventType) {
	progress := job.Progress()
	event := messaging.NewBatchEvent(eventType, job.ID(), job.Name(), job.Status().String())
	event.TotalVideos = progress.TotalVideos
	event.ProcessedVideos = progress.ProcessedVideos
	event.FailedVideos = progress.FailedVideos
	event.Percentage = progress.Percentage

	if err := s.publisher.PublishBatchEvent(ctx, event); err != nil {
		slogger.ErrorWithError(ctx, err, "Failed to publish batch event", slogger.Fields2(
			"job_id", job.ID().String(),
			"event_type", string(eventType),
		))
	}
}

// Package inbound defines the inbound ports (interfaces) for the application
// layer. These ports are the entry points into the batch engine's core logic.
package inbound

import (
	"context"

	"github.com/acailic/video-nugget/internal/domain/entity"

	"github.com/google/uuid"
)

// BatchService is the public API of the batch job engine, consumed by the
// CLI/GUI layer. StartBatchJob runs the whole batch and returns only when the
// result stream is drained; callers needing responsiveness should poll
// GetBatchJob from another goroutine.
type BatchService interface {
	CreateBatchJob(ctx context.Context, name string, urls []string, config entity.BatchConfig) (uuid.UUID, error)
	CreateBatchFromPlaylist(ctx context.Context, playlistURL, name string, config entity.BatchConfig) (uuid.UUID, error)
	StartBatchJob(ctx context.Context, id uuid.UUID) error
	CancelBatchJob(ctx context.Context, id uuid.UUID) error
	PauseBatchJob(ctx context.Context, id uuid.UUID) error
	ResumeBatchJob(ctx context.Context, id uuid.UUID) error
	DeleteBatchJob(ctx context.Context, id uuid.UUID) error
	GetBatchJob(ctx context.Context, id uuid.UUID) (*entity.BatchJob, error)
	ListBatchJobs(ctx context.Context) ([]*entity.BatchJob, error)
	GenerateBatchReport(ctx context.Context, id uuid.UUID) (string, error)
}

// Package outbound defines the outbound ports (interfaces) for external
// dependencies like storage, the video pipeline, and messaging systems.
package outbound

import (
	"context"

	"github.com/acailic/video-nugget/internal/domain/entity"

	"github.com/google/uuid"
)

// JobStore is the registry owning all batch jobs. Implementations must
// serialize access per job id; operations on different jobs never block each
// other. Get and List return snapshots that are safe to read while the
// scheduler keeps mutating the stored job.
type JobStore interface {
	// Save registers a new job.
	Save(ctx context.Context, job *entity.BatchJob) error

	// Get returns a snapshot of the job or domain.ErrJobNotFound.
	Get(ctx context.Context, id uuid.UUID) (*entity.BatchJob, error)

	// List returns snapshots of all registered jobs.
	List(ctx context.Context) ([]*entity.BatchJob, error)

	// Update runs fn against the stored job under that job's lock. Returning
	// an error from fn aborts the update and leaves the job untouched.
	Update(ctx context.Context, id uuid.UUID, fn func(job *entity.BatchJob) error) error

	// Delete removes the job from the registry.
	Delete(ctx context.Context, id uuid.UUID) error
}

package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/acailic/video-nugget/internal/domain/entity"
	domainerrors "github.com/acailic/video-nugget/internal/domain/errors/domain"
	"github.com/acailic/video-nugget/internal/domain/valueobject"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredJob(t *testing.T, urls ...string) *entity.BatchJob {
	t.Helper()
	job, err := entity.NewBatchJob("store test", urls, entity.BatchConfig{
		OutputDirectory: t.TempDir(),
		ConcurrentJobs:  2,
	})
	require.NoError(t, err)
	return job
}

func TestMemoryJobStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()
	job := newStoredJob(t, "https://example.com/a")

	require.NoError(t, store.Save(ctx, job))

	got, err := store.Get(ctx, job.ID())
	require.NoError(t, err)
	assert.True(t, job.Equal(got))
	assert.Equal(t, valueobject.BatchStatusPending, got.Status())
}

func TestMemoryJobStoreGetUnknownJob(t *testing.T) {
	store := NewMemoryJobStore()

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrJobNotFound)
}

func TestMemoryJobStoreGetReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()
	job := newStoredJob(t, "https://example.com/a")
	require.NoError(t, store.Save(ctx, job))

	snapshot, err := store.Get(ctx, job.ID())
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, job.ID(), func(stored *entity.BatchJob) error {
		return stored.Start()
	}))

	assert.Equal(t, valueobject.BatchStatusPending, snapshot.Status(), "snapshot must not see later mutations")

	current, err := store.Get(ctx, job.ID())
	require.NoError(t, err)
	assert.Equal(t, valueobject.BatchStatusRunning, current.Status())
}

func TestMemoryJobStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	first := newStoredJob(t, "https://example.com/a")
	second := newStoredJob(t, "https://example.com/b")
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	jobs, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestMemoryJobStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()
	job := newStoredJob(t, "https://example.com/a")
	require.NoError(t, store.Save(ctx, job))

	t.Run("mutation is applied to the stored job", func(t *testing.T) {
		require.NoError(t, store.Update(ctx, job.ID(), func(stored *entity.BatchJob) error {
			return stored.Start()
		}))

		got, err := store.Get(ctx, job.ID())
		require.NoError(t, err)
		assert.Equal(t, valueobject.BatchStatusRunning, got.Status())
	})

	t.Run("callback errors propagate", func(t *testing.T) {
		err := store.Update(ctx, job.ID(), func(stored *entity.BatchJob) error {
			return stored.Start()
		})
		require.Error(t, err)
		assert.True(t, entity.IsDomainErrorWithCode(err, entity.CodeInvalidStatusTransition))
	})

	t.Run("unknown job", func(t *testing.T) {
		err := store.Update(ctx, uuid.New(), func(*entity.BatchJob) error { return nil })
		assert.ErrorIs(t, err, domainerrors.ErrJobNotFound)
	})
}

func TestMemoryJobStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()
	job := newStoredJob(t, "https://example.com/a")
	require.NoError(t, store.Save(ctx, job))

	require.NoError(t, store.Delete(ctx, job.ID()))

	_, err := store.Get(ctx, job.ID())
	assert.ErrorIs(t, err, domainerrors.ErrJobNotFound)

	assert.ErrorIs(t, store.Delete(ctx, job.ID()), domainerrors.ErrJobNotFound)
}

func TestMemoryJobStoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()

	urls := make([]string, 50)
	for i := range urls {
		urls[i] = "https://example.com/video"
	}
	job := newStoredJob(t, urls...)
	require.NoError(t, store.Save(ctx, job))
	require.NoError(t, store.Update(ctx, job.ID(), func(stored *entity.BatchJob) error {
		return stored.Start()
	}))

	var wg sync.WaitGroup
	for range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, job.ID(), func(stored *entity.BatchJob) error {
				stored.AppendResult(entity.NewFailedResult("https://example.com/video", "boom", 0.1))
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, job.ID())
	require.NoError(t, err)
	assert.Equal(t, len(urls), got.Progress().ProcessedVideos, "updates under the job lock never lose results")
}

// Package storage provides the in-memory job store. The registry lives only
// in process memory; export artifacts are persisted by other collaborators.
package storage

import (
	"context"
	"sync"

	"github.com/acailic/video-nugget/internal/domain/entity"
	domainerrors "github.com/acailic/video-nugget/internal/domain/errors/domain"
	"github.com/acailic/video-nugget/internal/port/outbound"

	"github.com/google/uuid"
)

// jobRecord pairs a stored job with its own lock. Per-job locking keeps
// operations on different jobs fully concurrent; only the registry map itself
// is guarded globally, and only for the brief lookup.
type jobRecord struct {
	mu  sync.Mutex
	job *entity.BatchJob
}

// MemoryJobStore is the in-memory implementation of the job registry.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*jobRecord
}

// NewMemoryJobStore creates an empty job store.
func NewMemoryJobStore() outbound.JobStore {
	return &MemoryJobStore{
		jobs: make(map[uuid.UUID]*jobRecord),
	}
}

// Save registers a new job.
func (s *MemoryJobStore) Save(_ context.Context, job *entity.BatchJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID()] = &jobRecord{job: job}
	return nil
}

// Get returns a deep-copied snapshot of the job, safe to read while the
// scheduler keeps mutating the stored instance.
func (s *MemoryJobStore) Get(_ context.Context, id uuid.UUID) (*entity.BatchJob, error) {
	record, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	record.mu.Lock()
	defer record.mu.Unlock()
	return record.job.Clone(), nil
}

// List returns snapshots of all registered jobs.
func (s *MemoryJobStore) List(_ context.Context) ([]*entity.BatchJob, error) {
	s.mu.RLock()
	records := make([]*jobRecord, 0, len(s.jobs))
	for _, record := range s.jobs {
		records = append(records, record)
	}
	s.mu.RUnlock()

	jobs := make([]*entity.BatchJob, 0, len(records))
	for _, record := range records {
		record.mu.Lock()
		jobs = append(jobs, record.job.Clone())
		record.mu.Unlock()
	}
	return jobs, nil
}

// Update runs fn against the stored job under that job's lock.
func (s *MemoryJobStore) Update(_ context.Context, id uuid.UUID, fn func(job *entity.BatchJob) error) error {
	record, err := s.lookup(id)
	if err != nil {
		return err
	}

	record.mu.Lock()
	defer record.mu.Unlock()
	return fn(record.job)
}

// Delete removes the job from the registry.
func (s *MemoryJobStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[id]; !exists {
		return domainerrors.ErrJobNotFound
	}
	delete(s.jobs, id)
	return nil
}

func (s *MemoryJobStore) lookup(id uuid.UUID) (*jobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, exists := s.jobs[id]
	if !exists {
		return nil, domainerrors.ErrJobNotFound
	}
	return record, nil
}

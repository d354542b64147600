package mock

import (
	"context"
	"sync"

	"github.com/acailic/video-nugget/internal/domain/messaging"
	"github.com/acailic/video-nugget/internal/port/outbound"
)

// MockEventPublisher records published batch events for verification.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []messaging.BatchEvent
}

// NewMockEventPublisher creates a publisher that keeps events in memory.
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// PublishBatchEvent stores the event.
func (m *MockEventPublisher) PublishBatchEvent(_ context.Context, event messaging.BatchEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns all published events.
func (m *MockEventPublisher) Events() []messaging.BatchEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]messaging.BatchEvent(nil), m.events...)
}

// Reset clears all captured events.
func (m *MockEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

// Close is a no-op.
func (m *MockEventPublisher) Close() error {
	return nil
}

var _ outbound.EventPublisher = (*MockEventPublisher)(nil)

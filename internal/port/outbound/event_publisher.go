package outbound

import (
	"context"

	"github.com/acailic/video-nugget/internal/domain/messaging"
)

// EventPublisher publishes batch lifecycle events for external observers.
// Publishing failures must never abort batch processing.
type EventPublisher interface {
	PublishBatchEvent(ctx context.Context, event messaging.BatchEvent) error
	Close() error
}

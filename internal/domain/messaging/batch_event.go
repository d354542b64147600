// Package messaging defines the wire messages published on batch lifecycle
// transitions.
package messaging

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a batch lifecycle transition.
type EventType string

// Batch event types.
const (
	EventTypeCreated   EventType = "batch.created"
	EventTypeStarted   EventType = "batch.started"
	EventTypePaused    EventType = "batch.paused"
	EventTypeResumed   EventType = "batch.resumed"
	EventTypeCancelled EventType = "batch.cancelled"
	EventTypeCompleted EventType = "batch.completed"
	EventTypeFailed    EventType = "batch.failed"
)

// BatchEvent is the message published when a batch job changes state. It
// carries a progress snapshot so consumers never have to call back into the
// engine.
type BatchEvent struct {
	MessageID       string    `json:"message_id"`
	Type            EventType `json:"type"`
	JobID           uuid.UUID `json:"job_id"`
	JobName         string    `json:"job_name"`
	Status          string    `json:"status"`
	TotalVideos     int       `json:"total_videos"`
	ProcessedVideos int       `json:"processed_videos"`
	FailedVideos    int       `json:"failed_videos"`
	Percentage      float64   `json:"percentage"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewBatchEvent creates a BatchEvent with a fresh message ID and timestamp.
func NewBatchEvent(eventType EventType, jobID uuid.UUID, jobName, status string) BatchEvent {
	return BatchEvent{
		MessageID: uuid.New().String(),
		Type:      eventType,
		JobID:     jobID,
		JobName:   jobName,
		Status:    status,
		Timestamp: time.Now(),
	}
}

// Validate ensures the event is publishable.
func (e BatchEvent) Validate() error {
	if e.MessageID == "" {
		return errors.New("message ID cannot be empty")
	}
	if e.Type == "" {
		return errors.New("event type cannot be empty")
	}
	if e.JobID == uuid.Nil {
		return errors.New("job ID cannot be nil")
	}
	return nil
}

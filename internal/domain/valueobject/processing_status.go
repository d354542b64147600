package valueobject

import "fmt"

// ProcessingStatus represents the outcome of processing a single batch item.
type ProcessingStatus string

// Processing status constants.
const (
	ProcessingStatusSuccess  ProcessingStatus = "success"
	ProcessingStatusFailed   ProcessingStatus = "failed"
	ProcessingStatusSkipped  ProcessingStatus = "skipped"
	ProcessingStatusRetrying ProcessingStatus = "retrying"
)

var validProcessingStatuses = map[ProcessingStatus]bool{
	ProcessingStatusSuccess:  true,
	ProcessingStatusFailed:   true,
	ProcessingStatusSkipped:  true,
	ProcessingStatusRetrying: true,
}

// NewProcessingStatus creates a new ProcessingStatus with validation.
func NewProcessingStatus(status string) (ProcessingStatus, error) {
	s := ProcessingStatus(status)
	if !validProcessingStatuses[s] {
		return "", fmt.Errorf("invalid processing status: %s", status)
	}
	return s, nil
}

// String returns the string representation of the status.
func (s ProcessingStatus) String() string {
	return string(s)
}

// IsFinal returns true if this status may be persisted as an item's final
// outcome. Retrying is transient and only ever observed mid-attempt.
func (s ProcessingStatus) IsFinal() bool {
	return s == ProcessingStatusSuccess || s == ProcessingStatusFailed || s == ProcessingStatusSkipped
}

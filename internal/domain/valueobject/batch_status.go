package valueobject

import "fmt"

// BatchStatus represents the current status of a batch job.
type BatchStatus string

// Batch status constants.
const (
	BatchStatusPending   BatchStatus = "pending"
	BatchStatusRunning   BatchStatus = "running"
	BatchStatusCompleted BatchStatus = "completed"
	BatchStatusFailed    BatchStatus = "failed"
	BatchStatusCancelled BatchStatus = "cancelled"
	BatchStatusPaused    BatchStatus = "paused"
)

// validBatchStatuses contains all valid batch statuses.
var validBatchStatuses = map[BatchStatus]bool{
	BatchStatusPending:   true,
	BatchStatusRunning:   true,
	BatchStatusCompleted: true,
	BatchStatusFailed:    true,
	BatchStatusCancelled: true,
	BatchStatusPaused:    true,
}

// NewBatchStatus creates a new BatchStatus with validation.
func NewBatchStatus(status string) (BatchStatus, error) {
	s := BatchStatus(status)
	if !validBatchStatuses[s] {
		return "", fmt.Errorf("invalid batch status: %s", status)
	}
	return s, nil
}

// String returns the string representation of the status.
func (s BatchStatus) String() string {
	return string(s)
}

// IsTerminal returns true if this status represents a final state.
func (s BatchStatus) IsTerminal() bool {
	return s == BatchStatusCompleted || s == BatchStatusFailed || s == BatchStatusCancelled
}

// CanTransitionTo returns true if the status can transition to the target status.
// Cancel and pause are only legal while running; a paused batch may still reach
// a terminal state because in-flight workers are not suspended.
func (s BatchStatus) CanTransitionTo(target BatchStatus) bool {
	transitions := map[BatchStatus][]BatchStatus{
		BatchStatusPending: {
			BatchStatusRunning,
		},
		BatchStatusRunning: {
			BatchStatusCompleted,
			BatchStatusFailed,
			BatchStatusCancelled,
			BatchStatusPaused,
		},
		BatchStatusPaused: {
			BatchStatusRunning,
			BatchStatusCompleted,
			BatchStatusFailed,
		},
		// Terminal states cannot transition
		BatchStatusCompleted: {},
		BatchStatusFailed:    {},
		BatchStatusCancelled: {},
	}

	validTransitions, exists := transitions[s]
	if !exists {
		return false
	}

	for _, validTarget := range validTransitions {
		if target == validTarget {
			return true
		}
	}
	return false
}

// AllBatchStatuses returns all valid batch statuses.
func AllBatchStatuses() []BatchStatus {
	statuses := make([]BatchStatus, 0, len(validBatchStatuses))
	for status := range validBatchStatuses {
		statuses = append(statuses, status)
	}
	return statuses
}

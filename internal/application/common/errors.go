package common

import "fmt"

// ServiceError represents a service-level error with context.
type ServiceError struct {
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e ServiceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e ServiceError) Unwrap() error {
	return e.Cause
}

// WrapServiceError wraps an error with service operation context.
func WrapServiceError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return ServiceError{
		Operation: operation,
		Cause:     err,
	}
}

// Common error operations for consistent messaging.
const (
	OpCreateBatchJob   = "create batch job"
	OpStartBatchJob    = "start batch job"
	OpCancelBatchJob   = "cancel batch job"
	OpPauseBatchJob    = "pause batch job"
	OpResumeBatchJob   = "resume batch job"
	OpDeleteBatchJob   = "delete batch job"
	OpRetrieveBatchJob = "retrieve batch job"
	OpListBatchJobs    = "retrieve batch jobs"
	OpSaveBatchJob     = "save batch job"
	OpGenerateReport   = "generate batch report"
	OpResolvePlaylist  = "resolve playlist"
	OpPublishEvent     = "publish batch event"
)

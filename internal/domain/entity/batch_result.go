package entity

import (
	"github.com/acailic/video-nugget/internal/domain/valueobject"
)

// BatchResult records the outcome of processing one batch item. A worker
// produces exactly one BatchResult per item regardless of how many retry
// attempts the item consumed.
type BatchResult struct {
	URL                   string                       `json:"url"`
	VideoInfo             *valueobject.VideoInfo       `json:"video_info,omitempty"`
	Nuggets               []valueobject.Nugget         `json:"nuggets"`
	Analysis              *valueobject.ContentAnalysis `json:"analysis,omitempty"`
	OutputFiles           []string                     `json:"output_files"`
	Status                valueobject.ProcessingStatus `json:"status"`
	ErrorMessage          *string                      `json:"error_message,omitempty"`
	ProcessingTimeSeconds float64                      `json:"processing_time_seconds"`
}

// NewSuccessResult builds a successful result from the pipeline output.
func NewSuccessResult(url string, output valueobject.PipelineOutput, elapsedSeconds float64) BatchResult {
	return BatchResult{
		URL:                   url,
		VideoInfo:             &output.VideoInfo,
		Nuggets:               output.Nuggets,
		Analysis:              output.Analysis,
		OutputFiles:           output.OutputFiles,
		Status:                valueobject.ProcessingStatusSuccess,
		ProcessingTimeSeconds: elapsedSeconds,
	}
}

// NewFailedResult builds a failed result carrying the last pipeline error.
func NewFailedResult(url string, errorMessage string, elapsedSeconds float64) BatchResult {
	return BatchResult{
		URL:                   url,
		Status:                valueobject.ProcessingStatusFailed,
		ErrorMessage:          &errorMessage,
		ProcessingTimeSeconds: elapsedSeconds,
	}
}

// IsFailed reports whether the item ended in failure.
func (r BatchResult) IsFailed() bool {
	return r.Status == valueobject.ProcessingStatusFailed
}

// clone returns a deep copy of the result.
func (r BatchResult) clone() BatchResult {
	cloned := r
	if r.VideoInfo != nil {
		info := *r.VideoInfo
		cloned.VideoInfo = &info
	}
	if r.Analysis != nil {
		analysis := *r.Analysis
		cloned.Analysis = &analysis
	}
	if r.Nuggets != nil {
		cloned.Nuggets = append([]valueobject.Nugget(nil), r.Nuggets...)
	}
	if r.OutputFiles != nil {
		cloned.OutputFiles = append([]string(nil), r.OutputFiles...)
	}
	if r.ErrorMessage != nil {
		msg := *r.ErrorMessage
		cloned.ErrorMessage = &msg
	}
	return cloned
}

package entity

import (
	"fmt"

	"github.com/acailic/video-nugget/internal/domain/valueobject"
)

// BatchConfig holds the per-item pipeline configuration for a batch job.
// It is immutable once the job starts.
type BatchConfig struct {
	// VideoConfig is an escape hatch for pipeline-specific options that
	// have no named field here. Values are passed through untouched.
	VideoConfig map[string]any `json:"video_config"`

	OutputDirectory     string                     `json:"output_directory"`
	ExportFormats       []valueobject.ExportFormat `json:"export_formats"`
	EnableAIAnalysis    bool                       `json:"enable_ai_analysis"`
	EnableTranscript    bool                       `json:"enable_transcript"`
	EnableSocialFormats bool                       `json:"enable_social_formats"`
	ConcurrentJobs      int                        `json:"concurrent_jobs"`
	RetryFailed         bool                       `json:"retry_failed"`
	MaxRetries          int                        `json:"max_retries"`
}

// Validate ensures the batch configuration is well formed.
func (c BatchConfig) Validate() error {
	if c.ConcurrentJobs < 1 {
		return NewDomainError(
			fmt.Sprintf("concurrent jobs must be at least 1, got %d", c.ConcurrentJobs),
			CodeInvalidConfig,
		)
	}
	if c.MaxRetries < 0 {
		return NewDomainError(
			fmt.Sprintf("max retries cannot be negative, got %d", c.MaxRetries),
			CodeInvalidConfig,
		)
	}
	if c.OutputDirectory == "" {
		return NewDomainError("output directory cannot be empty", CodeInvalidConfig)
	}
	for _, format := range c.ExportFormats {
		if _, err := valueobject.NewExportFormat(format.String()); err != nil {
			return NewDomainError(err.Error(), CodeInvalidConfig)
		}
	}
	return nil
}

// EffectiveConcurrency returns the worker pool size for a batch of totalItems:
// the configured limit clamped to the item count.
func (c BatchConfig) EffectiveConcurrency(totalItems int) int {
	if totalItems < c.ConcurrentJobs {
		return totalItems
	}
	return c.ConcurrentJobs
}

// MaxAttempts returns the per-item pipeline invocation bound.
func (c BatchConfig) MaxAttempts() int {
	if !c.RetryFailed {
		return 1
	}
	return 1 + c.MaxRetries
}

// clone returns a deep copy of the configuration.
func (c BatchConfig) clone() BatchConfig {
	cloned := c
	if c.VideoConfig != nil {
		cloned.VideoConfig = make(map[string]any, len(c.VideoConfig))
		for k, v := range c.VideoConfig {
			cloned.VideoConfig[k] = v
		}
	}
	if c.ExportFormats != nil {
		cloned.ExportFormats = append([]valueobject.ExportFormat(nil), c.ExportFormats...)
	}
	return cloned
}

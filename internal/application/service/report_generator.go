package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acailic/video-nugget/internal/domain/entity"
	"github.com/acailic/video-nugget/internal/port/outbound"

	"github.com/google/uuid"
)

const percentFactor = 100.0

// ReportGenerator renders a job's state into a human-readable markdown
// summary. It is read-only and never mutates the job store.
type ReportGenerator struct {
	store outbound.JobStore
}

// NewReportGenerator creates a report generator bound to the job store.
func NewReportGenerator(store outbound.JobStore) *ReportGenerator {
	if store == nil {
		panic("store cannot be nil")
	}
	return &ReportGenerator{store: store}
}

// GenerateReport renders the job's metadata, aggregate statistics, and a
// per-result breakdown. Returns domain.ErrJobNotFound for unknown ids.
func (g *ReportGenerator) GenerateReport(ctx context.Context, id uuid.UUID) (string, error) {
	job, err := g.store.Get(ctx, id)
	if err != nil {
		return "", err
	}

	var report strings.Builder
	report.WriteString("# Batch Processing Report\n\n")
	report.WriteString(fmt.Sprintf("**Job Name:** %s\n", job.Name()))
	report.WriteString(fmt.Sprintf("**Job ID:** %s\n", job.ID()))
	report.WriteString(fmt.Sprintf("**Status:** %s\n", job.Status()))
	report.WriteString(fmt.Sprintf("**Created:** %s\n", job.CreatedAt().Format(time.RFC3339)))

	if started := job.StartedAt(); started != nil {
		report.WriteString(fmt.Sprintf("**Started:** %s\n", started.Format(time.RFC3339)))
	}
	if completed := job.CompletedAt(); completed != nil {
		report.WriteString(fmt.Sprintf("**Completed:** %s\n", completed.Format(time.RFC3339)))
	}

	writeStatistics(&report, job)
	writeResults(&report, job)

	return report.String(), nil
}

func writeStatistics(report *strings.Builder, job *entity.BatchJob) {
	progress := job.Progress()

	report.WriteString("\n## Statistics\n\n")
	report.WriteString(fmt.Sprintf("- **Total Videos:** %d\n", progress.TotalVideos))
	report.WriteString(fmt.Sprintf("- **Processed:** %d\n", progress.ProcessedVideos))
	report.WriteString(fmt.Sprintf("- **Failed:** %d\n", progress.FailedVideos))
	report.WriteString(fmt.Sprintf("- **Success Rate:** %.1f%%\n", successRate(progress)))
}

// successRate guards the zero-item degenerate case instead of dividing.
func successRate(progress entity.BatchProgress) float64 {
	if progress.TotalVideos == 0 {
		return 0
	}
	succeeded := progress.ProcessedVideos - progress.FailedVideos
	return float64(succeeded) / float64(progress.TotalVideos) * percentFactor
}

func writeResults(report *strings.Builder, job *entity.BatchJob) {
	report.WriteString("\n## Results\n\n")

	for index, result := range job.Results() {
		report.WriteString(fmt.Sprintf("### Video %d - %s\n", index+1, result.Status))
		report.WriteString(fmt.Sprintf("**URL:** %s\n", result.URL))

		if info := result.VideoInfo; info != nil {
			report.WriteString(fmt.Sprintf("**Title:** %s\n", info.Title))
			report.WriteString(fmt.Sprintf("**Duration:** %.1fs\n", info.Duration))
		}

		report.WriteString(fmt.Sprintf("**Nuggets Generated:** %d\n", len(result.Nuggets)))
		report.WriteString(fmt.Sprintf("**Processing Time:** %.1fs\n", result.ProcessingTimeSeconds))
		report.WriteString(fmt.Sprintf("**Output Files:** %d\n", len(result.OutputFiles)))

		if result.ErrorMessage != nil {
			report.WriteString(fmt.Sprintf("**Error:** %s\n", *result.ErrorMessage))
		}

		report.WriteString("\n")
	}
}

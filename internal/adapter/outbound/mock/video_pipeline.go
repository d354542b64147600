// Package mock provides in-memory collaborator implementations for
// development and dry runs.
package mock

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/acailic/video-nugget/internal/domain/entity"
	"github.com/acailic/video-nugget/internal/domain/valueobject"
	"github.com/acailic/video-nugget/internal/port/outbound"

	"github.com/google/uuid"
)

const (
	mockVideoDuration  = 300.0
	mockNuggetDuration = 45.0
)

// MockVideoPipeline produces deterministic nuggets without touching the
// network or ffmpeg. When an exporter is configured it still writes real
// export files, which makes dry runs exercise the full artifact path.
type MockVideoPipeline struct {
	exporter outbound.NuggetExporter
	delay    time.Duration
}

// NewMockVideoPipeline creates a mock pipeline. exporter may be nil to skip
// artifact writing.
func NewMockVideoPipeline(exporter outbound.NuggetExporter) *MockVideoPipeline {
	return &MockVideoPipeline{exporter: exporter}
}

// WithDelay makes every Process call take at least delay, to simulate real
// pipeline latency.
func (p *MockVideoPipeline) WithDelay(delay time.Duration) *MockVideoPipeline {
	p.delay = delay
	return p
}

// Process fabricates a pipeline output for the URL.
func (p *MockVideoPipeline) Process(
	ctx context.Context,
	url string,
	config entity.BatchConfig,
) (valueobject.PipelineOutput, error) {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return valueobject.PipelineOutput{}, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	now := time.Now()
	nuggets := []valueobject.Nugget{
		{
			ID:        uuid.New().String(),
			Title:     fmt.Sprintf("Intro highlights of %s", url),
			StartTime: 0,
			EndTime:   mockNuggetDuration,
			Tags:      []string{"intro"},
			CreatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			Title:     fmt.Sprintf("Key moment of %s", url),
			StartTime: mockVideoDuration / 2,
			EndTime:   mockVideoDuration/2 + mockNuggetDuration,
			Tags:      []string{"highlight"},
			CreatedAt: now,
		},
	}
	if config.EnableTranscript {
		for i := range nuggets {
			transcript := fmt.Sprintf("Transcript for %s", nuggets[i].Title)
			nuggets[i].Transcript = &transcript
		}
	}

	output := valueobject.PipelineOutput{
		VideoInfo: valueobject.VideoInfo{
			URL:      url,
			Title:    fmt.Sprintf("Mock video %s", url),
			Duration: mockVideoDuration,
		},
		Nuggets: nuggets,
	}

	if config.EnableAIAnalysis {
		output.Analysis = &valueobject.ContentAnalysis{
			Summary:         fmt.Sprintf("Mock analysis of %s", url),
			KeyTopics:       []string{"demo"},
			SentimentScore:  0.5,
			EngagementScore: 0.5,
			DifficultyLevel: "beginner",
		}
	}

	if p.exporter != nil {
		files, err := p.exportNuggets(ctx, nuggets, config)
		if err != nil {
			return valueobject.PipelineOutput{}, err
		}
		output.OutputFiles = files
	}

	return output, nil
}

func (p *MockVideoPipeline) exportNuggets(
	ctx context.Context,
	nuggets []valueobject.Nugget,
	config entity.BatchConfig,
) ([]string, error) {
	var files []string
	for _, format := range config.ExportFormats {
		name := fmt.Sprintf("nuggets_%d.%s", time.Now().UnixNano(), format.Extension())
		path := filepath.Join(config.OutputDirectory, name)
		if _, err := p.exporter.Export(ctx, nuggets, path, format); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

var _ outbound.VideoPipeline = (*MockVideoPipeline)(nil)

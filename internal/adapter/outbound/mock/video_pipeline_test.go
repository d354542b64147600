package mock

import (
	"context"
	"os"
	"testing"

	"github.com/acailic/video-nugget/internal/adapter/outbound/export"
	"github.com/acailic/video-nugget/internal/domain/entity"
	"github.com/acailic/video-nugget/internal/domain/valueobject"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockVideoPipelineProcess(t *testing.T) {
	ctx := context.Background()
	pipeline := NewMockVideoPipeline(nil)

	config := entity.BatchConfig{
		OutputDirectory: t.TempDir(),
		ConcurrentJobs:  1,
	}

	output, err := pipeline.Process(ctx, "https://example.com/talk", config)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/talk", output.VideoInfo.URL)
	require.Len(t, output.Nuggets, 2)
	assert.Nil(t, output.Nuggets[0].Transcript)
	assert.Nil(t, output.Analysis)
	assert.Empty(t, output.OutputFiles, "no exporter, no artifacts")
}

func TestMockVideoPipelineToggles(t *testing.T) {
	ctx := context.Background()
	pipeline := NewMockVideoPipeline(nil)

	config := entity.BatchConfig{
		OutputDirectory:  t.TempDir(),
		ConcurrentJobs:   1,
		EnableTranscript: true,
		EnableAIAnalysis: true,
	}

	output, err := pipeline.Process(ctx, "https://example.com/talk", config)
	require.NoError(t, err)

	for _, nugget := range output.Nuggets {
		require.NotNil(t, nugget.Transcript)
	}
	require.NotNil(t, output.Analysis)
	assert.NotEmpty(t, output.Analysis.Summary)
}

func TestMockVideoPipelineWritesExports(t *testing.T) {
	ctx := context.Background()
	pipeline := NewMockVideoPipeline(export.NewFileExporter())

	config := entity.BatchConfig{
		OutputDirectory: t.TempDir(),
		ConcurrentJobs:  1,
		ExportFormats: []valueobject.ExportFormat{
			valueobject.ExportFormatJSON,
			valueobject.ExportFormatMarkdown,
		},
	}

	output, err := pipeline.Process(ctx, "https://example.com/talk", config)
	require.NoError(t, err)
	require.Len(t, output.OutputFiles, 2)

	for _, path := range output.OutputFiles {
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Positive(t, info.Size())
	}
}

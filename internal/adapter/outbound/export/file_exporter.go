// Package export writes nuggets to disk in the supported export formats.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/acailic/video-nugget/internal/domain/valueobject"
	"github.com/acailic/video-nugget/internal/port/outbound"
)

const exportFileMode = 0o644

// FileExporter is the file-writing NuggetExporter.
type FileExporter struct{}

// NewFileExporter creates a file exporter.
func NewFileExporter() outbound.NuggetExporter {
	return &FileExporter{}
}

// Export writes the nuggets to path in the requested format and returns a
// confirmation message.
func (e *FileExporter) Export(
	ctx context.Context,
	nuggets []valueobject.Nugget,
	path string,
	format valueobject.ExportFormat,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch format {
	case valueobject.ExportFormatJSON:
		return exportJSON(nuggets, path)
	case valueobject.ExportFormatCSV:
		return exportCSV(nuggets, path)
	case valueobject.ExportFormatMarkdown:
		return exportMarkdown(nuggets, path)
	default:
		return "", fmt.Errorf("invalid export format: %s", format)
	}
}

func exportJSON(nuggets []valueobject.Nugget, path string) (string, error) {
	data, err := json.MarshalIndent(nuggets, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize nuggets: %w", err)
	}
	if err := os.WriteFile(path, data, exportFileMode); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return fmt.Sprintf("Successfully saved %d nuggets to %s", len(nuggets), path), nil
}

func exportCSV(nuggets []valueobject.Nugget, path string) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"ID", "Title", "Start Time", "End Time", "Tags", "Created At", "Transcript"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, nugget := range nuggets {
		transcript := ""
		if nugget.Transcript != nil {
			transcript = *nugget.Transcript
		}
		record := []string{
			nugget.ID,
			nugget.Title,
			strconv.FormatFloat(nugget.StartTime, 'f', -1, 64),
			strconv.FormatFloat(nugget.EndTime, 'f', -1, 64),
			strings.Join(nugget.Tags, ";"),
			nugget.CreatedAt.Format(time.RFC3339),
			transcript,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return fmt.Sprintf("Successfully exported to CSV: %s", path), nil
}

func exportMarkdown(nuggets []valueobject.Nugget, path string) (string, error) {
	var content strings.Builder
	content.WriteString("# Video Nuggets\n\n")

	for index, nugget := range nuggets {
		content.WriteString(fmt.Sprintf("## %d - %s\n\n", index+1, nugget.Title))
		content.WriteString(fmt.Sprintf("**Time:** %.2fs - %.2fs\n\n", nugget.StartTime, nugget.EndTime))

		if len(nugget.Tags) > 0 {
			content.WriteString(fmt.Sprintf("**Tags:** %s\n\n", strings.Join(nugget.Tags, ", ")))
		}
		if nugget.Transcript != nil {
			content.WriteString(fmt.Sprintf("**Transcript:**\n%s\n\n", *nugget.Transcript))
		}

		content.WriteString("---\n\n")
	}

	if err := os.WriteFile(path, []byte(content.String()), exportFileMode); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}
	return fmt.Sprintf("Successfully exported to Markdown: %s", path), nil
}

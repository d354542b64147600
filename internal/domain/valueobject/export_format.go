package valueobject

import "fmt"

// ExportFormat identifies a supported nugget export format.
type ExportFormat string

// Supported export formats.
const (
	ExportFormatJSON     ExportFormat = "json"
	ExportFormatCSV      ExportFormat = "csv"
	ExportFormatMarkdown ExportFormat = "markdown"
)

var validExportFormats = map[ExportFormat]bool{
	ExportFormatJSON:     true,
	ExportFormatCSV:      true,
	ExportFormatMarkdown: true,
}

// NewExportFormat creates a new ExportFormat with validation.
func NewExportFormat(format string) (ExportFormat, error) {
	f := ExportFormat(format)
	if !validExportFormats[f] {
		return "", fmt.Errorf("invalid export format: %s", format)
	}
	return f, nil
}

// String returns the string representation of the format.
func (f ExportFormat) String() string {
	return string(f)
}

// Extension returns the file extension for the format.
func (f ExportFormat) Extension() string {
	if f == ExportFormatMarkdown {
		return "md"
	}
	return string(f)
}

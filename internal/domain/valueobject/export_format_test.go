package valueobject

import "testing"

func TestNewExportFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    ExportFormat
		wantErr bool
	}{
		{input: "json", want: ExportFormatJSON},
		{input: "csv", want: ExportFormatCSV},
		{input: "markdown", want: ExportFormatMarkdown},
		{input: "xml", wantErr: true},
		{input: "", wantErr: true},
		{input: "JSON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewExportFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewExportFormat(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewExportFormat(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NewExportFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExportFormatExtension(t *testing.T) {
	tests := []struct {
		format ExportFormat
		want   string
	}{
		{format: ExportFormatJSON, want: "json"},
		{format: ExportFormatCSV, want: "csv"},
		{format: ExportFormatMarkdown, want: "md"},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("%s.Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

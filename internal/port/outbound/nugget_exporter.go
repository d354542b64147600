package outbound

import (
	"context"

	"github.com/acailic/video-nugget/internal/domain/valueobject"
)

// NuggetExporter writes nuggets to a file in one of the supported formats.
// Returns a human-readable confirmation message.
type NuggetExporter interface {
	Export(
		ctx context.Context,
		nuggets []valueobject.Nugget,
		path string,
		format valueobject.ExportFormat,
	) (string, error)
}

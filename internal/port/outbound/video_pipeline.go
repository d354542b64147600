package outbound

import (
	"context"

	"github.com/acailic/video-nugget/internal/domain/entity"
	"github.com/acailic/video-nugget/internal/domain/valueobject"
)

// VideoPipeline is the per-item processing collaborator. One call turns a
// video URL into a descriptor, nuggets, optional analysis, and exported
// artifact paths. Calls may block on process invocations or network I/O.
type VideoPipeline interface {
	Process(ctx context.Context, url string, config entity.BatchConfig) (valueobject.PipelineOutput, error)
}

// PlaylistResolver expands a playlist URL into individual video URLs.
type PlaylistResolver interface {
	ResolvePlaylist(ctx context.Context, playlistURL string) ([]string, error)
}

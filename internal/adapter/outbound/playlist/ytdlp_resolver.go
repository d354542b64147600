// Package playlist resolves playlist URLs into individual video URLs using
// the yt-dlp command-line tool.
package playlist

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	domainerrors "github.com/acailic/video-nugget/internal/domain/errors/domain"
	"github.com/acailic/video-nugget/internal/port/outbound"
)

const defaultBinary = "yt-dlp"

// YtDlpResolver shells out to yt-dlp in flat-playlist mode.
type YtDlpResolver struct {
	binary string
}

// NewYtDlpResolver creates a resolver using the yt-dlp binary on PATH.
func NewYtDlpResolver() outbound.PlaylistResolver {
	return &YtDlpResolver{binary: defaultBinary}
}

// NewYtDlpResolverWithBinary creates a resolver using a specific binary path.
func NewYtDlpResolverWithBinary(binary string) outbound.PlaylistResolver {
	return &YtDlpResolver{binary: binary}
}

// ResolvePlaylist returns the video URLs contained in the playlist, in
// playlist order.
func (r *YtDlpResolver) ResolvePlaylist(ctx context.Context, playlistURL string) ([]string, error) {
	if playlistURL == "" {
		return nil, fmt.Errorf("%w: playlist URL cannot be empty", domainerrors.ErrInvalidInput)
	}

	cmd := exec.CommandContext(ctx, r.binary, "--get-url", "--flat-playlist", playlistURL)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to extract playlist: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	var urls []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}

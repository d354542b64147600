package playlist

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeYtDlp writes a shell script standing in for the yt-dlp binary.
func fakeYtDlp(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestResolvePlaylist(t *testing.T) {
	binary := fakeYtDlp(t, `printf 'https://example.com/v1\nhttps://example.com/v2\n\n'`)
	resolver := NewYtDlpResolverWithBinary(binary)

	urls, err := resolver.ResolvePlaylist(context.Background(), "https://example.com/playlist")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/v1", "https://example.com/v2"}, urls, "blank lines are dropped")
}

func TestResolvePlaylistEmptyURL(t *testing.T) {
	resolver := NewYtDlpResolver()

	_, err := resolver.ResolvePlaylist(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestResolvePlaylistCommandFailure(t *testing.T) {
	binary := fakeYtDlp(t, `echo 'ERROR: unsupported URL' >&2; exit 1`)
	resolver := NewYtDlpResolverWithBinary(binary)

	_, err := resolver.ResolvePlaylist(context.Background(), "https://example.com/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported URL")
}

func TestResolvePlaylistMissingBinary(t *testing.T) {
	resolver := NewYtDlpResolverWithBinary(filepath.Join(t.TempDir(), "nonexistent"))

	_, err := resolver.ResolvePlaylist(context.Background(), "https://example.com/playlist")
	assert.Error(t, err)
}

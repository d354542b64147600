// Package version provides centralized version information for the
// video-nugget CLI.
//
// Build-time injection:
//
//	-ldflags "-X github.com/acailic/video-nugget/internal/version.version=v1.0.0"
package version

import (
	"fmt"
	"io"
)

// These variables are set via ldflags during build.
//
//nolint:gochecknoglobals // Required for build-time injection via ldflags.
var (
	version   string
	commit    string
	buildTime string
)

// ApplicationName is the name displayed in version output.
const ApplicationName = "video-nugget CLI"

// Default values used when version information is not available.
const (
	DefaultVersion   = "dev"
	DefaultCommit    = "unknown"
	DefaultBuildTime = "unknown"
)

// Info encapsulates version information with proper defaults.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

// GetVersion returns the build's version information.
func GetVersion() *Info {
	return &Info{
		Version:   withDefault(version, DefaultVersion),
		Commit:    withDefault(commit, DefaultCommit),
		BuildTime: withDefault(buildTime, DefaultBuildTime),
	}
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Write renders the version information. Short mode prints the bare version
// number for automated consumers.
func (i *Info) Write(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, i.Version)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\nVersion: %s\nCommit: %s\nBuilt: %s\n",
		ApplicationName, i.Version, i.Commit, i.BuildTime)
	return err
}

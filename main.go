// Package main is the entry point for the video-nugget batch engine CLI.
// It orchestrates batches of video URLs through the per-item nugget pipeline
// under a bounded concurrency budget, with retry, progress tracking, and
// report generation.
package main

import "github.com/acailic/video-nugget/cmd"

func main() {
	cmd.Execute()
}

// Package ffmpeg provides functionality for detecting and invoking FFmpeg.
// This file contains the type definitions shared across the package.
package ffmpeg

// Private types (alphabetical)
// None currently defined

// Public types (alphabetical)

// FFmpegInfo contains information about the FFmpeg installation
type FFmpegInfo struct {
	// Installed is true if FFmpeg is found in the system
	Installed bool
	// Path is the full path to the FFmpeg executable
	Path string
	// Version is the version of FFmpeg
	Version string
}

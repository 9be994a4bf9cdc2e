// Package ffmpeg provides functionality for detecting and invoking FFmpeg.
// It locates the FFmpeg executable on the host system, extracts its version,
// and builds the argument lists used to copy audio streams out of video
// containers without re-encoding them.
package ffmpeg

import (
	"fmt"
)

// Private constants (alphabetical)
const (
	// errorPrefix is used as a prefix for all error messages from this package.
	// This ensures consistent error formatting across the package.
	errorPrefix = "ffmpeg: "
)

// Public constants (alphabetical)
const (
	// OutputExtension is the file extension of the Matroska audio container
	// that extracted audio streams are written to.
	OutputExtension = ".mka"
)

// Public functions (alphabetical)

// FormatError creates a standardized error message with the package prefix.
// It ensures all errors from this package have a consistent format and can be
// easily identified as originating from the ffmpeg package.
func FormatError(format string, args ...interface{}) error {
	return fmt.Errorf(errorPrefix+format, args...)
}

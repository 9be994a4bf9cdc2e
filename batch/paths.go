// Package batch drives audio-extraction jobs under a concurrency ceiling.
// This file derives output paths from input paths and the output-mode
// configuration.
package batch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/torre76/audiohound/ffmpeg"
)

// Public types (alphabetical)

// OutputMode describes how output paths are derived for one run. It is
// fixed before any job is constructed.
type OutputMode struct {
	// Explicit is the --output value, empty when the flag was not given.
	Explicit string
	// SingleFile is true when exactly one file was discovered, which lets
	// an explicit output name the output file directly rather than a
	// directory.
	SingleFile bool
}

// Public functions (alphabetical)

// DeriveOutputPath computes the output path for one input. It is a pure,
// deterministic function of its arguments: with no explicit output the
// `.mka` extension is appended right next to the input; in directory mode
// the renamed basename lands in the output directory; in single-file mode
// the explicit output is used as-is.
func DeriveOutputPath(inputPath string, mode OutputMode) string {
	if mode.Explicit == "" {
		// right next to it
		return inputPath + ffmpeg.OutputExtension
	}
	if dir, ok := mode.OutputDir(); ok {
		return filepath.Join(dir, filepath.Base(inputPath)+ffmpeg.OutputExtension)
	}
	return mode.Explicit
}

// Public methods (alphabetical)

// OutputDir returns the output directory and true when the mode places
// outputs inside a directory: either the explicit output ends with a path
// separator, or more than one file was discovered.
func (m OutputMode) OutputDir() (string, bool) {
	if m.Explicit == "" {
		return "", false
	}
	if strings.HasSuffix(m.Explicit, string(os.PathSeparator)) || !m.SingleFile {
		return m.Explicit, true
	}
	return "", false
}

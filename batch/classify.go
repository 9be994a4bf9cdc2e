// Package batch drives audio-extraction jobs under a concurrency ceiling.
// This file classifies discovered files by extension.
package batch

import (
	"path/filepath"
	"strings"
)

// Private variables (alphabetical)

// audioExtensions lists the containers that are already audio-only,
// including this tool's own output format.
var audioExtensions = map[string]bool{
	".aac":  true,
	".flac": true,
	".m4a":  true,
	".mka":  true,
	".mp3":  true,
	".ogg":  true,
	".wav":  true,
	".wma":  true,
}

// videoExtensions lists the video containers the tool knows how to extract
// audio from.
var videoExtensions = map[string]bool{
	".flv":  true,
	".mkv":  true,
	".mp4":  true,
	".webm": true,
}

// Public constants (alphabetical)

// FileClass values describe how a discovered file is handled.
const (
	// ClassUnrecognized means the file is neither audio nor video. Such
	// files abort the run before any job starts unless explicitly
	// tolerated.
	ClassUnrecognized FileClass = iota
	// ClassAudio means the file is already in an audio-only format and
	// needs no conversion.
	ClassAudio
	// ClassVideo means the file is a video container whose audio stream
	// should be extracted.
	ClassVideo
)

// Public types (alphabetical)

// FileClass is the classification of one discovered file.
type FileClass int

// Public functions (alphabetical)

// Classify determines how a file should be handled based on its extension.
// Matching is case-insensitive, so `.MP4` is treated like `.mp4`.
func Classify(path string) FileClass {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case audioExtensions[ext]:
		return ClassAudio
	case videoExtensions[ext]:
		return ClassVideo
	default:
		return ClassUnrecognized
	}
}

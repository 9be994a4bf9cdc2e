// Package ffmpeg provides functionality for detecting and invoking FFmpeg.
// This file implements detection of the FFmpeg installation: finding the
// executable in the PATH or in common install locations, and reading its
// version string.
package ffmpeg

import (
	"bytes"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

// Private variables (alphabetical)

// ffmpegVersionRegex is used to detect FFmpeg version from version string.
// It extracts the numeric version (e.g., 4.4.1) from FFmpeg's version output.
var ffmpegVersionRegex = regexp.MustCompile(`(?i)(?:version|ffmpeg)\s+(?:n|\w)?(\d+\.\d+(?:\.\d+(?:\.\d+)?)?)`)

// Private functions (alphabetical)

// checkFFmpegExistence confirms if FFmpeg is installed on the system by searching
// for the executable. It first looks for the ffmpeg executable in the user's PATH
// environment variable. If not found there, it checks common installation
// directories based on the operating system.
func checkFFmpegExistence() (string, bool) {
	// Try to find FFmpeg in PATH
	pathCmd, err := exec.LookPath("ffmpeg")
	if err == nil {
		return pathCmd, true
	}

	// Get common paths and check each one
	for _, path := range getCommonInstallPaths() {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	return "", false
}

// getCommonInstallPaths returns the conventional FFmpeg install locations
// for the current operating system.
func getCommonInstallPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			"C:\\Program Files\\FFmpeg\\bin\\ffmpeg.exe",
			"C:\\Program Files (x86)\\FFmpeg\\bin\\ffmpeg.exe",
		}
	case "darwin":
		return []string{
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/opt/local/bin/ffmpeg",
		}
	default: // Linux and others
		return []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/ffmpeg/bin/ffmpeg",
		}
	}
}

// parseVersion extracts the numeric FFmpeg version from the output of
// `ffmpeg -version`. It returns an empty string when no version is found.
func parseVersion(versionOutput string) string {
	firstLine := versionOutput
	if idx := strings.IndexByte(versionOutput, '\n'); idx >= 0 {
		firstLine = versionOutput[:idx]
	}

	matches := ffmpegVersionRegex.FindStringSubmatch(firstLine)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// Public functions (alphabetical)

// FindFFmpeg attempts to locate the FFmpeg executable and determine its version.
// It returns a populated FFmpegInfo struct with installation details, or an
// error when FFmpeg cannot be found or executed.
func FindFFmpeg() (*FFmpegInfo, error) {
	ffmpegPath, found := checkFFmpegExistence()
	if !found {
		return &FFmpegInfo{Installed: false}, FormatError("executable not found in PATH or common install locations")
	}

	// Execute FFmpeg to get its version output
	cmd := exec.Command(ffmpegPath, "-version")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return &FFmpegInfo{Path: ffmpegPath, Installed: false}, FormatError("failed to execute %s: %w", ffmpegPath, err)
	}

	return &FFmpegInfo{
		Installed: true,
		Path:      ffmpegPath,
		Version:   parseVersion(out.String()),
	}, nil
}

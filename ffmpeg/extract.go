// Package ffmpeg provides functionality for detecting and invoking FFmpeg.
// This file builds the argument lists for audio extraction. The audio stream
// is copied verbatim (`-acodec copy`) into a Matroska audio container, so no
// lossy transformation is ever applied to the audio itself.
package ffmpeg

// Private constants (alphabetical)
// None currently defined

// Public constants (alphabetical)
// None currently defined

// Private functions (alphabetical)
// None currently defined

// Public functions (alphabetical)

// ExtractArgs constructs the complete command line that copies the audio
// stream of inputPath into outputPath. The returned slice starts with the
// FFmpeg executable path itself and is suitable for exec.Command(args[0],
// args[1:]...).
//
// Below verbosity level 2, FFmpeg's own logging is suppressed with
// `-loglevel fatal`; at level 2 and above it is passed through untouched so
// the user can see what the tool is doing to each file.
func ExtractArgs(ffmpegPath, inputPath, outputPath string, verbose int) []string {
	args := make([]string, 0, 9)
	args = append(args, ffmpegPath)
	if verbose < 2 {
		args = append(args, "-loglevel", "fatal")
	}
	args = append(args, "-i", inputPath, "-vn", "-acodec", "copy", outputPath)
	return args
}

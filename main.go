// Package main provides the entry point for the audiohound application.
// It extracts the audio streams of video files into Matroska audio (.mka)
// containers using FFmpeg, without re-encoding the audio itself.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/gertd/go-pluralize"
	"github.com/torre76/audiohound/batch"
	"github.com/urfave/cli/v2"
)

// Private constants (alphabetical)
// None currently defined

// Public constants (alphabetical)
// None currently defined

// Private variables (alphabetical)

// verboseCount accumulates repeated -v flags into a verbosity level.
var verboseCount int

// Public variables (alphabetical)

// BuildDate contains the date when the binary was built.
// This value is set during build using ldflags.
var BuildDate = "unknown"

// Commit contains the git commit hash that the binary was built from.
// This value is set during build using ldflags.
var Commit = "unknown"

// Version contains the current version of the application.
// This value can be overridden during build using ldflags:
// go build -ldflags="-X 'github.com/torre76/audiohound.Version=v1.0.0'"
var Version = "Development Version"

// Private functions (alphabetical)

// newApp builds the CLI application with its full flag surface. It is
// separate from main so tests can drive the application end to end.
func newApp() *cli.App {
	verboseCount = 0
	// The built-in version flag defaults to "--version, -v"; drop the "v"
	// alias so it cannot collide with the repeatable verbosity flag.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
	return &cli.App{
		Name:  "audiohound",
		Usage: "A tool for extracting audio from video files",
		Description: "AudioHound walks one or more roots, copies the audio stream of every " +
			"recognized video file into a Matroska audio (.mka) container, and verifies " +
			"that the outputs look plausible. The audio is never re-encoded.",
		Version:   Version,
		Action:    extractCommand,
		ArgsUsage: "ROOT...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Increase verbosity; repeat for FFmpeg's own logging",
				Count:   &verboseCount,
			},
			&cli.BoolFlag{
				Name:    "in-place",
				Aliases: []string{"i"},
				Usage:   "Delete inputs after conversion",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print each FFmpeg invocation without running it",
			},
			&cli.BoolFlag{
				Name:  "ignore-unrecognized",
				Usage: "Skip files with unrecognized extensions instead of aborting",
			},
			&cli.BoolFlag{
				Name:  "skip-sanity-check",
				Usage: "Skip the output-size validation after each conversion",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Explicit output file, or output directory for multiple inputs",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Maximum concurrent conversions; use 0 for unlimited",
				Value:   runtime.NumCPU(),
			},
			&cli.StringFlag{
				Name:  "ffmpeg",
				Usage: "Path to the FFmpeg executable (default: autodetect)",
			},
		},
	}
}

func versionPrinter(c *cli.Context) {
	summaryStyle := color.New(color.FgCyan, color.Bold)
	valueStyle := color.New(color.Bold)
	regularStyle := color.New(color.Reset)

	summaryStyle.Printf("🎧 AudioHound %s\n", Version)
	regularStyle.Printf("  🛠️ Build date: ")
	valueStyle.Printf("%s\n", BuildDate)
	regularStyle.Printf("  🔍 Commit: ")
	valueStyle.Printf("%s\n", Commit)
}

// Public functions (alphabetical)

// extractCommand implements the default command which converts every video
// file under the given roots. It validates the arguments, builds the batch
// configuration, runs the batch, and reports failed conversions through
// the exit status.
func extractCommand(c *cli.Context) error {
	regularStyle := color.New(color.Reset)
	errorStyle := color.New(color.FgRed)

	if c.NArg() < 1 {
		// Display a more user-friendly message and usage information
		errorStyle.Printf("❌ Error: missing required argument: ROOT\n\n")
		regularStyle.Printf("Usage: %s [options] ROOT...\n", c.App.Name)
		regularStyle.Printf("Run '%s --help' for more information.\n", c.App.Name)
		return fmt.Errorf("missing required argument: ROOT")
	}

	cfg := &batch.Config{
		Roots:              c.Args().Slice(),
		Verbose:            verboseCount,
		InPlace:            c.Bool("in-place"),
		DryRun:             c.Bool("dry-run"),
		IgnoreUnrecognized: c.Bool("ignore-unrecognized"),
		SkipSanityCheck:    c.Bool("skip-sanity-check"),
		Output:             c.String("output"),
		Jobs:               c.Int("jobs"),
		FFmpegPath:         c.String("ffmpeg"),
	}

	stats, err := batch.Run(cfg)
	if err != nil {
		return err
	}

	if failed := len(stats.Failed); failed > 0 {
		pluralizeClient := pluralize.NewClient()
		return fmt.Errorf("%d %s failed", failed, pluralizeClient.Pluralize("conversion", failed, false))
	}
	return nil
}

// main is the entry point of the application.
// It parses command-line arguments, validates input, and starts the batch.
func main() {
	// Override the default version printer
	cli.VersionPrinter = versionPrinter

	// Run the application
	if err := newApp().Run(os.Args); err != nil {
		errorStyle := color.New(color.FgRed)
		errorStyle.Fprintf(os.Stderr, "⚠️ Error: %v\n", err)
		os.Exit(1)
	}
}

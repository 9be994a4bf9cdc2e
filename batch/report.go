// Package batch drives audio-extraction jobs under a concurrency ceiling.
// This file implements the progress reporting for a run.
package batch

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gertd/go-pluralize"
	"github.com/schollz/progressbar/v3"
)

// Public types (alphabetical)

// Reporter emits the user-facing progress of a run. The reporting mode is
// fixed once per run: a sequential run (ceiling of 1, or dry-run) numbers
// its lines by job start, a concurrent run by job completion. Start lines
// are suppressed under concurrency because once several jobs race, start
// order tells the user nothing; only completion order is meaningful.
type Reporter struct {
	verbose    int
	sequential bool

	// bar gives quiet concurrent runs a liveness signal; it is nil in
	// every other mode.
	bar *progressbar.ProgressBar

	out io.Writer
}

// Public functions (alphabetical)

// NewReporter creates a Reporter for a run of total jobs. The sequential
// flag selects start-indexed progress lines; concurrent runs use
// completion-indexed lines instead, and at verbosity 0 drive a progress
// bar on stderr.
func NewReporter(verbose int, sequential bool, total int) *Reporter {
	r := &Reporter{
		verbose:    verbose,
		sequential: sequential,
		out:        color.Output,
	}
	if !sequential && verbose == 0 && total > 0 {
		r.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("converting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	return r
}

// Public methods (alphabetical)

// Deleting announces the in-place removal of an input file.
func (r *Reporter) Deleting(inputPath string) {
	if r.verbose < 1 {
		return
	}
	fmt.Fprintf(r.out, "deleting: %s\n", inputPath)
}

// JobFinished reports a job reaching a terminal state, numbered by the
// completion counter. Sequential runs stay silent here; they already
// announced the job at start.
func (r *Reporter) JobFinished(job *Job, numerator, denominator int) {
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
	if r.sequential || r.verbose < 1 {
		return
	}

	valueStyle := color.New(color.Bold)
	errorStyle := color.New(color.FgRed)

	if job.State() == JobFailed {
		errorStyle.Fprintf(r.out, "[%d/%d] failed: %s\n", numerator, denominator, job.InputPath)
		return
	}
	fmt.Fprintf(r.out, "[%d/%d] completed: ", numerator, denominator)
	valueStyle.Fprintf(r.out, "%s\n", job.InputPath)
}

// JobStarted reports a job start, numbered by the start counter. Only
// sequential runs announce starts.
func (r *Reporter) JobStarted(job *Job, numerator, denominator int) {
	if !r.sequential || r.verbose < 1 {
		return
	}
	valueStyle := color.New(color.Bold)
	fmt.Fprintf(r.out, "[%d/%d] converting: ", numerator, denominator)
	valueStyle.Fprintf(r.out, "%s\n", job.InputPath)
}

// Summary prints the batch-level summary: counts of duplicates,
// already-audio files, unrecognized files, and conversions at verbosity 1
// and above, plus an enumeration of every failed input regardless of
// verbosity so the user can re-run them individually.
func (r *Reporter) Summary(stats *RunStats) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}

	pluralizeClient := pluralize.NewClient()
	successStyle := color.New(color.FgGreen)
	errorStyle := color.New(color.FgRed)

	if r.verbose >= 1 {
		fmt.Fprintln(r.out)
		if stats.Duplicates > 0 {
			fmt.Fprintf(r.out, "ignored %d %s\n",
				stats.Duplicates, pluralizeClient.Pluralize("duplicate file", stats.Duplicates, false))
		}
		if stats.AlreadyAudio > 0 {
			fmt.Fprintf(r.out, "ignored %d %s\n",
				stats.AlreadyAudio, pluralizeClient.Pluralize("already-audio file", stats.AlreadyAudio, false))
		}
		if stats.Unrecognized > 0 {
			fmt.Fprintf(r.out, "ignored %d %s\n",
				stats.Unrecognized, pluralizeClient.Pluralize("unrecognized file", stats.Unrecognized, false))
		}
		if stats.Converted > 0 {
			successStyle.Fprintf(r.out, "converted %d %s\n",
				stats.Converted, pluralizeClient.Pluralize("video file", stats.Converted, false))
		}
	}

	if len(stats.Failed) > 0 {
		errorStyle.Fprintf(r.out, "%d %s failed:\n",
			len(stats.Failed), pluralizeClient.Pluralize("conversion", len(stats.Failed), false))
		for _, job := range stats.Failed {
			errorStyle.Fprintf(r.out, "  %s: %v\n", job.InputPath, job.Err())
		}
	}
}

// UsingFFmpeg reports which FFmpeg binary the run resolved.
func (r *Reporter) UsingFFmpeg(path, version string) {
	if r.verbose < 1 {
		return
	}
	valueStyle := color.New(color.Bold)
	fmt.Fprintf(r.out, "using FFmpeg %s at ", version)
	valueStyle.Fprintf(r.out, "%s\n", path)
}

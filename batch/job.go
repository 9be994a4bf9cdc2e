// Package batch drives a set of independent audio-extraction jobs to
// completion under a bounded concurrency ceiling. Each job wraps one
// long-running FFmpeg child process; the package tracks job lifecycles,
// validates outputs, optionally deletes inputs on success, and reports
// progress and an aggregate summary.
//
// Known limitation: no timeout is enforced on individual FFmpeg processes,
// and a batch cannot be cancelled once submitted.
package batch

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/torre76/audiohound/ffmpeg"
)

// Private constants (alphabetical)
const (
	// sanityInputGate is the input size above which the output-size sanity
	// check applies. Inputs below it are too small to judge.
	sanityInputGate = 1000000

	// sanityOutputFloor is the smallest plausible output size for an input
	// above the gate. We shouldn't get any smaller than 10% of the input.
	sanityOutputFloor = 100000
)

// Public constants (alphabetical)

// JobState values describe where a Job is in its lifecycle. Completed and
// Failed are terminal: no transition ever leaves them.
const (
	JobPending JobState = iota
	JobRunning
	JobCompleted
	JobFailed
)

// FailureKind values classify why a Job failed.
const (
	// FailNone means the job did not fail.
	FailNone FailureKind = iota
	// FailToolExit means the FFmpeg process exited with a nonzero status
	// or could not be spawned at all.
	FailToolExit
	// FailOutputTooSmall means the output-size sanity check rejected the
	// produced file.
	FailOutputTooSmall
	// FailFilesystem means a stat or delete on the job's files failed.
	FailFilesystem
)

// Public types (alphabetical)

// FailureKind classifies why a Job reached the Failed state.
type FailureKind int

// Job is one input-to-output conversion task with its own FFmpeg process
// and lifecycle state. The output path is computed once, before the Job is
// constructed, and never changes, so no two jobs in a run write the same
// path unless the same input was supplied twice.
type Job struct {
	// InputPath is the video file the audio stream is read from.
	InputPath string
	// OutputPath is the Matroska audio file being produced.
	OutputPath string

	args            []string
	dryRun          bool
	inPlace         bool
	skipSanityCheck bool

	state JobState
	kind  FailureKind
	err   error

	// cmd is owned exclusively by this Job while it is Running and is
	// released once a terminal state is reached.
	cmd *exec.Cmd
	// exitc receives the result of cmd.Wait exactly once, which is what
	// makes Poll a non-blocking check.
	exitc chan error
	// notify is the scheduler's shared done channel; the waiter goroutine
	// signals it after exitc so a blocked drain wakes up.
	notify chan<- *Job

	reporter *Reporter
}

// JobState identifies a Job's position in its lifecycle.
type JobState int

// Private functions (alphabetical)

// sanityCheck guards against silently-truncated or zero-byte outputs from
// an FFmpeg run that exited successfully but produced garbage. It is a
// heuristic, not a correctness proof: outputs below 100 KB produced from
// inputs above 1 MB are rejected. The thresholds are fixed policy.
func sanityCheck(inputPath, outputPath string) (FailureKind, error) {
	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return FailFilesystem, fmt.Errorf("cannot stat input %s: %w", inputPath, err)
	}
	outputInfo, err := os.Stat(outputPath)
	if err != nil {
		return FailFilesystem, fmt.Errorf("cannot stat output %s: %w", outputPath, err)
	}
	if inputInfo.Size() > sanityInputGate && outputInfo.Size() < sanityOutputFloor {
		return FailOutputTooSmall, fmt.Errorf(
			"something looks wrong. file is too small: %s (%d bytes from a %d byte input)",
			outputPath, outputInfo.Size(), inputInfo.Size())
	}
	return FailNone, nil
}

// Public functions (alphabetical)

// NewJob constructs a Job for one input path. The FFmpeg command line is
// built here, once, from the resolved executable path and the run
// configuration.
func NewJob(inputPath, outputPath string, cfg *Config, ffmpegPath string, reporter *Reporter) *Job {
	return &Job{
		InputPath:       inputPath,
		OutputPath:      outputPath,
		args:            ffmpeg.ExtractArgs(ffmpegPath, inputPath, outputPath, cfg.Verbose),
		dryRun:          cfg.DryRun,
		inPlace:         cfg.InPlace,
		skipSanityCheck: cfg.SkipSanityCheck,
		state:           JobPending,
		reporter:        reporter,
	}
}

// Private methods (alphabetical)

// complete moves the Job to Completed and, in in-place mode, deletes the
// input file. Inputs are only ever deleted after a successful conversion,
// never for a Failed job, and never in dry-run mode.
func (j *Job) complete() {
	j.state = JobCompleted
	if !j.inPlace {
		return
	}
	j.reporter.Deleting(j.InputPath)
	if j.dryRun {
		return
	}
	if err := os.Remove(j.InputPath); err != nil {
		j.state = JobFailed
		j.kind = FailFilesystem
		j.err = fmt.Errorf("cannot delete input %s: %w", j.InputPath, err)
	}
}

// fail moves the Job to Failed and records why.
func (j *Job) fail(kind FailureKind, err error) {
	j.state = JobFailed
	j.kind = kind
	j.err = err
}

// finish settles a Running job whose process has exited. A nonzero exit
// status is a failure in its own right; the output-size sanity check only
// runs after a clean exit.
func (j *Job) finish(waitErr error) {
	j.cmd = nil
	if waitErr != nil {
		j.fail(FailToolExit, fmt.Errorf("ffmpeg failed on %s: %w", j.InputPath, waitErr))
		return
	}
	if !j.skipSanityCheck {
		if kind, err := sanityCheck(j.InputPath, j.OutputPath); kind != FailNone {
			j.fail(kind, err)
			return
		}
	}
	j.complete()
}

// Public methods (alphabetical)

// Err returns the error that moved the Job to Failed, or nil.
func (j *Job) Err() error {
	return j.err
}

// Failure returns the failure classification, FailNone unless the Job is
// Failed.
func (j *Job) Failure() FailureKind {
	return j.kind
}

// Poll performs a non-blocking completion check and returns whether the Job
// is in a terminal state. When the owned process has exited, the exit
// status is inspected, the sanity check runs (unless disabled), and the
// in-place delete happens on success. Poll must only be called from the
// scheduler's coordinating goroutine.
func (j *Job) Poll() bool {
	switch j.state {
	case JobCompleted, JobFailed:
		return true
	case JobPending:
		return false
	}
	select {
	case waitErr := <-j.exitc:
		j.finish(waitErr)
		return true
	default:
		return false
	}
}

// Start launches the Job. In dry-run mode the command line is printed and
// the Job completes immediately with no side effects beyond the print.
// Otherwise the FFmpeg process is spawned and the Job transitions to
// Running; a waiter goroutine reaps the process and delivers its exit
// status on the Job's channel. A spawn failure moves the Job straight to
// Failed rather than aborting the batch.
func (j *Job) Start() {
	if j.dryRun {
		fmt.Println(strings.Join(j.args, " "))
		j.complete()
		return
	}

	cmd := exec.Command(j.args[0], j.args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		j.fail(FailToolExit, fmt.Errorf("cannot spawn ffmpeg for %s: %w", j.InputPath, err))
		return
	}

	j.cmd = cmd
	j.exitc = make(chan error, 1)
	j.state = JobRunning

	notify := j.notify
	go func() {
		j.exitc <- cmd.Wait()
		if notify != nil {
			notify <- j
		}
	}()
}

// State returns the Job's current lifecycle state.
func (j *Job) State() JobState {
	return j.state
}

// Package batch drives audio-extraction jobs under a concurrency ceiling.
// This file implements the top-level run controller: discovery,
// classification, deduplication, the submit/drain loop, and the final
// summary.
package batch

import (
	"fmt"
	"os"
	"strings"

	"github.com/torre76/audiohound/ffmpeg"
)

// Public types (alphabetical)

// Config is the configuration surface of one batch run, populated from the
// command line.
type Config struct {
	// Roots are the files or directories the run operates on.
	Roots []string
	// Verbose is the verbosity level: 0 quiet, 1 progress and summary,
	// 2 also passes FFmpeg's own logging through.
	Verbose int
	// InPlace deletes each input file after its successful conversion.
	InPlace bool
	// DryRun prints each would-be FFmpeg invocation without spawning
	// anything; jobs complete immediately.
	DryRun bool
	// IgnoreUnrecognized skips files that are neither audio nor video
	// instead of aborting the run.
	IgnoreUnrecognized bool
	// SkipSanityCheck disables the output-size validation.
	SkipSanityCheck bool
	// Output is an explicit output file (single input) or directory.
	Output string
	// Jobs is the concurrency ceiling; 0 means unbounded.
	Jobs int
	// FFmpegPath overrides FFmpeg autodetection when set.
	FFmpegPath string
}

// RunStats aggregates the outcome of one batch run. The counters are
// finalized once the scheduler has drained every job.
type RunStats struct {
	// Total is the number of files discovered under all roots, duplicates
	// included.
	Total int
	// Duplicates is the number of paths that were discovered more than
	// once and ignored after the first time.
	Duplicates int
	// AlreadyAudio is the number of files skipped because they are
	// already audio-only.
	AlreadyAudio int
	// Unrecognized is the number of tolerated unrecognized files.
	Unrecognized int
	// Converted is the number of jobs that completed successfully.
	Converted int
	// Failed holds the jobs that did not, in completion order.
	Failed []*Job
}

// Private functions (alphabetical)

// resolveFFmpeg determines which FFmpeg executable the run will invoke.
// Dry runs print the plain tool name without requiring an installation;
// real runs with jobs to do autodetect the binary unless the caller
// pinned one.
func resolveFFmpeg(cfg *Config, reporter *Reporter, videoCount int) (string, error) {
	if cfg.FFmpegPath != "" {
		return cfg.FFmpegPath, nil
	}
	if cfg.DryRun || videoCount == 0 {
		return "ffmpeg", nil
	}
	info, err := ffmpeg.FindFFmpeg()
	if err != nil {
		return "", err
	}
	reporter.UsingFFmpeg(info.Path, info.Version)
	return info.Path, nil
}

// Public functions (alphabetical)

// Run executes one batch: it discovers files under every root, classifies
// and deduplicates them, aborts before any job starts if unrecognized
// files exist and are not tolerated, then submits one Job per video file
// in input order, keeping at most cfg.Jobs of them in flight. A Job that
// fails is recorded and the rest of the batch continues; the failures are
// enumerated in the summary and in the returned stats.
func Run(cfg *Config) (*RunStats, error) {
	if cfg.Jobs < 0 {
		return nil, fmt.Errorf("jobs must be >= 0, got %d", cfg.Jobs)
	}

	stats := &RunStats{}
	seen := make(map[string]bool)
	var videoFiles []string
	var unrecognized []string

	for _, root := range cfg.Roots {
		files, err := Discover(root)
		if err != nil {
			return nil, fmt.Errorf("cannot discover files under %s: %w", root, err)
		}
		for _, path := range files {
			stats.Total++
			if seen[path] {
				stats.Duplicates++
				continue
			}
			seen[path] = true
			switch Classify(path) {
			case ClassAudio:
				stats.AlreadyAudio++
			case ClassVideo:
				videoFiles = append(videoFiles, path)
			default:
				unrecognized = append(unrecognized, path)
			}
		}
	}

	if len(unrecognized) > 0 && !cfg.IgnoreUnrecognized {
		lines := make([]string, len(unrecognized))
		for i, path := range unrecognized {
			lines[i] = "unrecognized file extension: " + path
		}
		return nil, fmt.Errorf("%s", strings.Join(lines, "\n"))
	}
	stats.Unrecognized = len(unrecognized)

	// Dry runs have nothing to parallelize; forcing one job keeps the
	// printed commands in input order.
	jobs := cfg.Jobs
	if cfg.DryRun {
		jobs = 1
	}
	sequential := jobs == 1

	mode := OutputMode{Explicit: cfg.Output, SingleFile: stats.Total == 1}
	if dir, ok := mode.OutputDir(); ok && !cfg.DryRun {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create output directory: %w", err)
		}
	}

	reporter := NewReporter(cfg.Verbose, sequential, len(videoFiles))

	ffmpegPath, err := resolveFFmpeg(cfg, reporter, len(videoFiles))
	if err != nil {
		return nil, err
	}

	scheduler := NewScheduler(jobs, len(videoFiles), reporter)
	for _, path := range videoFiles {
		job := NewJob(path, DeriveOutputPath(path, mode), cfg, ffmpegPath, reporter)
		scheduler.Submit(job)
		if jobs > 0 {
			scheduler.Drain(jobs - 1)
		}
	}
	scheduler.Drain(0)

	stats.Converted = scheduler.Converted()
	stats.Failed = scheduler.FailedJobs()
	reporter.Summary(stats)
	return stats, nil
}

// Package batch drives audio-extraction jobs under a concurrency ceiling.
// This file implements the Scheduler, which owns the set of in-flight jobs
// and reaps them as their processes exit.
package batch

// Private constants (alphabetical)
// None currently defined

// Public types (alphabetical)

// Scheduler holds the bounded set of currently-active Jobs and drives
// forward progress by waiting for any of them to finish. All mutation of
// the active set and the counters happens on the single goroutine calling
// Submit and Drain, so no locks are needed.
//
// The scheduler only ever waits on channels fed by its own jobs' waiter
// goroutines. It never issues a process-wide "wait for any child", which
// would be unsafe if the host program had unrelated children.
type Scheduler struct {
	limit int
	total int

	// active holds the in-flight jobs in start order. After Drain(n)
	// returns, len(active) <= n, so the submit-then-drain loop keeps it
	// at or below the concurrency ceiling at all times.
	active []*Job

	// done receives a Job each time one of the owned processes exits. It
	// is buffered for every job in the run so waiter goroutines never
	// block, even when a wake arrives for a job the sweep already reaped.
	done chan *Job

	// started counts jobs as they are submitted; sequential progress
	// lines are numbered with it.
	started int
	// completed counts jobs as they reach a terminal state; concurrent
	// progress lines are numbered with it. The two counters are
	// independent sequences: completion order is up to FFmpeg.
	completed int

	converted int
	failed    []*Job

	reporter *Reporter
}

// Public functions (alphabetical)

// NewScheduler creates a Scheduler for a run of total jobs under the given
// concurrency limit. A limit of 0 means unbounded.
func NewScheduler(limit, total int, reporter *Reporter) *Scheduler {
	return &Scheduler{
		limit:    limit,
		total:    total,
		done:     make(chan *Job, total),
		reporter: reporter,
	}
}

// Public methods (alphabetical)

// Active returns the number of jobs currently in the active set.
func (s *Scheduler) Active() int {
	return len(s.active)
}

// Converted returns how many jobs have completed successfully so far.
func (s *Scheduler) Converted() int {
	return s.converted
}

// Drain blocks until the active set size is at or below downTo. It
// repeatedly sweeps the active set, reaping every job that has reached a
// terminal state, then blocks for the next process-exit notification when
// still above target. A notification for an already-reaped job simply
// triggers another sweep, so spurious wakes are harmless.
func (s *Scheduler) Drain(downTo int) {
	for {
		kept := s.active[:0]
		for _, job := range s.active {
			if !job.Poll() {
				kept = append(kept, job)
				continue
			}
			s.completed++
			if job.State() == JobCompleted {
				s.converted++
			} else {
				s.failed = append(s.failed, job)
			}
			s.reporter.JobFinished(job, s.completed, s.total)
		}
		s.active = kept

		if len(s.active) <= downTo {
			return
		}

		// Block until at least one owned child changes state.
		<-s.done
	}
}

// FailedJobs returns the jobs that reached the Failed state, in completion
// order.
func (s *Scheduler) FailedJobs() []*Job {
	return s.failed
}

// Submit adds a job to the active set and starts it. When the concurrency
// ceiling is finite the caller must have made room first by calling
// Drain(limit-1); with a ceiling of 0 (unbounded) Submit may be called
// back to back and a single trailing Drain(0) reaps everything.
func (s *Scheduler) Submit(job *Job) {
	job.notify = s.done
	s.active = append(s.active, job)
	s.started++
	s.reporter.JobStarted(job, s.started, s.total)
	job.Start()
}

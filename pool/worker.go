package pool

import (
	"context"
	"log/slog"

	"github.com/poolkit/poolkit/internal/osthread"
)

// spawn starts one worker goroutine. Called at construction, on Resize
// growth, and by the recovery path when replacing a worker lost to a
// panicking job.
func (s *shared) spawn() {
	seq := s.spawnSeq.Add(1)
	go s.runWorker(int(seq - 1))
}

// runWorker is the per-worker control loop. The deferred closure is the
// worker's replacement guard, armed for the whole loop and disarmed only
// on the two intentional retirement paths. Any other way out of the loop
// (a panic unwinding out of a job, or a job calling runtime.Goexit, which
// unwinds with a nil recover) leaves the guard armed: it repairs the
// executing count and spawns a successor before the goroutine dies.
func (s *shared) runWorker(seq int) {
	if s.conf.osThreads {
		release := osthread.Acquire(seq, s.conf.name)
		defer release()
	}
	if s.conf.name != "" {
		unregister := registerWorkerName(s.conf.name)
		defer unregister()
	}

	retired := false
	defer func() {
		// recover only swallows a panic; the guard keys on the disarm
		// flag so that Goexit-style exits are caught too.
		r := recover()
		if retired {
			return
		}

		// The worker died mid-job: it incremented active before the job
		// ran and never reached its own decrement.
		s.active.Add(-1)
		s.panicked.Add(1)

		// Replacement is deferred first so it happens even if the panic
		// hook misbehaves. If all handles are already closed the
		// successor retires on its first pass through the loop.
		defer s.spawn()
		s.notifyPanic(r)
	}()

	for {
		// Two independent loads, not a joint snapshot. A transiently
		// stale pair is fine: the sizing mechanism is advisory between
		// jobs, never exact at every instant.
		if s.active.Load() >= s.maxWorkers.Load() {
			retired = true // lazy shrink: capacity reached, retire quietly
			return
		}

		job, ok := s.queue.pop()
		if !ok {
			retired = true // all handles closed and queue drained
			return
		}

		if lim := s.conf.rateLimiter; lim != nil {
			_ = lim.Wait(context.Background())
		}

		s.active.Add(1)
		job()
		s.active.Add(-1)
		s.completed.Add(1)
	}
}

// notifyPanic reports an abnormal worker exit without ever letting the
// report itself unwind the replacement path. recovered is nil when the
// job left via runtime.Goexit rather than a panic.
func (s *shared) notifyPanic(recovered any) {
	defer func() {
		_ = recover()
	}()

	if s.conf.onPanic != nil {
		s.conf.onPanic(recovered)
		return
	}
	slog.Error("pool: worker terminated abnormally, replacing it",
		"pool", s.conf.name,
		"panic", recovered,
	)
}

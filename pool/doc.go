// Package pool provides a small, self-healing worker pool for
// fire-and-forget jobs.
//
// The primary type is ThreadPool, a cloneable handle over a fixed-but-
// resizable set of workers consuming an unbounded FIFO queue. Its defining
// property is failure recovery: a panic inside a job kills only the worker
// that ran it, and the pool spawns a replacement automatically, so the
// configured capacity survives misbehaving jobs without the process ever
// noticing.
//
// # Basic Usage
//
//	p := pool.New(4)
//	defer p.Close()
//
//	results := make(chan int, 8)
//	for i := range 8 {
//	    p.Submit(func() { results <- i })
//	}
//
//	sum := 0
//	for range 8 {
//	    sum += <-results
//	}
//	// sum == 28
//
// Jobs carry no result or error channel of their own; callers route
// results out-of-band, as above.
//
// # Self-Healing
//
// Every worker runs under a replacement guard. When a job panics, the
// guard repairs the pool's executing-worker count and spawns one successor
// worker before the dying goroutine exits; the panic never crosses into
// other jobs, the handle, or the process. Observe recoveries with
// WithPanicHandler; by default they are logged through log/slog.
//
// # Resizing
//
//	p := pool.New(4)
//	p.Resize(6) // spawns 2 workers immediately
//	p.Resize(2) // lazy: excess workers retire between jobs
//
// Shrinking never interrupts a worker. Each worker re-evaluates capacity
// between jobs and retires quietly when the pool is over target, so
// ActiveCount converges to the new target rather than snapping to it.
//
// # Shutdown
//
// There is no stop operation. Close every handle (the original and all
// Clones) and the queue's send side closes: workers finish what is queued
// and retire. In-flight jobs run to completion.
//
// # Worker Naming
//
// Pools built with NewWithName (or WithName) tag every worker for
// diagnostics, including workers added by growth and replacements spawned
// after a panic. Inside a job,
// WorkerName reports the tag. With WithOSThreads the tag also reaches the
// kernel thread name where the platform supports it.
//
// # Configuration Options
//
//   - WithName(name): tag all workers with a diagnostic name
//   - WithRateLimit(jobsPerSecond, burst): throttle job dispatch
//   - WithOSThreads(): lock workers to pinned, named OS threads
//   - WithPanicHandler(fn): observe recovered job panics
package pool

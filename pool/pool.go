package pool

import (
	"sync"
	"sync/atomic"
)

// Job is a single, no-argument, no-return unit of work. A job is executed
// exactly once by whichever worker dequeues it; it is never retried and its
// outcome is never reported by the pool. Callers that need a result must
// route it through their own channel.
type Job func()

// ThreadPool is the user-facing handle of a worker pool. It submits jobs
// into a shared unbounded FIFO queue consumed by the pool's workers and
// adjusts the pool's target capacity.
//
// The pool replenishes itself: a panic inside a job kills only the worker
// that ran it, and a replacement worker is spawned transparently, so the
// configured capacity survives any number of job failures.
//
// Handles are cheap to Clone; all clones share the same pool state. The
// pool shuts down when the last live handle is closed: blocked workers then
// drain whatever is still queued and retire.
//
// Example:
//
//	p := pool.New(4)
//	defer p.Close()
//
//	results := make(chan int, 8)
//	for i := range 8 {
//	    p.Submit(func() { results <- i })
//	}
type ThreadPool struct {
	shared *shared
	closed atomic.Bool
	once   sync.Once
}

// shared is the pool state jointly referenced by every handle clone and
// every worker goroutine. It lives as long as its longest-lived holder.
type shared struct {
	conf *config

	queue *jobQueue

	// active counts workers currently executing a job, not idle or merely
	// alive workers. Mutated by workers only, read by handles.
	active atomic.Int32

	// maxWorkers is the target capacity. Mutated by handles only, read by
	// workers on every capacity check.
	maxWorkers atomic.Int32

	// handles counts live (unclosed) ThreadPool clones. The queue's send
	// side closes when it drops to zero.
	handles atomic.Int32

	// spawnSeq hands a sequence number to each spawned worker, used only
	// for CPU pinning when workers are OS-thread locked.
	spawnSeq atomic.Int64

	submitted atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
}

// New creates a pool with the given number of workers, all spawned before
// New returns. It panics if threads is zero or negative: a pool with no
// target capacity is a programmer error, not a runtime condition.
func New(threads int, opts ...Option) *ThreadPool {
	if threads < 1 {
		panic("pool: thread count must be at least 1")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &shared{
		conf:  cfg,
		queue: newJobQueue(),
	}
	s.maxWorkers.Store(int32(threads))
	s.handles.Store(1)

	for range threads {
		s.spawn()
	}

	return &ThreadPool{shared: s}
}

// NewWithName creates a pool whose workers all carry the given diagnostic
// tag. The tag propagates to every future worker of this pool: workers
// spawned by Resize growth and replacements spawned after a job panic
// report the same name. Jobs can query the tag via WorkerName.
//
// It panics if threads is zero or negative.
func NewWithName(name string, threads int) *ThreadPool {
	return New(threads, WithName(name))
}

// Submit enqueues a job for execution. It never blocks: the queue is
// unbounded and grows with pending work. Jobs are handed to workers in
// submission order, though completion order depends on job durations.
//
// Submit panics if the job is nil or if the handle (or the whole pool) has
// been closed.
func (p *ThreadPool) Submit(job Job) {
	if job == nil {
		panic("pool: nil job")
	}
	if p.closed.Load() {
		panic("pool: submit on closed handle")
	}
	if !p.shared.queue.push(job) {
		panic("pool: submit on closed pool")
	}
	p.shared.submitted.Add(1)
}

// ActiveCount returns the number of workers currently executing a job.
// Idle workers blocked waiting for work are not counted.
func (p *ThreadPool) ActiveCount() int {
	return int(p.shared.active.Load())
}

// MaxCount returns the pool's target capacity.
func (p *ThreadPool) MaxCount() int {
	return int(p.shared.maxWorkers.Load())
}

// QueuedCount returns the number of submitted jobs not yet picked up by a
// worker.
func (p *ThreadPool) QueuedCount() int {
	return p.shared.queue.len()
}

// Name returns the diagnostic tag the pool's workers carry, or the empty
// string for an unnamed pool.
func (p *ThreadPool) Name() string {
	return p.shared.conf.name
}

// Resize sets the pool's target capacity. Growing spawns the additional
// workers immediately. Shrinking is lazy: no worker is stopped; each excess
// worker retires on its own the next time it checks capacity between jobs.
// A worker already blocked waiting for work re-checks only after running
// one more job (or when the queue closes), so under low throughput a shrink
// can take arbitrarily long to be reflected in ActiveCount.
//
// Resize panics if threads is zero or negative.
func (p *ThreadPool) Resize(threads int) {
	if threads < 1 {
		panic("pool: thread count must be at least 1")
	}

	prev := p.shared.maxWorkers.Swap(int32(threads))
	for i := prev; i < int32(threads); i++ {
		p.shared.spawn()
	}
}

// Clone returns a new handle sharing this handle's pool. Submissions from
// any clone land in the same queue; counters and capacity are shared. The
// pool stays alive until every clone is closed.
//
// Clone panics if this handle is already closed.
func (p *ThreadPool) Clone() *ThreadPool {
	if p.closed.Load() {
		panic("pool: clone of closed handle")
	}
	p.shared.handles.Add(1)
	return &ThreadPool{shared: p.shared}
}

// Close releases this handle. When the last live handle is closed, the
// queue's send side closes: workers drain the remaining queued jobs, then
// retire silently. Jobs already running continue to completion; a panic in
// such a job still only costs its own worker.
//
// Close does not wait for workers to finish. Closing an already closed
// handle is a no-op.
func (p *ThreadPool) Close() {
	p.once.Do(func() {
		p.closed.Store(true)
		if p.shared.handles.Add(-1) == 0 {
			p.shared.queue.close()
		}
	})
}

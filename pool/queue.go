package pool

import "sync"

// jobQueue is the pool's unbounded FIFO queue. Producers (handle clones)
// push concurrently and never block; consumers (workers) pop one at a time.
// The lock is held only across the push or pop itself, never while a job
// runs, so dequeue contention is the only serialization the queue imposes.
type jobQueue struct {
	mu    sync.Mutex
	ready *sync.Cond

	// jobs is a slice-backed deque: head indexes the next job to hand out,
	// push appends. The consumed prefix is compacted once it dominates the
	// backing array.
	jobs []Job
	head int

	closed bool
}

func newJobQueue() *jobQueue {
	q := &jobQueue{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// push appends a job. It reports false, leaving the job unqueued, if the
// queue is closed.
func (q *jobQueue) push(job Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.jobs = append(q.jobs, job)
	q.ready.Signal()
	return true
}

// pop blocks until a job is available and hands it to the caller. After
// close, pop keeps draining jobs queued before the close; it reports false
// only once the queue is both closed and empty, which is the workers'
// shutdown signal.
func (q *jobQueue) pop() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.jobs) && !q.closed {
		q.ready.Wait()
	}
	if q.head == len(q.jobs) {
		return nil, false
	}

	job := q.jobs[q.head]
	q.jobs[q.head] = nil
	q.head++

	if q.head > len(q.jobs)/2 && q.head > 32 {
		n := copy(q.jobs, q.jobs[q.head:])
		q.jobs = q.jobs[:n]
		q.head = 0
	}

	return job, true
}

// close marks the send side gone and wakes every blocked consumer.
// Queued jobs remain consumable; closing twice is a no-op.
func (q *jobQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.ready.Broadcast()
}

func (q *jobQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs) - q.head
}

package pool

// Stats is a point-in-time snapshot of a pool's counters. The fields are
// sampled independently, so a snapshot taken while jobs are in flight may
// be mutually inconsistent by a job or two.
type Stats struct {
	Running   int    // workers executing a job right now
	Queued    int    // submitted jobs not yet dequeued
	Submitted uint64 // jobs accepted by Submit since construction
	Completed uint64 // jobs that ran to normal completion
	Panicked  uint64 // jobs that killed their worker
}

// Stats returns a snapshot of the pool's counters.
func (p *ThreadPool) Stats() Stats {
	s := p.shared
	return Stats{
		Running:   int(s.active.Load()),
		Queued:    s.queue.len(),
		Submitted: s.submitted.Load(),
		Completed: s.completed.Load(),
		Panicked:  s.panicked.Load(),
	}
}

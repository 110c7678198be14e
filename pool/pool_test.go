package pool

import (
	"testing"
	"time"
)

func TestThreadPool_SumOfSubmittedValues(t *testing.T) {
	p := New(4)
	defer p.Close()

	results := make(chan int, 8)
	for i := range 8 {
		p.Submit(func() {
			results <- i
		})
	}

	sum := 0
	for range 8 {
		sum += <-results
	}

	if sum != 28 {
		t.Fatalf("expected sum 28, got %d", sum)
	}
}

func TestThreadPool_InitialCounts(t *testing.T) {
	p := New(4)
	defer p.Close()

	if got := p.MaxCount(); got != 4 {
		t.Errorf("expected max count 4, got %d", got)
	}
	if got := p.ActiveCount(); got != 0 {
		t.Errorf("expected active count 0 with no jobs submitted, got %d", got)
	}
	if got := p.QueuedCount(); got != 0 {
		t.Errorf("expected queued count 0, got %d", got)
	}
}

func TestThreadPool_ZeroThreadsPanics(t *testing.T) {
	mustPanic(t, "New(0)", func() {
		New(0)
	})
}

func TestThreadPool_NegativeThreadsPanics(t *testing.T) {
	mustPanic(t, "New(-3)", func() {
		New(-3)
	})
}

func TestThreadPool_SubmitNilJobPanics(t *testing.T) {
	p := New(1)
	defer p.Close()

	mustPanic(t, "Submit(nil)", func() {
		p.Submit(nil)
	})
}

func TestThreadPool_ActiveCount(t *testing.T) {
	const n = 4

	p := New(n)
	defer p.Close()

	release := make(chan struct{})
	for range n {
		p.Submit(func() {
			<-release
		})
	}

	eventually(t, 2*time.Second, func() bool {
		return p.ActiveCount() == n
	}, "all workers should be executing a blocking job")

	if got := p.MaxCount(); got != n {
		t.Errorf("expected max count %d, got %d", n, got)
	}

	close(release)

	eventually(t, 2*time.Second, func() bool {
		return p.ActiveCount() == 0
	}, "active count should fall back to 0 after jobs finish")
}

func TestThreadPool_ActiveCount_FewerJobsThanWorkers(t *testing.T) {
	p := New(4)
	defer p.Close()

	release := make(chan struct{})
	for range 2 {
		p.Submit(func() {
			<-release
		})
	}

	eventually(t, 2*time.Second, func() bool {
		return p.ActiveCount() == 2
	}, "exactly the submitted jobs should count as active")

	// The two idle workers must not drift into the count.
	time.Sleep(50 * time.Millisecond)
	if got := p.ActiveCount(); got != 2 {
		t.Errorf("expected stable active count 2, got %d", got)
	}

	close(release)
}

func TestThreadPool_Resize_ZeroPanics(t *testing.T) {
	p := New(2)
	defer p.Close()

	mustPanic(t, "Resize(0)", func() {
		p.Resize(0)
	})

	// The failed resize must leave the pool usable.
	done := make(chan struct{})
	p.Submit(func() {
		close(done)
	})
	<-done
}

func TestThreadPool_Resize_GrowSpawnsImmediately(t *testing.T) {
	p := New(4)
	defer p.Close()

	release := make(chan struct{})
	for range 4 {
		p.Submit(func() {
			<-release
		})
	}
	eventually(t, 2*time.Second, func() bool {
		return p.ActiveCount() == 4
	}, "initial workers should saturate")

	p.Resize(6)
	if got := p.MaxCount(); got != 6 {
		t.Fatalf("expected max count 6 right after resize, got %d", got)
	}

	for range 2 {
		p.Submit(func() {
			<-release
		})
	}
	eventually(t, 2*time.Second, func() bool {
		return p.ActiveCount() == 6
	}, "grown workers should pick up the extra jobs")

	close(release)
}

func TestThreadPool_Resize_ShrinkIsLazy(t *testing.T) {
	p := New(4)
	defer p.Close()

	done := make(chan struct{}, 4)
	for range 4 {
		p.Submit(func() {
			done <- struct{}{}
		})
	}
	for range 4 {
		<-done
	}

	p.Resize(2)
	if got := p.MaxCount(); got != 2 {
		t.Fatalf("expected max count 2 right after shrink, got %d", got)
	}

	release := make(chan struct{})
	for range 2 {
		p.Submit(func() {
			<-release
		})
	}

	eventually(t, 2*time.Second, func() bool {
		return p.ActiveCount() == 2
	}, "post-shrink load should settle at the new target")

	time.Sleep(50 * time.Millisecond)
	if got := p.ActiveCount(); got != 2 {
		t.Errorf("active count should not exceed the shrunk target, got %d", got)
	}

	close(release)
}

func TestThreadPool_QueuedCount(t *testing.T) {
	p := New(1)
	defer p.Close()

	block := make(chan struct{})
	p.Submit(func() {
		<-block
	})

	eventually(t, 2*time.Second, func() bool {
		return p.ActiveCount() == 1
	}, "the single worker should be busy")

	for range 3 {
		p.Submit(func() {})
	}

	if got := p.QueuedCount(); got != 3 {
		t.Errorf("expected 3 queued jobs behind the blocked worker, got %d", got)
	}

	close(block)
	eventually(t, 2*time.Second, func() bool {
		return p.QueuedCount() == 0
	}, "queue should drain once the worker unblocks")
}

func TestThreadPool_RateLimitThrottlesDispatch(t *testing.T) {
	// 20 jobs/sec with burst 1: three jobs need two limiter waits,
	// roughly 100ms. Assert a loose lower bound to stay robust on slow
	// machines.
	p := New(1, WithRateLimit(20, 1))
	defer p.Close()

	done := make(chan struct{}, 3)
	start := time.Now()
	for range 3 {
		p.Submit(func() {
			done <- struct{}{}
		})
	}
	for range 3 {
		<-done
	}

	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("dispatch finished in %v, rate limit apparently not applied", elapsed)
	}
}

func TestThreadPool_Stats(t *testing.T) {
	p := New(2)
	defer p.Close()

	done := make(chan struct{}, 5)
	for range 5 {
		p.Submit(func() {
			done <- struct{}{}
		})
	}
	for range 5 {
		<-done
	}

	eventually(t, 2*time.Second, func() bool {
		return p.Stats().Completed == 5
	}, "all jobs should be recorded as completed")

	st := p.Stats()
	if st.Submitted != 5 {
		t.Errorf("expected 5 submitted, got %d", st.Submitted)
	}
	if st.Panicked != 0 {
		t.Errorf("expected 0 panicked, got %d", st.Panicked)
	}
	if st.Queued != 0 {
		t.Errorf("expected empty queue, got %d", st.Queued)
	}
}

func TestThreadPool_Name(t *testing.T) {
	p := NewWithName("ingest", 1)
	defer p.Close()

	if got := p.Name(); got != "ingest" {
		t.Errorf("expected pool name %q, got %q", "ingest", got)
	}

	unnamed := New(1)
	defer unnamed.Close()
	if got := unnamed.Name(); got != "" {
		t.Errorf("expected empty name for unnamed pool, got %q", got)
	}
}

func TestThreadPool_OSThreads(t *testing.T) {
	// Smoke test: workers locked to pinned, named OS threads must still
	// run jobs and heal after a panic.
	p := New(2, WithOSThreads(), WithName("pinned"), WithPanicHandler(func(any) {}))
	defer p.Close()

	p.Submit(func() {
		panic("lose one thread")
	})

	results := make(chan int, 4)
	for range 4 {
		p.Submit(func() {
			results <- 1
		})
	}

	sum := 0
	for range 4 {
		sum += <-results
	}
	if sum != 4 {
		t.Fatalf("expected 4 completed jobs on OS-thread workers, got %d", sum)
	}
}

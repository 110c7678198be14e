package pool

import (
	"testing"
	"time"
)

// eventually polls cond until it returns true or the timeout elapses.
// Lifecycle transitions (workers picking up jobs, replacements starting)
// are asynchronous, so tests assert convergence rather than instants.
func eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached within %v: %s", timeout, msg)
}

// mustPanic asserts that fn panics.
func mustPanic(t *testing.T, msg string, fn func()) {
	t.Helper()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic: %s", msg)
		}
	}()
	fn()
}

package pool

import (
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a pool at construction.
type Option func(*config)

type config struct {
	name        string
	rateLimiter *rate.Limiter
	osThreads   bool
	onPanic     func(recovered any)
}

func defaultConfig() *config {
	return &config{}
}

// WithName tags every worker of the pool, including future growth spawns
// and panic replacements, with the given diagnostic name. Equivalent to
// NewWithName.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithRateLimit throttles how fast workers pick up jobs.
// jobsPerSecond specifies the sustained dispatch rate and burst the number
// of jobs that may be dispatched back to back. Useful when jobs hit an
// external service that must not be overwhelmed. If not specified, jobs
// are dispatched as fast as workers free up.
//
// Example:
//
//	WithRateLimit(10, 5) // dispatch 10 jobs/sec with burst of 5
func WithRateLimit(jobsPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if jobsPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(jobsPerSecond), burst)
		}
	}
}

// WithOSThreads locks every worker to a dedicated OS thread, pins it to a
// CPU core, and, where the platform allows it, names the kernel thread
// after the pool for diagnostics (visible in /proc and profilers).
// Replacement workers spawned after a panic acquire a thread of their own
// the same way.
func WithOSThreads() Option {
	return func(cfg *config) {
		cfg.osThreads = true
	}
}

// WithPanicHandler installs a hook invoked with the recovered value each
// time a job kills its worker. The value is nil when the job ended the
// worker via runtime.Goexit instead of a panic.
// The hook runs on the dying worker's goroutine, after
// the pool has repaired its counters and before the replacement worker
// starts. A panic inside the hook is swallowed; it cannot interfere with
// the replacement.
//
// If not specified, recovered panics are reported through log/slog.
func WithPanicHandler(fn func(recovered any)) Option {
	return func(cfg *config) {
		cfg.onPanic = fn
	}
}

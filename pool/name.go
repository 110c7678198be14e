package pool

import (
	"sync"

	"github.com/petermattis/goid"
)

// workerNames maps the goroutine ids of live named-pool workers to their
// pool tag. Jobs take no arguments, so the tag cannot travel by parameter
// or context; the registry lets code running inside a job find out which
// pool is executing it.
var workerNames sync.Map // int64 -> string

func registerWorkerName(name string) (unregister func()) {
	id := goid.Get()
	workerNames.Store(id, name)
	return func() {
		workerNames.Delete(id)
	}
}

// WorkerName reports the diagnostic tag of the pool worker executing the
// calling goroutine. ok is false when the caller is not running on a pool
// worker, or when the worker's pool was created without a name.
func WorkerName() (name string, ok bool) {
	v, ok := workerNames.Load(goid.Get())
	if !ok {
		return "", false
	}
	return v.(string), true
}

//go:build darwin

package osthread

import (
	"runtime"
)

// Acquire locks the calling goroutine to an OS thread.
// CPU pinning and thread naming are not available on macOS without cgo.
func Acquire(workerID int, name string) func() {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}
}

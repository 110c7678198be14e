//go:build linux

// Package osthread binds pool workers to OS threads: it locks the calling
// goroutine to its thread, pins the thread to a CPU core, and pushes the
// pool's diagnostic name down to the kernel thread where the platform
// allows it.
package osthread

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Acquire locks the calling goroutine to an OS thread, pins the thread to
// a CPU core derived from workerID, and names the kernel thread after the
// pool. Returns a release function that should be deferred.
func Acquire(workerID int, name string) func() {
	runtime.LockOSThread()
	_ = pinToCore(workerID)
	setName(name)

	return func() {
		runtime.UnlockOSThread()
	}
}

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = ((cpuID % numCPU) + numCPU) % numCPU
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	return unix.SchedSetaffinity(0, &mask) // 0 = current thread
}

// setName sets the kernel thread name (comm). The kernel caps comm at 15
// bytes plus the terminating NUL; longer names are truncated.
func setName(name string) {
	if name == "" {
		return
	}

	var buf [16]byte
	copy(buf[:15], name)
	_ = unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&buf[0])), 0, 0, 0)
}

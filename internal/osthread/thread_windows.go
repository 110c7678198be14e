//go:build windows

package osthread

import (
	"runtime"
	"syscall"
	"unsafe"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	setThreadDescription  = kernel32.NewProc("SetThreadDescription")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// Acquire locks the calling goroutine to an OS thread, pins the thread to
// a CPU core derived from workerID, and names the thread after the pool.
// Returns a release function that should be deferred.
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

	handle, _, _ := getCurrentThread.Call()

	// Bit N of the affinity mask selects CPU N.
	mask := uintptr(1 << cpuID)

	prevMask, _, err := setThreadAffinityMask.Call(handle, mask)
	if prevMask == 0 {
		return err
	}
	return nil
}

// setName sets the thread description (Windows 10 1607+); earlier systems
// lack the API and the call quietly does nothing.
func setName(name string) {
	if name == "" {
		return
	}
	if err := setThreadDescription.Find(); err != nil {
		return
	}

	desc, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return
	}

	handle, _, _ := getCurrentThread.Call()
	_, _, _ = setThreadDescription.Call(handle, uintptr(unsafe.Pointer(desc)))
}

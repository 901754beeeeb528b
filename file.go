//go:build darwin || freebsd || linux

package managedfd

import (
	"os"
	"runtime"
)

// DupFromFile returns a DupFD owning a duplicate of f's descriptor. f stays
// open and owned by the caller; closing it later does not affect the
// returned handle.
//
// Note that [os.File.Fd] puts the descriptor into blocking mode.
func DupFromFile(f *os.File) (*DupFD, error) {
	h, err := DupFrom(int(f.Fd()))
	runtime.KeepAlive(f)
	return h, err
}

// SharedFromFile returns a SharedFD owning a duplicate of f's descriptor.
// f stays open and owned by the caller; closing it later does not affect
// the returned handle.
//
// Note that [os.File.Fd] puts the descriptor into blocking mode.
func SharedFromFile(f *os.File) (*SharedFD, error) {
	h, err := SharedFrom(int(f.Fd()))
	runtime.KeepAlive(f)
	return h, err
}

// ReleaseToFile transfers ownership of h's descriptor to a new [os.File]
// with the given name. Afterwards h behaves like a closed handle. Returns
// nil if h no longer holds a descriptor.
func (h *DupFD) ReleaseToFile(name string) *os.File {
	fd := h.Release()
	if fd < 0 {
		return nil
	}
	return os.NewFile(uintptr(fd), name)
}

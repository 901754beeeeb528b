//go:build darwin || freebsd || linux

package managedfd

import "sync/atomic"

// autoCloseFD holds at most one raw descriptor and guarantees close(2) is
// issued for it at most once, no matter how many teardown attempts race.
// It has no duplication behavior of its own. The sharing policy is supplied
// by the handle type built on top of it.
type autoCloseFD struct {
	fd atomic.Int64
}

// init adopts fd. No validation is performed. The previous owner must not
// use or close fd afterwards.
func (f *autoCloseFD) init(fd int) {
	f.fd.Store(int64(fd))
}

// dupInit adopts a fresh duplicate of fd, which stays open and owned by the
// caller whether or not the duplication succeeds. On failure the cell is left
// holding InvalidFD.
func (f *autoCloseFD) dupInit(fd int) error {
	newfd, err := dupRaw(fd)
	if err != nil {
		f.fd.Store(InvalidFD)
		return wrapSyscallError(dupSyscallName, err)
	}
	f.fd.Store(int64(newfd))
	return nil
}

// raw returns the descriptor the cell currently holds, or InvalidFD after
// teardown.
func (f *autoCloseFD) raw() int {
	return int(f.fd.Load())
}

// release ends the cell's ownership without closing and returns the
// descriptor it held. The atomic swap leaves exactly one racing caller with
// the valid value; every other caller gets InvalidFD.
func (f *autoCloseFD) release() int {
	return int(f.fd.Swap(InvalidFD))
}

// close tears the cell down. Errors from close(2) are dropped: the
// descriptor is invalid afterwards either way, and retrying would risk
// closing an unrelated descriptor that reused the number.
func (f *autoCloseFD) close() {
	if fd := f.release(); fd >= 0 {
		closeRaw(fd)
	}
}

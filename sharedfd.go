//go:build darwin || freebsd || linux

package managedfd

import (
	"runtime"
	"sync/atomic"
)

// sharedCell is the reference-counted ownership cell behind all SharedFD
// handles of one descriptor.
type sharedCell struct {
	fd   autoCloseFD
	refs atomic.Int64
}

func newSharedCell() *sharedCell {
	c := &sharedCell{}
	c.refs.Store(1)
	return c
}

func (c *sharedCell) incRef() {
	c.refs.Add(1)
}

// decRef drops one reference and closes the descriptor when the last one is
// gone. More decrements than references means ownership is corrupted beyond
// recovery somewhere in the caller.
func (c *sharedCell) decRef() {
	switch refs := c.refs.Add(-1); {
	case refs == 0:
		c.fd.close()
	case refs < 0:
		panic("managedfd: SharedFD reference count underflow")
	}
}

// SharedFD is the shared-reference handle flavor. All copies of a SharedFD
// refer to one reference-counted descriptor, and [SharedFD.Dup] only bumps
// the count, so it never allocates a descriptor and never touches the OS.
// The descriptor is closed exactly once, when the last copy is closed.
//
// Distinct handles sharing a descriptor may be duplicated and closed freely
// from concurrent goroutines.
type SharedFD struct {
	cell   *sharedCell
	closed atomic.Bool
}

// WrapShared returns a SharedFD owning fd. The caller must not use or close
// fd afterwards. A negative fd produces a handle that holds nothing, though
// it can still be duplicated and closed like any other.
func WrapShared(fd int) *SharedFD {
	c := newSharedCell()
	c.fd.init(fd)
	return newSharedFD(c)
}

// SharedFrom returns a SharedFD owning a fresh duplicate of fd. fd itself
// stays open and owned by the caller whether or not the duplication
// succeeds.
func SharedFrom(fd int) (*SharedFD, error) {
	c := newSharedCell()
	if err := c.fd.dupInit(fd); err != nil {
		return nil, err
	}
	return newSharedFD(c), nil
}

func newSharedFD(c *sharedCell) *SharedFD {
	h := &SharedFD{cell: c}
	runtime.SetFinalizer(h, (*SharedFD).finalize)
	return h
}

// RawFD returns the shared descriptor, or InvalidFD after this handle has
// been closed. A closed handle reports InvalidFD even while other handles
// keep the descriptor open, because this handle's reference to it is gone.
func (h *SharedFD) RawFD() int {
	if h.closed.Load() {
		return InvalidFD
	}
	return h.cell.fd.raw()
}

// Dup returns a new handle sharing h's descriptor. On a live handle it
// cannot fail. On a closed handle it returns ErrClosed: a reference that has
// been given up cannot be revived.
func (h *SharedFD) Dup() (*SharedFD, error) {
	// Take the reference before checking closed, so a Close racing on
	// another goroutine cannot drop the count to zero in between.
	h.cell.incRef()
	if h.closed.Load() {
		h.cell.decRef()
		return nil, ErrClosed
	}
	h2 := newSharedFD(h.cell)
	runtime.KeepAlive(h)
	return h2, nil
}

// MustDup is [SharedFD.Dup] for call paths without an error channel.
// It panics if Dup fails, which on a live handle cannot happen.
func (h *SharedFD) MustDup() *SharedFD {
	h2, err := h.Dup()
	if err != nil {
		panic(err)
	}
	return h2
}

// Close drops this handle's reference to the shared descriptor, closing the
// descriptor if it was the last one. Only the first call on a given handle
// has any effect; later calls are no-ops. Close always returns nil, because
// close(2) errors are dropped: the descriptor is invalid afterwards either
// way.
func (h *SharedFD) Close() error {
	if h.closed.CompareAndSwap(false, true) {
		runtime.SetFinalizer(h, nil)
		h.cell.decRef()
	}
	return nil
}

func (h *SharedFD) finalize() {
	if h.closed.CompareAndSwap(false, true) {
		if fd := h.cell.fd.raw(); fd >= 0 {
			leakWarn("SharedFD", fd)
		}
		h.cell.decRef()
	}
}

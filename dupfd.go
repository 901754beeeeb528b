//go:build darwin || freebsd || linux

package managedfd

import "runtime"

// DupFD is the independent-copy handle flavor. Every DupFD owns its own
// descriptor, and [DupFD.Dup] allocates a new one with dup(2), so related
// handles refer to the same open file description but are torn down
// independently: closing one has no effect on any other.
//
// Methods that mutate the held descriptor, Close, Release and CloneFrom,
// must not be called concurrently with each other or with Dup on the same
// handle.
type DupFD struct {
	fd autoCloseFD
}

// WrapDup returns a DupFD owning fd. The caller must not use or close fd
// afterwards. A negative fd produces a handle that holds nothing and behaves
// as if already closed.
func WrapDup(fd int) *DupFD {
	h := &DupFD{}
	h.fd.init(fd)
	runtime.SetFinalizer(h, (*DupFD).finalize)
	return h
}

// DupFrom returns a DupFD owning a fresh duplicate of fd. fd itself stays
// open and owned by the caller whether or not the duplication succeeds.
func DupFrom(fd int) (*DupFD, error) {
	h := &DupFD{}
	if err := h.fd.dupInit(fd); err != nil {
		return nil, err
	}
	runtime.SetFinalizer(h, (*DupFD).finalize)
	return h, nil
}

// RawFD returns the descriptor h owns, or InvalidFD after Close or Release.
func (h *DupFD) RawFD() int {
	return h.fd.raw()
}

// Dup returns a new handle owning a dup(2) of h's descriptor. The copy's
// descriptor number and lifetime are independent of h's, though both refer
// to the same open file description. Returns ErrClosed if h no longer holds
// a descriptor.
func (h *DupFD) Dup() (*DupFD, error) {
	fd := h.fd.raw()
	if fd < 0 {
		return nil, ErrClosed
	}
	h2, err := DupFrom(fd)
	runtime.KeepAlive(h)
	return h2, err
}

// MustDup is [DupFD.Dup] for call paths without an error channel.
// It panics if Dup fails.
func (h *DupFD) MustDup() *DupFD {
	h2, err := h.Dup()
	if err != nil {
		panic(err)
	}
	return h2
}

// CloneFrom repoints h's descriptor number at src's open file description,
// implicitly closing what h referred to before. h keeps its descriptor
// number. If h and src already hold the same number, CloneFrom is a no-op.
//
// Both handles must still hold descriptors. Calling CloneFrom on or from a
// closed handle is a bug in the caller and panics. Like [DupFD.MustDup],
// CloneFrom has no error channel, so a failed dup panics too.
func (h *DupFD) CloneFrom(src *DupFD) {
	dst := h.fd.raw()
	if dst < 0 {
		panic("managedfd: CloneFrom on closed handle")
	}
	sfd := src.fd.raw()
	if sfd < 0 {
		panic("managedfd: CloneFrom from closed handle")
	}
	if dst == sfd {
		return
	}
	err := dupOntoRaw(sfd, dst)
	runtime.KeepAlive(h)
	runtime.KeepAlive(src)
	if err != nil {
		panic(wrapSyscallError(dupOntoSyscallName, err))
	}
}

// Release ends h's ownership without closing and returns the descriptor.
// Afterwards h behaves like a closed handle. Returns InvalidFD if h no
// longer holds a descriptor.
func (h *DupFD) Release() int {
	runtime.SetFinalizer(h, nil)
	return h.fd.release()
}

// Close closes the descriptor. Only the first call has any effect; later
// calls are no-ops. Close always returns nil, because close(2) errors are
// dropped: the descriptor is invalid afterwards either way.
func (h *DupFD) Close() error {
	runtime.SetFinalizer(h, nil)
	h.fd.close()
	return nil
}

func (h *DupFD) finalize() {
	if fd := h.fd.release(); fd >= 0 {
		leakWarn("DupFD", fd)
		closeRaw(fd)
	}
}

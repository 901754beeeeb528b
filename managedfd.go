//go:build darwin || freebsd || linux

// Package managedfd provides ownership wrappers for raw POSIX file
// descriptors: handles that close their descriptor exactly once at the end of
// their lifetime and duplicate themselves with well-defined semantics, so a
// descriptor can be passed around without double-close or leak hazards.
//
// Two handle flavors implement the same [FD] contract:
//
//   - [DupFD] owns a descriptor outright and duplicates itself with dup(2).
//     Every copy holds a distinct descriptor number with an independent
//     lifetime. Duplication can fail, because it allocates a new descriptor.
//
//   - [SharedFD] shares one reference-counted descriptor among all of its
//     copies. Duplication only bumps the reference count and cannot fail.
//     The descriptor is closed when the last copy is closed.
//
// # Ownership
//
// [WrapDup] and [WrapShared] take ownership of the descriptor passed to them.
// The caller must not use or close it afterwards. [DupFrom] and [SharedFrom]
// instead wrap a fresh dup(2) of the descriptor and leave the original
// untouched, still owned by the caller.
//
// Handles must be closed explicitly. As a backstop, a handle reclaimed by the
// garbage collector while still holding its descriptor is closed by a
// finalizer and reported through [Logger].
//
// # Multi-access
//
// Handles do not serialize I/O. Descriptors produced by dup(2) share one open
// file description, so [DupFD] siblings share the file offset and status
// flags even though their descriptor numbers and lifetimes are independent.
// [SharedFD] copies refer to the same descriptor outright. Callers that
// perform concurrent I/O through related handles must coordinate it
// themselves.
//
// All descriptors allocated by this package have close-on-exec set.
package managedfd

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// InvalidFD is reported by RawFD once a handle no longer holds a descriptor.
const InvalidFD = -1

// ErrClosed is returned when an operation requires a descriptor the handle
// has already given up, whether by Close or Release.
var ErrClosed = errors.New("managedfd: use of closed file descriptor")

// FD is the contract implemented by both handle flavors. The type parameter
// is the implementing handle type itself, so Dup and MustDup return fully
// typed copies.
//
// Each flavor has an owning constructor and a duplicating constructor:
// [WrapDup] and [DupFrom] for [DupFD], [WrapShared] and [SharedFrom] for
// [SharedFD].
type FD[H any] interface {
	io.Closer

	// RawFD returns the descriptor the handle currently holds, or InvalidFD
	// after the handle has been closed or released. Ownership stays with the
	// handle. The returned value must not be closed, and must not be used
	// past the handle's lifetime.
	RawFD() int

	// Dup returns a copy of the handle according to the flavor's sharing
	// policy. It returns ErrClosed if the handle no longer holds a
	// descriptor.
	Dup() (H, error)

	// MustDup is Dup for call paths without an error channel.
	// It panics if Dup fails.
	MustDup() H
}

var (
	_ FD[*DupFD]    = (*DupFD)(nil)
	_ FD[*SharedFD] = (*SharedFD)(nil)
)

// wrapSyscallError takes an error and a syscall name. If the error is
// a syscall.Errno, it wraps it in a os.SyscallError using the syscall name.
func wrapSyscallError(name string, err error) error {
	if _, ok := err.(syscall.Errno); ok {
		err = os.NewSyscallError(name, err)
	}
	return err
}

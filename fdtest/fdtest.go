//go:build darwin || freebsd || linux

// Package fdtest provides helpers for tests that exercise raw POSIX file
// descriptors: real descriptor sources (pipes, socket pairs, loopback TCP
// pairs, preloaded temporary files), an open-descriptor probe, and
// resource-limit manipulation for provoking descriptor allocation failures.
//
// Descriptors returned by this package have close-on-exec set and are owned
// by the caller.
package fdtest

import (
	"io"
	"os"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
)

// IsOpen reports whether fd refers to an open descriptor, by probing it with
// fcntl(F_GETFD).
func IsOpen(fd int) bool {
	if fd < 0 {
		return false
	}
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	return err == nil
}

// CloseAll closes all given descriptors, continuing past failures, and
// returns the combined errors.
func CloseAll(fds ...int) error {
	var err error
	for _, fd := range fds {
		if cerr := unix.Close(fd); cerr != nil {
			err = multierr.Append(err, os.NewSyscallError("close", cerr))
		}
	}
	return err
}

// Pipe returns both ends of a new pipe.
func Pipe() (r, w int, err error) {
	return newPipeFDs() // pair_freebsd+linux.go, pair_darwin.go
}

// Socketpair returns a connected pair of unix stream sockets.
func Socketpair() (a, b int, err error) {
	return newSocketpairFDs() // pair_freebsd+linux.go, pair_darwin.go
}

// TempFile returns a descriptor for an unlinked temporary file preloaded
// with contents, with the file offset rewound to the start.
func TempFile(contents []byte) (int, error) {
	f, err := os.CreateTemp("", "fdtest")
	if err != nil {
		return -1, err
	}
	defer f.Close()
	if err = os.Remove(f.Name()); err != nil {
		return -1, err
	}
	if _, err = f.Write(contents); err != nil {
		return -1, err
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return -1, err
	}
	fd, err := unix.FcntlInt(f.Fd(), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return -1, os.NewSyscallError("fcntl(F_DUPFD_CLOEXEC)", err)
	}
	return fd, nil
}

func setCloseOnExec(fd int) error {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	if err != nil {
		return os.NewSyscallError("fcntl(F_GETFD)", err)
	}
	if flags&unix.FD_CLOEXEC == 0 {
		if _, err = unix.FcntlInt(uintptr(fd), unix.F_SETFD, flags|unix.FD_CLOEXEC); err != nil {
			return os.NewSyscallError("fcntl(F_SETFD)", err)
		}
	}
	return nil
}

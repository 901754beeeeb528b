//go:build darwin || freebsd || linux

package managedfd

import "golang.org/x/sys/unix"

const dupSyscallName = "fcntl(F_DUPFD_CLOEXEC)"

// dupRaw duplicates fd onto the lowest free descriptor number, with
// close-on-exec set atomically so the copy cannot leak into a child process
// between the dup and a separate fcntl.
func dupRaw(fd int) (int, error) {
	return unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
}

// closeRaw closes fd. Teardown paths drop the result, because the descriptor
// is invalid after close(2) whether or not the call reports an error.
func closeRaw(fd int) error {
	return unix.Close(fd)
}

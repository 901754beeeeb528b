//go:build darwin || freebsd

package managedfd

import "golang.org/x/sys/unix"

const dupOntoSyscallName = "dup2"

// dupOntoRaw repoints dst at src's open file description, implicitly closing
// whatever dst referred to before. dup2(2) leaves close-on-exec unset on the
// target, so it is set again with fcntl afterwards.
func dupOntoRaw(src, dst int) error {
	if err := unix.Dup2(src, dst); err != nil {
		return err
	}
	flags, err := unix.FcntlInt(uintptr(dst), unix.F_GETFD, 0)
	if err != nil {
		return err
	}
	_, err = unix.FcntlInt(uintptr(dst), unix.F_SETFD, flags|unix.FD_CLOEXEC)
	return err
}

package fdtest

import (
	"os"

	"golang.org/x/sys/unix"
)

// Darwin has no pipe2(2) and no SOCK_CLOEXEC, so descriptors are created
// bare and close-on-exec is set with fcntl afterwards.

func newPipeFDs() (r, w int, err error) {
	var p [2]int
	if err = unix.Pipe(p[:]); err != nil {
		return -1, -1, os.NewSyscallError("pipe", err)
	}
	if err = setPairCloseOnExec(p); err != nil {
		return -1, -1, err
	}
	return p[0], p[1], nil
}

func newSocketpairFDs() (a, b int, err error) {
	p, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, -1, os.NewSyscallError("socketpair", err)
	}
	if err = setPairCloseOnExec(p); err != nil {
		return -1, -1, err
	}
	return p[0], p[1], nil
}

func setPairCloseOnExec(p [2]int) error {
	for _, fd := range p {
		if err := setCloseOnExec(fd); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return err
		}
	}
	return nil
}

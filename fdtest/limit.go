//go:build darwin || freebsd || linux

package fdtest

import (
	"os"

	"golang.org/x/sys/unix"
)

// LimitNoFile lowers the process's soft RLIMIT_NOFILE to cur, so that
// allocating a descriptor with a number at or above cur fails with EMFILE,
// and returns a function that restores the previous limit. Tests lowering
// the limit must not run in parallel with anything that opens descriptors.
func LimitNoFile(cur uint64) (restore func() error, err error) {
	var prev unix.Rlimit
	if err = unix.Getrlimit(unix.RLIMIT_NOFILE, &prev); err != nil {
		return nil, os.NewSyscallError("getrlimit", err)
	}
	lim := prev
	setRlimitCur(&lim, cur) // limit_freebsd.go, limit_notfreebsd.go
	if err = unix.Setrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return nil, os.NewSyscallError("setrlimit", err)
	}
	return func() error {
		return os.NewSyscallError("setrlimit", unix.Setrlimit(unix.RLIMIT_NOFILE, &prev))
	}, nil
}

//go:build darwin || linux

package fdtest

import "golang.org/x/sys/unix"

func setRlimitCur(lim *unix.Rlimit, cur uint64) {
	lim.Cur = cur
}

package fdtest

import "golang.org/x/sys/unix"

// FreeBSD's rlimit values are signed.
func setRlimitCur(lim *unix.Rlimit, cur uint64) {
	lim.Cur = int64(cur)
}

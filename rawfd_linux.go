package managedfd

import "golang.org/x/sys/unix"

const dupOntoSyscallName = "dup3"

// dupOntoRaw repoints dst at src's open file description, implicitly closing
// whatever dst referred to before. src and dst must differ: dup3(2) fails
// with EINVAL on equal descriptors, unlike dup2(2).
//
// dup3(2) is used because linux/arm64 and later ports have no dup2 syscall,
// and because it sets close-on-exec atomically.
func dupOntoRaw(src, dst int) error {
	return unix.Dup3(src, dst, unix.O_CLOEXEC)
}

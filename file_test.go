//go:build darwin || freebsd || linux

package managedfd

import (
	"io"
	"os"
	"testing"

	"github.com/database64128/managedfd-go/fdtest"
	"golang.org/x/sys/unix"
)

func TestDupFromFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "managedfd")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err = f.WriteString("hello"); err != nil {
		t.Fatal(err)
	}

	h, err := DupFromFile(f)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	if got := h.RawFD(); got == int(f.Fd()) {
		t.Error("Expected a fresh descriptor, got the file's own")
	}

	// The handle outlives the file.
	if err = f.Close(); err != nil {
		t.Fatal(err)
	}
	var st unix.Stat_t
	if err = unix.Fstat(h.RawFD(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Size != 5 {
		t.Errorf("Expected size 5, got %d", st.Size)
	}
}

func TestSharedFromFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "managedfd")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, err := SharedFromFile(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.RawFD(); got == int(f.Fd()) {
		t.Error("Expected a fresh descriptor, got the file's own")
	}
	fd := s.RawFD()
	if err = s.Close(); err != nil {
		t.Error(err)
	}
	if fdtest.IsOpen(fd) {
		t.Error("Expected the last Close to close the descriptor")
	}
	if !fdtest.IsOpen(int(f.Fd())) {
		t.Error("Closing the handle closed the file")
	}
}

func TestReleaseToFile(t *testing.T) {
	fd, err := fdtest.TempFile([]byte("hello"))
	if err != nil {
		t.Fatal(err)
	}

	h := WrapDup(fd)
	f := h.ReleaseToFile("managedfd-test")
	if f == nil {
		t.Fatal("Expected a file, got nil")
	}
	defer f.Close()
	if got := h.RawFD(); got != InvalidFD {
		t.Errorf("Expected RawFD InvalidFD, got %d", got)
	}
	if got := int(f.Fd()); got != fd {
		t.Errorf("Expected file descriptor %d, got %d", fd, got)
	}

	b := make([]byte, 5)
	if _, err = io.ReadFull(f, b); err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Errorf("Expected %q, got %q", "hello", b)
	}

	if f2 := h.ReleaseToFile("managedfd-test"); f2 != nil {
		f2.Close()
		t.Error("Expected nil from ReleaseToFile on a released handle")
	}
}

//go:build darwin

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// preallocate reserves size bytes with F_PREALLOCATE. Failure is harmless.
//
//nolint:gosec // G115: fd fits in int
func preallocate(f *os.File, size int64) {
	if size <= 0 {
		return
	}
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Length:  size,
	}
	_ = unix.FcntlFstore(f.Fd(), unix.F_PREALLOCATE, &fst)
}

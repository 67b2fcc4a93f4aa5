//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// preallocate asks the filesystem to reserve size bytes for f so a large
// love.wasm lands in few extents. Failure is harmless.
//
//nolint:gosec // G115: fd fits in int
func preallocate(f *os.File, size int64) {
	if size > 0 {
		_ = unix.Fallocate(int(f.Fd()), 0, 0, size)
	}
}

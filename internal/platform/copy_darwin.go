//go:build darwin

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// cloneFile makes dst a copy-on-write clone of src. dst must not exist.
func cloneFile(src, dst string) error {
	err := unix.Clonefile(src, dst, 0)
	if errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EXDEV) {
		return errCloneUnsupported
	}
	return err
}

func copyContents(dst, src *os.File, size int64) (CopyResult, error) {
	preallocate(dst, size)
	return copyBuffered(dst, src)
}

//go:build linux

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// cloneFile has no general Linux equivalent; FICLONE needs both files open
// on the same filesystem and copy_file_range already reflinks where it can.
func cloneFile(_, _ string) error { return errCloneUnsupported }

// copyContents moves size bytes from src to dst with copy_file_range,
// then sendfile, then a buffered copy. A later method is only tried when
// the earlier one failed before moving anything.
func copyContents(dst, src *os.File, size int64) (CopyResult, error) {
	preallocate(dst, size)

	for _, m := range []Method{CopyFileRange, Sendfile} {
		res, err := kernelCopy(dst, src, size, m)
		if err == nil || res.Bytes > 0 || !unsupported(err) {
			return res, err
		}
	}
	return copyBuffered(dst, src)
}

func kernelCopy(dst, src *os.File, size int64, m Method) (CopyResult, error) {
	in, out := int(src.Fd()), int(dst.Fd())
	res := CopyResult{Method: m}
	for res.Bytes < size {
		chunk := int(min(size-res.Bytes, 1<<30))
		var n int
		var err error
		if m == CopyFileRange {
			n, err = unix.CopyFileRange(in, nil, out, nil, chunk, 0)
		} else {
			n, err = unix.Sendfile(out, in, nil, chunk)
		}
		if err != nil {
			return res, err
		}
		if n == 0 {
			break // source shrank
		}
		res.Bytes += int64(n)
	}
	return res, nil
}

func unsupported(err error) bool {
	for _, errno := range []error{unix.ENOSYS, unix.EXDEV, unix.EINVAL, unix.ENOTSUP, unix.EOPNOTSUPP} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

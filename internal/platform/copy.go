package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var errCloneUnsupported = errors.New("clone not supported")

// CopyPath copies the regular file src to dst, replacing dst if it exists.
// dst keeps the permission bits of src.
func CopyPath(src, dst string) (CopyResult, error) {
	in, err := os.Open(src)
	if err != nil {
		return CopyResult{}, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return CopyResult{}, err
	}
	if !info.Mode().IsRegular() {
		return CopyResult{}, fmt.Errorf("copy %s: not a regular file", src)
	}

	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return CopyResult{}, err
	}
	switch err := cloneFile(src, dst); {
	case err == nil:
		return CopyResult{Bytes: info.Size(), Method: Clone}, nil
	case !errors.Is(err, errCloneUnsupported):
		return CopyResult{}, err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return CopyResult{}, err
	}
	res, err := copyContents(out, in, info.Size())
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return res, fmt.Errorf("copy %s: %w", src, err)
	}
	return res, nil
}

// CopyTree recreates the directories and regular files of srcDir under
// dstDir and returns the number of bytes copied. Symlinks and special files
// are left out.
func CopyTree(srcDir, dstDir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dstDir, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0o755)
		case d.Type().IsRegular():
			res, err := CopyPath(p, target)
			total += res.Bytes
			return err
		default:
			return nil
		}
	})
	return total, err
}

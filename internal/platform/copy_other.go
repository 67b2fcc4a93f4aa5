//go:build !linux && !darwin

package platform

import "os"

func cloneFile(_, _ string) error { return errCloneUnsupported }

func copyContents(dst, src *os.File, _ int64) (CopyResult, error) {
	return copyBuffered(dst, src)
}

package site

import (
	"fmt"
	"path/filepath"

	"github.com/bamsammich/lovepack/internal/engine"
)

// VerifyError reports a data file whose on-disk content does not match the
// digest of the packed blob.
type VerifyError struct {
	Path string
	Want string
	Got  string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s: digest mismatch (want %s, got %s)", e.Path, e.Want, e.Got)
}

// Verify re-reads the data file written into dir and compares its BLAKE3
// digest with want.
func Verify(dir, want string) error {
	path := filepath.Join(dir, DataFile)
	got, err := engine.HashFile(path)
	if err != nil {
		return fmt.Errorf("verify %s: %w", DataFile, err)
	}
	if got != want {
		return &VerifyError{Path: path, Want: want, Got: got}
	}
	return nil
}

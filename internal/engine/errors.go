package engine

import (
	"errors"
	"fmt"
	"io/fs"
)

// NotFoundError reports that the input path does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input %s does not exist", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// IOError reports a read failure on a path that exists.
type IOError struct {
	Op   string // "stat", "readdir", "read", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// BudgetExceededError reports that the packaged assets do not fit in the
// memory budget handed to the web runtime.
type BudgetExceededError struct {
	Budget    uint64
	TotalSize uint64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf(
		"memory budget of %d bytes must be at least as big as the assets: the total size of the assets is %d bytes",
		e.Budget, e.TotalSize,
	)
}

// ioError classifies a filesystem error: a missing path becomes a
// NotFoundError, anything else an IOError.
func ioError(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Path: path, Err: err}
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// Package platform copies love.js runtime files into an output directory
// with the cheapest primitive the host kernel offers.
package platform

import (
	"io"
	"os"
	"sync"
)

// Method names the primitive that moved a file's bytes.
type Method int

const (
	Buffered      Method = iota // userspace read/write
	CopyFileRange               // Linux copy_file_range(2)
	Sendfile                    // Linux sendfile(2)
	Clone                       // copy-on-write clone; no bytes moved
)

var methodNames = [...]string{"buffered", "copy_file_range", "sendfile", "clone"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "unknown"
	}
	return methodNames[m]
}

// CopyResult reports how one file was copied.
type CopyResult struct {
	Bytes  int64
	Method Method
}

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 256<<10)
		return &b
	},
}

// copyBuffered streams src into dst through a pooled buffer. The wrappers
// hide ReaderFrom/WriterTo so the standard library cannot pick a kernel
// path behind our back.
func copyBuffered(dst, src *os.File) (CopyResult, error) {
	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)

	n, err := io.CopyBuffer(struct{ io.Writer }{dst}, struct{ io.Reader }{src}, *bufp)
	return CopyResult{Bytes: n, Method: Buffered}, err
}

package engine

import (
	"bytes"
	"io"
	"os"
)

// Assembler concatenates file contents into one contiguous blob.
// Bytes are appended verbatim in call order.
type Assembler struct {
	buf bytes.Buffer
}

// NewAssembler returns an assembler with room for sizeHint bytes.
func NewAssembler(sizeHint uint64) *Assembler {
	a := &Assembler{}
	if sizeHint > 0 && sizeHint <= uint64(maxPrealloc) {
		a.buf.Grow(int(sizeHint))
	}
	return a
}

// maxPrealloc caps the up-front allocation from stat sizes.
const maxPrealloc = 1 << 30

// AppendFile reads the whole file at path and appends it. The file is
// closed before AppendFile returns. It returns the number of bytes added.
func (a *Assembler) AppendFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, ioError("open", path, err)
	}
	defer f.Close()

	n, err := a.Append(f)
	if err != nil {
		return n, &IOError{Op: "read", Path: path, Err: err}
	}
	return n, nil
}

// Append copies r to the end of the blob.
func (a *Assembler) Append(r io.Reader) (uint64, error) {
	n, err := a.buf.ReadFrom(r)
	return uint64(n), err
}

// Len returns the blob length so far.
func (a *Assembler) Len() uint64 {
	return uint64(a.buf.Len())
}

// Bytes returns the assembled blob. The slice aliases the assembler's
// buffer and is valid until the next Append.
func (a *Assembler) Bytes() []byte {
	return a.buf.Bytes()
}

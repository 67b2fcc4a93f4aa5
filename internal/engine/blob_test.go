package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblerConcatenates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	empty := filepath.Join(dir, "empty")
	writeFile(t, a, []byte("hello "))
	writeFile(t, b, []byte("world"))
	writeFile(t, empty, nil)

	asm := NewAssembler(11)
	for _, p := range []string{a, empty, b} {
		_, err := asm.AppendFile(p)
		require.NoError(t, err)
	}

	assert.Equal(t, []byte("hello world"), asm.Bytes())
	assert.Equal(t, uint64(11), asm.Len())
}

func TestAssemblerReportsLength(t *testing.T) {
	asm := NewAssembler(0)
	n, err := asm.Append(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
}

func TestAssemblerMissingFile(t *testing.T) {
	asm := NewAssembler(0)
	_, err := asm.AppendFile(filepath.Join(t.TempDir(), "gone"))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAssemblerReadFailure(t *testing.T) {
	asm := NewAssembler(0)
	boom := errors.New("device error")
	_, err := asm.Append(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}

func TestAssemblerDirectoryIsIOError(t *testing.T) {
	asm := NewAssembler(0)
	_, err := asm.AppendFile(t.TempDir())

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Op)
}

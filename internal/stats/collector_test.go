package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	const goroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range opsPerGoroutine {
				c.AddFilesScanned(1)
				c.AddFilesPacked(1)
				c.AddFilesSkipped(1)
				c.AddDirsSkipped(1)
				c.AddAudioFiles(1)
				c.AddBytesPacked(256)
				c.AddDirsQueued(1)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	expected := int64(goroutines * opsPerGoroutine)
	assert.Equal(t, expected, s.FilesScanned)
	assert.Equal(t, expected, s.FilesPacked)
	assert.Equal(t, expected, s.FilesSkipped)
	assert.Equal(t, expected, s.DirsSkipped)
	assert.Equal(t, expected, s.AudioFiles)
	assert.Equal(t, expected*256, s.BytesPacked)
	assert.Equal(t, expected, s.DirsQueued)
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{
		FilesScanned: 10,
		FilesPacked:  8,
		FilesSkipped: 2,
		AudioFiles:   3,
		BytesPacked:  4096,
		DirsQueued:   3,
	}
	expected := "scanned=10 packed=8 skipped=2 audio=3 bytes=4096 dirs=3"
	assert.Equal(t, expected, s.String())
}

func TestSnapshotProgress(t *testing.T) {
	assert.Zero(t, Snapshot{}.Progress())
	assert.InDelta(t, 0.5, Snapshot{BytesPacked: 50, BytesTotal: 100}.Progress(), 1e-9)
	// Files can grow between scan and read; progress is clamped.
	assert.InDelta(t, 1.0, Snapshot{BytesPacked: 150, BytesTotal: 100}.Progress(), 1e-9)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{16777216, "16.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

func TestNewCollector(t *testing.T) {
	c := NewCollector()
	c.SetTotals(4, 400)
	time.Sleep(5 * time.Millisecond)

	s := c.Snapshot()
	assert.Equal(t, int64(4), s.FilesTotal)
	assert.Equal(t, int64(400), s.BytesTotal)
	assert.Positive(t, s.Elapsed)
}

func TestZeroCollectorElapsed(t *testing.T) {
	var c Collector
	assert.Zero(t, c.Elapsed())
}

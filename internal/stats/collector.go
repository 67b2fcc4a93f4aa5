package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Reader exposes read-only access to a collector.
type Reader interface {
	Snapshot() Snapshot
}

// Collector tracks packaging statistics using lock-free atomic counters.
// The engine writes from a single goroutine; presenters read concurrently.
type Collector struct {
	filesScanned atomic.Int64
	filesPacked  atomic.Int64
	filesSkipped atomic.Int64
	dirsSkipped  atomic.Int64
	audioFiles   atomic.Int64
	bytesPacked  atomic.Int64
	dirsQueued   atomic.Int64
	bytesTotal   atomic.Int64
	filesTotal   atomic.Int64
	startTime    time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetTotals records scan totals (called once when the scan completes).
func (c *Collector) SetTotals(files, bytes int64) {
	c.filesTotal.Store(files)
	c.bytesTotal.Store(bytes)
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesScanned int64
	FilesPacked  int64
	FilesSkipped int64
	DirsSkipped  int64
	AudioFiles   int64
	BytesPacked  int64
	DirsQueued   int64
	BytesTotal   int64
	FilesTotal   int64
	Elapsed      time.Duration
}

func (c *Collector) AddFilesScanned(n int64) { c.filesScanned.Add(n) }
func (c *Collector) AddFilesPacked(n int64)  { c.filesPacked.Add(n) }
func (c *Collector) AddFilesSkipped(n int64) { c.filesSkipped.Add(n) }
func (c *Collector) AddDirsSkipped(n int64)  { c.dirsSkipped.Add(n) }
func (c *Collector) AddAudioFiles(n int64)   { c.audioFiles.Add(n) }
func (c *Collector) AddBytesPacked(n int64)  { c.bytesPacked.Add(n) }
func (c *Collector) AddDirsQueued(n int64)   { c.dirsQueued.Add(n) }

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesScanned: c.filesScanned.Load(),
		FilesPacked:  c.filesPacked.Load(),
		FilesSkipped: c.filesSkipped.Load(),
		DirsSkipped:  c.dirsSkipped.Load(),
		AudioFiles:   c.audioFiles.Load(),
		BytesPacked:  c.bytesPacked.Load(),
		DirsQueued:   c.dirsQueued.Load(),
		BytesTotal:   c.bytesTotal.Load(),
		FilesTotal:   c.filesTotal.Load(),
		Elapsed:      c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	if c.startTime.IsZero() {
		return 0
	}
	return time.Since(c.startTime)
}

// Progress returns the fraction of scanned bytes already packed, in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.BytesTotal <= 0 {
		return 0
	}
	p := float64(s.BytesPacked) / float64(s.BytesTotal)
	if p > 1 {
		return 1
	}
	return p
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"scanned=%d packed=%d skipped=%d audio=%d bytes=%d dirs=%d",
		s.FilesScanned, s.FilesPacked, s.FilesSkipped,
		s.AudioFiles, s.BytesPacked, s.DirsQueued,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

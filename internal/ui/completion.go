package ui

import (
	"fmt"

	"github.com/bamsammich/lovepack/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  files 1,204  audio 38  size 12.4 MiB  time 2s  dirs 9  skipped 3 (+1 dirs)
func CompletionSummary(snap stats.Snapshot) string {
	base := fmt.Sprintf("done ✓  files %s  audio %s  size %s  time %s",
		FormatCount(snap.FilesPacked),
		FormatCount(snap.AudioFiles),
		FormatBytes(snap.BytesPacked),
		FormatDuration(snap.Elapsed),
	)
	if snap.DirsQueued > 0 {
		base += fmt.Sprintf("  dirs %s", FormatCount(snap.DirsQueued))
	}
	base += fmt.Sprintf("  skipped %s", FormatCount(snap.FilesSkipped))
	if snap.DirsSkipped > 0 {
		base += fmt.Sprintf(" (+%s dirs)", FormatCount(snap.DirsSkipped))
	}
	return base
}

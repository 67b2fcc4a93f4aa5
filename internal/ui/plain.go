package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/lovepack/internal/stats"
)

// plainPresenter outputs one line per packed file to stdout,
// and periodic progress to stderr when not a TTY.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   stats.Reader
	verbose bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case ScanComplete:
		fmt.Fprintf(p.w, "found %s files  %s\n", FormatCount(ev.Total), FormatBytes(ev.TotalSize))
	case DirQueued:
		if p.verbose {
			fmt.Fprintf(p.w, "%s/\n", ev.Path)
		}
	case FilePacked:
		fmt.Fprintf(p.w, "%s  %s  @%d\n", ev.Path, FormatBytes(ev.Size), ev.Offset)
	case FileSkipped:
		if p.verbose {
			fmt.Fprintf(p.w, "%s  skipped (%s)\n", ev.Path, ev.Reason)
		}
	case BudgetChecked:
		fmt.Fprintf(p.w, "memory %s of %s\n", FormatBytes(ev.Size), FormatBytes(ev.Budget))
	case PackageFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.errW, "failed: %s\n", errMsg)
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	if snap.BytesTotal > 0 {
		fmt.Fprintf(p.errW, "progress: %.0f%% %s/%s %s/%s files\n",
			snap.Progress()*100,
			FormatBytes(snap.BytesPacked), FormatBytes(snap.BytesTotal),
			FormatCount(snap.FilesPacked), FormatCount(snap.FilesTotal),
		)
		return
	}
	fmt.Fprintf(p.errW, "progress: %s scanned\n", FormatCount(snap.FilesScanned))
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}

package ui

import (
	"fmt"
	"io"
	"path"
	"time"

	"github.com/bamsammich/lovepack/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

// hudPresenter shows a scrolling feed of packed files above a one-line
// status bar that redraws in place.
type hudPresenter struct {
	w       io.Writer
	stats   stats.Reader
	verbose bool

	pathWidth int // columns left for the current path; 0 hides it

	hudDrawn    bool
	current     string // file being read
	lastHUDDraw time.Time
}

const (
	progressBarWidth = 20
	hudMinInterval   = 50 * time.Millisecond

	// statusWidth approximates the status fields that precede the path.
	statusWidth = 85
)

// pathColumn returns how many columns of the current path fit on a
// terminal termWidth wide. An unknown width gets 40.
func pathColumn(termWidth int) int {
	if termWidth <= 0 {
		return 40
	}
	return max(termWidth-statusWidth, 0)
}

func (p *hudPresenter) Run(events <-chan Event) error {
	redrawTicker := time.NewTicker(100 * time.Millisecond)
	defer redrawTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearHUD()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDrawHUD()

		case <-redrawTicker.C:
			p.drawHUD()
		}
	}
}

func (p *hudPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case FileStarted:
		p.current = ev.Path

	case FilePacked:
		p.current = ""
		p.clearHUD()
		fmt.Fprintf(p.w, "✓  %s  %10s\n", styledPath(ev.Path), FormatBytes(ev.Size))
		p.drawHUD()

	case FileSkipped:
		if p.verbose {
			p.clearHUD()
			fmt.Fprintf(p.w, "–  %s  %sskipped (%s)%s\n",
				styledPath(ev.Path), ansiDim, ev.Reason, ansiReset)
			p.drawHUD()
		}

	case PackageFailed:
		p.clearHUD()
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "✗  %s\n", errMsg)
	}
}

// maybeDrawHUD redraws the HUD if enough time has passed since the last draw.
func (p *hudPresenter) maybeDrawHUD() {
	if time.Since(p.lastHUDDraw) < hudMinInterval {
		return
	}
	p.drawHUD()
}

func (p *hudPresenter) drawHUD() {
	snap := p.stats.Snapshot()
	p.clearHUD()

	pct := snap.Progress()
	line := fmt.Sprintf(" %3.0f%%  %s   %s / %s   %s / %s files   eta %s",
		pct*100, ProgressBar(pct, progressBarWidth),
		FormatBytes(snap.BytesPacked), FormatBytes(snap.BytesTotal),
		FormatCount(snap.FilesPacked), FormatCount(snap.FilesTotal),
		FormatETA(estimateRemaining(snap)),
	)
	if p.current != "" && p.pathWidth > 3 {
		line += "   " + ansiDim + truncPath(p.current, p.pathWidth) + ansiReset
	}
	fmt.Fprintln(p.w, line)

	p.hudDrawn = true
	p.lastHUDDraw = time.Now()
}

func (p *hudPresenter) clearHUD() {
	if !p.hudDrawn {
		return
	}
	// Move cursor up one line and clear to end of screen.
	fmt.Fprint(p.w, "\033[1A\033[J")
	p.hudDrawn = false
}

func (p *hudPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}

// estimateRemaining extrapolates from the average rate so far.
func estimateRemaining(snap stats.Snapshot) time.Duration {
	if snap.BytesPacked <= 0 || snap.BytesTotal <= snap.BytesPacked || snap.Elapsed <= 0 {
		return 0
	}
	rate := float64(snap.BytesPacked) / snap.Elapsed.Seconds()
	return time.Duration(float64(snap.BytesTotal-snap.BytesPacked) / rate * float64(time.Second))
}

// styledPath dims the directory portion of a virtual path so the file
// name stands out.
func styledPath(p string) string {
	dir, base := path.Split(p)
	if dir == "" || dir == "/" {
		return base
	}
	return fmt.Sprintf("%s%s%s%s", ansiDim, dir, ansiReset, base)
}

// truncPath shortens a path to fit within maxLen characters.
func truncPath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[:maxLen]
	}
	return "..." + path[len(path)-maxLen+3:]
}

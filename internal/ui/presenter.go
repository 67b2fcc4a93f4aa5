package ui

import (
	"io"

	"golang.org/x/term"

	"github.com/bamsammich/lovepack/internal/stats"
)

// Presenter turns engine events into terminal output.
type Presenter interface {
	// Run consumes events until the channel is closed.
	Run(events <-chan Event) error
	// Summary is printed once packaging succeeds. Empty means print nothing.
	Summary() string
}

// Config selects and wires a Presenter.
type Config struct {
	Writer    io.Writer // per-file lines
	ErrWriter io.Writer // progress, failures and the HUD
	Stats     stats.Reader
	Width     int // terminal columns, 0 when unknown

	IsTTY      bool
	Quiet      bool
	Verbose    bool
	NoProgress bool
}

// NewPresenter returns silent output for --quiet, the live HUD on a
// terminal, and line output everywhere else.
//
//nolint:ireturn // factory
func NewPresenter(cfg Config) Presenter {
	switch {
	case cfg.Quiet:
		return quietPresenter{}
	case cfg.IsTTY && !cfg.NoProgress:
		return &hudPresenter{
			w:         cfg.ErrWriter,
			stats:     cfg.Stats,
			verbose:   cfg.Verbose,
			pathWidth: pathColumn(cfg.Width),
		}
	default:
		return &plainPresenter{w: cfg.Writer, errW: cfg.ErrWriter, stats: cfg.Stats, verbose: cfg.Verbose}
	}
}

// IsTTY reports whether fd is a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd)) //nolint:gosec // G115: fd fits in int
}

// TermWidth returns the width of terminal fd in columns, or 0 when it
// cannot be determined.
func TermWidth(fd uintptr) int {
	w, _, err := term.GetSize(int(fd)) //nolint:gosec // G115: fd fits in int
	if err != nil || w < 0 {
		return 0
	}
	return w
}

// quietPresenter drains events so the engine never blocks on a full channel.
type quietPresenter struct{}

func (quietPresenter) Run(events <-chan Event) error {
	for range events {
	}
	return nil
}

func (quietPresenter) Summary() string { return "" }

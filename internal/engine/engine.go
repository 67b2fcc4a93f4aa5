package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bamsammich/lovepack/internal/event"
	"github.com/bamsammich/lovepack/internal/filter"
	"github.com/bamsammich/lovepack/internal/stats"
)

// Config describes a packaging run.
type Config struct {
	Input          string
	MemoryBudget   uint64 // 0 means DefaultMemoryBudget
	Filter         *filter.Chain
	FollowSymlinks bool
	Events         chan<- event.Event
	Stats          *stats.Collector

	// NewID overrides package id generation. Nil uses uuid.New.
	NewID func() uuid.UUID
}

// Result is the outcome of a packaging run. On failure only Err and Stats
// are set; no partial manifest, ops, or blob is returned.
type Result struct {
	Mode         SourceMode
	Manifest     PackageManifest
	DirectoryOps []DirectoryOp
	Blob         []byte
	Digest       string // BLAKE3 of Blob, hex
	Stats        stats.Snapshot
	Err          error
}

// Run packages cfg.Input, blocking until complete. Work is strictly
// sequential: at most one source file is open at a time.
func Run(ctx context.Context, cfg Config) Result {
	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}
	budget := cfg.MemoryBudget
	if budget == 0 {
		budget = DefaultMemoryBudget
	}

	res, err := run(ctx, cfg, collector, budget)
	if err != nil {
		emitEvent(cfg.Events, event.Event{Type: event.PackageFailed, Error: err})
		return Result{Stats: collector.Snapshot(), Err: err}
	}
	res.Stats = collector.Snapshot()
	emitEvent(cfg.Events, event.Event{
		Type: event.PackageComplete,
		Size: int64(res.Manifest.RemotePackageSize),
	})
	return res
}

func run(ctx context.Context, cfg Config, collector *stats.Collector, budget uint64) (Result, error) {
	emitEvent(cfg.Events, event.Event{Type: event.ScanStarted, Path: cfg.Input})
	slog.Debug("scanning input", "input", cfg.Input)

	src, err := Collect(ctx, CollectorConfig{
		Root:           cfg.Input,
		Filter:         cfg.Filter,
		FollowSymlinks: cfg.FollowSymlinks,
		Events:         cfg.Events,
		Stats:          collector,
	})
	if err != nil {
		return Result{}, err
	}

	files := src.Files()
	scanned := src.TotalSize()
	collector.SetTotals(int64(len(files)), int64(scanned))
	emitEvent(cfg.Events, event.Event{
		Type:      event.ScanComplete,
		Total:     int64(len(files)),
		TotalSize: int64(scanned),
	})
	slog.Debug("scan complete", "mode", src.Mode, "files", len(files), "bytes", scanned)

	// Fail before loading anything when stat sizes already exceed the budget.
	if err := CheckBudget(budget, scanned); err != nil {
		return Result{}, err
	}

	layout, blob, err := assemble(ctx, files, scanned, cfg.Events, collector)
	if err != nil {
		return Result{}, err
	}

	if err := CheckBudget(budget, layout.Size); err != nil {
		return Result{}, err
	}
	emitEvent(cfg.Events, event.Event{
		Type:   event.BudgetChecked,
		Size:   int64(layout.Size),
		Budget: int64(budget),
	})

	if layout.Size != blob.Len() {
		return Result{}, fmt.Errorf("blob length %d does not match manifest size %d", blob.Len(), layout.Size)
	}

	newID := cfg.NewID
	if newID == nil {
		newID = uuid.New
	}

	var ops []DirectoryOp
	if src.Mode == ModeDirectory {
		ops = BuildDirectoryOps(src.Dirs())
	} else {
		ops = []DirectoryOp{}
	}

	data := blob.Bytes()
	return Result{
		Mode:         src.Mode,
		Manifest:     BuildManifest(newID(), layout),
		DirectoryOps: ops,
		Blob:         data,
		Digest:       HashBytes(data),
	}, nil
}

// assemble reads every file in order, appending its bytes to the blob and a
// matching record to the layout.
func assemble(
	ctx context.Context,
	files []SourceEntry,
	sizeHint uint64,
	events chan<- event.Event,
	collector *stats.Collector,
) (Layout, *Assembler, error) {
	blob := NewAssembler(sizeHint)
	layout := Layout{Records: make([]FileRecord, 0, len(files))}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return Layout{}, nil, err
		}
		emitEvent(events, event.Event{Type: event.FileStarted, Path: f.VirtualPath, Size: int64(f.Size)})

		n, err := blob.AppendFile(f.AbsPath)
		if err != nil {
			return Layout{}, nil, err
		}
		if n != f.Size {
			slog.Debug("file size changed since scan", "path", f.VirtualPath, "scanned", f.Size, "read", n)
		}
		rec := layout.Add(f.VirtualPath, n)

		collector.AddFilesPacked(1)
		collector.AddBytesPacked(int64(n))
		if rec.Audio {
			collector.AddAudioFiles(1)
		}
		emitEvent(events, event.Event{
			Type:   event.FilePacked,
			Path:   f.VirtualPath,
			Size:   int64(n),
			Offset: int64(rec.Start),
		})
	}
	return layout, blob, nil
}

func emitEvent(ch chan<- event.Event, e event.Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}

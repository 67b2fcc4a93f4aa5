package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bamsammich/lovepack/internal/event"
	"github.com/bamsammich/lovepack/internal/filter"
	"github.com/bamsammich/lovepack/internal/stats"
)

// CollectorConfig controls collector behavior.
type CollectorConfig struct {
	Root           string
	Filter         *filter.Chain
	FollowSymlinks bool
	Events         chan<- event.Event
	Stats          *stats.Collector
}

// collector walks a game directory sequentially. Entries within a directory
// are visited in lexical order (os.ReadDir sorts by name) and every directory
// is emitted before its descendants, so the output is reproducible and
// parents always precede children.
type collector struct {
	cfg     CollectorConfig
	root    string
	entries []SourceEntry
}

// Collect resolves cfg.Root and returns its entries. A regular file yields a
// single archive entry; a directory yields every descendant that passes the
// filter, the root itself excluded.
func Collect(ctx context.Context, cfg CollectorConfig) (Source, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return Source{}, &IOError{Op: "resolve", Path: cfg.Root, Err: err}
	}

	info, err := os.Stat(root)
	if err != nil {
		return Source{}, ioError("stat", cfg.Root, err)
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return Source{}, &IOError{Op: "stat", Path: cfg.Root, Err: errors.New("not a regular file or directory")}
		}
		if cfg.Stats != nil {
			cfg.Stats.AddFilesScanned(1)
		}
		return Source{
			Root: root,
			Mode: ModeArchive,
			Entries: []SourceEntry{{
				AbsPath:     root,
				VirtualPath: ArchiveVirtualPath,
				Size:        uint64(info.Size()),
				Type:        File,
			}},
		}, nil
	}

	c := &collector{cfg: cfg, root: root, entries: make([]SourceEntry, 0, 256)}
	if err := c.walkDir(ctx, root); err != nil {
		return Source{}, err
	}
	return Source{Root: root, Mode: ModeDirectory, Entries: c.entries}, nil
}

func (c *collector) walkDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ioError("readdir", dir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.processEntry(ctx, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (c *collector) processEntry(ctx context.Context, absPath string) error {
	vpath, err := c.virtualPath(absPath)
	if err != nil {
		return err
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		return ioError("lstat", absPath, err)
	}
	mode := info.Mode()

	switch {
	case mode&os.ModeSymlink != 0:
		if !c.cfg.FollowSymlinks {
			c.skip(vpath, "symlink")
			return nil
		}
		target, err := os.Stat(absPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.skip(vpath, "dangling symlink")
				return nil
			}
			return ioError("stat", absPath, err)
		}
		if target.IsDir() {
			// Not followed: a link back up the tree would never terminate.
			c.skipDir(vpath, "symlinked directory")
			return nil
		}
		if !target.Mode().IsRegular() {
			c.skip(vpath, "not a regular file")
			return nil
		}
		c.addFile(absPath, vpath, target)
		return nil

	case mode.IsDir():
		if !c.cfg.Filter.Match(vpath, true, 0) {
			c.skipDir(vpath, "excluded")
			return nil
		}
		c.entries = append(c.entries, SourceEntry{
			AbsPath:     absPath,
			VirtualPath: vpath,
			Type:        Dir,
		})
		if c.cfg.Stats != nil {
			c.cfg.Stats.AddDirsQueued(1)
		}
		emitEvent(c.cfg.Events, event.Event{Type: event.DirQueued, Path: vpath})
		return c.walkDir(ctx, absPath)

	case mode.IsRegular():
		c.addFile(absPath, vpath, info)
		return nil

	default:
		c.skip(vpath, "not a regular file")
		return nil
	}
}

func (c *collector) addFile(absPath, vpath string, info fs.FileInfo) {
	if !c.cfg.Filter.Match(vpath, false, info.Size()) {
		c.skip(vpath, "excluded")
		return
	}
	c.entries = append(c.entries, SourceEntry{
		AbsPath:     absPath,
		VirtualPath: vpath,
		Size:        uint64(info.Size()),
		Type:        File,
	})
	if c.cfg.Stats != nil {
		c.cfg.Stats.AddFilesScanned(1)
	}
}

func (c *collector) skip(vpath, reason string) {
	slog.Debug("skipped entry", "path", vpath, "reason", reason)
	if c.cfg.Stats != nil {
		c.cfg.Stats.AddFilesSkipped(1)
	}
	emitEvent(c.cfg.Events, event.Event{Type: event.FileSkipped, Path: vpath, Reason: reason})
}

// skipDir prunes a directory, or a link to one, with everything below it.
func (c *collector) skipDir(vpath, reason string) {
	slog.Debug("skipped directory", "path", vpath, "reason", reason)
	if c.cfg.Stats != nil {
		c.cfg.Stats.AddDirsSkipped(1)
	}
	emitEvent(c.cfg.Events, event.Event{Type: event.FileSkipped, Path: vpath, Reason: reason})
}

// virtualPath maps an absolute path below the root to its "/"-rooted,
// forward-slash form. The relative path is computed structurally, so a root
// whose text reappears deeper in the tree is never stripped twice.
func (c *collector) virtualPath(absPath string) (string, error) {
	rel, err := filepath.Rel(c.root, absPath)
	if err != nil {
		return "", &IOError{Op: "rel", Path: absPath, Err: err}
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &IOError{Op: "rel", Path: absPath, Err: fmt.Errorf("outside root %s", c.root)}
	}
	return "/" + filepath.ToSlash(rel), nil
}

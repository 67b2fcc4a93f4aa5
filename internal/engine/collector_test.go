package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/lovepack/internal/event"
	"github.com/bamsammich/lovepack/internal/filter"
	"github.com/bamsammich/lovepack/internal/stats"
)

func virtualPaths(entries []SourceEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.VirtualPath
	}
	return out
}

func TestCollect_GameTreeOrder(t *testing.T) {
	root := t.TempDir()
	createGameTree(t, root)

	src, err := Collect(context.Background(), CollectorConfig{Root: root})
	require.NoError(t, err)

	assert.Equal(t, ModeDirectory, src.Mode)
	assert.Equal(t, []string{
		"/assets",
		"/assets/hero.png",
		"/assets/music",
		"/assets/sfx",
		"/assets/sfx/jump.ogg",
		"/conf.lua",
		"/lib",
		"/lib/class.lua",
		"/main.lua",
	}, virtualPaths(src.Entries))

	assert.Equal(t, []string{"/assets", "/assets/music", "/assets/sfx", "/lib"}, virtualPaths(src.Dirs()))
	assert.Len(t, src.Files(), 5)
	assert.Equal(t, uint64(gameTreeSize), src.TotalSize())

	for _, e := range src.Files() {
		rel, err := filepath.Rel(src.Root, e.AbsPath)
		require.NoError(t, err)
		assert.Equal(t, "/"+filepath.ToSlash(rel), e.VirtualPath)
	}
}

func TestCollect_Deterministic(t *testing.T) {
	root := t.TempDir()
	createGameTree(t, root)

	first, err := Collect(context.Background(), CollectorConfig{Root: root})
	require.NoError(t, err)
	second, err := Collect(context.Background(), CollectorConfig{Root: root})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCollect_RelativeRoot(t *testing.T) {
	root := t.TempDir()
	createGameTree(t, root)
	t.Chdir(root)

	src, err := Collect(context.Background(), CollectorConfig{Root: "."})
	require.NoError(t, err)
	assert.Contains(t, virtualPaths(src.Entries), "/main.lua")
	assert.True(t, filepath.IsAbs(src.Root))
}

func TestCollect_RootNameRepeatedBelow(t *testing.T) {
	// The root's own path text recurs inside the tree; only the real
	// prefix may be removed.
	base := t.TempDir()
	root := filepath.Join(base, "game")
	nested := filepath.Join(root, "levels", base, "game")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeFile(t, filepath.Join(nested, "boss.lua"), []byte("boss"))

	src, err := Collect(context.Background(), CollectorConfig{Root: root})
	require.NoError(t, err)

	files := src.Files()
	require.Len(t, files, 1)
	want := "/levels" + filepath.ToSlash(base) + "/game/boss.lua"
	assert.Equal(t, want, files[0].VirtualPath)
}

func TestCollect_SingleFile(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "mygame.love")
	data := []byte("PK\x03\x04 love archive")
	writeFile(t, archive, data)

	src, err := Collect(context.Background(), CollectorConfig{Root: archive})
	require.NoError(t, err)

	assert.Equal(t, ModeArchive, src.Mode)
	require.Len(t, src.Entries, 1)
	assert.Equal(t, ArchiveVirtualPath, src.Entries[0].VirtualPath)
	assert.Equal(t, File, src.Entries[0].Type)
	assert.Equal(t, uint64(len(data)), src.Entries[0].Size)
	assert.Empty(t, src.Dirs())
}

func TestCollect_EmptyDir(t *testing.T) {
	src, err := Collect(context.Background(), CollectorConfig{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, src.Entries)
	assert.Equal(t, ModeDirectory, src.Mode)
}

func TestCollect_NotFound(t *testing.T) {
	_, err := Collect(context.Background(), CollectorConfig{Root: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Path, "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCollect_UnreadableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	writeFile(t, filepath.Join(locked, "secret.lua"), []byte("x"))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err := Collect(context.Background(), CollectorConfig{Root: root})
	require.Error(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "readdir", ioErr.Op)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestCollect_FilterPrunesSubtree(t *testing.T) {
	root := t.TempDir()
	createGameTree(t, root)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o755))
	writeFile(t, filepath.Join(root, ".git", "HEAD"), []byte("ref: main"))
	writeFile(t, filepath.Join(root, "assets", "hero.psd"), []byte("psd"))

	chain := filter.NewChain()
	require.NoError(t, chain.AddExclude(".git/"))
	require.NoError(t, chain.AddExclude("*.psd"))

	collector := stats.NewCollector()
	src, err := Collect(context.Background(), CollectorConfig{Root: root, Filter: chain, Stats: collector})
	require.NoError(t, err)

	paths := virtualPaths(src.Entries)
	assert.NotContains(t, paths, "/.git")
	assert.NotContains(t, paths, "/.git/HEAD")
	assert.NotContains(t, paths, "/assets/hero.psd")
	assert.Contains(t, paths, "/assets/hero.png")

	snap := collector.Snapshot()
	assert.Equal(t, int64(1), snap.FilesSkipped) // hero.psd
	assert.Equal(t, int64(1), snap.DirsSkipped)  // .git
	assert.Equal(t, int64(5), snap.FilesScanned)
	assert.Equal(t, int64(4), snap.DirsQueued)
}

func TestCollect_Symlinks(t *testing.T) {
	root := t.TempDir()
	createGameTree(t, root)
	require.NoError(t, os.Symlink("main.lua", filepath.Join(root, "entry.lua")))
	require.NoError(t, os.Symlink("assets", filepath.Join(root, "assets-link")))
	require.NoError(t, os.Symlink("nowhere", filepath.Join(root, "dangling")))

	t.Run("skipped by default", func(t *testing.T) {
		src, err := Collect(context.Background(), CollectorConfig{Root: root})
		require.NoError(t, err)
		paths := virtualPaths(src.Entries)
		assert.NotContains(t, paths, "/entry.lua")
		assert.NotContains(t, paths, "/assets-link")
		assert.NotContains(t, paths, "/dangling")
	})

	t.Run("followed to files only", func(t *testing.T) {
		collector := stats.NewCollector()
		src, err := Collect(context.Background(), CollectorConfig{Root: root, FollowSymlinks: true, Stats: collector})
		require.NoError(t, err)
		paths := virtualPaths(src.Entries)
		assert.Contains(t, paths, "/entry.lua")
		assert.NotContains(t, paths, "/assets-link")
		assert.NotContains(t, paths, "/dangling")

		snap := collector.Snapshot()
		assert.Equal(t, int64(1), snap.FilesSkipped) // dangling
		assert.Equal(t, int64(1), snap.DirsSkipped)  // assets-link

		for _, e := range src.Files() {
			if e.VirtualPath == "/entry.lua" {
				assert.Equal(t, uint64(24), e.Size)
			}
		}
	})
}

func TestCollect_EmitsEvents(t *testing.T) {
	root := t.TempDir()
	createGameTree(t, root)
	require.NoError(t, os.Symlink("main.lua", filepath.Join(root, "entry.lua")))

	events := make(chan event.Event, 64)
	_, err := Collect(context.Background(), CollectorConfig{Root: root, Events: events})
	require.NoError(t, err)
	close(events)

	var dirs, skipped int
	for ev := range events {
		switch ev.Type {
		case event.DirQueued:
			dirs++
		case event.FileSkipped:
			skipped++
			assert.Equal(t, "/entry.lua", ev.Path)
			assert.Equal(t, "symlink", ev.Reason)
		}
		assert.False(t, ev.Timestamp.IsZero())
	}
	assert.Equal(t, 4, dirs)
	assert.Equal(t, 1, skipped)
}

func TestCollect_Cancelled(t *testing.T) {
	root := t.TempDir()
	createGameTree(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, CollectorConfig{Root: root})
	assert.True(t, errors.Is(err, context.Canceled))
}

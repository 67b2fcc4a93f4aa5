package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// gameTreeSize is the total byte count of createGameTree's files.
const gameTreeSize = 24 + 25 + 320000 + 9 + 14

// createGameTree populates root with a small game:
//
//	main.lua              (24 bytes)
//	conf.lua              (25 bytes)
//	assets/hero.png       (320KB)
//	assets/sfx/jump.ogg   (9 bytes)
//	assets/music/         (empty)
//	lib/class.lua         (14 bytes)
func createGameTree(t *testing.T, root string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets", "sfx"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets", "music"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o755))

	writeFile(t, filepath.Join(root, "main.lua"), []byte("function love.draw() end"))
	writeFile(t, filepath.Join(root, "conf.lua"), []byte("function love.conf(t) end"))
	writeFile(t, filepath.Join(root, "assets", "hero.png"), bytes.Repeat([]byte("ABCDEFGHIJKLMNOP"), 20000))
	writeFile(t, filepath.Join(root, "assets", "sfx", "jump.ogg"), []byte("OggS-jump"))
	writeFile(t, filepath.Join(root, "lib", "class.lua"), []byte("return {} -- c"))
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// applyDirectoryOps replays ops against an empty virtual filesystem and
// fails the test if any op names a parent that does not exist yet.
func applyDirectoryOps(t *testing.T, ops []DirectoryOp) map[string]bool {
	t.Helper()

	created := map[string]bool{"/": true}
	for i, op := range ops {
		require.True(t, created[op.Parent], "op %d: parent %q not created before %q", i, op.Parent, op.Name)
		require.False(t, created[op.Path()], "op %d: %q created twice", i, op.Path())
		created[op.Path()] = true
	}
	return created
}

// blobSlice returns the bytes a record points at.
func blobSlice(blob []byte, r FileRecord) []byte {
	return blob[r.Start:r.End]
}

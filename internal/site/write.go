package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/bamsammich/lovepack/internal/platform"
)

// Output file names.
const (
	IndexFile      = "index.html"
	GameJSFile     = "game.js"
	DataFile       = "game.data"
	CompressedFile = "game.data.zst"
)

// WriteResult reports what Write put on disk.
type WriteResult struct {
	Files []string // paths relative to the output directory
	Bytes int64
}

// Write creates dir if needed and writes the page, the data blob, an
// optional zstd copy of the blob and the runtime files into it.
func Write(ctx context.Context, dir string, s Site, blob []byte) (WriteResult, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return WriteResult{}, fmt.Errorf("create output directory: %w", err)
	}

	var res WriteResult
	put := func(name string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeFileAtomic(filepath.Join(dir, name), data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		slog.Debug("wrote output file", "file", name, "bytes", len(data))
		res.Files = append(res.Files, name)
		res.Bytes += int64(len(data))
		return nil
	}

	if err := put(IndexFile, s.IndexHTML); err != nil {
		return res, err
	}
	if err := put(GameJSFile, s.GameJS); err != nil {
		return res, err
	}
	if err := put(DataFile, blob); err != nil {
		return res, err
	}

	if s.Options.Precompress {
		compressed, err := compress(blob)
		if err != nil {
			return res, fmt.Errorf("compress %s: %w", DataFile, err)
		}
		if err := put(CompressedFile, compressed); err != nil {
			return res, err
		}
	}

	if s.Options.RuntimeDir == "" {
		slog.Warn("no runtime directory configured; copy the love.js runtime files into the output yourself",
			"files", RuntimeFiles(s.Options.Flavor))
		return res, nil
	}
	flavorDir := filepath.Join(s.Options.RuntimeDir, string(s.Options.Flavor))
	if _, err := os.Stat(flavorDir); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("runtime directory not found; copy the love.js runtime files into the output yourself",
			"dir", flavorDir, "files", RuntimeFiles(s.Options.Flavor))
		return res, nil
	}
	if err := copyRuntime(ctx, s.Options.RuntimeDir, s.Options.Flavor, dir, &res); err != nil {
		return res, err
	}
	return res, nil
}

func copyRuntime(ctx context.Context, runtimeDir string, flavor Flavor, dir string, res *WriteResult) error {
	srcDir := filepath.Join(runtimeDir, string(flavor))
	for _, name := range RuntimeFiles(flavor) {
		if err := ctx.Err(); err != nil {
			return err
		}
		src := filepath.Join(srcDir, name)
		dst := filepath.Join(dir, name)

		info, err := os.Stat(src)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("runtime file %s missing from %s", name, srcDir)
			}
			return fmt.Errorf("stat runtime file: %w", err)
		}

		var n int64
		if info.IsDir() {
			n, err = platform.CopyTree(src, dst)
		} else {
			var r platform.CopyResult
			r, err = platform.CopyPath(src, dst)
			n = r.Bytes
			slog.Debug("copied runtime file", "file", name, "method", r.Method)
		}
		if err != nil {
			return fmt.Errorf("copy runtime %s: %w", name, err)
		}
		res.Files = append(res.Files, name)
		res.Bytes += n
	}
	return nil
}

// compress returns blob as a single zstd frame for servers that can send
// precompressed variants.
func compress(blob []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(blob, make([]byte, 0, len(blob)/2)), nil
}

// writeFileAtomic writes through a temp file in the same directory so a
// reader never observes a half-written output file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".lovepack-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	pending.add(tmpName)
	defer func() {
		pending.remove(tmpName)
		_ = os.Remove(tmpName) // no-op after a successful rename
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

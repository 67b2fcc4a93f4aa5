// Package site turns a packaging result into a servable love.js web page:
// index.html, the game.js preloader, game.data and the prebuilt runtime.
package site

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bamsammich/lovepack/internal/engine"
)

// Flavor selects which love.js runtime build the page loads.
type Flavor string

const (
	// Release is the threaded build; it needs cross-origin isolation headers.
	Release Flavor = "release"
	// Compat runs on any static host, at lower performance.
	Compat Flavor = "compat"
)

// Options controls rendering and writing.
type Options struct {
	Title  string
	Memory uint64 // INITIAL_MEMORY handed to the runtime
	Flavor Flavor

	// RuntimeDir holds one subdirectory per flavor with the prebuilt
	// runtime files. Empty skips the runtime copy.
	RuntimeDir  string
	Precompress bool
}

// Site is a rendered page ready to be written.
type Site struct {
	Options   Options
	IndexHTML []byte
	GameJS    []byte
}

// RuntimeFiles lists the runtime entries copied for flavor. "theme" is a
// directory; everything else is a regular file.
func RuntimeFiles(flavor Flavor) []string {
	files := []string{"love.js", "love.wasm", "consolewrapper.js", "theme"}
	if flavor == Release {
		files = append(files, "love.worker.js")
	}
	return files
}

// Render fills the page templates from a successful engine result.
func Render(opts Options, res engine.Result) (Site, error) {
	if res.Err != nil {
		return Site{}, fmt.Errorf("render: packaging failed: %w", res.Err)
	}
	if opts.Flavor == "" {
		opts.Flavor = Release
	}
	indexTmpl, ok := indexTemplates[opts.Flavor]
	if !ok {
		return Site{}, fmt.Errorf("unknown flavor %q", opts.Flavor)
	}
	if opts.Memory == 0 {
		opts.Memory = engine.DefaultMemoryBudget
	}

	metadata, err := res.Manifest.JSON()
	if err != nil {
		return Site{}, fmt.Errorf("encode manifest: %w", err)
	}

	var gameJS bytes.Buffer
	err = gameJSTemplate.Execute(&gameJS, struct {
		CreateFilePaths string
		Metadata        string
	}{
		CreateFilePaths: CreatePathCalls(res.DirectoryOps),
		Metadata:        string(metadata),
	})
	if err != nil {
		return Site{}, fmt.Errorf("render game.js: %w", err)
	}

	var index bytes.Buffer
	err = indexTmpl.Execute(&index, struct {
		Title     string
		Memory    uint64
		Arguments []string
	}{
		Title:     opts.Title,
		Memory:    opts.Memory,
		Arguments: launchArguments(res.Mode),
	})
	if err != nil {
		return Site{}, fmt.Errorf("render index.html: %w", err)
	}

	return Site{Options: opts, IndexHTML: index.Bytes(), GameJS: gameJS.Bytes()}, nil
}

// CreatePathCalls renders directory ops as the runtime's FS_createPath calls,
// one per line, in op order.
func CreatePathCalls(ops []engine.DirectoryOp) string {
	calls := make([]string, len(ops))
	for i, op := range ops {
		calls[i] = fmt.Sprintf("Module['FS_createPath'](%s, %s, true, true);", jsString(op.Parent), jsString(op.Name))
	}
	return strings.Join(calls, "\n      ")
}

// launchArguments tells the runtime where the game lives in the virtual
// filesystem: the root for an unpacked tree, the archive otherwise.
func launchArguments(mode engine.SourceMode) []string {
	if mode == engine.ModeArchive {
		return []string{"." + engine.ArchiveVirtualPath}
	}
	return []string{"./"}
}

var jsStringReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// jsString quotes s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	return "'" + jsStringReplacer.Replace(s) + "'"
}

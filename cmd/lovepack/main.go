package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/lovepack/internal/config"
	"github.com/bamsammich/lovepack/internal/engine"
	"github.com/bamsammich/lovepack/internal/event"
	"github.com/bamsammich/lovepack/internal/filter"
	"github.com/bamsammich/lovepack/internal/history"
	"github.com/bamsammich/lovepack/internal/prompt"
	"github.com/bamsammich/lovepack/internal/site"
	"github.com/bamsammich/lovepack/internal/stats"
	"github.com/bamsammich/lovepack/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// filterFlag is a custom pflag.Value that preserves CLI ordering of
// --exclude and --include rules by appending to a shared filter.Chain.
type filterFlag struct {
	chain   *filter.Chain
	include bool
}

func (*filterFlag) String() string { return "" }
func (*filterFlag) Type() string   { return "string" }

func (f *filterFlag) Set(val string) error {
	if f.include {
		return f.chain.AddInclude(val)
	}
	return f.chain.AddExclude(val)
}

// options collects every root command flag.
type options struct {
	title          string
	memory         string
	compat         bool
	runtimeDir     string
	precompress    bool
	history        bool
	followSymlinks bool
	verify         bool
	filterFile     string
	maxSize        string
	verbose        bool
	quiet          bool
	noProgress     bool
	logFile        string
	showVersion    bool

	chain *filter.Chain
}

func run() int {
	return execute(newRootCmd(os.Stdin, os.Stdout, os.Stderr, prompt.Stdio()), os.Stderr)
}

// execute runs cmd and maps its error to a process exit code: 1 when
// packaging failed, 2 for usage errors.
func execute(cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point wires every stage
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, prompter *prompt.Prompter) *cobra.Command {
	opts := &options{chain: filter.NewChain()}

	rootCmd := &cobra.Command{
		Use:   "lovepack [flags] <input> <output>",
		Short: "Package a LÖVE game for the web with love.js",
		Long: `lovepack packs a LÖVE game directory or .love archive into game.data,
writes the game.js preloader and index.html page, and copies the love.js
runtime next to them. Missing arguments are asked for on a terminal.

The runtime is read from --runtime, or from ~/.local/share/lovepack/runtime
when unset. Without it the page is written but cannot load until love.js,
love.wasm and the other runtime files are copied next to it.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(stdout, "lovepack %s\n", version)
				return nil
			}

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, opts)
			if opts.runtimeDir == "" {
				opts.runtimeDir = config.RuntimeDir()
			}

			closeLog, err := setupLogging(stderr, opts)
			if err != nil {
				return err
			}
			defer closeLog()

			resolved, err := prompter.Resolve(prompt.Args{
				Input:  argAt(args, 0),
				Output: argAt(args, 1),
				Title:  opts.title,
			})
			if err != nil {
				return fmt.Errorf("%w\n\nUsage: %s", err, cmd.UseLine())
			}

			var budget uint64
			if opts.memory != "" {
				n, err := filter.ParseSize(opts.memory)
				if err != nil {
					return fmt.Errorf("invalid --memory: %w", err)
				}
				budget = uint64(n)
			}
			if budget == 0 {
				budget = engine.DefaultMemoryBudget
			}

			if err := buildFilter(opts, cfg.Filter, resolved.Input); err != nil {
				return err
			}

			// Set up context with signal handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			defer func() {
				if ctx.Err() != nil {
					site.CleanupTmpFiles()
				}
			}()

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			// When --log is set, tee events through a logging goroutine
			// that writes structured records before forwarding to the presenter.
			presenterEvents := (<-chan event.Event)(events)
			if opts.logFile != "" {
				presenterEvents = teeEvents(events)
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:     stdout,
				ErrWriter:  stderr,
				IsTTY:      ui.IsTTY(os.Stderr.Fd()),
				Width:      ui.TermWidth(os.Stderr.Fd()),
				Quiet:      opts.quiet,
				Verbose:    opts.verbose,
				NoProgress: opts.noProgress,
				Stats:      collector,
			})

			engineCfg := engine.Config{
				Input:          resolved.Input,
				MemoryBudget:   budget,
				FollowSymlinks: opts.followSymlinks,
				Events:         events,
				Stats:          collector,
			}
			// Only set filter if it has rules/size constraints.
			if !opts.chain.Empty() {
				engineCfg.Filter = opts.chain
			}

			slog.Debug("starting package",
				"input", resolved.Input,
				"output", resolved.Output,
				"memory", budget,
				"compat", opts.compat,
			)

			// Presenter runs in the background, engine in the foreground.
			var presenterErr error
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				presenterErr = presenter.Run(presenterEvents)
			}()

			result := engine.Run(ctx, engineCfg)
			close(events)
			presenterWg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(stderr, "presenter: %v\n", presenterErr)
			}

			if result.Err != nil {
				slog.Error("packaging failed", "error", result.Err)
				return &exitError{code: 1}
			}

			flavor := site.Release
			if opts.compat {
				flavor = site.Compat
			}
			page, err := site.Render(site.Options{
				Title:       resolved.Title,
				Memory:      budget,
				Flavor:      flavor,
				RuntimeDir:  opts.runtimeDir,
				Precompress: opts.precompress,
			}, result)
			if err != nil {
				slog.Error("render failed", "error", err)
				return &exitError{code: 1}
			}

			written, err := site.Write(ctx, resolved.Output, page, result.Blob)
			if err != nil {
				slog.Error("write failed", "output", resolved.Output, "error", err)
				return &exitError{code: 1}
			}
			if opts.verify {
				if err := site.Verify(resolved.Output, result.Digest); err != nil {
					slog.Error("verification failed", "error", err)
					return &exitError{code: 1}
				}
				slog.Debug("verified data file", "digest", result.Digest)
			}

			slog.Info("package written",
				"output", resolved.Output,
				"package_uuid", result.Manifest.PackageUUID,
				"files", len(written.Files),
				"digest", result.Digest,
			)

			if opts.history {
				recordHistory(ctx, resolved, result)
			}

			if !opts.quiet {
				if summary := presenter.Summary(); summary != "" {
					fmt.Fprintln(stderr, summary)
				}
			}
			return nil
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Version flag handled in RunE, but also register the flag.
	rootCmd.Flags().BoolVar(&opts.showVersion, "version", false, "print version and exit")

	rootCmd.Flags().StringVarP(&opts.title, "title", "t", "", "game name shown on the page (asked for when omitted on a terminal)")
	rootCmd.Flags().
		StringVarP(&opts.memory, "memory", "m", "", "memory for the game in bytes, or with a suffix like 64M (default 16777216)")
	rootCmd.Flags().BoolVarP(&opts.compat, "compat", "c", false, "use the compatibility runtime (no threads, any static host)")
	rootCmd.Flags().
		StringVar(&opts.runtimeDir, "runtime", "", "directory holding the release/ and compat/ love.js runtime builds (default $XDG_DATA_HOME/lovepack/runtime)")
	rootCmd.Flags().
		BoolVar(&opts.precompress, "precompress", false, "also write game.data.zst for servers that serve precompressed files")
	rootCmd.Flags().BoolVar(&opts.verify, "verify", false, "re-read game.data after writing and check its BLAKE3 digest")
	rootCmd.Flags().BoolVar(&opts.history, "history", false, "record the build in the local history database")
	rootCmd.Flags().
		BoolVar(&opts.followSymlinks, "follow-symlinks", false, "pack files behind symlinks instead of skipping them")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable progress display")
	rootCmd.Flags().StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")

	// Filter flags use a custom pflag.Value to keep command-line order.
	rootCmd.Flags().
		VarP(&filterFlag{chain: opts.chain, include: false}, "exclude", "", "exclude files matching PATTERN (repeatable)")
	rootCmd.Flags().
		VarP(&filterFlag{chain: opts.chain, include: true}, "include", "", "include files matching PATTERN (repeatable)")
	rootCmd.Flags().StringVar(&opts.filterFile, "filter", "", "read filter rules from FILE")
	rootCmd.Flags().
		StringVar(&opts.maxSize, "max-size", "", "skip files larger than SIZE (e.g. 1G, 500M)")

	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "exclude" || f.Name == "include" {
			f.NoOptDefVal = ""
		}
	})

	// Register subcommands.
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newDocsCmd())

	return rootCmd
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// setupLogging installs the default slog logger and returns a func that
// closes the --log file, if any.
func setupLogging(stderr io.Writer, opts *options) (func(), error) {
	logLevel := slog.LevelWarn
	if opts.verbose {
		logLevel = slog.LevelDebug
	} else if !opts.quiet {
		logLevel = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	var logHandler slog.Handler = textHandler
	closeFn := func() {}
	if opts.logFile != "" {
		lf, err := os.Create(opts.logFile)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		closeFn = func() { lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler))
	return closeFn, nil
}

// buildFilter appends the remaining rule sources after the command-line
// rules: --filter file, the input's ignore file, then config rules. The
// first matching rule wins, so the command line takes precedence.
func buildFilter(opts *options, fc config.FilterConfig, input string) error {
	chain := opts.chain
	if opts.filterFile != "" {
		if err := chain.LoadFile(opts.filterFile); err != nil {
			return fmt.Errorf("load filter file: %w", err)
		}
	}
	if info, err := os.Stat(input); err == nil && info.IsDir() {
		loaded, err := chain.LoadIgnoreFile(input)
		if err != nil {
			return fmt.Errorf("load %s: %w", filter.IgnoreFileName, err)
		}
		if loaded {
			slog.Debug("loaded ignore file", "path", filepath.Join(input, filter.IgnoreFileName))
		}
	}
	for _, p := range fc.Include {
		if err := chain.AddInclude(p); err != nil {
			return fmt.Errorf("config include %q: %w", p, err)
		}
	}
	for _, p := range fc.Exclude {
		if err := chain.AddExclude(p); err != nil {
			return fmt.Errorf("config exclude %q: %w", p, err)
		}
	}
	if opts.maxSize != "" {
		n, err := filter.ParseSize(opts.maxSize)
		if err != nil {
			return fmt.Errorf("invalid --max-size: %w", err)
		}
		chain.SetMaxSize(n)
	}
	return nil
}

// teeEvents logs every event as a structured record before forwarding it.
func teeEvents(events <-chan event.Event) <-chan event.Event {
	teed := make(chan event.Event, 256)
	go func() {
		for ev := range events {
			attrs := []slog.Attr{
				slog.String("type", ev.Type.String()),
				slog.Time("at", ev.Timestamp),
				slog.String("path", ev.Path),
				slog.Int64("size", ev.Size),
			}
			if ev.Type == event.FilePacked {
				attrs = append(attrs, slog.Int64("offset", ev.Offset))
			}
			if ev.Reason != "" {
				attrs = append(attrs, slog.String("reason", ev.Reason))
			}
			if ev.Error != nil {
				attrs = append(attrs, slog.String("error", ev.Error.Error()))
			}
			slog.LogAttrs(context.Background(), slog.LevelDebug, "lovepack.event", attrs...)
			teed <- ev
		}
		close(teed)
	}()
	return teed
}

func recordHistory(ctx context.Context, args prompt.Args, result engine.Result) {
	dir := config.StateDir()
	if dir == "" {
		slog.Warn("no state directory; build not recorded")
		return
	}
	db, err := history.Open(filepath.Join(dir, history.FileName))
	if err != nil {
		slog.Warn("failed to open history", "error", err)
		return
	}
	defer db.Close()

	input, _ := filepath.Abs(args.Input)   //nolint:errcheck // falls back to ""
	output, _ := filepath.Abs(args.Output) //nolint:errcheck // falls back to ""
	_, err = db.Record(ctx, history.Build{
		PackageUUID: result.Manifest.PackageUUID.String(),
		Input:       input,
		Output:      output,
		Mode:        result.Mode.String(),
		Files:       len(result.Manifest.Files),
		TotalSize:   result.Manifest.RemotePackageSize,
		Digest:      result.Digest,
	})
	if err != nil {
		slog.Warn("failed to record build", "error", err)
	}
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, opts *options) {
	changed := cmd.Flags().Changed
	if !changed("memory") && defaults.Memory != nil {
		opts.memory = *defaults.Memory
	}
	if !changed("compat") && defaults.Compat != nil {
		opts.compat = *defaults.Compat
	}
	if !changed("runtime") && defaults.Runtime != nil {
		opts.runtimeDir = *defaults.Runtime
	}
	if !changed("precompress") && defaults.Precompress != nil {
		opts.precompress = *defaults.Precompress
	}
	if !changed("history") && defaults.History != nil {
		opts.history = *defaults.History
	}
	if !changed("follow-symlinks") && defaults.FollowSymlinks != nil {
		opts.followSymlinks = *defaults.FollowSymlinks
	}
	if !changed("verify") && defaults.Verify != nil {
		opts.verify = *defaults.Verify
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

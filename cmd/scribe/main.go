// Package main is the entry point for the Scribe editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/scribe/internal/app"
	"github.com/dshills/scribe/internal/config"
	"github.com/dshills/scribe/internal/editor"
	"github.com/dshills/scribe/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	logLevel   string
	logFile    string
	pngPath    string
	width      int
	height     int
	scale      int
	watch      bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	loader := config.NewLoader(f.configPath)
	opts, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		opts.Log.Level = f.logLevel
	}

	logOut, closeLog, err := openLog(f.logFile, f.pngPath != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(opts.Log.Level),
		Output: logOut,
		Format: opts.Log.Format,
	})
	defer func() { _ = logger.Sync() }()

	doc, err := app.OpenDocument(f.file, opts.Editor.MaxUndo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if f.pngPath != "" {
		return snapshot(doc, f, opts, logger)
	}

	term, err := backend.NewTerminal(backend.WithTerminalLogger(logger.WithComponent("terminal")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	application, err := app.New(doc, term, opts, app.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if f.watch && f.configPath != "" {
		w, err := application.WatchConfig(loader)
		if err != nil {
			logger.Warn("config watch disabled", "error", err)
		} else {
			defer w.Close()
		}
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// snapshot renders a single frame of the document to a PNG file.
func snapshot(doc *editor.Document, f flags, opts config.Options, logger *app.Logger) int {
	png := backend.NewPNG(f.pngPath, f.width, f.height,
		backend.WithScale(f.scale),
		backend.WithPNGLogger(logger.WithComponent("png")))
	application, err := app.New(doc, png, opts, app.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if err := png.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer png.Shutdown()

	if err := application.Render(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openLog returns the log destination. The terminal owns stdout and
// stderr while the editor runs, so without a log file logs are dropped
// unless only a snapshot is being written.
func openLog(path string, headless bool) (io.Writer, func(), error) {
	if path == "" {
		if headless {
			return os.Stderr, func() {}, nil
		}
		return io.Discard, func() {}, nil
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return out, func() { out.Close() }, nil
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&f.pngPath, "png", "", "Render one frame to this PNG file and exit")
	flag.IntVar(&f.width, "width", 800, "Snapshot width in pixels")
	flag.IntVar(&f.height, "height", 600, "Snapshot height in pixels")
	flag.IntVar(&f.scale, "scale", 1, "Snapshot enlargement factor")
	flag.BoolVar(&f.watch, "watch", true, "Reload the configuration file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Scribe - multi-cursor text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scribe [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  scribe                        Open an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  scribe main.go                Open a file\n")
		fmt.Fprintf(os.Stderr, "  scribe -png out.png main.go   Render a frame to out.png\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Scribe %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch f.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: only one file can be opened\n")
		os.Exit(1)
	}
	f.file = flag.Arg(0)
	return f
}

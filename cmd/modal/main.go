// Package main is the entry point for the modal editor.
package main

import (
	"bufio"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/modal/internal/app"
	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// source is the editor's own entry point, opened as the initial buffer.
//
//go:embed main.go
var source string

func main() {
	os.Exit(run(os.Args[1:]))
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	configPath  string
	overrides   map[string]string
	showVersion bool
}

func run(args []string) int {
	cli, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if cli.showVersion {
		fmt.Printf("modal %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	app.SetLogger(logger)

	application, err := app.New(app.Options{
		Content:    source,
		Config:     cfg,
		ConfigPath: cli.configPath,
		Overrides:  cli.overrides,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	b, sink, err := newTerminal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(b); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}
	if err := application.SetSink(sink); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set sink: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	// Run returns after the terminal has been restored, so errors can
	// go to stderr.
	if err := application.Run(); err != nil {
		var perr *app.RecoveredPanicError
		if errors.As(err, &perr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", perr.Value)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	return 0
}

// parseFlags parses args. Settings flags are collected as overrides
// keyed by config path so they apply after the file and environment.
func parseFlags(args []string, stderr io.Writer) (*cliOptions, error) {
	cli := &cliOptions{overrides: make(map[string]string)}

	fs := flag.NewFlagSet("modal", flag.ContinueOnError)
	fs.SetOutput(stderr)

	setting := func(path string) func(string) error {
		return func(v string) error {
			cli.overrides[path] = v
			return nil
		}
	}

	fs.StringVar(&cli.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&cli.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.Func("log-level", "Log level (debug, info, warn, error)", setting("log.level"))
	fs.Func("log-file", `Log file path, or "none" to disable logging`, setting("log.file"))
	fs.Func("backend", "Terminal backend (tcell, ansi)", setting("terminal.backend"))
	fs.Func("render-delay", "Input batching window, e.g. 50ms", setting("editor.render_delay"))
	fs.BoolVar(&cli.showVersion, "version", false, "Show version information")
	fs.BoolVar(&cli.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "modal - a minimal modal text editor\n\n")
		fmt.Fprintf(stderr, "Usage: modal [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nKeys:\n")
		fmt.Fprintf(stderr, "  Normal: h j k l move, i insert, a append, Esc quit\n")
		fmt.Fprintf(stderr, "  Insert: type to insert, Enter splits, Backspace deletes, Esc back to Normal\n")
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		fmt.Fprintf(stderr, "  MODAL_LOG_LEVEL, MODAL_LOG_FILE, MODAL_BACKEND, MODAL_RENDER_DELAY, MODAL_UNKNOWN_KEYS_DIRTY\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return nil, errors.New("unexpected arguments")
	}

	return cli, nil
}

// defaultConfigPath returns modal/config.toml under the user config
// directory, or "" when there is none.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "modal", "config.toml")
}

// loadConfig layers defaults, the config file, the environment and the
// command line, in that order.
func loadConfig(cli *cliOptions) (*config.Config, error) {
	if cli.configPath == "" {
		cli.configPath = defaultConfigPath()
	}

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyOverrides(cli.overrides); err != nil {
		return nil, app.WrapError(err, "command line")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger opens the log file named by the configuration. The
// terminal belongs to the editor, so logs never go to stderr.
func openLogger(cfg *config.Config) (*app.Logger, func(), error) {
	path := cfg.LogPath()
	if path == "" {
		return app.NullLogger, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, app.WrapError(err, "opening log file %s", path)
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Log.Level),
		Output: f,
		Prefix: "modal",
	})
	return logger, func() { _ = f.Close() }, nil
}

// newTerminal builds the input backend and the frame sink for the
// configured terminal backend.
func newTerminal(cfg *config.Config) (backend.Backend, backend.Sink, error) {
	switch cfg.Terminal.Backend {
	case config.BackendANSI:
		b := backend.NewANSI(os.Stdin, os.Stdout)
		return b, backend.NewWriterSink(bufio.NewWriter(os.Stdout)), nil
	default:
		t, err := backend.NewTerminal()
		if err != nil {
			return nil, nil, err
		}
		return t, backend.NewScreenSink(t.Screen()), nil
	}
}

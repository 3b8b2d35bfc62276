package main

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/tailored-agentic-units/ollama-agent/kernel"
	"github.com/tailored-agentic-units/ollama-agent/observability"
)

const (
	envEndpoint = "OLLAMA_BASE_URL"
	envModel    = "SELECTED_MODEL"
)

// options holds the persistent command-line flags.
type options struct {
	configFile string
	endpoint   string
	model      string
	storePath  string
	eventsFile string
	verbose    bool
}

// eventsObserver is the registry name of the --events sink.
const eventsObserver = "events"

// loadConfig resolves the kernel configuration. Later sources win:
// defaults, config file, environment, flags.
func loadConfig(opts *options, getenv func(string) string) (*kernel.Config, error) {
	cfg := kernel.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := kernel.LoadConfig(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	cfg.Merge(&kernel.Config{
		Endpoint: getenv(envEndpoint),
		Model:    getenv(envModel),
	})

	overrides := kernel.Config{
		Endpoint: opts.endpoint,
		Model:    opts.model,
	}
	overrides.Store.Path = opts.storePath
	cfg.Merge(&overrides)

	if opts.eventsFile != "" {
		cfg.Observer += "," + eventsObserver
	}

	if err := cfg.Session.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	return &cfg, nil
}

// newLogger writes human-readable logs to a terminal and JSON otherwise.
func newLogger(verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		options.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// openEventLog registers an observer that appends every kernel event,
// verbose ones included, to path as JSON lines.
func openEventLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	observability.RegisterObserver(eventsObserver, observability.NewSlogObserver(logger))
	return f, nil
}

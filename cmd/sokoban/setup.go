package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/catalog"
	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/screens"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// loadConfig loads, overlays flags and validates.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	if err := cfg.ApplyFlags(flags); err != nil {
		return cfg, "", err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, "", err
	}
	return cfg, source, nil
}

// newLogger builds the logger. With toFile the output goes to the
// configured log file so it does not corrupt the terminal UI; the returned
// closer must be closed on exit.
func newLogger(cfg config.Config, toFile bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if toFile {
		if cfg.Log.File == "" {
			w = io.Discard
		} else {
			path, err := config.ExpandPath(cfg.Log.File)
			if err != nil {
				return nil, nil, err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("cannot open log file: %w", err)
			}
			w, closer = f, f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
		Level:           level,
	})
	return logger, closer, nil
}

// loadCatalog scans the configured level directory.
func loadCatalog(cfg config.Config, logger *log.Logger) (*catalog.Catalog, string, error) {
	dir, err := config.ExpandPath(cfg.Levels.Dir)
	if err != nil {
		return nil, "", err
	}
	cat := catalog.New(logger)
	if !cat.Load(dir) {
		return nil, "", fmt.Errorf("no levels available in %s", dir)
	}
	return cat, dir, nil
}

// openStore opens the results database. Failure is reported and play
// continues without persistence.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("results disabled", "error", err)
		return nil
	}
	return store
}

// records adapts a possibly nil store to screens.Records.
func records(store *storage.Store) screens.Records {
	if store == nil {
		return nil
	}
	return store
}

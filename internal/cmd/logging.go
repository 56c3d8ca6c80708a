package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/runger/datewheel/internal/config"
)

// newLogger builds the logger for one run. With toFile set and no log.file
// configured, it writes to the state directory, since the picker owns the
// terminal. The returned func closes any opened file.
func newLogger(cfg config.LogConfig, paths *config.Paths, toFile bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	path := cfg.File
	if path == "" && toFile {
		if err := paths.EnsureDirectories(); err != nil {
			return nil, nil, fmt.Errorf("failed to create directories: %w", err)
		}
		path = paths.LogFile()
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With("session", uuid.NewString())
	return logger, closeFn, nil
}

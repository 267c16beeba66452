package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

type Options struct {
	RunID   string
	Verbose bool
	// Stderr receives the tab-separated stream; nil means os.Stderr.
	Stderr io.Writer
	// File, when set, additionally receives every record as JSON.
	File string
}

// Open builds the run logger. Without Verbose the terminal stream only shows
// errors; the log file always records debug detail. The returned close
// function releases the log file.
func Open(opts Options) (Logger, func() error, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	level := slog.LevelError
	if opts.Verbose {
		level = slog.LevelDebug
	}
	text := NewLineHandler(stderr, opts.RunID, level)
	if opts.File == "" {
		return New(text), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return Logger{}, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Logger{}, nil, fmt.Errorf("opening log file: %w", err)
	}
	json := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}).
		WithAttrs([]slog.Attr{slog.String("run", opts.RunID)})

	return New(NewMultiHandler(text, json)), f.Close, nil
}

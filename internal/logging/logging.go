// Package logging builds the application logger. The game owns the
// terminal while it runs, so logs go to a size-rotated file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Stderr selects standard error instead of a log file.
const Stderr = "-"

// Options configures the logger.
type Options struct {
	File       string // empty means DefaultFile(), Stderr writes to stderr
	Level      string // debug, info, warn, error
	JSON       bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFile returns ~/.berrynoid/berrynoid.log, or empty if home is
// unavailable.
func DefaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".berrynoid", "berrynoid.log")
}

// New creates a logger and the closer for its output.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	if opts.File == Stderr {
		out = os.Stderr
	} else {
		file := opts.File
		if file == "" {
			file = DefaultFile()
		}
		if file == "" {
			return nil, nil, fmt.Errorf("logging: no log file and no home directory")
		}
		if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
			return nil, nil, fmt.Errorf("logging: failed to create log directory: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    orDefault(opts.MaxSizeMB, 5),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   opts.Compress,
		}
		out, closer = rotating, rotating
	}

	logOpts := log.Options{
		ReportTimestamp: true,
		Prefix:          "berrynoid",
		Level:           level,
	}
	if opts.JSON {
		logOpts.Formatter = log.JSONFormatter
	}
	return log.NewWithOptions(out, logOpts), closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

package slogx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
)

// Format selects how log records are written.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// New returns a slog.Logger backed by zerolog. The console format is meant for
// terminals, JSON for everything else.
func New(w io.Writer, format Format, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var zl zerolog.Logger
	if format == FormatJSON {
		zl = zerolog.New(w).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Stamp}
		zl = zerolog.New(output).With().Timestamp().Logger()
	}
	return slog.New(zeroslog.NewHandler(zl, &zeroslog.HandlerOptions{Level: level}))
}

// Setup installs New as the default logger and returns it.
func Setup(w io.Writer, format Format, level slog.Level) *slog.Logger {
	logger := New(w, format, level)
	slog.SetDefault(logger)
	return logger
}

// ABOUTME: Process logger setup using zerolog
// ABOUTME: Builds a console logger for stderr or an append-only log file
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Options selects where and how much to log
type Options struct {
	Level string
	// File appends to this path instead of writing to stderr
	File string
	// Out overrides stderr; used when File is empty
	Out     io.Writer
	NoColor bool
}

// ParseLevel maps a level name to zerolog; empty means info
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	if s == "off" || s == "none" {
		return zerolog.Disabled, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New builds a logger. The returned closer releases the log file, if any.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
		color            = !opts.NoColor
	)
	if opts.Out != nil {
		out = opts.Out
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer, color = f, f, false
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    !color,
	}
	logger := zerolog.New(consoleWriter).Level(lvl).With().Timestamp().Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

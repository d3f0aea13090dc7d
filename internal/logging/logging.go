// Package logging builds the slog logger used across relbump, backed by a
// charmbracelet/log handler.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Log formats.
const (
	FormatText   = "text"
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// Formats returns the supported log formats.
func Formats() []string {
	return []string{FormatText, FormatLogfmt, FormatJSON}
}

// ParseLevel maps a level name to a charmbracelet level. "warning" is
// accepted as an alias of "warn".
func ParseLevel(level string) (log.Level, error) {
	l := strings.ToLower(strings.TrimSpace(level))
	if l == "warning" {
		l = "warn"
	}
	parsed, err := log.ParseLevel(l)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (expected debug, info, warn or error)", ErrInvalidLevel, level)
	}
	return parsed, nil
}

// ParseFormat maps a format name to a charmbracelet formatter.
func ParseFormat(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, "":
		return log.TextFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected %s)", ErrInvalidFormat, format, strings.Join(Formats(), ", "))
	}
}

// NewHandler creates a slog handler writing to w.
func NewHandler(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: formatter != log.TextFormatter,
	}), nil
}

// New creates a logger writing to w.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	h, err := NewHandler(w, level, format)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

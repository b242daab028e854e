// Package log provides the dispatcher's structured logging (slog): logger
// construction, the default diagnostic sink, and replay of guest log messages.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/petricontrols/bootstrap/domain/entities"
)

// ParseLevel converts a textual level ("debug", "info", "warn", "error") to a slog.Level.
// Guest modules may also send "warning" and "trace"; trace maps to debug.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// NewLogger creates a slog.Logger writing to w according to cfg.
func NewLogger(cfg entities.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(handler), nil
}

package log

import (
	"context"
	"log/slog"

	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/petricontrols/bootstrap/domain/ports"
)

// Sink is the default diagnostic sink. It logs every captured fault at error level.
type Sink struct {
	logger *slog.Logger
}

var _ ports.DiagnosticSink = (*Sink)(nil)

// NewSink returns a Sink writing to logger, or to slog.Default() when logger is nil.
func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger}
}

// Report implements ports.DiagnosticSink.
func (s *Sink) Report(ctx context.Context, outcome entities.Outcome) {
	attrs := []any{
		"mount_id", outcome.Mount.ID,
		"index", outcome.Mount.Index,
		"duration", outcome.Duration,
	}
	if outcome.Error != nil {
		attrs = append(attrs, "error_type", outcome.Error.Type, "error", outcome.Error.Error())
	}
	s.logger.ErrorContext(ctx, "mount point initialization failed", attrs...)
}

package dispatcher

import (
	"log/slog"
	"time"

	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/petricontrols/bootstrap/domain/ports"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMarker sets the marker used to find mount points.
func WithMarker(m entities.Marker) Option {
	return func(d *Dispatcher) {
		d.marker = m
	}
}

// WithSink sets the diagnostic sink for per-mount faults.
func WithSink(s ports.DiagnosticSink) Option {
	return func(d *Dispatcher) {
		d.sink = s
	}
}

// WithLogger sets the logger used for run progress.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

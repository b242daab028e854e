package ports

import (
	"context"

	"github.com/petricontrols/bootstrap/domain/entities"
)

// DiagnosticSink receives a notification for every captured per-mount fault.
// Implementations must not panic; the return path has no effect on the run.
type DiagnosticSink interface {
	Report(ctx context.Context, outcome entities.Outcome)
}

package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/petricontrols/bootstrap/domain/entities"
	domainerrors "github.com/petricontrols/bootstrap/domain/errors"
	"github.com/petricontrols/bootstrap/domain/ports"
	"github.com/petricontrols/bootstrap/log"
)

// Dispatcher performs a single bootstrap run.
type Dispatcher struct {
	loader ports.ModuleLoader
	doc    ports.Document
	sink   ports.DiagnosticSink
	logger *slog.Logger
	now    func() time.Time
	marker entities.Marker

	state   atomic.Int32
	started atomic.Bool
}

// Completion is delivered once by Start when the run reaches a terminal state.
type Completion struct {
	Report *entities.Report
	Err    error
}

// New creates a Dispatcher that loads its module from loader and scans doc.
func New(loader ports.ModuleLoader, doc ports.Document, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		loader: loader,
		doc:    doc,
		marker: entities.DefaultMarker(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.sink == nil {
		d.sink = log.NewSink(d.logger)
	}
	return d
}

// State returns the current run state.
func (d *Dispatcher) State() entities.RunState {
	return entities.RunState(d.state.Load())
}

// Start runs Bootstrap in a new goroutine. The returned channel yields exactly
// one Completion and is then closed.
func (d *Dispatcher) Start(ctx context.Context) <-chan Completion {
	done := make(chan Completion, 1)
	go func() {
		defer close(done)
		report, err := d.Bootstrap(ctx)
		done <- Completion{Report: report, Err: err}
	}()
	return done
}

// Bootstrap loads the shared module, scans the document and initializes every
// mount point in document order.
//
// The returned error is non-nil only when the run could not dispatch at all:
// a *ModuleLoadError when the module failed to load, ErrDocumentUnavailable when
// the document could not be queried, or ErrAlreadyStarted. Per-mount faults are
// returned in the report, never as an error.
func (d *Dispatcher) Bootstrap(ctx context.Context) (*entities.Report, error) {
	if !d.started.CompareAndSwap(false, true) {
		return nil, domainerrors.ErrAlreadyStarted
	}

	report := &entities.Report{StartedAt: d.now()}
	d.transition(report, entities.StateLoadingModule)

	module, err := d.loader.Load(ctx)
	if err == nil && module == nil {
		err = errors.New("loader returned no module")
	}
	if err != nil {
		var loadErr *domainerrors.ModuleLoadError
		if !errors.As(err, &loadErr) {
			err = &domainerrors.ModuleLoadError{Err: err}
		}
		d.finish(report, entities.StateLoadFailed)
		d.logger.ErrorContext(ctx, "dispatcher: module load failed", "error", err)
		return report, err
	}
	d.logger.DebugContext(ctx, "dispatcher: module loaded")

	d.transition(report, entities.StateScanningAndDispatching)

	mounts, err := d.doc.Query(ctx, d.marker)
	if err != nil {
		d.finish(report, entities.StateScanFailed)
		err = fmt.Errorf("%w: %w", domainerrors.ErrDocumentUnavailable, err)
		d.logger.ErrorContext(ctx, "dispatcher: document query failed", "error", err)
		return report, err
	}
	d.logger.DebugContext(ctx, "dispatcher: mount points found",
		"marker", d.marker.Class, "count", len(mounts))

	report.Outcomes = make([]entities.Outcome, 0, len(mounts))
	for i, mount := range mounts {
		mount.Index = i
		outcome := d.initialize(ctx, module, mount)
		report.Outcomes = append(report.Outcomes, outcome)
		if !outcome.IsSuccess() {
			d.notify(ctx, outcome)
		}
	}

	d.finish(report, entities.StateCompleted)
	d.logger.InfoContext(ctx, "dispatcher: bootstrap complete",
		"attempted", report.Attempted(),
		"failed", report.Failed(),
		"duration", report.Duration(),
	)
	return report, nil
}

// initialize runs the entry point for one mount point and captures any fault.
func (d *Dispatcher) initialize(ctx context.Context, module ports.Module, mount entities.MountPoint) entities.Outcome {
	start := d.now()
	err := invoke(ctx, module, mount)
	outcome := entities.Outcome{
		Mount:    mount,
		Status:   entities.OutcomeSuccess,
		Duration: d.now().Sub(start),
	}
	if err != nil {
		outcome.Status = entities.OutcomeFailure
		outcome.Error = domainerrors.ToErrorDetail(&domainerrors.InstanceInitError{
			MountID: mount.ID,
			Index:   mount.Index,
			Err:     err,
		})
		return outcome
	}

	d.logger.DebugContext(ctx, "dispatcher: mount point initialized",
		"mount_id", mount.ID, "index", mount.Index)
	return outcome
}

func invoke(ctx context.Context, module ports.Module, mount entities.MountPoint) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domainerrors.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return module.Init(ctx, mount.ID, mount.Config)
}

// notify hands a fault to the sink. A misbehaving sink cannot stop the run.
func (d *Dispatcher) notify(ctx context.Context, outcome entities.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "dispatcher: diagnostic sink panicked",
				"mount_id", outcome.Mount.ID, "panic", r)
		}
	}()
	d.sink.Report(ctx, outcome)
}

func (d *Dispatcher) transition(report *entities.Report, s entities.RunState) {
	report.State = s
	d.state.Store(int32(s))
}

func (d *Dispatcher) finish(report *entities.Report, s entities.RunState) {
	report.FinishedAt = d.now()
	d.transition(report, s)
}

package testutil

import (
	"context"
	"sync"

	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/petricontrols/bootstrap/domain/ports"
)

// Call is one entry-point invocation observed by RecordingModule.
type Call struct {
	ID     string
	Config string
}

// RecordingModule is a ports.Module that records every Init call.
// InitFunc, when set, decides the result of each call.
type RecordingModule struct {
	InitFunc func(ctx context.Context, id, config string) error

	mu    sync.Mutex
	calls []Call
}

// Init records the call and delegates to InitFunc.
func (m *RecordingModule) Init(ctx context.Context, id, config string) error {
	m.mu.Lock()
	m.calls = append(m.calls, Call{ID: id, Config: config})
	m.mu.Unlock()

	if m.InitFunc != nil {
		return m.InitFunc(ctx, id, config)
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (m *RecordingModule) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// StaticLoader returns a ModuleLoader that resolves to module, or fails with err.
// Loads counts how many times it was called.
type StaticLoader struct {
	Module ports.Module
	Err    error

	mu    sync.Mutex
	loads int
}

// Load implements ports.ModuleLoader.
func (l *StaticLoader) Load(ctx context.Context) (ports.Module, error) {
	l.mu.Lock()
	l.loads++
	l.mu.Unlock()

	if l.Err != nil {
		return nil, l.Err
	}
	return l.Module, nil
}

// Loads returns the number of Load calls.
func (l *StaticLoader) Loads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}

// StaticDocument is a ports.Document over a fixed list of mount points.
// Queries counts how many scans were made.
type StaticDocument struct {
	Mounts []entities.MountPoint
	Err    error

	mu      sync.Mutex
	queries int
}

// Query implements ports.Document. The marker is ignored.
func (d *StaticDocument) Query(ctx context.Context, marker entities.Marker) ([]entities.MountPoint, error) {
	d.mu.Lock()
	d.queries++
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	out := make([]entities.MountPoint, len(d.Mounts))
	copy(out, d.Mounts)
	return out, nil
}

// Queries returns the number of Query calls.
func (d *StaticDocument) Queries() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queries
}

// Mounts builds mount points from alternating id/config pairs.
func Mounts(pairs ...string) []entities.MountPoint {
	mounts := make([]entities.MountPoint, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		mounts = append(mounts, entities.MountPoint{ID: pairs[i], Config: pairs[i+1], Index: i / 2})
	}
	return mounts
}

// CollectingSink is a ports.DiagnosticSink that keeps every reported outcome.
type CollectingSink struct {
	mu       sync.Mutex
	outcomes []entities.Outcome
}

// Report implements ports.DiagnosticSink.
func (s *CollectingSink) Report(ctx context.Context, outcome entities.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, outcome)
}

// Outcomes returns a copy of the reported outcomes.
func (s *CollectingSink) Outcomes() []entities.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Counts(t *testing.T) {
	report := &Report{
		Outcomes: []Outcome{
			{Mount: MountPoint{ID: "a", Index: 0}, Status: OutcomeSuccess},
			{Mount: MountPoint{ID: "b", Index: 1}, Status: OutcomeFailure, Error: NewErrorDetail("guest", "boom")},
			{Mount: MountPoint{ID: "c", Index: 2}, Status: OutcomeSuccess},
		},
	}

	assert.Equal(t, 3, report.Attempted())
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())

	faults := report.Faults()
	require.Len(t, faults, 1)
	assert.Equal(t, "b", faults[0].Mount.ID)
}

func TestReport_Empty(t *testing.T) {
	report := &Report{State: StateCompleted}

	assert.Equal(t, 0, report.Attempted())
	assert.Equal(t, 0, report.Failed())
	assert.Empty(t, report.Faults())
	assert.Zero(t, report.Duration())
}

func TestReport_Duration(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	report := &Report{StartedAt: start, FinishedAt: start.Add(250 * time.Millisecond)}

	assert.Equal(t, 250*time.Millisecond, report.Duration())
}

func TestRunState_String(t *testing.T) {
	tests := []struct {
		state    RunState
		want     string
		terminal bool
	}{
		{StateNotStarted, "not_started", false},
		{StateLoadingModule, "loading_module", false},
		{StateLoadFailed, "load_failed", true},
		{StateScanningAndDispatching, "scanning_and_dispatching", false},
		{StateScanFailed, "scan_failed", true},
		{StateCompleted, "completed", true},
		{RunState(42), "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
		})
	}
}

func TestReport_JSONState(t *testing.T) {
	data, err := json.Marshal(&Report{State: StateCompleted})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"completed"`)
}

func TestErrorDetail_Error(t *testing.T) {
	detail := NewErrorDetail("guest", "settings rejected").WithCode("E_SETTINGS")
	assert.Equal(t, "guest: settings rejected [E_SETTINGS]", detail.Error())

	internal := NewErrorDetail("internal", "oops")
	assert.Equal(t, "oops", internal.Error())

	chained := &ErrorDetail{Type: "init", Message: "run_app failed", Wrapped: NewErrorDetail("trap", "unreachable")}
	assert.Equal(t, "init: run_app failed: trap: unreachable", chained.Error())

	var nilDetail *ErrorDetail
	assert.Equal(t, "", nilDetail.Error())
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithModulePath("pkg/petri_bg.wasm"),
		WithMarkerClass("controls"),
		WithLoadTimeout(5*time.Second),
		WithLogLevel("debug"),
	)

	assert.Equal(t, "pkg/petri_bg.wasm", cfg.Module.Path)
	assert.Equal(t, "controls", cfg.Marker.Class)
	assert.Equal(t, DefaultDataKey, cfg.Marker.DataKey)
	assert.Equal(t, DefaultEntryPoint, cfg.Module.EntryPoint)
	assert.Equal(t, 5*time.Second, cfg.Module.LoadTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Zero values leave defaults untouched.
	cfg = NewConfig(WithLoadTimeout(0), WithMarkerClass(""))
	assert.Equal(t, DefaultLoadTimeout, cfg.Module.LoadTimeout)
	assert.Equal(t, DefaultMarkerClass, cfg.Marker.Class)
}

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleLoadError(t *testing.T) {
	baseErr := fmt.Errorf("no such file")
	err := &ModuleLoadError{Source: "pkg/app.wasm", Err: baseErr}

	assert.Equal(t, "module load failed for pkg/app.wasm: no such file", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	var loadErr *ModuleLoadError
	wrapped := fmt.Errorf("bootstrap: %w", err)
	require.True(t, errors.As(wrapped, &loadErr))
	assert.Equal(t, "pkg/app.wasm", loadErr.Source)
}

func TestModuleLoadError_NoSource(t *testing.T) {
	err := &ModuleLoadError{Err: fmt.Errorf("rejected")}
	assert.Equal(t, "module load failed: rejected", err.Error())
}

func TestInstanceInitError(t *testing.T) {
	baseErr := fmt.Errorf("bad settings")
	err := &InstanceInitError{MountID: "b", Index: 1, Err: baseErr}

	assert.Equal(t, `init of mount "b" (#1) failed: bad settings`, err.Error())
	assert.True(t, errors.Is(err, baseErr))

	detail := err.ToErrorDetail()
	assert.Equal(t, "init", detail.Type)
	assert.Equal(t, "b", detail.Code)
	assert.Equal(t, 1, detail.Details["index"])
	require.NotNil(t, detail.Wrapped)
	assert.Equal(t, "internal", detail.Wrapped.Type)
	assert.Equal(t, "bad settings", detail.Wrapped.Message)
}

func TestInstanceInitError_KeepsCauseCategory(t *testing.T) {
	err := &InstanceInitError{MountID: "x", Err: &PanicError{Value: "index out of range"}}

	detail := ToErrorDetail(err)
	require.NotNil(t, detail.Wrapped)
	assert.Equal(t, "panic", detail.Wrapped.Type)
	assert.Equal(t, "panic: index out of range", detail.Wrapped.Message)
}

func TestPanicError(t *testing.T) {
	err := &PanicError{Value: "boom", Stack: []byte("goroutine 1")}
	assert.Equal(t, "panic: boom", err.Error())
	assert.Nil(t, err.Unwrap())

	detail := err.ToErrorDetail()
	assert.Equal(t, "panic", detail.Type)
	assert.Equal(t, "goroutine 1", detail.Stack)

	encoded, jsonErr := json.Marshal(detail)
	require.NoError(t, jsonErr)
	assert.Contains(t, string(encoded), `"stack":"goroutine 1"`)

	cause := errors.New("nil map write")
	errPanic := &PanicError{Value: cause}
	assert.True(t, errors.Is(errPanic, cause))
}

func TestGuestError(t *testing.T) {
	err := &GuestError{Detail: entities.NewErrorDetail("guest", "mount node not found").WithCode("E_MOUNT")}
	assert.Equal(t, "guest: mount node not found [E_MOUNT]", err.Error())
	assert.Equal(t, "E_MOUNT", ToErrorDetail(err).Code)

	empty := &GuestError{}
	assert.Equal(t, "guest reported an error", empty.Error())
	assert.Equal(t, "guest", empty.ToErrorDetail().Type)
}

func TestTrapError(t *testing.T) {
	baseErr := errors.New("wasm error: unreachable")
	err := &TrapError{Function: "run_app", Err: baseErr}

	assert.Equal(t, "wasm trap in run_app: wasm error: unreachable", err.Error())
	assert.True(t, errors.Is(err, baseErr))
	assert.Equal(t, "trap", err.ToErrorDetail().Type)
}

func TestConfigError(t *testing.T) {
	baseErr := fmt.Errorf("required")
	err := &ConfigError{Field: "module.path", Err: baseErr}

	assert.Equal(t, "config validation failed for field 'module.path': required", err.Error())
	assert.True(t, errors.Is(err, baseErr))
	assert.Equal(t, "config", err.ToErrorDetail().Type)

	noField := &ConfigError{Err: baseErr}
	assert.Equal(t, "config validation failed: required", noField.Error())
}

func TestWireFormatError(t *testing.T) {
	baseErr := fmt.Errorf("unexpected end of JSON input")
	err := &WireFormatError{Operation: "decode", Type: "InitResultWire", Err: baseErr}

	assert.Equal(t, "wire format decode failed for InitResultWire: unexpected end of JSON input", err.Error())
	assert.Equal(t, "wire_format", err.ToErrorDetail().Code)
}

func TestToErrorDetail(t *testing.T) {
	assert.Nil(t, ToErrorDetail(nil))

	plain := ToErrorDetail(errors.New("plain"))
	assert.Equal(t, "internal", plain.Type)
	assert.Equal(t, "plain", plain.Message)

	entity := entities.NewErrorDetail("guest", "direct")
	converted := ToErrorDetail(fmt.Errorf("wrapped: %w", entity))
	assert.Equal(t, entity, converted)
	assert.NotSame(t, entity, converted)

	initDetail := ToErrorDetail(fmt.Errorf("wrapped: %w", &InstanceInitError{MountID: "b", Index: 1, Err: entity}))
	assert.Equal(t, "init", initDetail.Type)
	assert.Equal(t, "b", initDetail.Code)
	assert.Equal(t, 1, initDetail.Details["index"])
	require.NotNil(t, initDetail.Wrapped)
	assert.Equal(t, "direct", initDetail.Wrapped.Message)
	assert.NotSame(t, entity, initDetail.Wrapped)

	load := ToErrorDetail(fmt.Errorf("wrapped: %w", &ModuleLoadError{Err: errors.New("x")}))
	assert.Equal(t, "load", load.Type)
}

func TestSentinels(t *testing.T) {
	err := fmt.Errorf("%w: query failed", ErrDocumentUnavailable)
	assert.True(t, errors.Is(err, ErrDocumentUnavailable))
	assert.False(t, errors.Is(err, ErrAlreadyStarted))
}

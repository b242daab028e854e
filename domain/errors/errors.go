// Package errors provides the dispatcher's domain error types.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/petricontrols/bootstrap/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

var (
	// ErrAlreadyStarted is returned when a dispatcher run is started twice.
	ErrAlreadyStarted = stdErrors.New("dispatcher already started")

	// ErrDocumentUnavailable wraps a failure of the document query surface.
	ErrDocumentUnavailable = stdErrors.New("document unavailable")

	// ErrEntryPointMissing is returned when the module does not export its entry point.
	ErrEntryPointMissing = stdErrors.New("entry point not exported")
)

// DetailedError is implemented by error types that can describe themselves
// as a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
// The outermost DetailedError in the chain describes the error; a bare
// ErrorDetail in the chain is copied.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		detail := *e
		return &detail
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// ModuleLoadError reports that the shared module could not be resolved.
// It is fatal to the whole run.
type ModuleLoadError struct {
	Err    error
	Source string
}

func (e *ModuleLoadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("module load failed for %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("module load failed: %v", e.Err)
}

func (e *ModuleLoadError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ModuleLoadError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "load", Code: e.Source}
}

// InstanceInitError reports that one mount point's entry-point call faulted.
// It is always recovered locally.
type InstanceInitError struct {
	Err     error
	MountID string
	Index   int
}

func (e *InstanceInitError) Error() string {
	return fmt.Sprintf("init of mount %q (#%d) failed: %v", e.MountID, e.Index, e.Err)
}

func (e *InstanceInitError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError. The cause keeps its own category
// and is attached as the wrapped detail.
func (e *InstanceInitError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: fmt.Sprintf("init of mount %q failed", e.MountID),
		Type:    "init",
		Code:    e.MountID,
		Details: map[string]any{"index": e.Index},
		Wrapped: ToErrorDetail(e.Err),
	}
}

// PanicError represents a panic raised by an entry-point call.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ToErrorDetail implements DetailedError.
func (e *PanicError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "panic", Stack: string(e.Stack)}
}

// GuestError is an error reported by the module itself through its entry-point result.
type GuestError struct {
	Detail *entities.ErrorDetail
}

func (e *GuestError) Error() string {
	if e.Detail == nil {
		return "guest reported an error"
	}
	return e.Detail.Error()
}

// ToErrorDetail implements DetailedError.
func (e *GuestError) ToErrorDetail() *entities.ErrorDetail {
	if e.Detail == nil {
		return &entities.ErrorDetail{Message: e.Error(), Type: "guest"}
	}
	detail := *e.Detail
	return &detail
}

// TrapError represents a WebAssembly trap raised while running guest code.
type TrapError struct {
	Err      error
	Function string
}

func (e *TrapError) Error() string {
	return fmt.Sprintf("wasm trap in %s: %v", e.Function, e.Err)
}

func (e *TrapError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *TrapError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "trap", Code: e.Function}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// WireFormatError represents a wire format encoding/decoding error.
type WireFormatError struct {
	Err       error
	Operation string
	Type      string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("wire format %s failed for %s: %v", e.Operation, e.Type, e.Err)
}

func (e *WireFormatError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WireFormatError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "wire_format"}
}

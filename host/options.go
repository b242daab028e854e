package host

import (
	"log/slog"

	"github.com/petricontrols/bootstrap/hostfuncs"
	wazeroadapter "github.com/petricontrols/bootstrap/infrastructure/wazero"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithHostFunctions configures the executor with a host function registry.
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithEntryPoint sets the guest export called once per mount point (default "run_app").
func WithEntryPoint(name string) Option {
	return func(e *Executor) {
		e.entryPoint = name
	}
}

// WithHostModuleName sets the module name guests import host functions from
// (default "petri_host").
func WithHostModuleName(name string) Option {
	return func(e *Executor) {
		e.hostModule = name
	}
}

// WithLogger sets the logger guest log messages are forwarded to.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithCustomHandler exports an additional raw host function on the host module.
func WithCustomHandler(h wazeroadapter.CustomHandler) Option {
	return func(e *Executor) {
		e.custom = append(e.custom, h)
	}
}

package ports

import (
	"context"
)

// Module is the loaded shared application module.
type Module interface {
	// Init runs the module entry point for one mount point.
	// config is passed through verbatim.
	Init(ctx context.Context, id, config string) error
}

// ModuleLoader resolves the shared module. Load is the only blocking step
// before dispatch begins.
type ModuleLoader interface {
	Load(ctx context.Context) (Module, error)
}

// ModuleLoaderFunc adapts a function to the ModuleLoader interface.
type ModuleLoaderFunc func(ctx context.Context) (Module, error)

// Load calls f.
func (f ModuleLoaderFunc) Load(ctx context.Context) (Module, error) {
	return f(ctx)
}

// ModuleFunc adapts a function to the Module interface.
type ModuleFunc func(ctx context.Context, id, config string) error

// Init calls f.
func (f ModuleFunc) Init(ctx context.Context, id, config string) error {
	return f(ctx, id, config)
}

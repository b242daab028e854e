package host

import (
	"context"
	"fmt"
	"os"

	domainerrors "github.com/petricontrols/bootstrap/domain/errors"
	"github.com/petricontrols/bootstrap/domain/ports"
)

// FileLoader loads the shared application module from a .wasm file.
// It implements ports.ModuleLoader.
type FileLoader struct {
	Executor *Executor
	Path     string
}

// Load reads and instantiates the module. Every failure is a *errors.ModuleLoadError.
func (l *FileLoader) Load(ctx context.Context) (ports.Module, error) {
	wasmBytes, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, &domainerrors.ModuleLoadError{Source: l.Path, Err: fmt.Errorf("failed to read module: %w", err)}
	}
	return loadBytes(ctx, l.Executor, l.Path, wasmBytes)
}

// BytesLoader loads the shared application module from memory.
type BytesLoader struct {
	Executor *Executor
	Source   string
	Wasm     []byte
}

// Load instantiates the module. Every failure is a *errors.ModuleLoadError.
func (l *BytesLoader) Load(ctx context.Context) (ports.Module, error) {
	return loadBytes(ctx, l.Executor, l.Source, l.Wasm)
}

func loadBytes(ctx context.Context, e *Executor, source string, wasmBytes []byte) (ports.Module, error) {
	if e == nil {
		return nil, &domainerrors.ModuleLoadError{Source: source, Err: fmt.Errorf("no executor configured")}
	}
	inst, err := e.LoadModule(ctx, wasmBytes)
	if err != nil {
		return nil, &domainerrors.ModuleLoadError{Source: source, Err: err}
	}
	return inst, nil
}

package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/petricontrols/bootstrap/domain/entities"
	domainerrors "github.com/petricontrols/bootstrap/domain/errors"
	"github.com/petricontrols/bootstrap/hostfuncs"
	wazeroadapter "github.com/petricontrols/bootstrap/infrastructure/wazero"
	"github.com/petricontrols/bootstrap/wireformat"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Executor owns a wazero runtime with WASI and the petri host module.
type Executor struct {
	runtime    wazero.Runtime
	registry   *hostfuncs.HandlerRegistry
	logger     *slog.Logger
	entryPoint string
	hostModule string
	custom     []wazeroadapter.CustomHandler
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		entryPoint: entities.DefaultEntryPoint,
		hostModule: entities.DefaultHostModule,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	if e.registry == nil {
		reg, err := hostfuncs.NewRegistry()
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		e.registry = reg
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.registerHostFunctions(ctx); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Close releases the runtime and every module loaded through it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Instance is an instantiated shared application module. It implements ports.Module.
type Instance struct {
	module     api.Module
	entry      api.Function
	entryPoint string

	// guest code is single-threaded; entry-point calls never interleave
	mu sync.Mutex
}

// LoadModule compiles and instantiates wasmBytes. The module must export
// "allocate" and the configured entry point.
func (e *Executor) LoadModule(ctx context.Context, wasmBytes []byte) (*Instance, error) {
	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	if mod.ExportedFunction(wazeroadapter.AllocateExport) == nil {
		_ = mod.Close(ctx)
		return nil, fmt.Errorf("guest does not export %q", wazeroadapter.AllocateExport)
	}
	entry := mod.ExportedFunction(e.entryPoint)
	if entry == nil {
		_ = mod.Close(ctx)
		return nil, fmt.Errorf("%w: %q", domainerrors.ErrEntryPointMissing, e.entryPoint)
	}

	return &Instance{module: mod, entry: entry, entryPoint: e.entryPoint}, nil
}

// Init calls the entry point for one mount point.
//
// A trap is returned as *errors.TrapError. A non-zero result is read as a
// wireformat.InitResultWire and returned as *errors.GuestError.
func (i *Instance) Init(ctx context.Context, id, config string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	ctx = hostfuncs.WithMountID(ctx, id)

	idPacked, err := wazeroadapter.WriteGuest(ctx, i.module, []byte(id))
	if err != nil {
		return fmt.Errorf("failed to pass mount id to guest: %w", err)
	}
	cfgPacked, err := wazeroadapter.WriteGuest(ctx, i.module, []byte(config))
	if err != nil {
		return fmt.Errorf("failed to pass mount config to guest: %w", err)
	}

	results, err := i.entry.Call(ctx, idPacked, cfgPacked)
	if err != nil {
		return &domainerrors.TrapError{Function: i.entryPoint, Err: err}
	}
	if len(results) == 0 || results[0] == 0 {
		return nil
	}
	return i.decodeFailure(results[0])
}

func (i *Instance) decodeFailure(packed uint64) error {
	data, err := wazeroadapter.ReadGuest(i.module, packed)
	if err != nil {
		return &domainerrors.WireFormatError{Operation: "read", Type: "InitResultWire", Err: err}
	}

	var res wireformat.InitResultWire
	if err := json.Unmarshal(data, &res); err != nil {
		return &domainerrors.WireFormatError{Operation: "decode", Type: "InitResultWire", Err: err}
	}
	if res.Error == nil {
		return &domainerrors.GuestError{
			Detail: entities.NewErrorDetail("guest", "entry point reported failure without detail"),
		}
	}
	return &domainerrors.GuestError{Detail: res.Error}
}

// Close releases the guest module.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}

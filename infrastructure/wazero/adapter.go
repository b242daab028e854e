package wazero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petricontrols/bootstrap/hostfuncs"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// DefaultModuleName is the import module name guests use for host functions.
const DefaultModuleName = "petri_host"

// AllocateExport is the guest export used to reserve memory for host-written data.
const AllocateExport = "allocate"

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	Logger *slog.Logger

	// ModuleName is the host module name (default: "petri_host").
	ModuleName string

	// CustomHandlers are exported as-is, outside the packed request/response pattern.
	CustomHandlers []CustomHandler

	// MaxRequestSize limits the size of requests read from guest memory.
	MaxRequestSize uint32
}

// CustomHandler is a raw wazero host function.
type CustomHandler struct {
	Handler     api.GoModuleFunc
	Name        string
	ParamTypes  []api.ValueType
	ResultTypes []api.ValueType
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name.
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithMaxRequestSize sets the maximum request size read from guest memory.
func WithMaxRequestSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		c.MaxRequestSize = size
	}
}

// WithCustomHandler adds a raw wazero handler.
func WithCustomHandler(h CustomHandler) AdapterOption {
	return func(c *AdapterConfig) {
		c.CustomHandlers = append(c.CustomHandlers, h)
	}
}

// WithLogger sets the logger used for ABI failures.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(c *AdapterConfig) {
		c.Logger = logger
	}
}

func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		ModuleName:     DefaultModuleName,
		MaxRequestSize: hostfuncs.DefaultMaxRequestSize,
	}
}

// RegisterWithRuntime instantiates a host module exporting every handler of registry.
//
// Each export takes one packed i64 request and returns one packed i64 response.
// Failures to read the request or to invoke the handler are answered with a JSON
// hostfuncs.ErrorResponse rather than a trap. A zero result means the response
// could not be written into guest memory.
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, registry *hostfuncs.HandlerRegistry, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)

	if registry != nil {
		for _, name := range registry.Names() {
			funcName := name
			builder.NewFunctionBuilder().
				WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
					stack[0] = handleRegistryCall(ctx, mod, stack[0], registry, funcName, &cfg)
				}), []api.ValueType{api.ValueTypeI64}, []api.ValueType{api.ValueTypeI64}).
				Export(funcName)
		}
	}

	for _, ch := range cfg.CustomHandlers {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(ch.Handler, ch.ParamTypes, ch.ResultTypes).
			Export(ch.Name)
	}

	if _, err := builder.Instantiate(ctx); err != nil {
		return fmt.Errorf("failed to instantiate host module %q: %w", cfg.ModuleName, err)
	}
	return nil
}

func handleRegistryCall(ctx context.Context, mod api.Module, packed uint64, registry *hostfuncs.HandlerRegistry, name string, cfg *AdapterConfig) uint64 {
	logger := cfg.Logger.With("function", name, "caller", CallerName(ctx, mod))

	_, length := UnpackPtrLen(packed)
	if length > cfg.MaxRequestSize {
		msg := fmt.Sprintf("request size %d exceeds maximum %d bytes", length, cfg.MaxRequestSize)
		logger.ErrorContext(ctx, "wazero: "+msg)
		return writeErrorResponse(ctx, logger, mod, hostfuncs.NewValidationError(msg))
	}

	request, err := ReadGuest(mod, packed)
	if err != nil {
		logger.ErrorContext(ctx, "wazero: failed to read request", "error", err)
		return writeErrorResponse(ctx, logger, mod, hostfuncs.NewInternalError(err.Error()))
	}

	response, err := registry.Invoke(ctx, name, request)
	if err != nil {
		logger.ErrorContext(ctx, "wazero: handler invocation failed", "error", err)
		return writeErrorResponse(ctx, logger, mod, hostfuncs.NewInternalError(err.Error()))
	}

	out, err := WriteGuest(ctx, mod, response)
	if err != nil {
		logger.ErrorContext(ctx, "wazero: failed to write response", "error", err)
		return 0
	}
	return out
}

func writeErrorResponse(ctx context.Context, logger *slog.Logger, mod api.Module, errResp hostfuncs.ErrorResponse) uint64 {
	out, err := WriteGuest(ctx, mod, errResp.ToJSON())
	if err != nil {
		logger.ErrorContext(ctx, "wazero: failed to write error response", "error", err)
		return 0
	}
	return out
}

// ReadGuest copies the bytes referenced by a packed pointer out of guest memory.
// A zero length yields an empty slice.
func ReadGuest(mod api.Module, packed uint64) ([]byte, error) {
	ptr, length := UnpackPtrLen(packed)
	if length == 0 {
		return []byte{}, nil
	}
	data, ok := mod.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("guest memory range [%d, %d) out of bounds", ptr, uint64(ptr)+uint64(length))
	}
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}

// WriteGuest allocates guest memory with the allocate export, copies data into it
// and returns the packed pointer.
func WriteGuest(ctx context.Context, mod api.Module, data []byte) (uint64, error) {
	allocateFn := mod.ExportedFunction(AllocateExport)
	if allocateFn == nil {
		return 0, fmt.Errorf("guest module missing %q export", AllocateExport)
	}

	results, err := allocateFn.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("guest allocate failed: %w", err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("guest allocate returned no results")
	}
	ptr := uint32(results[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit

	if !mod.Memory().Write(ptr, data) {
		return 0, fmt.Errorf("guest memory write of %d bytes at %d out of bounds", len(data), ptr)
	}
	return PackPtrLen(ptr, uint32(len(data))), nil //nolint:gosec // G115: bounded by guest memory size
}

// PackPtrLen packs a pointer and length into a single i64.
func PackPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << 32) | uint64(length)
}

// UnpackPtrLen splits a packed i64 into pointer and length.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)           //nolint:gosec // G115: Packed format stores 32-bit values
	length = uint32(packed & 0xFFFFFFFF) //nolint:gosec // G115: Packed format stores 32-bit values
	return ptr, length
}

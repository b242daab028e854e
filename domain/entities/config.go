package entities

import (
	"time"
)

// Default module settings.
const (
	DefaultEntryPoint  = "run_app"
	DefaultHostModule  = "petri_host"
	DefaultLoadTimeout = 30 * time.Second
)

// Config is the dispatcher configuration.
// Fields are populated from defaults, then a YAML file, then PETRI_* environment variables.
type Config struct {
	Marker Marker       `json:"marker" yaml:"marker" envPrefix:"MARKER_"`
	Module ModuleConfig `json:"module" yaml:"module" envPrefix:"MODULE_"`
	Log    LogConfig    `json:"log" yaml:"log" envPrefix:"LOG_"`
}

// ModuleConfig describes the shared application module.
type ModuleConfig struct {
	// Path is the location of the WebAssembly binary.
	Path string `json:"path" yaml:"path" env:"PATH" validate:"required" jsonschema:"minLength=1"`

	// EntryPoint is the exported function called once per mount point.
	EntryPoint string `json:"entry_point" yaml:"entry_point" env:"ENTRY_POINT" validate:"required"`

	// HostModule is the import namespace under which host functions are exported.
	HostModule string `json:"host_module" yaml:"host_module" env:"HOST_MODULE" validate:"required"`

	// LoadTimeout bounds reading, compiling and instantiating the module.
	LoadTimeout time.Duration `json:"load_timeout" yaml:"load_timeout" env:"LOAD_TIMEOUT" validate:"gt=0" jsonschema:"type=string,example=30s"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	// Level is the logging verbosity level.
	Level string `json:"level" yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`

	// Format selects the slog handler.
	Format string `json:"format" yaml:"format" env:"FORMAT" validate:"oneof=text json" jsonschema:"enum=text,enum=json"`
}

// DefaultConfig returns the default configuration. Module.Path has no default.
func DefaultConfig() Config {
	return Config{
		Marker: DefaultMarker(),
		Module: ModuleConfig{
			EntryPoint:  DefaultEntryPoint,
			HostModule:  DefaultHostModule,
			LoadTimeout: DefaultLoadTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ConfigOption is a functional option for configuring the dispatcher.
type ConfigOption func(*Config)

// WithModulePath sets the module location.
func WithModulePath(path string) ConfigOption {
	return func(c *Config) {
		if path != "" {
			c.Module.Path = path
		}
	}
}

// WithMarkerClass overrides the marker class.
func WithMarkerClass(class string) ConfigOption {
	return func(c *Config) {
		if class != "" {
			c.Marker.Class = class
		}
	}
}

// WithLoadTimeout sets the module load timeout.
func WithLoadTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		if d > 0 {
			c.Module.LoadTimeout = d
		}
	}
}

// WithLogLevel sets the logging verbosity level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		if level != "" {
			c.Log.Level = level
		}
	}
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

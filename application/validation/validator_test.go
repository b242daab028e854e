package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petricontrols/bootstrap/domain/entities"
	domainerrors "github.com/petricontrols/bootstrap/domain/errors"
)

func TestValidateConfig(t *testing.T) {
	valid := entities.NewConfig(entities.WithModulePath("app.wasm"))

	tests := []struct {
		name      string
		mutate    func(*entities.Config)
		wantField string
		wantMsg   string
	}{
		{name: "valid"},
		{
			name:      "missing module path",
			mutate:    func(c *entities.Config) { c.Module.Path = "" },
			wantField: "module.path",
			wantMsg:   "module.path is required",
		},
		{
			name:      "empty marker class",
			mutate:    func(c *entities.Config) { c.Marker.Class = "" },
			wantField: "marker.class",
		},
		{
			name:      "bad log level",
			mutate:    func(c *entities.Config) { c.Log.Level = "loud" },
			wantField: "log.level",
			wantMsg:   `must be one of [debug info warn error], got "loud"`,
		},
		{
			name:      "zero timeout",
			mutate:    func(c *entities.Config) { c.Module.LoadTimeout = 0 },
			wantField: "module.load_timeout",
			wantMsg:   "greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			err := ValidateConfig(&cfg)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var cfgErr *domainerrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateConfig_ReportsAllFailures(t *testing.T) {
	cfg := entities.DefaultConfig()
	cfg.Log.Format = "xml"

	err := ValidateConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module.path is required")
	assert.Contains(t, err.Error(), "log.format")
}

func TestValidateConfig_Nil(t *testing.T) {
	var cfgErr *domainerrors.ConfigError
	assert.True(t, errors.As(ValidateConfig(nil), &cfgErr))
}

func TestSchemaValidator_ValidateYAML(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, v.ValidateYAML([]byte("module:\n  path: app.wasm\n  load_timeout: 10s\nlog:\n  format: json\n")))
	})

	t.Run("empty document", func(t *testing.T) {
		assert.NoError(t, v.ValidateYAML(nil))
	})

	t.Run("unknown key", func(t *testing.T) {
		err := v.ValidateYAML([]byte("marker:\n  klass: x\n"))
		var cfgErr *domainerrors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "marker", cfgErr.Field)
	})

	t.Run("wrong type", func(t *testing.T) {
		err := v.ValidateYAML([]byte("module:\n  entry_point: 42\n"))
		var cfgErr *domainerrors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "module.entry_point", cfgErr.Field)
	})

	t.Run("enum violation", func(t *testing.T) {
		err := v.ValidateYAML([]byte("log:\n  level: verbose\n"))
		var cfgErr *domainerrors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "log.level", cfgErr.Field)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		err := v.ValidateYAML([]byte("module: [\n"))
		var cfgErr *domainerrors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
	})
}

func TestValidateMarker(t *testing.T) {
	require.NoError(t, ValidateMarker(entities.DefaultMarker()))

	err := ValidateMarker(entities.Marker{Class: "x"})
	var cfgErr *domainerrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "marker.data_key", cfgErr.Field)
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petricontrols/bootstrap/domain/entities"
	domainerrors "github.com/petricontrols/bootstrap/domain/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "petri.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, `
marker:
  class: from-file
module:
  path: file.wasm
  load_timeout: 5s
log:
  level: warn
`)

	cfg, err := Load(path,
		WithEnvironment(map[string]string{
			"PETRI_MODULE_PATH": "env.wasm",
			"PETRI_LOG_LEVEL":   "debug",
			"PETRI_LOG_FORMAT":  "json",
			"MODULE_PATH":       "ignored-without-prefix.wasm",
		}),
		WithOverrides(entities.WithLogLevel("error")),
	)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Marker.Class)
	assert.Equal(t, "env.wasm", cfg.Module.Path, "env beats file")
	assert.Equal(t, 5*time.Second, cfg.Module.LoadTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "error", cfg.Log.Level, "overrides beat env")
	assert.Equal(t, entities.DefaultEntryPoint, cfg.Module.EntryPoint)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("",
		WithEnvironment(map[string]string{"PETRI_MODULE_LOAD_TIMEOUT": "2m"}),
		WithOverrides(entities.WithModulePath("app.wasm")),
	)
	require.NoError(t, err)
	assert.Equal(t, "app.wasm", cfg.Module.Path)
	assert.Equal(t, 2*time.Minute, cfg.Module.LoadTimeout)
	assert.Equal(t, entities.DefaultMarker(), cfg.Marker)
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, err := Load("", WithEnvironment(map[string]string{}))

	var cfgErr *domainerrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "module.path", cfgErr.Field)
}

func TestLoad_SchemaFailure(t *testing.T) {
	path := writeFile(t, "module:\n  path: a.wasm\n  entrypoint: main\n")

	_, err := Load(path, WithEnvironment(map[string]string{}))

	var cfgErr *domainerrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "module", cfgErr.Field)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_BadEnvironment(t *testing.T) {
	_, err := Load("", WithEnvironment(map[string]string{
		"PETRI_MODULE_PATH":         "a.wasm",
		"PETRI_MODULE_LOAD_TIMEOUT": "whenever",
	}))

	var cfgErr *domainerrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type stubParser struct {
	cfg *entities.Config
	err error
}

func (p stubParser) Parse([]byte) (*entities.Config, error) {
	return p.cfg, p.err
}

func TestLoad_CustomParser(t *testing.T) {
	path := writeFile(t, "class = 'toml-ish'")
	custom := entities.NewConfig(entities.WithModulePath("custom.wasm"), entities.WithMarkerClass("custom"))

	cfg, err := Load(path,
		WithParser(stubParser{cfg: &custom}),
		WithoutSchemaCheck(),
		WithEnvironment(map[string]string{}),
	)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Marker.Class)

	_, err = Load(path,
		WithParser(stubParser{err: errors.New("bad syntax")}),
		WithoutSchemaCheck(),
		WithEnvironment(map[string]string{}),
	)
	var cfgErr *domainerrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

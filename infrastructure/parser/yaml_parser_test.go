package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petricontrols/bootstrap/domain/entities"
)

func TestYamlConfigParser_Parse(t *testing.T) {
	data := []byte(`
marker:
  class: widget
module:
  path: ./app.wasm
  load_timeout: 5s
log:
  level: debug
`)

	cfg, err := NewYamlConfigParser().Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "widget", cfg.Marker.Class)
	assert.Equal(t, entities.DefaultDataKey, cfg.Marker.DataKey, "absent keys keep defaults")
	assert.Equal(t, "./app.wasm", cfg.Module.Path)
	assert.Equal(t, 5*time.Second, cfg.Module.LoadTimeout)
	assert.Equal(t, entities.DefaultEntryPoint, cfg.Module.EntryPoint)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestYamlConfigParser_Empty(t *testing.T) {
	cfg, err := NewYamlConfigParser().Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultConfig(), *cfg)
}

func TestYamlConfigParser_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "modul:\n  path: x\n",
		"wrong type":   "marker: [1, 2]\n",
		"bad duration": "module:\n  load_timeout: soon\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewYamlConfigParser().Parse([]byte(data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to parse config")
		})
	}
}

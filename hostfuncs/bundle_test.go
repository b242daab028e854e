package hostfuncs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petricontrols/bootstrap/wireformat"
)

func fixedLookup(elements map[string]wireformat.ElementWire) ElementLookup {
	return func(id string) (wireformat.ElementWire, bool) {
		el, ok := elements[id]
		return el, ok
	}
}

func TestPerformMountLookup(t *testing.T) {
	lookup := fixedLookup(map[string]wireformat.ElementWire{
		"net-1": {Tag: "div", Text: "loading", Dataset: map[string]string{"petricontrols": "{}"}},
	})

	t.Run("explicit id", func(t *testing.T) {
		resp := PerformMountLookup(context.Background(), lookup, wireformat.MountLookupRequestWire{ID: "net-1"})
		require.True(t, resp.Found)
		require.NotNil(t, resp.Element)
		assert.Equal(t, "div", resp.Element.Tag)
		assert.Nil(t, resp.Error)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp := PerformMountLookup(context.Background(), lookup, wireformat.MountLookupRequestWire{ID: "nope"})
		assert.False(t, resp.Found)
		assert.Nil(t, resp.Element)
		assert.Nil(t, resp.Error)
	})

	t.Run("empty id uses current mount point", func(t *testing.T) {
		ctx := WithMountID(context.Background(), "net-1")
		resp := PerformMountLookup(ctx, lookup, wireformat.MountLookupRequestWire{})
		require.True(t, resp.Found)
		assert.Equal(t, "loading", resp.Element.Text)
	})

	t.Run("empty id outside an initialization", func(t *testing.T) {
		resp := PerformMountLookup(context.Background(), lookup, wireformat.MountLookupRequestWire{})
		assert.False(t, resp.Found)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "validation", resp.Error.Type)
	})
}

func TestDocumentBundle_ThroughRegistry(t *testing.T) {
	lookup := fixedLookup(map[string]wireformat.ElementWire{"a": {Tag: "section"}})

	reg, err := NewRegistry(WithBundle(DocumentBundle(lookup)))
	require.NoError(t, err)
	assert.Equal(t, []string{MountLookupFunction}, reg.Names())

	raw, err := reg.Invoke(context.Background(), MountLookupFunction, []byte(`{"id":"a"}`))
	require.NoError(t, err)

	var resp wireformat.MountLookupResponseWire
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, "section", resp.Element.Tag)
}

func TestWithBundle_ConflictsWithHandler(t *testing.T) {
	_, err := NewRegistry(
		WithByteHandler(MountLookupFunction, echo),
		WithBundle(DocumentBundle(fixedLookup(nil))),
	)
	require.Error(t, err)
}

package entities

// Default marker values used by pages that embed the petri controls.
const (
	DefaultMarkerClass = "petricontrols"
	DefaultDataKey     = "petricontrols"
)

// Marker identifies mount points in a host document.
type Marker struct {
	// Class is the class token an element must carry to be a mount point.
	Class string `json:"class" yaml:"class" env:"CLASS" validate:"required"`

	// DataKey is the dataset key (camelCase, as in element.dataset) holding the
	// opaque configuration string.
	DataKey string `json:"data_key" yaml:"data_key" env:"DATA_KEY" validate:"required"`
}

// DefaultMarker returns the marker used when none is configured.
func DefaultMarker() Marker {
	return Marker{
		Class:   DefaultMarkerClass,
		DataKey: DefaultDataKey,
	}
}

// MountPoint is a read-only snapshot of one marked element.
type MountPoint struct {
	// ID is the element identifier. It is empty when the element has no id attribute.
	ID string `json:"id"`

	// Config is the vendor payload attached to the element. It is handed to the
	// module verbatim and never interpreted here.
	Config string `json:"config"`

	// Index is the zero-based position of the element in document order.
	Index int `json:"index"`
}

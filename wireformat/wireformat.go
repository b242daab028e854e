// Package wireformat defines the JSON wire format structures exchanged between the
// host and the shared application module. These types form the ABI contract and
// must remain backward compatible.
package wireformat

import (
	"github.com/petricontrols/bootstrap/domain/entities"
)

// ErrorDetail is the structured error carried on the wire.
type ErrorDetail = entities.ErrorDetail

// InitResultWire is what the entry point may return (through a packed pointer)
// to report that initialization of its mount point failed.
type InitResultWire struct {
	Error *ErrorDetail `json:"error,omitempty"`
}

// MountLookupRequestWire asks the host for a read-only view of an element.
// An empty ID means the mount point currently being initialized.
type MountLookupRequestWire struct {
	ID string `json:"id,omitempty"`
}

// MountLookupResponseWire is the host's answer to MountLookupRequestWire.
type MountLookupResponseWire struct {
	Element *ElementWire `json:"element,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Found   bool         `json:"found"`
}

// ElementWire is a read-only snapshot of a document element.
type ElementWire struct {
	Attributes map[string]string `json:"attributes"`
	Dataset    map[string]string `json:"dataset,omitempty"`
	Tag        string            `json:"tag"`
	Text       string            `json:"text,omitempty"`
}

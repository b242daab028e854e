package ports

import (
	"context"

	"github.com/petricontrols/bootstrap/domain/entities"
)

// Document is a read-only query surface over the host document.
type Document interface {
	// Query returns every element carrying the marker class, in document order.
	Query(ctx context.Context, marker entities.Marker) ([]entities.MountPoint, error)
}

// DocumentFunc adapts a function to the Document interface.
type DocumentFunc func(ctx context.Context, marker entities.Marker) ([]entities.MountPoint, error)

// Query calls f.
func (f DocumentFunc) Query(ctx context.Context, marker entities.Marker) ([]entities.MountPoint, error) {
	return f(ctx, marker)
}

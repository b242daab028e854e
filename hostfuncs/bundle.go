package hostfuncs

import (
	"context"

	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/petricontrols/bootstrap/wireformat"
)

// MountLookupFunction is the name under which the element lookup is exported.
const MountLookupFunction = "mount_lookup"

// Bundle is a set of related handlers registered together.
type Bundle interface {
	Handlers() map[string]ByteHandler
}

type staticBundle map[string]ByteHandler

func (b staticBundle) Handlers() map[string]ByteHandler {
	return b
}

// ElementLookup finds an element by id.
type ElementLookup func(id string) (wireformat.ElementWire, bool)

// DocumentBundle exposes read-only element lookup to module instances.
// An empty id in the request resolves to the mount point being initialized.
func DocumentBundle(lookup ElementLookup) Bundle {
	return staticBundle{
		MountLookupFunction: NewJSONHandler(func(ctx context.Context, req wireformat.MountLookupRequestWire) wireformat.MountLookupResponseWire {
			return PerformMountLookup(ctx, lookup, req)
		}),
	}
}

// PerformMountLookup answers a mount_lookup request.
func PerformMountLookup(ctx context.Context, lookup ElementLookup, req wireformat.MountLookupRequestWire) wireformat.MountLookupResponseWire {
	id := req.ID
	if id == "" {
		current, ok := MountIDFromContext(ctx)
		if !ok {
			return wireformat.MountLookupResponseWire{
				Error: entities.NewErrorDetail("validation", "no id given and no mount point is being initialized"),
			}
		}
		id = current
	}

	el, ok := lookup(id)
	if !ok {
		return wireformat.MountLookupResponseWire{Found: false}
	}
	return wireformat.MountLookupResponseWire{Found: true, Element: &el}
}

// WithBundle registers every handler of bundle.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		for name, h := range bundle.Handlers() {
			b.add(name, h)
		}
	}
}

package wazero

import (
	"context"

	"github.com/petricontrols/bootstrap/hostfuncs"
	"github.com/tetratelabs/wazero/api"
)

// CallerName identifies who is calling a host function: the mount point being
// initialized when there is one, otherwise the guest module's name.
func CallerName(ctx context.Context, mod api.Module) string {
	if id, ok := hostfuncs.MountIDFromContext(ctx); ok {
		return "mount:" + id
	}
	if mod == nil {
		return ""
	}
	return mod.Name()
}

package hostfuncs

import (
	"context"
)

type contextKey struct {
	name string
}

var (
	mountIDKey      = &contextKey{name: "mount_id"}
	functionNameKey = &contextKey{name: "function_name"}
)

// WithMountID records the mount point whose entry-point call is in progress.
// Host functions invoked during that call see it.
func WithMountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, mountIDKey, id)
}

// MountIDFromContext returns the mount point being initialized, if any.
func MountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(mountIDKey).(string)
	return id, ok
}

// withFunctionName records which host function is being invoked.
func withFunctionName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, functionNameKey, name)
}

// FunctionNameFromContext returns the host function being invoked, for middleware.
func FunctionNameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(functionNameKey).(string); ok {
		return name
	}
	return "unknown"
}

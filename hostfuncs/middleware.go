package hostfuncs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Middleware wraps a ByteHandler.
type Middleware func(next ByteHandler) ByteHandler

// PanicRecoveryMiddleware converts a handler panic into an ErrorResponse payload,
// so a faulty handler cannot take the host down with the guest.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = NewPanicError(r).ToJSON()
					err = nil
				}
			}()
			return next(ctx, payload)
		}
	}
}

// SizeLimitMiddleware rejects requests larger than limit bytes.
func SizeLimitMiddleware(limit int) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			if len(payload) > limit {
				msg := fmt.Sprintf("request size %d exceeds maximum %d bytes", len(payload), limit)
				return NewValidationError(msg).ToJSON(), nil
			}
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware logs every invocation at debug level, and failures at warn.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			start := time.Now()
			resp, err := next(ctx, payload)

			attrs := []any{
				"function", FunctionNameFromContext(ctx),
				"duration", time.Since(start),
			}
			if id, ok := MountIDFromContext(ctx); ok {
				attrs = append(attrs, "mount_id", id)
			}
			if err != nil {
				logger.WarnContext(ctx, "host function failed", append(attrs, "error", err)...)
			} else {
				logger.DebugContext(ctx, "host function invoked", attrs...)
			}
			return resp, err
		}
	}
}

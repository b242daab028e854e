package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"

	domainerrors "github.com/petricontrols/bootstrap/domain/errors"
)

// DefaultMaxRequestSize limits the size of a request read from guest memory (1MB).
const DefaultMaxRequestSize = 1 * 1024 * 1024

// HostFunc is a typed host function.
type HostFunc[Req any, Resp any] func(context.Context, Req) Resp

// ByteHandler accepts a JSON request and returns a JSON response.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// NewJSONHandler wraps a typed HostFunc into a ByteHandler.
func NewJSONHandler[Req any, Resp any](fn HostFunc[Req, Resp]) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var req Req
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, &domainerrors.WireFormatError{Operation: "decode", Type: typeName[Req](), Err: err}
			}
		}

		respBytes, err := json.Marshal(fn(ctx, req))
		if err != nil {
			return nil, &domainerrors.WireFormatError{Operation: "encode", Type: typeName[Resp](), Err: err}
		}
		return respBytes, nil
	}
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

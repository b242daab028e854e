package host

import (
	"context"
	"log/slog"

	wazeroadapter "github.com/petricontrols/bootstrap/infrastructure/wazero"
	"github.com/petricontrols/bootstrap/log"
	"github.com/tetratelabs/wazero/api"
)

// LogMessageFunction is the host export guests log through.
const LogMessageFunction = "log_message"

func (e *Executor) registerHostFunctions(ctx context.Context) error {
	opts := []wazeroadapter.AdapterOption{
		wazeroadapter.WithModuleName(e.hostModule),
		wazeroadapter.WithLogger(e.logger),
		wazeroadapter.WithCustomHandler(wazeroadapter.CustomHandler{
			Name:        LogMessageFunction,
			Handler:     e.logMessage,
			ParamTypes:  []api.ValueType{api.ValueTypeI64},
			ResultTypes: []api.ValueType{},
		}),
	}
	for _, h := range e.custom {
		opts = append(opts, wazeroadapter.WithCustomHandler(h))
	}
	return wazeroadapter.RegisterWithRuntime(ctx, e.runtime, e.registry, opts...)
}

func (e *Executor) logMessage(ctx context.Context, mod api.Module, stack []uint64) {
	payload, err := wazeroadapter.ReadGuest(mod, stack[0])
	if err != nil {
		e.logger.WarnContext(ctx, "unreadable guest log message", "error", err)
		return
	}
	log.Forward(ctx, e.logger, log.DecodeLogMessage(payload),
		slog.String("caller", wazeroadapter.CallerName(ctx, mod)))
}

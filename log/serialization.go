package log

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"
)

// LogMessageWire is the JSON wire format for a log message from Guest to Host.
type LogMessageWire struct {
	Timestamp time.Time     `json:"timestamp"`
	Attrs     []LogAttrWire `json:"attrs,omitempty"`
	Level     string        `json:"level"`
	Message   string        `json:"message"`
}

// LogAttrWire represents a single slog attribute for wire transfer.
type LogAttrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"`  // "string", "int64", "uint64", "bool", "float64", "time", "duration", "error", "json", "any"
	Value string `json:"value"` // String representation of the value
}

// fromLogAttrWire converts a wire attribute back to a slog.Attr.
// Values that do not parse as their declared type are kept as strings.
func fromLogAttrWire(wire LogAttrWire) slog.Attr {
	switch wire.Type {
	case "int64":
		if n, err := strconv.ParseInt(wire.Value, 10, 64); err == nil {
			return slog.Int64(wire.Key, n)
		}
	case "uint64":
		if n, err := strconv.ParseUint(wire.Value, 10, 64); err == nil {
			return slog.Uint64(wire.Key, n)
		}
	case "bool":
		if b, err := strconv.ParseBool(wire.Value); err == nil {
			return slog.Bool(wire.Key, b)
		}
	case "float64":
		if f, err := strconv.ParseFloat(wire.Value, 64); err == nil {
			return slog.Float64(wire.Key, f)
		}
	case "time":
		if ts, err := time.Parse(time.RFC3339Nano, wire.Value); err == nil {
			return slog.Time(wire.Key, ts)
		}
	case "duration":
		if d, err := time.ParseDuration(wire.Value); err == nil {
			return slog.Duration(wire.Key, d)
		}
	case "error":
		return slog.Any(wire.Key, errors.New(wire.Value))
	case "json":
		var v any
		if err := json.Unmarshal([]byte(wire.Value), &v); err == nil {
			return slog.Any(wire.Key, v)
		}
	}
	return slog.String(wire.Key, wire.Value)
}

// Forward replays a guest log message on logger. extra attributes (for example
// the mount id) are appended after the guest's own attributes.
func Forward(ctx context.Context, logger *slog.Logger, msg LogMessageWire, extra ...slog.Attr) {
	level, err := ParseLevel(msg.Level)
	if err != nil {
		extra = append(extra, slog.String("guest_level", msg.Level))
	}
	if !logger.Enabled(ctx, level) {
		return
	}

	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	record := slog.NewRecord(ts, level, msg.Message, 0)
	for _, a := range msg.Attrs {
		record.AddAttrs(fromLogAttrWire(a))
	}
	record.AddAttrs(extra...)
	_ = logger.Handler().Handle(ctx, record)
}

// DecodeLogMessage decodes a guest log payload. Payloads that are not valid
// JSON are treated as a plain info message.
func DecodeLogMessage(payload []byte) LogMessageWire {
	var msg LogMessageWire
	if err := json.Unmarshal(payload, &msg); err != nil || msg.Message == "" {
		return LogMessageWire{Level: "info", Message: string(payload)}
	}
	return msg
}

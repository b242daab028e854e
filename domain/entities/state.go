package entities

// RunState is the lifecycle state of a single dispatcher run.
type RunState int32

const (
	StateNotStarted RunState = iota
	StateLoadingModule
	StateLoadFailed
	StateScanningAndDispatching
	StateScanFailed
	StateCompleted
)

func (s RunState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateLoadingModule:
		return "loading_module"
	case StateLoadFailed:
		return "load_failed"
	case StateScanningAndDispatching:
		return "scanning_and_dispatching"
	case StateScanFailed:
		return "scan_failed"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition can happen from s.
func (s RunState) IsTerminal() bool {
	return s == StateLoadFailed || s == StateScanFailed || s == StateCompleted
}

// MarshalText implements encoding.TextMarshaler.
func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

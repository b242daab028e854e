package entities

import "fmt"

// ErrorDetail is the structured form of an error.
// Captured faults take this form inside a Report, and guests use it to report
// an initialization error back to the host.
// Types in use: "load", "init", "guest", "panic", "trap", "config", "internal".
type ErrorDetail struct {
	// Wrapped is the cause, if any.
	Wrapped *ErrorDetail `json:"wrapped,omitempty"`

	// Details holds extra context such as the mount index.
	Details map[string]any `json:"details,omitempty"`

	Message string `json:"message"`
	Type    string `json:"type"`

	// Code identifies the failing source, function or field.
	Code string `json:"code,omitempty"`

	// Stack is set for panics.
	Stack string `json:"stack,omitempty"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != "internal" {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

// NewErrorDetail returns an ErrorDetail of the given type.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{Type: errorType, Message: message}
}

// WithCode sets Code and returns the receiver.
func (e *ErrorDetail) WithCode(code string) *ErrorDetail {
	e.Code = code
	return e
}

package hostfuncs

import (
	"encoding/json"
	"fmt"
)

// ErrorResponse is the structured error a guest receives instead of a trap
// when a host function cannot serve its request.
type ErrorResponse struct {
	// Error is a machine-readable error type identifier.
	Error string `json:"error"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Code is an HTTP-like numeric code.
	Code int `json:"code"`
}

// ToJSON serializes the ErrorResponse.
func (e ErrorResponse) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// NewValidationError reports a malformed or oversized request.
func NewValidationError(message string) ErrorResponse {
	return ErrorResponse{Error: "VALIDATION_ERROR", Message: message, Code: 400}
}

// NewNotFoundError reports an unknown host function.
func NewNotFoundError(name string) ErrorResponse {
	return ErrorResponse{Error: "NOT_FOUND", Message: "unknown host function: " + name, Code: 404}
}

// NewInternalError reports an unexpected host failure.
func NewInternalError(message string) ErrorResponse {
	return ErrorResponse{Error: "INTERNAL_ERROR", Message: message, Code: 500}
}

// NewPanicError reports a recovered handler panic.
func NewPanicError(panicValue any) ErrorResponse {
	return NewInternalError(fmt.Sprintf("panic: %v", panicValue))
}

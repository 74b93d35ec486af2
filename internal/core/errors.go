// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Input errors
	ErrNotFound       = &Error{Code: "NOT_FOUND", Message: "trade log not found"}
	ErrEmptyInput     = &Error{Code: "EMPTY_INPUT", Message: "trade log contains no trades"}
	ErrAllRowsInvalid = &Error{Code: "ALL_ROWS_INVALID", Message: "no trade has a parseable profit_money"}
	ErrMalformedInput = &Error{Code: "MALFORMED_INPUT", Message: "trade log is not valid delimited text"}

	// Storage errors
	ErrSourceFailed = &Error{Code: "SOURCE_FAILED", Message: "reading trade log source failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)

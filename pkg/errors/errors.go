package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Data errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrMalformedData ErrorCode = "MALFORMED_DATA"

	// Process errors
	ErrExternalCommand ErrorCode = "EXTERNAL_COMMAND"
)

// WflinkError represents a structured error with code and details
type WflinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WflinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WflinkError) Unwrap() error {
	return e.Wrapped
}

// Is matches any WflinkError carrying the same code
func (e *WflinkError) Is(target error) bool {
	var targetErr *WflinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WflinkError with the given code and message
func New(code ErrorCode, message string) *WflinkError {
	return &WflinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WflinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WflinkError {
	return &WflinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WflinkError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *WflinkError {
	if err == nil {
		return nil
	}
	return &WflinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WflinkError {
	if err == nil {
		return nil
	}
	return &WflinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *WflinkError) WithDetail(key string, value interface{}) *WflinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	var wfErr *WflinkError
	for err != nil {
		if errors.As(err, &wfErr) {
			if wfErr.Code == code {
				return true
			}
			err = wfErr.Wrapped
			continue
		}
		return false
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if not a WflinkError
func GetErrorCode(err error) ErrorCode {
	var wfErr *WflinkError
	if errors.As(err, &wfErr) {
		return wfErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WflinkError
func GetErrorDetails(err error) map[string]interface{} {
	var wfErr *WflinkError
	if errors.As(err, &wfErr) {
		return wfErr.Details
	}
	return nil
}

// ExitCode maps an error to the process exit status.
// A workflow that cannot be located exits with 1, and so does every other
// failure; the distinction is carried by the logged message.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

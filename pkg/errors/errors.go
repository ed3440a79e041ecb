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

	// Pattern errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Enumeration errors
	ErrPathNotFound ErrorCode = "PATH_NOT_FOUND"
	ErrNoCandidates ErrorCode = "NO_CANDIDATES"

	// Document errors
	ErrRead ErrorCode = "READ_ERROR"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// GrepError represents a structured error with code and details
type GrepError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GrepError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GrepError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *GrepError) Is(target error) bool {
	var targetErr *GrepError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithDetail attaches a key/value pair to the error for diagnostics
func (e *GrepError) WithDetail(key string, value interface{}) *GrepError {
	e.Details[key] = value
	return e
}

// New creates a new GrepError with the given code and message
func New(code ErrorCode, message string) *GrepError {
	return &GrepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GrepError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GrepError {
	return &GrepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GrepError
func Wrap(err error, code ErrorCode, message string) *GrepError {
	if err == nil {
		return nil
	}
	return &GrepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GrepError {
	if err == nil {
		return nil
	}
	return &GrepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// CodeOf returns the error code of err, or ErrUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	var ge *GrepError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

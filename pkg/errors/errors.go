// Package errors provides typed errors for xcode-summary
package errors

import (
	"errors"
	"fmt"
)

// Kind represents the category of error
type Kind int

const (
	// KindConfig indicates a configuration error
	KindConfig Kind = iota
	// KindPlatform indicates a review platform API error
	KindPlatform
	// KindValidation indicates an input validation error
	KindValidation
	// KindReportNotFound indicates the summary file does not exist or is not a regular file
	KindReportNotFound
	// KindReportMalformed indicates the summary file could not be decoded
	KindReportMalformed
)

// Error is the base error type for all xcode-summary errors
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(kind Kind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	e.Context[key] = value
	return e
}

// IsKind checks if an error is of a specific kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if err == nil {
		return false
	}
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ShouldFailBuild returns true if the error means the summary could not be reported at all.
// Platform errors only lose the comment; the annotations were still produced.
func ShouldFailBuild(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return err != nil
	}

	switch e.Kind {
	case KindPlatform:
		return false
	default:
		return true
	}
}

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "CONFIG"
	case KindPlatform:
		return "PLATFORM"
	case KindValidation:
		return "VALIDATION"
	case KindReportNotFound:
		return "REPORT_NOT_FOUND"
	case KindReportMalformed:
		return "REPORT_MALFORMED"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *Error {
	return New(KindConfig, message, cause)
}

// PlatformError creates a platform error
func PlatformError(message string, cause error) *Error {
	return New(KindPlatform, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *Error {
	return New(KindValidation, message, cause)
}

// ReportNotFound creates an error for a missing summary file
func ReportNotFound(path string) *Error {
	return New(KindReportNotFound, "summary file not found", nil).WithContext("path", path)
}

// ReportMalformed creates an error for a summary file that is not valid JSON
func ReportMalformed(path string, cause error) *Error {
	return New(KindReportMalformed, "summary file is not valid JSON", cause).WithContext("path", path)
}

// Is reports whether target is an *Error of the same kind, so errors.Is works
// against sentinel values built with New.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

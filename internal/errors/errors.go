package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes. The input codes distinguish the failure modes a
// caller may want to handle differently: a missing file, a file with no
// data rows, and a file that cannot be parsed at all.
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInputNotFound    = "INPUT_NOT_FOUND"
	CodeInputEmpty       = "INPUT_EMPTY"
	CodeInputInvalid     = "INPUT_INVALID"
	CodeNoNumericColumns = "NO_NUMERIC_COLUMNS"
	CodeExportFailed     = "EXPORT_FAILED"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InputNotFound(path string) *AppError {
	return New(CodeInputNotFound, fmt.Sprintf("input file not found: %s", path))
}

func InputEmpty(message string) *AppError {
	return New(CodeInputEmpty, message)
}

func InputInvalid(message string) *AppError {
	return New(CodeInputInvalid, message)
}

func ExportFailed(target string, cause error) *AppError {
	return &AppError{
		Code:    CodeExportFailed,
		Message: fmt.Sprintf("failed to write %s", target),
		Cause:   cause,
	}
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

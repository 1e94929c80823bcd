package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the structured error passed across package boundaries.
// Code identifies the failure class, Message is safe to surface to the
// user, and Cause keeps the underlying error for logs.
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

// Failure classes. Every error that reaches a handler or the CLI exit
// path carries exactly one of these codes.
const (
	CodeParseError       = "PARSE_ERROR"
	CodeInvalidColumn    = "INVALID_COLUMN"
	CodeUnsupportedChart = "UNSUPPORTED_CHART"
	CodeNotFound         = "NOT_FOUND"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInternalError    = "INTERNAL_ERROR"
)

// New creates an AppError with an explicit code.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap adds context to an error. The code of a wrapped AppError is
// preserved; plain errors become INTERNAL_ERROR.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Code returns the error's failure class, or INTERNAL_ERROR for plain
// errors.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalError
}

// HasCode reports whether err carries the given failure class.
func HasCode(err error, code string) bool {
	return err != nil && Code(err) == code
}

// Message returns the user-facing message, falling back to Error() for
// plain errors.
func Message(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// ParseError marks an upload that could not be read as tabular data.
func ParseError(message string, cause error) *AppError {
	return &AppError{Code: CodeParseError, Message: message, Cause: cause}
}

// InvalidColumn marks a column selection the requested operation cannot
// work with: missing from the table, or of the wrong inferred type.
func InvalidColumn(message string) *AppError {
	return New(CodeInvalidColumn, message)
}

// InvalidColumnf is InvalidColumn with formatting.
func InvalidColumnf(format string, args ...interface{}) *AppError {
	return InvalidColumn(fmt.Sprintf(format, args...))
}

// UnsupportedChart marks a chart kind outside the recognized set.
func UnsupportedChart(kind string) *AppError {
	return New(CodeUnsupportedChart, fmt.Sprintf("unsupported chart kind %q", kind))
}

// NotFound marks a lookup of a resource that does not exist.
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// ConfigInvalid marks a configuration problem detected at startup.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// Internal marks an unexpected failure with no better classification.
func Internal(message string) *AppError {
	return New(CodeInternalError, message)
}

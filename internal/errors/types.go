package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// OutputError is a structured error type with context.
type OutputError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Target      string
	Path        string
	Recoverable bool
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Target != "" {
		parts = append(parts, "target:"+e.Target)
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *OutputError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *OutputError) Is(target error) bool {
	var t *OutputError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *OutputError) WithContext(key string, value interface{}) *OutputError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPath records the file the error is about.
func (e *OutputError) WithPath(path string) *OutputError {
	e.Path = path

	return e
}

// WithTarget adds build target context.
func (e *OutputError) WithTarget(target string) *OutputError {
	e.Target = target

	return e
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *OutputError {
	return &OutputError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *OutputError {
	return &OutputError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *OutputError {
	return &OutputError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *OutputError {
	return &OutputError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var oe *OutputError
	if errors.As(err, &oe) {
		return oe.Recoverable
	}

	return false
}

// IsIOError checks if an error came from the filesystem.
func IsIOError(err error) bool {
	var oe *OutputError
	if errors.As(err, &oe) {
		return oe.Type == ErrorTypeIO
	}

	return false
}

// HasCode reports whether err is an OutputError with the given code.
func HasCode(err error, code string) bool {
	var oe *OutputError
	if errors.As(err, &oe) {
		return oe.Code == code
	}

	return false
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger Logger
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs an error at a level that matches its type.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var oe *OutputError
	if !errors.As(err, &oe) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	// Recoverable errors, such as a bad description, are only warned about.
	switch {
	case IsRecoverable(err):
		h.logger.Warn(ctx, err, "Recoverable error occurred",
			"type", oe.Type,
			"code", oe.Code,
			"target", oe.Target)
	default:
		h.logger.Error(ctx, err, "Error occurred",
			"type", oe.Type,
			"code", oe.Code,
			"target", oe.Target,
			"path", oe.Path)
	}
}

// Common error codes.
const (
	ErrCodeOpenFailed         = "ERR_OPEN_FAILED"
	ErrCodeShortWrite         = "ERR_SHORT_WRITE"
	ErrCodeWriteFailed        = "ERR_WRITE_FAILED"
	ErrCodeCloseFailed        = "ERR_CLOSE_FAILED"
	ErrCodeInvalidPath        = "ERR_INVALID_PATH"
	ErrCodeConfigInvalid      = "ERR_CONFIG_INVALID"
	ErrCodeDescriptionInvalid = "ERR_DESCRIPTION_INVALID"
	ErrCodeUnknownField       = "ERR_UNKNOWN_FIELD"
	ErrCodeUnknownEscape      = "ERR_UNKNOWN_ESCAPE"
	ErrCodeInternalError      = "ERR_INTERNAL"
)

// Helper functions for common errors

// ErrOpenFailed reports that path could not be opened for writing.
func ErrOpenFailed(path string, cause error) *OutputError {
	return NewIOError(ErrCodeOpenFailed, "cannot open file for writing", cause).WithPath(path)
}

// ErrWriteFailed reports a failed write. A short write gets its own code.
func ErrWriteFailed(path string, cause error) *OutputError {
	if errors.Is(cause, io.ErrShortWrite) {
		return NewIOError(ErrCodeShortWrite, "short write", cause).WithPath(path)
	}
	return NewIOError(ErrCodeWriteFailed, "cannot write file", cause).WithPath(path)
}

// ErrCloseFailed reports a failure while closing a written file.
func ErrCloseFailed(path string, cause error) *OutputError {
	return NewIOError(ErrCodeCloseFailed, "cannot close file", cause).WithPath(path)
}

// ErrInvalidPath creates a path validation error.
func ErrInvalidPath(path string) *OutputError {
	return NewValidationError(ErrCodeInvalidPath, "invalid path: "+path)
}

// ErrDescriptionInvalid reports a problem in a build description.
func ErrDescriptionInvalid(message string) *OutputError {
	return NewValidationError(ErrCodeDescriptionInvalid, message)
}

// ErrUnknownField reports a flag kind the projector has no accessor for.
func ErrUnknownField(name string) *OutputError {
	return NewValidationError(ErrCodeUnknownField, "unknown config field: "+name)
}

// ErrUnknownEscape reports an escaping mode that does not exist.
func ErrUnknownEscape(name string) *OutputError {
	return NewValidationError(ErrCodeUnknownEscape, "unknown escape mode: "+name)
}

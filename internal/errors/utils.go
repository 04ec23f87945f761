package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating an OutputError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *OutputError {
	if err == nil {
		return nil
	}

	// If it's already an OutputError, keep its location but layer the new message on top
	var oe *OutputError
	if errors.As(err, &oe) {
		return &OutputError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       oe,
			Context:     oe.Context,
			Target:      oe.Target,
			Path:        oe.Path,
			Recoverable: oe.Recoverable,
		}
	}

	return &OutputError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation,
	}
}

// WrapTarget wraps an error with the build target it happened in
func WrapTarget(err error, code, message, target string) *OutputError {
	oe := Wrap(err, ErrorTypeIO, code, message)
	if oe != nil {
		oe.Target = target
	}
	return oe
}

// WrapValidation wraps an error as a validation error
func WrapValidation(err error, code, message string) *OutputError {
	return Wrap(err, ErrorTypeValidation, code, message)
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *OutputError {
	oe := Wrap(err, ErrorTypeIO, code, message)
	if oe != nil {
		oe.Recoverable = false
	}
	return oe
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *OutputError {
	oe := Wrap(err, ErrorTypeConfig, code, message)
	if oe != nil {
		oe.Recoverable = false
	}
	return oe
}

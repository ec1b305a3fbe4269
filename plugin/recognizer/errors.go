package recognizer

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type for recognizer operations.
type ErrorCode string

const (
	// ErrCodeModelNotFound indicates no model is registered for a culture and model type.
	ErrCodeModelNotFound ErrorCode = "MODEL_NOT_FOUND"
	// ErrCodeInvalidOptions indicates an option bitmask outside the supported flags.
	ErrCodeInvalidOptions ErrorCode = "INVALID_OPTIONS"
	// ErrCodeDuplicateModel indicates a second registration for the same key.
	ErrCodeDuplicateModel ErrorCode = "DUPLICATE_MODEL"
	// ErrCodeModelConstruction indicates a model creator failed.
	ErrCodeModelConstruction ErrorCode = "MODEL_CONSTRUCTION_FAILED"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Error represents a structured recognizer error.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ModelNotFound creates the error returned when no model matches.
func ModelNotFound(culture, modelType string) *Error {
	return (&Error{
		Code:    ErrCodeModelNotFound,
		Message: fmt.Sprintf("could not find model with the specified configuration: %s,%s", culture, modelType),
	}).WithContext("culture", culture).WithContext("model_type", modelType)
}

// InvalidOptions creates an invalid options error.
func InvalidOptions(options int) *Error {
	return (&Error{
		Code:    ErrCodeInvalidOptions,
		Message: fmt.Sprintf("%d is not a valid option value", options),
	}).WithContext("options", options)
}

// DuplicateModel creates a duplicate registration error.
func DuplicateModel(culture, modelType string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateModel,
		Message: fmt.Sprintf("%s already registered for culture %s", modelType, culture),
	}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: msg}
}

// Wrap wraps an existing error with a code.
func Wrap(cause error, code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// IsCode reports whether err, or any error it wraps, is a recognizer
// error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var rErr *Error
	if errors.As(err, &rErr) {
		return rErr.Code == code
	}
	return false
}

// CodeOf extracts the error code from err, or returns defaultCode.
func CodeOf(err error, defaultCode ErrorCode) ErrorCode {
	var rErr *Error
	if errors.As(err, &rErr) {
		return rErr.Code
	}
	return defaultCode
}

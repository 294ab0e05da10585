// Package errors provides the structured error taxonomy shared by every layer of the
// question service. Repositories and RPC clients translate backend-specific faults into
// an *AppError before returning, so handlers never see driver or transport error types.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
)

// ErrorCode represents a categorized error type for structured error handling.
type ErrorCode string

// Error code constants for categorizing application errors.
const (
	ErrCodeParse             ErrorCode = "PARSE_ERROR"
	ErrCodeIO                ErrorCode = "IO_ERROR"
	ErrCodeMissingParameters ErrorCode = "MISSING_PARAMETERS"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeUnknown           ErrorCode = "UNKNOWN_ERROR"
)

// AppError represents a structured application error with code, message, cause, and context.
// It implements the error interface and supports error unwrapping.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns a string representation of the AppError.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError carrying the same code, which lets the
// sentinels below match any error of their category.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ParseError creates an AppError for malformed numeric or textual input.
func ParseError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// IOError creates an AppError for transport or filesystem faults.
func IOError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeIO,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// MissingParametersError creates an AppError for absent required fields.
func MissingParametersError(message string, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeMissingParameters,
		Message: message,
		Context: context,
	}
}

// NotFoundError creates an AppError for references to entities that do not exist.
func NotFoundError(message string, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
		Context: context,
	}
}

// InternalError creates an AppError wrapping a lower-level fault such as a storage or
// RPC failure.
func InternalError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// UnknownError creates an AppError for unclassified errors.
func UnknownError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeUnknown,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// Classify returns err as an *AppError. Errors that are not already classified become
// IO errors when they come from context cancellation and Unknown errors otherwise.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return IOError("operation interrupted", err, nil)
	}

	return UnknownError("unknown error", err, nil)
}

// LogError logs an AppError with structured logging and context
func LogError(logger *slog.Logger, err error, operation string) {
	// Handle nil logger gracefully (e.g., during tests)
	if logger == nil {
		return
	}

	if appErr, ok := err.(*AppError); ok {
		args := []interface{}{
			"operation", operation,
			"error_code", string(appErr.Code),
			"error_message", appErr.Message,
		}

		for key, value := range appErr.Context {
			args = append(args, key, value)
		}

		if appErr.Cause != nil {
			args = append(args, "cause", appErr.Cause.Error())
		}

		logger.Error("application error occurred", args...)
	} else {
		logger.Error("unknown error occurred",
			"operation", operation,
			"error", err.Error(),
		)
	}
}

package errors

import "errors"

// Sentinel errors for each category. Any *AppError with the same code matches them
// through errors.Is, regardless of message or cause.
var (
	ErrParse             = &AppError{Code: ErrCodeParse, Message: "parse error"}
	ErrIO                = &AppError{Code: ErrCodeIO, Message: "io error"}
	ErrMissingParameters = &AppError{Code: ErrCodeMissingParameters, Message: "missing parameters"}
	ErrNotFound          = &AppError{Code: ErrCodeNotFound, Message: "not found"}
	ErrInternal          = &AppError{Code: ErrCodeInternal, Message: "internal error"}
	ErrUnknown           = &AppError{Code: ErrCodeUnknown, Message: "unknown data store error"}
)

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsParseError checks if an error represents malformed input
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsInternalError checks if an error wraps a lower-level storage or transport fault
func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternal)
}

// IsValidationError checks if an error was caused by the caller's input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrMissingParameters)
}

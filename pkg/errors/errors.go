package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of engine error
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"

	// Engine errors
	ErrorTypeDeckUnavailable  ErrorType = "DECK_UNAVAILABLE"
	ErrorTypeStoreUnavailable ErrorType = "STORE_UNAVAILABLE"

	// Infrastructure errors
	ErrorTypeDatabase ErrorType = "DATABASE"
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application-specific error
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Retryable bool                   `json:"retryable"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Constructor functions for common error types

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewDeckUnavailableError creates a deck unavailable error.
// The selector surfaces this when the card catalog is missing or failed to
// decode; callers are expected to treat it as "no selection", not a crash.
func NewDeckUnavailableError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeDeckUnavailable,
		Message: message,
	}
}

// NewStoreUnavailableError creates a store unavailable error.
// Recency persistence failures are fail-open: readers treat this as empty
// history, writers log and swallow it.
func NewStoreUnavailableError(message string) *AppError {
	return &AppError{
		Type:      ErrorTypeStoreUnavailable,
		Message:   message,
		Retryable: true,
	}
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeDatabase,
		Message:   fmt.Sprintf("database operation failed: %s", operation),
		Cause:     cause,
		Retryable: true,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Cause:   cause,
	}
}

// Type-checking helpers

// IsType checks whether err is an AppError of the given type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// IsDeckUnavailable checks if the error indicates a missing or unreadable deck
func IsDeckUnavailable(err error) bool {
	return IsType(err, ErrorTypeDeckUnavailable)
}

// IsStoreUnavailable checks if the error indicates an inaccessible recency store
func IsStoreUnavailable(err error) bool {
	return IsType(err, ErrorTypeStoreUnavailable)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsRetryable reports whether the error is worth retrying
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable
	}
	return false
}

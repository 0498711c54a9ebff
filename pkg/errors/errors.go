// Package errors defines custom error types and error handling utilities for the
// calibration pipeline. Row-level data issues are never modeled as errors (the
// dataset processor absorbs them with safe defaults); everything here covers
// file-level and argument-level failures, which abort the run.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	ErrCodeInternal        ErrorCode = "internal_error"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeMissingFile     ErrorCode = "missing_file"
	ErrCodeStorage         ErrorCode = "storage_error"
	ErrCodeNotFound        ErrorCode = "not_found"
)

// AppError represents a structured application error.
type AppError struct {
	Code     ErrorCode
	Message  string
	Metadata map[string]interface{}
	cause    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain support.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.cause = cause
	return e
}

// WithMetadata attaches additional context metadata.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// NewError creates a new AppError with the specified code and message.
func NewError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// ================================================================================
// Predefined Error Constructors
// ================================================================================

// ErrMissingFile creates a missing_file error for an absent or unreadable
// source file. This is fatal for the run; there are no retries.
func ErrMissingFile(path string, cause error) *AppError {
	return NewError(ErrCodeMissingFile, fmt.Sprintf("source file not readable: %s", path)).
		WithMetadata("path", path).
		WithCause(cause)
}

// ErrInvalidArgument creates an invalid_argument error.
func ErrInvalidArgument(message string) *AppError {
	return NewError(ErrCodeInvalidArgument, message)
}

// ErrStorage creates a storage_error for snapshot persistence failures.
func ErrStorage(message string, cause error) *AppError {
	return NewError(ErrCodeStorage, message).WithCause(cause)
}

// ErrSnapshotNotFound creates a not_found error for a missing snapshot.
func ErrSnapshotNotFound(id string) *AppError {
	return NewError(ErrCodeNotFound, fmt.Sprintf("calibration snapshot not found: %s", id)).
		WithMetadata("snapshot_id", id)
}

// CodeOf returns the ErrorCode of err if it is an AppError, ErrCodeInternal otherwise.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

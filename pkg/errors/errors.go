// Package errors provides structured error types for lotplan.
//
// This package defines error codes and types that enable:
//   - Distinguishing a rejected placement from an exhausted canvas
//   - Machine-readable error codes for the CLI and HTTP API
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Placement outcomes are binary and local. A candidate pose is either
// committed or rejected, and a rejection carries one of:
//   - OUT_OF_BOUNDS: a rotated corner escapes the canvas
//   - OVERLAP: the candidate shares positive area with a committed spot
//
// CAPACITY_EXCEEDED is reported separately: it means the grid scan found no
// room anywhere on the canvas, so the caller should suggest enlarging it.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOverlap, "spot %d overlaps spot %d", a, b)
//	if errors.IsRejected(err) {
//	    // snap the dragged spot back
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Placement outcomes
	ErrCodeOutOfBounds      Code = "OUT_OF_BOUNDS"
	ErrCodeOverlap          Code = "OVERLAP"
	ErrCodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
	ErrCodeNoSuggestion     Code = "NO_SUGGESTION"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidCanvas Code = "INVALID_CANVAS"
	ErrCodeInvalidLabel  Code = "INVALID_LABEL"
	ErrCodeInvalidLot    Code = "INVALID_LOT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeSpotNotFound Code = "SPOT_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeUnavailable Code = "UNAVAILABLE" // a store could not be reached
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsRejected reports whether err is a rejected placement (out of bounds or
// overlapping). Capacity exhaustion is not a rejection.
func IsRejected(err error) bool {
	switch GetCode(err) {
	case ErrCodeOutOfBounds, ErrCodeOverlap:
		return true
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

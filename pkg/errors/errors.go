// Package errors provides structured error types for deskgrid.
//
// This package defines error codes and types that enable:
//   - Telling ordinary layout rejections apart from real failures
//   - Machine-readable error codes for the HTTP API and CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Rejection codes describe a layout operation that cannot be realized right
// now (a widget dragged onto another, a locked widget, an unknown id). They
// are expected during normal interaction and are reported with [IsRejection].
// Every other code describes a fault: bad input, storage failures or
// programmer errors.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCollision, "widget %s overlaps %s", a, b)
//	if errors.IsRejection(err) {
//	    // show a brief UI cue, keep going
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save dashboard %s", profile)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout rejections
	ErrCodeCollision      Code = "COLLISION"
	ErrCodeOutOfBounds    Code = "OUT_OF_BOUNDS"
	ErrCodeWidgetLocked   Code = "WIDGET_LOCKED"
	ErrCodeWidgetNotFound Code = "WIDGET_NOT_FOUND"
	ErrCodeDuplicateID    Code = "DUPLICATE_ID"
	ErrCodeNoFreeSlot     Code = "NO_FREE_SLOT"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidOperation Code = "INVALID_OPERATION"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Persistence errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeStorage      Code = "STORAGE_ERROR"
	ErrCodeIncompatible Code = "INCOMPATIBLE_VERSION"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// rejections lists the codes that describe an unsatisfiable but legitimate
// user request.
var rejections = map[Code]bool{
	ErrCodeCollision:      true,
	ErrCodeOutOfBounds:    true,
	ErrCodeWidgetLocked:   true,
	ErrCodeWidgetNotFound: true,
	ErrCodeDuplicateID:    true,
	ErrCodeNoFreeSlot:     true,
}

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

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsRejection reports whether err is an ordinary layout rejection rather
// than a fault.
func IsRejection(err error) bool {
	return rejections[GetCode(err)]
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

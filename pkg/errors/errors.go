// Package errors provides coded, user-facing errors for the floor-plan editor.
//
// Every rejected edit carries a machine-readable Code plus a message that the
// presentation layer can show the user as-is:
//
//	err := errors.New(errors.ErrCodeOccupied, "table already exists at destination")
//	if errors.Is(err, errors.ErrCodeOccupied) {
//	    status = errors.UserMessage(err)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Gesture sequencing
	ErrCodeBusy         Code = "BUSY"
	ErrCodeOccupied     Code = "OCCUPIED"
	ErrCodeTooClose     Code = "TOO_CLOSE"
	ErrCodeNoTable      Code = "NO_TABLE"
	ErrCodeTooFewPoints Code = "TOO_FEW_POINTS"

	// Input
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Room tree
	ErrCodeNotFound  Code = "NOT_FOUND"
	ErrCodeForbidden Code = "FORBIDDEN"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

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
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, or "" if err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the alert text for err: the message without the code
// prefix for *Error values, the plain error string otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Package clierr defines structured error types for CLI commands.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for scripts consuming --json output.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error code constants: uppercase, underscore-separated, stable across minor versions.
const (
	TaskNotFound       = "TASK_NOT_FOUND"
	BoardNotFound      = "BOARD_NOT_FOUND"
	BoardAlreadyExists = "BOARD_ALREADY_EXISTS"
	InvalidInput       = "INVALID_INPUT"
	UnrecognizedValue  = "UNRECOGNIZED_VALUE"
	InvalidStatus      = "INVALID_STATUS"
	InvalidPriority    = "INVALID_PRIORITY"
	InvalidDifficulty  = "INVALID_DIFFICULTY"
	InvalidFilter      = "INVALID_FILTER"
	InvalidDate        = "INVALID_DATE"
	InvalidTaskID      = "INVALID_TASK_ID"
	CategoryNotFound   = "CATEGORY_NOT_FOUND"
	CategoryExists     = "CATEGORY_EXISTS"
	GoalNotFound       = "GOAL_NOT_FOUND"
	ResourceNotFound   = "RESOURCE_NOT_FOUND"
	UnknownSetting     = "UNKNOWN_SETTING"
	NoChanges          = "NO_CHANGES"
	ConfirmationReq    = "CONFIRMATION_REQUIRED"
	InternalError      = "INTERNAL_ERROR"
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap returns the underlying error, if the Error was built with Wrap.
func (e *Error) Unwrap() error { return e.cause }

// Wrap creates an Error whose message is err's message and whose
// cause remains reachable through errors.Is and errors.As.
func Wrap(code string, err error) *Error {
	return &Error{Code: code, Message: err.Error(), cause: err}
}

// CodeOf returns the code of the first *Error in err's chain,
// or InternalError when there is none.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// SilentError signals an exit code without additional output.
// Used by batch operations where results are already written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }

// Package errors wraps errors with stack traces and aggregates multiple failures.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// The wrappers below pass skip=1 to go-errors, which only holds while each
// keeps its own stack frame.

// New creates an error carrying the current stack trace.
//
//go:noinline
func New(message string) error {
	return goerrors.Wrap(errors.New(message), 1)
}

// Errorf formats an error and attaches the current stack trace.
//
//go:noinline
func Errorf(message string, args ...any) error {
	return goerrors.Wrap(fmt.Errorf(message, args...), 1)
}

// WithStackTrace wraps err in an Error that records the stack trace. An error that
// already carries one is returned as is; nil stays nil.
//
//go:noinline
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix is WithStackTrace with a formatted message prepended.
//
//go:noinline
func WithStackTraceAndPrefix(err error, message string, args ...any) error {
	if err == nil {
		return nil
	}
	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// ErrorWithStackTrace returns the error message followed by the recorded call stack.
func ErrorWithStackTrace(err error) string {
	if err == nil {
		return ""
	}
	var goErr *goerrors.Error
	if errors.As(err, &goErr) {
		return goErr.ErrorStack()
	}
	return err.Error()
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

package store

import (
	"fmt"

	"github.com/Makepad-fr/taskboard/internal/errors"
)

// ValidationError reports a rejected field value. The caller can fix the
// input and retry.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (err ValidationError) Error() string {
	if err.Value == nil {
		return fmt.Sprintf("invalid %s: %s", err.Field, err.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", err.Field, fmt.Sprint(err.Value), err.Reason)
}

// NotFoundError reports an id the store does not hold.
type NotFoundError struct {
	ID string
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", err.ID)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func invalid(field string, value any, reason string) error {
	return errors.WithStackTrace(ValidationError{Field: field, Value: value, Reason: reason})
}

func notFound(id string) error {
	return errors.WithStackTrace(NotFoundError{ID: id})
}

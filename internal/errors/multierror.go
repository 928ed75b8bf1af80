package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// MultiError collects several independent failures.
type MultiError struct {
	inner *multierror.Error
}

// Error lists every wrapped error as a bullet.
func (errs *MultiError) Error() string {
	wrapped := errs.WrappedErrors()

	lines := make([]string, 0, len(wrapped))
	for _, err := range wrapped {
		lines = append(lines, "* "+strings.ReplaceAll(err.Error(), "\n", "\n  "))
	}

	if len(wrapped) == 1 {
		return fmt.Sprintf("1 error occurred:\n%s", strings.Join(lines, "\n"))
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(wrapped), strings.Join(lines, "\n"))
}

// WrappedErrors returns the errors collected so far.
func (errs *MultiError) WrappedErrors() []error {
	if errs == nil || errs.inner == nil {
		return nil
	}
	return errs.inner.WrappedErrors()
}

func (errs *MultiError) Unwrap() []error {
	return errs.WrappedErrors()
}

// Append returns a MultiError holding the existing errors plus appendErrs.
// A nil receiver is valid.
func (errs *MultiError) Append(appendErrs ...error) *MultiError {
	if errs == nil {
		errs = &MultiError{inner: new(multierror.Error)}
	}
	return &MultiError{inner: multierror.Append(errs.inner, appendErrs...)}
}

// Len is the number of collected errors.
func (errs *MultiError) Len() int {
	return len(errs.WrappedErrors())
}

// ErrorOrNil returns errs as an error, or nil when nothing was collected.
func (errs *MultiError) ErrorOrNil() error {
	if errs == nil || errs.inner == nil {
		return nil
	}
	if err := errs.inner.ErrorOrNil(); err != nil {
		return errs
	}
	return nil
}

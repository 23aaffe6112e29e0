package elementindex

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// CriticalError aborts validation of the whole city: a route or stop area
// referenced an element id that the dataset never defined. Unlike a
// diagnostics.Error, this is not recoverable — there is nothing sensible
// left to validate once a referenced stop/platform element is missing.
type CriticalError struct {
	cause error
}

// NewCriticalError wraps the missing-id condition with a stack trace.
func NewCriticalError(format string, args ...interface{}) error {
	return &CriticalError{cause: pkgerrors.Errorf(format, args...)}
}

func (e *CriticalError) Error() string { return e.cause.Error() }
func (e *CriticalError) Unwrap() error { return e.cause }

// IsCritical reports whether err (or something it wraps) is a CriticalError.
func IsCritical(err error) bool {
	var ce *CriticalError
	return errors.As(err, &ce)
}

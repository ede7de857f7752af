// Package apperr defines the error kinds shared by the tracker packages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrDecomposition = errors.New("decomposition failed")
)

// ValidationError reports rejected input. Nothing is mutated when it is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DecompositionError wraps a failed call to a breakdown provider.
type DecompositionError struct {
	Title string
	Err   error
}

func (e *DecompositionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s for %q", ErrDecomposition.Error(), e.Title)
	}
	return fmt.Sprintf("%s for %q: %v", ErrDecomposition.Error(), e.Title, e.Err)
}

// Is matches ErrDecomposition as well as the wrapped cause.
func (e *DecompositionError) Is(target error) bool { return target == ErrDecomposition }

func (e *DecompositionError) Unwrap() error { return e.Err }

// NotFound reports a missing entity of the given kind.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

package internal

import (
	"errors"
	"fmt"
)

// PanicError represents a panic recovered by the Recover middleware.
// The error-normalization handler maps it onto the Server taxonomy variant
// with the stack attached as debug detail.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// IsPanicError reports whether err is (or wraps) a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// AsPanicError extracts the PanicError from err if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// StatusCoder is implemented by errors that carry an HTTP status code.
// Status-based remap rules in the error handler match against it.
type StatusCoder interface {
	error
	StatusCode() int
}

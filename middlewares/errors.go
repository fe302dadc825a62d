package middlewares

import "github.com/backendlab/httpkit/internal"

// PanicError represents a recovered panic. It is re-exported from the
// internal package so the default error handler and user code can classify
// it without importing internal directly.
type PanicError = internal.PanicError

// IsPanicError reports whether err wraps a recovered panic.
func IsPanicError(err error) bool {
	return internal.IsPanicError(err)
}

// AsPanicError extracts the PanicError from an error chain if present.
func AsPanicError(err error) (*PanicError, bool) {
	return internal.AsPanicError(err)
}

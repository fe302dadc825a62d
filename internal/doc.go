// Package internal contains the httpkit core: the application container, the
// request context, the router adapter over chi, the capturing response writer,
// and the terminal error-normalization handler.
//
// The root httpkit package re-exports the public surface; application code
// should not import this package directly.
package internal

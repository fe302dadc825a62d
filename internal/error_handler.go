package internal

import (
	"errors"
	"fmt"

	"github.com/backendlab/httpkit/pkg/apperr"
)

// Variant constructs a taxonomy member; the apperr constructors satisfy it.
type Variant func(opts ...apperr.Option) *apperr.Error

type remapRule struct {
	match   func(error) bool
	note    func(error) string
	variant Variant
}

type errorHandlerConfig struct {
	debug    bool
	fallback Variant
	rules    []remapRule
}

// ErrorHandlerOption configures the normalization handler.
type ErrorHandlerOption func(*errorHandlerConfig)

// RedefineStatus remaps errors carrying the given status code (via StatusCode())
// onto a taxonomy variant. The remapped instance notes the redefined status as
// debug detail when the variant carries none.
func RedefineStatus(status int, variant Variant) ErrorHandlerOption {
	return func(cfg *errorHandlerConfig) {
		cfg.rules = append(cfg.rules, remapRule{
			match: func(err error) bool {
				var sc StatusCoder
				return errors.As(err, &sc) && sc.StatusCode() == status
			},
			note: func(error) string {
				return fmt.Sprintf("redefined internal http status %d", status)
			},
			variant: variant,
		})
	}
}

// RedefineAs remaps errors matching the type T (via errors.As) onto a taxonomy
// variant. The remapped instance carries the original error text as debug
// detail when the variant provides none.
func RedefineAs[T error](variant Variant) ErrorHandlerOption {
	return func(cfg *errorHandlerConfig) {
		cfg.rules = append(cfg.rules, remapRule{
			match: func(err error) bool {
				var target T
				return errors.As(err, &target)
			},
			note: func(err error) string {
				return err.Error()
			},
			variant: variant,
		})
	}
}

// RedefineIs remaps errors matching a sentinel (via errors.Is) onto a taxonomy
// variant.
func RedefineIs(sentinel error, variant Variant) ErrorHandlerOption {
	return func(cfg *errorHandlerConfig) {
		cfg.rules = append(cfg.rules, remapRule{
			match: func(err error) bool {
				return errors.Is(err, sentinel)
			},
			note: func(err error) string {
				return err.Error()
			},
			variant: variant,
		})
	}
}

// WithFallbackVariant replaces the generic Server variant used for
// unclassified errors.
func WithFallbackVariant(variant Variant) ErrorHandlerOption {
	return func(cfg *errorHandlerConfig) {
		if variant != nil {
			cfg.fallback = variant
		}
	}
}

// NewErrorHandler builds the terminal error-normalization handler.
//
// Classified errors render as their own status and body. Remap rules translate
// recognized framework or library errors onto taxonomy variants before the
// generic fallback, which wraps anything else into the Server variant with the
// error text (and, for panics, the stack) attached as debug detail. The debug
// flag is fixed for the handler's lifetime, never per-request.
func NewErrorHandler(debug bool, opts ...ErrorHandlerOption) ErrorHandler {
	cfg := &errorHandlerConfig{
		debug:    debug,
		fallback: apperr.Server,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c Context, err error) error {
		if e := apperr.As(err); e != nil {
			return respond(c, cfg, e)
		}

		for _, rule := range cfg.rules {
			if rule.match(err) {
				e := rule.variant()
				if e.Debug == "" {
					e.Debug = rule.note(err)
				}
				return respond(c, cfg, e)
			}
		}

		if pe, ok := AsPanicError(err); ok {
			return respond(c, cfg, cfg.fallback(
				apperr.WithDebug(fmt.Sprintf("%v\n%s", pe.Value, pe.Stack)),
			))
		}

		return respond(c, cfg, cfg.fallback(apperr.WithDebug(err.Error())))
	}
}

func respond(c Context, cfg *errorHandlerConfig, e *apperr.Error) error {
	if err := c.JSON(e.Status, e.Body(cfg.debug)); err != nil {
		// The response body is a fixed-shape struct; a failure here means the
		// connection is gone. Nothing sensible left to do with it.
		c.LogError("error response write failed", "error", err)
	}
	return nil
}

package apperr

import "errors"

// FallbackStatus is the status code of the generic Server variant.
// Non-standard on purpose: it distinguishes application-level failures from
// infrastructure 500s emitted by proxies in front of the service.
const FallbackStatus = 520

// Default user-facing messages per variant.
const (
	msgServer             = "Internal server error"
	msgInputValidation    = "Request validation failed"
	msgResponseValidation = "Response validation failed"
	msgValidation         = "Validation failed"
	msgNotFound           = "Resource not found"
	msgUnknownAnswer      = "Method not allowed"
	msgTokenNotFound      = "Auth token not found in request headers"
	msgInvalidToken       = "Invalid auth token"
	msgAccessForbidden    = "Access denied"
)

// Error is a classified application error. Status and Title are fixed by the
// variant constructor; Message and Debug may be overridden at construction time.
type Error struct {
	Title   string
	Message string
	Debug   string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) StatusCode() int {
	return e.Status
}

// Body is the wire shape of an error response.
// The debug key is omitted unless debug mode is on and detail is present.
type Body struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Debug   string `json:"debug,omitempty"`
}

// Body returns the response payload for the error.
// Debug detail is included only when debug is true.
func (e *Error) Body(debug bool) Body {
	b := Body{
		Title:   e.Title,
		Message: e.Message,
	}
	if debug {
		b.Debug = e.Debug
	}
	return b
}

// Option configures an Error at construction time.
type Option func(*Error)

// WithMessage overrides the variant's default message.
func WithMessage(message string) Option {
	return func(e *Error) {
		if message != "" {
			e.Message = message
		}
	}
}

// WithDebug attaches debug detail, exposed only in debug mode.
func WithDebug(debug string) Option {
	return func(e *Error) {
		e.Debug = debug
	}
}

// WithStatus overrides the variant's status code.
// Variants keep their status fixed otherwise; use sparingly.
func WithStatus(status int) Option {
	return func(e *Error) {
		if status > 0 {
			e.Status = status
		}
	}
}

func newError(status int, title, message string, opts []Option) *Error {
	e := &Error{
		Status:  status,
		Title:   title,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Server is the generic internal failure and the fallback for unclassified errors.
func Server(opts ...Option) *Error {
	return newError(FallbackStatus, "ServerError", msgServer, opts)
}

// InputValidation maps request-validation failures.
func InputValidation(opts ...Option) *Error {
	return newError(400, "InputValidationError", msgInputValidation, opts)
}

// ResponseValidation signals an internal contract violation producing an
// invalid response shape.
func ResponseValidation(opts ...Option) *Error {
	return newError(500, "ResponseValidationError", msgResponseValidation, opts)
}

// Validation is a generic schema validation failure.
func Validation(opts ...Option) *Error {
	return newError(422, "ValidationError", msgValidation, opts)
}

// NotFound maps HTTP 404.
func NotFound(opts ...Option) *Error {
	return newError(404, "NotFoundError", msgNotFound, opts)
}

// UnknownAnswer maps HTTP 405 and unexpected-method conditions.
func UnknownAnswer(opts ...Option) *Error {
	return newError(405, "UnknownAnswerError", msgUnknownAnswer, opts)
}

// TokenNotFound signals a missing credential.
func TokenNotFound(opts ...Option) *Error {
	return newError(401, "TokenNotFoundError", msgTokenNotFound, opts)
}

// InvalidToken signals a malformed or unverifiable credential.
func InvalidToken(opts ...Option) *Error {
	return newError(401, "InvalidTokenError", msgInvalidToken, opts)
}

// AccessForbidden signals an authenticated but not permitted caller.
func AccessForbidden(opts ...Option) *Error {
	return newError(403, "AccessForbiddenError", msgAccessForbidden, opts)
}

// Is reports whether err is (or wraps) a taxonomy member.
func Is(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// As extracts the taxonomy member from err if present, nil otherwise.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

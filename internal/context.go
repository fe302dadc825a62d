package internal

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the response writer.
	Response() http.ResponseWriter

	// ResponseWriter returns the capturing response writer for this request.
	ResponseWriter() *ResponseWriter

	// Param returns the URL parameter value by name, or "" if absent.
	Param(name string) string

	// Query returns the query parameter value by name, or "" if absent.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name, parsing the form on first access.
	Form(name string) string

	// FormFile returns the first file for the given form key.
	FormFile(name string) (multipart.File, *multipart.FileHeader, error)

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Cookie returns the named request cookie value.
	Cookie(name string) (string, error)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain-text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect sends an HTTP redirect.
	Redirect(code int, url string) error

	// Written reports whether a response has been written.
	Written() bool

	// Set stores a request-scoped value, visible to Get and to context
	// extractors via Value.
	Set(key, value any)

	// Get returns a request-scoped value stored with Set, or nil.
	Get(key any) any

	// Logger returns the request logger.
	Logger() *slog.Logger

	LogDebug(msg string, args ...any)
	LogInfo(msg string, args ...any)
	LogWarn(msg string, args ...any)
	LogError(msg string, args ...any)
}

type requestContext struct {
	writer  *ResponseWriter
	request *http.Request
	logger  *slog.Logger
	values  map[any]any
}

func newContext(w *ResponseWriter, r *http.Request, log *slog.Logger) *requestContext {
	return &requestContext{
		writer:  w,
		request: r,
		logger:  log,
		values:  make(map[any]any),
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.writer
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.writer
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) FormFile(name string) (multipart.File, *multipart.FileHeader, error) {
	return c.request.FormFile(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.writer.Header().Set(name, value)
}

func (c *requestContext) Cookie(name string) (string, error) {
	cookie, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

func (c *requestContext) JSON(code int, v any) error {
	c.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.writer.WriteHeader(code)
	return json.NewEncoder(c.writer).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.writer.WriteHeader(code)
	_, err := c.writer.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.writer.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.writer, c.request, url, code)
	return nil
}

func (c *requestContext) Written() bool {
	return c.writer.Written()
}

// Set stores the value both in the local map and in the request context so
// slog context extractors observe it through Value.
func (c *requestContext) Set(key, value any) {
	c.values[key] = value
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.values[key]
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, args ...any) {
	c.logger.DebugContext(c.request.Context(), msg, args...)
}

func (c *requestContext) LogInfo(msg string, args ...any) {
	c.logger.InfoContext(c.request.Context(), msg, args...)
}

func (c *requestContext) LogWarn(msg string, args ...any) {
	c.logger.WarnContext(c.request.Context(), msg, args...)
}

func (c *requestContext) LogError(msg string, args ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, args...)
}

// context.Context delegation.

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

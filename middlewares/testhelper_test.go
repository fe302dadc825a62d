package middlewares_test

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/backendlab/httpkit/internal"
	"github.com/backendlab/httpkit/pkg/logger"
)

// testContext is a minimal internal.Context for exercising middleware
// without the full app wiring.
type testContext struct {
	context.Context
	writer  *internal.ResponseWriter
	request *http.Request
	logger  *slog.Logger
	values  map[any]any
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		Context: r.Context(),
		writer:  internal.NewResponseWriter(w),
		request: r,
		logger:  logger.NewNope(),
		values:  make(map[any]any),
	}
}

func (c *testContext) Request() *http.Request                  { return c.request }
func (c *testContext) Response() http.ResponseWriter           { return c.writer }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.writer }
func (c *testContext) Param(name string) string                { return "" }

func (c *testContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *testContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *testContext) Form(name string) string {
	_ = c.request.ParseForm()
	return c.request.PostFormValue(name)
}

func (c *testContext) FormFile(name string) (multipart.File, *multipart.FileHeader, error) {
	return c.request.FormFile(name)
}

func (c *testContext) Header(name string) string    { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.writer.Header().Set(name, value) }

func (c *testContext) Cookie(name string) (string, error) {
	cookie, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

func (c *testContext) JSON(code int, v any) error {
	c.writer.Header().Set("Content-Type", "application/json")
	c.writer.WriteHeader(code)
	return json.NewEncoder(c.writer).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.writer.WriteHeader(code)
	_, err := c.writer.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.writer.WriteHeader(code)
	return nil
}

func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.writer, c.request, url, code)
	return nil
}

func (c *testContext) Written() bool { return c.writer.Written() }

func (c *testContext) Set(key, value any) {
	c.values[key] = value
	c.Context = context.WithValue(c.Context, key, value)
}

func (c *testContext) Get(key any) any { return c.values[key] }

func (c *testContext) Logger() *slog.Logger { return c.logger }

func (c *testContext) LogDebug(msg string, args ...any) {}
func (c *testContext) LogInfo(msg string, args ...any)  {}
func (c *testContext) LogWarn(msg string, args ...any)  {}
func (c *testContext) LogError(msg string, args ...any) {}

package middlewares_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backendlab/httpkit/internal"
	"github.com/backendlab/httpkit/middlewares"
	"github.com/backendlab/httpkit/pkg/apperr"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

func logRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func runLogging(t *testing.T, req *http.Request, handler internal.HandlerFunc, opts ...middlewares.LoggingOption) (*httptest.ResponseRecorder, *bytes.Buffer, error) {
	t.Helper()
	log, buf := captureLogger()
	rec := httptest.NewRecorder()
	c := newTestContext(rec, req)
	err := middlewares.Logging(log, opts...)(handler)(c)
	return rec, buf, err
}

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("success passes response through unchanged", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec, buf, err := runLogging(t, req, func(c internal.Context) error {
			return c.String(http.StatusOK, "hello")
		}, middlewares.WithDestination("test-api"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello", rec.Body.String())

		records := logRecords(t, buf)
		require.Len(t, records, 1)
		record := records[0]
		assert.Equal(t, "test-api", record["destination"])
		assert.Equal(t, "GET", record["http_method"])
		assert.Equal(t, "/users", record["method"])
		assert.Equal(t, float64(http.StatusOK), record["http_status_code"])
		assert.Equal(t, `"hello"`, record["output_data"])
		assert.NotContains(t, record, "error_title")
		assert.NotContains(t, record, "error_message")
		processingTime, ok := record["processing_time"].(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, processingTime, float64(0))
	})

	t.Run("exactly one record per request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/once", nil)
		_, buf, err := runLogging(t, req, func(c internal.Context) error {
			return c.NoContent(http.StatusNoContent)
		})

		require.NoError(t, err)
		assert.Len(t, logRecords(t, buf), 1)
	})

	t.Run("skip substring suppresses emission", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		rec, buf, err := runLogging(t, req, func(c internal.Context) error {
			return c.String(http.StatusOK, "OK")
		}, middlewares.WithSkipSubstrings("health"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, buf.String())
	})

	t.Run("classified error re-raised with title and status", func(t *testing.T) {
		t.Parallel()

		appErr := apperr.NotFound()
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		_, buf, err := runLogging(t, req, func(c internal.Context) error {
			return appErr
		})

		require.ErrorIs(t, err, error(appErr))

		records := logRecords(t, buf)
		require.Len(t, records, 1)
		record := records[0]
		assert.Equal(t, float64(404), record["http_status_code"])
		assert.Equal(t, "NotFoundError", record["error_title"])
		assert.Equal(t, "Resource not found", record["error_message"])
		assert.Nil(t, record["output_data"])
		assert.Nil(t, record["response_headers"])
	})

	t.Run("unclassified error logged by runtime type name", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		req := httptest.NewRequest(http.MethodGet, "/explode", nil)
		_, buf, err := runLogging(t, req, func(c internal.Context) error {
			return boom
		})

		require.ErrorIs(t, err, boom)

		records := logRecords(t, buf)
		require.Len(t, records, 1)
		record := records[0]
		assert.Equal(t, "errorString", record["error_title"])
		assert.Equal(t, "boom", record["error_message"])
		assert.Nil(t, record["http_status_code"])
	})

	t.Run("post body and query captured as input", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/items?y=2", strings.NewReader(`{"x":1}`))
		req.Header.Set("Content-Type", "application/json")
		_, buf, err := runLogging(t, req, func(c internal.Context) error {
			return c.NoContent(http.StatusCreated)
		})

		require.NoError(t, err)

		records := logRecords(t, buf)
		require.Len(t, records, 1)
		inputJSON, ok := records[0]["input_data"].(string)
		require.True(t, ok)

		var input map[string]any
		require.NoError(t, json.Unmarshal([]byte(inputJSON), &input))
		assert.Equal(t, float64(1), input["x"])
		assert.Equal(t, "2", input["y"])
	})

	t.Run("get without input logs null input", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/plain", nil)
		_, buf, err := runLogging(t, req, func(c internal.Context) error {
			return c.NoContent(http.StatusOK)
		})

		require.NoError(t, err)

		records := logRecords(t, buf)
		require.Len(t, records, 1)
		assert.Nil(t, records[0]["input_data"])
	})

	t.Run("empty response body logs null output", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/empty", nil)
		_, buf, err := runLogging(t, req, func(c internal.Context) error {
			return c.NoContent(http.StatusNoContent)
		})

		require.NoError(t, err)

		records := logRecords(t, buf)
		require.Len(t, records, 1)
		assert.Nil(t, records[0]["output_data"])
	})

	t.Run("handler can still read the body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"x":1}`))
		rec, _, err := runLogging(t, req, func(c internal.Context) error {
			var payload map[string]any
			if decodeErr := json.NewDecoder(c.Request().Body).Decode(&payload); decodeErr != nil {
				return decodeErr
			}
			return c.JSON(http.StatusOK, payload)
		})

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"x":1}`, rec.Body.String())
	})

	t.Run("sink failure never masks the outcome", func(t *testing.T) {
		t.Parallel()

		log := slog.New(panicHandler{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/fragile", nil)
		c := newTestContext(rec, req)

		err := middlewares.Logging(log)(func(c internal.Context) error {
			return c.String(http.StatusOK, "still fine")
		})(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "still fine", rec.Body.String())
	})
}

// panicHandler is a logging sink that always fails.
type panicHandler struct{}

func (panicHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (panicHandler) Handle(context.Context, slog.Record) error { panic("sink down") }
func (h panicHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h panicHandler) WithGroup(string) slog.Handler           { return h }

package internal

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"net/http"
)

// ResponseWriter wraps http.ResponseWriter to track write state and optionally
// capture a bounded copy of the response body for the logging middleware.
type ResponseWriter struct {
	http.ResponseWriter
	body    *bytes.Buffer
	status  int
	size    int64
	bodyCap int64
	written bool
}

// NewResponseWriter creates a ResponseWriter with body capture disabled.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// CaptureBody enables body capture up to limit bytes. Bytes past the limit are
// still written to the client but not retained.
func (w *ResponseWriter) CaptureBody(limit int64) {
	if limit <= 0 {
		return
	}
	w.bodyCap = limit
	if w.body == nil {
		w.body = &bytes.Buffer{}
	}
}

// WriteHeader sends the response header once; later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.written {
		return
	}
	w.written = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(w.status)
	}
	if w.body != nil && int64(w.body.Len()) < w.bodyCap {
		remaining := w.bodyCap - int64(w.body.Len())
		if int64(len(b)) <= remaining {
			w.body.Write(b)
		} else {
			w.body.Write(b[:remaining])
		}
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status returns the response status code (200 until written otherwise).
func (w *ResponseWriter) Status() int {
	return w.status
}

// Size returns the number of body bytes written to the client.
func (w *ResponseWriter) Size() int64 {
	return w.size
}

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool {
	return w.written
}

// Body returns the captured body bytes, nil when capture is disabled.
func (w *ResponseWriter) Body() []byte {
	if w.body == nil {
		return nil
	}
	return w.body.Bytes()
}

// Flush implements http.Flusher when the underlying writer supports it.
func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker when the underlying writer supports it.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, fmt.Errorf("response writer does not support hijacking")
}

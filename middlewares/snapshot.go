package middlewares

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/backendlab/httpkit/internal"
	"github.com/backendlab/httpkit/pkg/jsonenc"
)

// RequestSnapshot is a logger-oriented projection of an inbound request.
// It is built once before the handler runs and is read-only afterward.
type RequestSnapshot struct {
	Method  string
	Path    string
	Headers string // JSON object of request headers
	Input   string // JSON object of merged body, query, and form input; "" when absent
}

// ResponseSnapshot is a logger-oriented projection of the outgoing response,
// built after the handler chain returns.
type ResponseSnapshot struct {
	Status  int
	Headers string
	Output  string // JSON-encoded body text; "" when the body is empty or not valid text
}

// buildRequestSnapshot captures method, path, headers, and a merged input
// mapping. Input sources merge in a fixed order: JSON body, then query
// parameters, then form fields; later sources overwrite earlier keys.
// Parsing failures never fail the request; they just leave the source out.
func buildRequestSnapshot(r *http.Request, bodyless map[string]struct{}, maxBody int64) RequestSnapshot {
	snap := RequestSnapshot{
		Method: r.Method,
		Path:   r.URL.Path,
	}
	if s, err := jsonenc.Serialize(flattenHeader(r.Header)); err == nil {
		snap.Headers = s
	}

	input := make(map[string]any)

	var body []byte
	if _, skip := bodyless[r.Method]; !skip {
		body = bufferBody(r, maxBody)
		if len(body) > 0 {
			var parsed map[string]any
			if err := json.Unmarshal(body, &parsed); err == nil {
				for k, v := range parsed {
					input[k] = v
				}
			}
		}
	}

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			input[key] = values[len(values)-1]
		}
	}

	mergeForm(input, r.Header.Get("Content-Type"), body)

	if len(input) == 0 {
		return snap
	}
	if s, err := jsonenc.Serialize(input); err == nil {
		snap.Input = s
	}
	return snap
}

// buildResponseSnapshot reads the captured body off the response writer. The
// stored output is the JSON encoding of the body text, so a JSON response
// body appears double-encoded in the log record.
func buildResponseSnapshot(w *internal.ResponseWriter) ResponseSnapshot {
	snap := ResponseSnapshot{Status: w.Status()}
	if s, err := jsonenc.Serialize(flattenHeader(w.Header())); err == nil {
		snap.Headers = s
	}

	body := w.Body()
	if len(body) == 0 || !utf8.Valid(body) {
		return snap
	}
	if encoded, err := json.Marshal(string(body)); err == nil {
		snap.Output = string(encoded)
	}
	return snap
}

func flattenHeader(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for key, values := range h {
		m[key] = strings.Join(values, ", ")
	}
	return m
}

type replayBody struct {
	io.Reader
	io.Closer
}

// bufferBody reads up to limit bytes of the request body and restores the
// stream so downstream handlers can read it again. Oversized bodies are not
// captured but are replayed intact.
func bufferBody(r *http.Request, limit int64) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		r.Body = replayBody{
			Reader: io.MultiReader(bytes.NewReader(buf), r.Body),
			Closer: r.Body,
		}
		return nil
	}
	if int64(len(buf)) > limit {
		r.Body = replayBody{
			Reader: io.MultiReader(bytes.NewReader(buf), r.Body),
			Closer: r.Body,
		}
		return nil
	}

	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(buf))
	return buf
}

// mergeForm merges form fields from the buffered body. File fields are
// reduced to their filenames under the "files" key; the key is set whenever
// the form has any field, even if no files were uploaded.
func mergeForm(input map[string]any, contentType string, body []byte) {
	if len(body) == 0 {
		return
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil || len(values) == 0 {
			return
		}
		for key, vals := range values {
			if len(vals) > 0 {
				input[key] = vals[len(vals)-1]
			}
		}
		input["files"] = []string{}

	case strings.HasPrefix(mediaType, "multipart/"):
		boundary := params["boundary"]
		if boundary == "" {
			return
		}
		files := []string{}
		found := false
		mr := multipart.NewReader(bytes.NewReader(body), boundary)
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			name := part.FormName()
			if name == "" {
				continue
			}
			found = true
			if filename := part.FileName(); filename != "" {
				files = append(files, filename)
				continue
			}
			if value, err := io.ReadAll(part); err == nil {
				input[name] = string(value)
			}
		}
		if found {
			input["files"] = files
		}
	}
}

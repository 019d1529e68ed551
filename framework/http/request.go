package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

const maxMemory = 32 << 20 // 32 MB

// Request wraps *http.Request with helpers for collecting validation input.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Input ────────────────────────────────────────────────────────────────────

// Input gathers every input value of the request into one flat map, ready
// for serializer.Validate. Later sources win on key clashes:
//
//  1. query string
//  2. body (JSON object, urlencoded or multipart form)
//  3. chi route parameters
//
// Repeated form or query keys keep their first value. JSON numbers arrive
// as json.Number so integers keep full precision. Nested JSON objects and
// arrays are passed on as their raw JSON text.
func (req *Request) Input() (map[string]any, error) {
	in := make(map[string]any)
	for k, v := range req.raw.URL.Query() {
		if len(v) > 0 {
			in[k] = v[0]
		}
	}

	ct := req.ContentType()
	switch {
	case strings.Contains(ct, "application/json"):
		if err := req.inputJSON(in); err != nil {
			return nil, err
		}
	case strings.Contains(ct, "multipart/form-data"):
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return nil, err
		}
		mergeValues(in, req.raw.MultipartForm.Value)
	case strings.Contains(ct, "application/x-www-form-urlencoded"):
		if err := req.raw.ParseForm(); err != nil {
			return nil, err
		}
		mergeValues(in, req.raw.PostForm)
	}

	if rctx := chi.RouteContext(req.raw.Context()); rctx != nil {
		for i, k := range rctx.URLParams.Keys {
			if k == "*" || i >= len(rctx.URLParams.Values) {
				continue
			}
			in[k] = rctx.URLParams.Values[i]
		}
	}
	return in, nil
}

func (req *Request) inputJSON(in map[string]any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return fmt.Errorf("request body: %w", err)
	}
	if fields == nil {
		return errors.New("request body: expected a JSON object")
	}
	for k, raw := range fields {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
			in[k] = string(raw)
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("request body: field %q: %w", k, err)
		}
		in[k] = v
	}
	return nil
}

func mergeValues(in map[string]any, values map[string][]string) {
	for k, v := range values {
		if len(v) > 0 {
			in[k] = v[0]
		}
	}
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}

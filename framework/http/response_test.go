package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"

	gohttp "github.com/km-arc/go-serializer/framework/http"
	"github.com/km-arc/go-serializer/framework/serializer"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q want application/json", ct)
	}
	if m := decodeJSON(t, rr); m["key"] != "val" {
		t.Errorf("body key: got %v want val", m["key"])
	}
}

func TestResponse_Success(t *testing.T) {
	res, rr := newResponse(t)
	res.Success(map[string]any{"id": float64(1)})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	data, ok := decodeJSON(t, rr)["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data envelope")
	}
	if data["id"] != float64(1) {
		t.Errorf("data.id: got %v want 1", data["id"])
	}
}

// ── Errors ───────────────────────────────────────────────────────────────────

func TestResponse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		send    func(*gohttp.Response)
		code    int
		message string
	}{
		{"Error", func(r *gohttp.Response) { r.Error(http.StatusBadRequest, "bad input") }, 400, "bad input"},
		{"NotFound", func(r *gohttp.Response) { r.NotFound() }, 404, "Not found."},
		{"NotFoundCustom", func(r *gohttp.Response) { r.NotFound("no schema") }, 404, "no schema"},
		{"ServerError", func(r *gohttp.Response) { r.ServerError() }, 500, "Server Error."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			tt.send(res)
			if rr.Code != tt.code {
				t.Errorf("status: got %d want %d", rr.Code, tt.code)
			}
			if m := decodeJSON(t, rr); m["message"] != tt.message {
				t.Errorf("message: got %v want %q", m["message"], tt.message)
			}
		})
	}
}

func TestResponse_ValidationError(t *testing.T) {
	res, rr := newResponse(t)
	res.ValidationError(&serializer.FieldError{
		Field:   "age",
		Kind:    serializer.ErrOutOfRange,
		Message: "parameter age not valid",
		Value:   int64(12),
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d want 422", rr.Code)
	}
	m := decodeJSON(t, rr)
	want := map[string]any{"message": "parameter age not valid", "field": "age", "kind": "out_of_range"}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("%s: got %v want %v", k, m[k], v)
		}
	}
	if _, ok := m["value"]; ok {
		t.Error("rejected value must not be echoed")
	}
}

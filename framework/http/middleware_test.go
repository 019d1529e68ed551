package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-serializer/framework/http"
	"github.com/km-arc/go-serializer/framework/serializer"
)

func signupHandler(t *testing.T) http.Handler {
	t.Helper()
	schema := serializer.NewSchema("signup").
		Add("email", serializer.Email(serializer.Required())).
		Add("age", serializer.Integer(serializer.MinValue(18))).
		Add("newsletter", serializer.Boolean(serializer.Default(false)))

	return gohttp.Validated(serializer.New(schema))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gohttp.NewResponse(w).Success(gohttp.Data(r))
	}))
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestValidated_PassesCoercedData(t *testing.T) {
	rr := post(signupHandler(t), `{"email":"a@example.com","age":"21"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	data := decodeJSON(t, rr)["data"].(map[string]any)
	assert.Equal(t, "a@example.com", data["email"])
	assert.Equal(t, float64(21), data["age"])
	assert.Equal(t, false, data["newsletter"])
}

func TestValidated_RejectsWith422(t *testing.T) {
	tests := []struct {
		name, body, field, kind string
	}{
		{"missing", `{"age":30}`, "email", "required"},
		{"bad email", `{"email":"nope"}`, "email", "pattern_mismatch"},
		{"too young", `{"email":"a@example.com","age":12}`, "age", "out_of_range"},
		{"not a number", `{"email":"a@example.com","age":"x"}`, "age", "type_mismatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(signupHandler(t), tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			m := decodeJSON(t, rr)
			assert.Equal(t, tt.field, m["field"])
			assert.Equal(t, tt.kind, m["kind"])
		})
	}
}

func TestValidated_BadBodyIs400(t *testing.T) {
	rr := post(signupHandler(t), `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestData_OutsideMiddleware(t *testing.T) {
	assert.Nil(t, gohttp.Data(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestValidated_JSONFieldScalars(t *testing.T) {
	schema := serializer.NewSchema("hook").
		Add("meta", serializer.JSON(serializer.Required())).
		Add("count", serializer.JSON())
	h := gohttp.Validated(serializer.New(schema))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gohttp.NewResponse(w).Success(gohttp.Data(r))
	}))

	rr := post(h, `{"meta":true,"count":3}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := decodeJSON(t, rr)["data"].(map[string]any)
	assert.Equal(t, true, data["meta"])
	assert.Equal(t, float64(3), data["count"])
}

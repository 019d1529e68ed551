package serializer_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-serializer/framework/serializer"
)

func signupSchema() *serializer.Schema {
	return serializer.NewSchema("signup").
		Add("name", serializer.Char(serializer.Required(), serializer.MinLength(2), serializer.MaxLength(100))).
		Add("email", serializer.Email(serializer.Required())).
		Add("age", serializer.Integer(serializer.MinValue(18), serializer.MaxValue(130))).
		Add("newsletter", serializer.Boolean(serializer.Default(false))).
		Add("plan", serializer.Choice(serializer.Choices("free", "pro"), serializer.Default("free")))
}

// ── IsValid ──────────────────────────────────────────────────────────────────

func TestSerializer_IsValid(t *testing.T) {
	s := serializer.New(signupSchema())

	ok := s.IsValid(map[string]any{
		"name":       "Alice",
		"email":      "alice@example.com",
		"age":        "30",
		"newsletter": "1",
	})
	require.True(t, ok, s.ErrorMessage())
	assert.Empty(t, s.ErrorMessage())
	assert.NoError(t, s.Err())
	assert.Equal(t, map[string]any{
		"name":       "Alice",
		"email":      "alice@example.com",
		"age":        int64(30),
		"newsletter": true,
		"plan":       "free",
	}, s.Data())
}

func TestSerializer_FailFastInDeclarationOrder(t *testing.T) {
	schema := serializer.NewSchema("pair").
		Add("first", serializer.Integer(serializer.Required())).
		Add("second", serializer.Integer(serializer.Required()))

	var seen []string
	probe := serializer.ObserverFunc(func(_ string, err *serializer.FieldError) {
		if err != nil {
			seen = append(seen, err.Field)
		}
	})
	s := serializer.New(schema, serializer.WithObserver(probe))

	require.False(t, s.IsValid(map[string]any{}))
	assert.Equal(t, "parameter first is required", s.ErrorMessage())
	assert.Empty(t, s.Data())
	assert.Equal(t, []string{"first"}, seen, "second field must not be reported")
}

func TestSerializer_RequiredWinsOverOtherFields(t *testing.T) {
	s := serializer.New(signupSchema())
	require.False(t, s.IsValid(map[string]any{"name": "Alice", "age": "5"}))
	assert.Equal(t, "parameter email is required", s.ErrorMessage())
	assert.ErrorIs(t, s.Err(), serializer.ErrRequired)
}

func TestSerializer_Idempotent(t *testing.T) {
	s := serializer.New(signupSchema())
	inputs := []map[string]any{
		{"name": "Alice", "email": "alice@example.com"},
		{"name": "A", "email": "alice@example.com"},
	}
	for _, in := range inputs {
		first := s.IsValid(in)
		firstData, firstMsg := s.Data(), s.ErrorMessage()

		second := s.IsValid(in)
		assert.Equal(t, first, second)
		assert.Equal(t, firstData, s.Data())
		assert.Equal(t, firstMsg, s.ErrorMessage())
	}
}

func TestSerializer_StateResetBetweenCalls(t *testing.T) {
	s := serializer.New(signupSchema())

	require.False(t, s.IsValid(map[string]any{}))
	require.NotEmpty(t, s.ErrorMessage())

	require.True(t, s.IsValid(map[string]any{"name": "Bob", "email": "bob@example.com"}))
	assert.Empty(t, s.ErrorMessage())
	assert.Equal(t, "Bob", s.Data()["name"])

	require.False(t, s.IsValid(map[string]any{"name": "Bob"}))
	assert.Empty(t, s.Data())
}

func TestSerializer_UpdateHook(t *testing.T) {
	schema := serializer.NewSchema("order").
		Add("quantity", serializer.Integer(serializer.Required(), serializer.MinValue(1))).
		Add("total", serializer.Decimal(serializer.Required(), serializer.DecimalPlaces(2)))

	s := serializer.New(schema, serializer.WithUpdate(func(in map[string]any) {
		if _, ok := in["total"]; !ok {
			in["total"] = "0.00"
		}
	}))

	require.True(t, s.IsValid(map[string]any{"quantity": "2"}), s.ErrorMessage())
	assert.True(t, s.Data()["total"].(decimal.Decimal).IsZero())
}

func TestSerializer_UpdateHookWithNilInput(t *testing.T) {
	schema := serializer.NewSchema("stamp").Add("at", serializer.DateTime(serializer.Required()))
	s := serializer.New(schema, serializer.WithUpdate(func(in map[string]any) {
		in["at"] = "2024-01-15 08:00:00"
	}))
	require.True(t, s.IsValid(nil), s.ErrorMessage())
	assert.Equal(t, time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC), s.Data()["at"])
}

func TestSerializer_SnapshotsSchema(t *testing.T) {
	schema := serializer.NewSchema("grow").Add("a", serializer.Integer())
	s := serializer.New(schema)
	schema.Add("b", serializer.Integer(serializer.Required()))

	require.True(t, s.IsValid(map[string]any{}))
	assert.Equal(t, []string{"a", "b"}, schema.Names())
	assert.Len(t, s.Data(), 1)
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestSerializer_ValidateDoesNotTouchState(t *testing.T) {
	s := serializer.New(signupSchema())
	require.True(t, s.IsValid(map[string]any{"name": "Alice", "email": "alice@example.com"}))

	_, err := s.Validate(map[string]any{})
	require.Error(t, err)
	assert.Empty(t, s.ErrorMessage(), "IsValid state must survive Validate")
	assert.Equal(t, "Alice", s.Data()["name"])
}

func TestSerializer_ValidateConcurrent(t *testing.T) {
	s := serializer.New(signupSchema())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := map[string]any{"name": "Alice", "email": "alice@example.com"}
			if i%2 == 1 {
				delete(in, "email")
			}
			_, err := s.Validate(in)
			if i%2 == 1 {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()
}

func TestSerializer_CustomFieldError(t *testing.T) {
	schema := serializer.NewSchema("custom").Add("x", failingField{})
	_, err := serializer.New(schema).Validate(map[string]any{"x": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, serializer.ErrMalformed)
	assert.Equal(t, "boom", err.Error())
}

type failingField struct{}

func (failingField) Validate(string, map[string]any) (any, error) { return nil, errors.New("boom") }
func (failingField) Kind() string                                 { return "failing" }
func (failingField) Required() bool                               { return false }

// ── logging ──────────────────────────────────────────────────────────────────

func TestSerializer_LogsFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := serializer.New(signupSchema(), serializer.WithLogger(zap.New(core)))

	require.False(t, s.IsValid(map[string]any{"name": "Alice", "email": "nope"}))
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "signup", fields["schema"])
	assert.Equal(t, "email", fields["field"])
	assert.Equal(t, "pattern_mismatch", fields["kind"])
}

// ── schema declaration ───────────────────────────────────────────────────────

func TestSchema_RejectsReservedAndDuplicateNames(t *testing.T) {
	assert.Panics(t, func() { serializer.NewSchema("s").Add("_internal", serializer.Integer()) })
	assert.Panics(t, func() { serializer.NewSchema("s").Add("", serializer.Integer()) })
	assert.Panics(t, func() {
		serializer.NewSchema("s").Add("a", serializer.Integer()).Add("a", serializer.Char())
	})
}

func TestSchema_Lookup(t *testing.T) {
	schema := signupSchema()
	f, ok := schema.Field("email")
	require.True(t, ok)
	assert.Equal(t, serializer.KindEmail, f.Kind())
	assert.True(t, f.Required())

	_, ok = schema.Field("missing")
	assert.False(t, ok)
	assert.Equal(t, 5, schema.Len())
	assert.Equal(t, "signup", serializer.New(schema).Schema())
}

// ── Decode ───────────────────────────────────────────────────────────────────

func TestSerializer_Decode(t *testing.T) {
	schema := serializer.NewSchema("profile").
		Add("name", serializer.Char(serializer.Required(), serializer.MaxLength(20))).
		Add("age", serializer.Integer()).
		Add("balance", serializer.Decimal()).
		Add("born", serializer.Date()).
		Add("avatar", serializer.Base64())

	var out struct {
		Name    string          `serializer:"name"`
		Age     int             `serializer:"age"`
		Balance decimal.Decimal `serializer:"balance"`
		Born    time.Time       `serializer:"born"`
		Avatar  []byte          `serializer:"avatar"`
	}

	s := serializer.New(schema)
	require.True(t, s.IsValid(map[string]any{
		"name":    "Alice",
		"age":     "41",
		"balance": "10.50",
		"born":    "1983-05-02",
		"avatar":  "aGk=",
	}), s.ErrorMessage())
	require.NoError(t, s.Decode(&out))

	assert.Equal(t, "Alice", out.Name)
	assert.Equal(t, 41, out.Age)
	assert.True(t, out.Balance.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, 1983, out.Born.Year())
	assert.Equal(t, []byte("hi"), out.Avatar)
}

func TestSerializer_DecodeAfterFailure(t *testing.T) {
	s := serializer.New(signupSchema())
	require.False(t, s.IsValid(map[string]any{}))

	var out struct{ Name string }
	err := s.Decode(&out)
	assert.ErrorIs(t, err, serializer.ErrRequired)
}

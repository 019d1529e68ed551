package serializer

import (
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field validates and coerces the value stored under one input key.
//
// Validate never panics on bad input: on success it returns the coerced
// value and a nil error, on failure a nil value and a *FieldError.
type Field interface {
	Validate(name string, input map[string]any) (any, error)
	Kind() string
	Required() bool
}

// Kind names, as used in schema files.
const (
	KindChar     = "char"
	KindInteger  = "integer"
	KindDecimal  = "decimal"
	KindBoolean  = "boolean"
	KindDate     = "date"
	KindDateTime = "datetime"
	KindEmail    = "email"
	KindURL      = "url"
	KindBase64   = "base64"
	KindJSON     = "json"
	KindChoice   = "choice"
)

func (s *spec) Required() bool { return s.required }

// check runs the required/default decision shared by every kind and hands
// present values to run.
func (s *spec) check(name string, input map[string]any, run func(string, any) (any, error)) (any, error) {
	v, ok := input[name]
	if s.required && !ok {
		return nil, missing(name)
	}
	if !s.required && v == nil {
		return s.defaultValue(), nil
	}
	return run(name, v)
}

// defaultValue returns Default, shallow-copying slice and map defaults so
// callers never share them. Other reference types are returned as is.
func (s *spec) defaultValue() any {
	switch d := s.def.(type) {
	case []any:
		return slices.Clone(d)
	case map[string]any:
		return maps.Clone(d)
	}
	return s.def
}

func (s *spec) invalid(name string, kind ErrorKind, v any) error {
	msg := s.errorMessage
	if msg == "" {
		msg = fmt.Sprintf("parameter %s not valid", name)
	}
	return &FieldError{Field: name, Kind: kind, Message: msg, Value: v}
}

// inRange reports whether d satisfies whichever inclusive bounds are set.
func (s *spec) inRange(d decimal.Decimal) bool {
	if s.minValue != nil && d.LessThan(*s.minValue) {
		return false
	}
	if s.maxValue != nil && d.GreaterThan(*s.maxValue) {
		return false
	}
	return true
}

// ── input helpers ────────────────────────────────────────────────────────────

// text returns the textual form of v. Non-text scalars are rejected.
func text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return integer(float64(n))
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	s, ok := text(v)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// numeral returns the decimal text of v, keeping the form the caller wrote
// for strings so digit counts can be checked.
func numeral(v any) (string, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n.String(), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	}
	if s, ok := text(v); ok {
		return strings.TrimSpace(s), true
	}
	if i, ok := integer(v); ok {
		return strconv.FormatInt(i, 10), true
	}
	return "", false
}

// matchPrefix reports whether re matches s starting at its first byte.
func matchPrefix(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

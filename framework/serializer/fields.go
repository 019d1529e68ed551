package serializer

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

var (
	emailPattern = regexp.MustCompile(`^(\w-*\.*)+@(\w-?)+(\.\w{2,})+$`)
	urlPattern   = regexp.MustCompile(`^(https?|ftp|file)://[-A-Za-z0-9+&@#/%?=~_|!:,.;]+[-A-Za-z0-9+&@#/%=~_|]`)
)

// ── Char ─────────────────────────────────────────────────────────────────────

// CharField accepts text. With a Regexp the text must match it; otherwise its
// rune length must lie within the configured bounds. A char field with
// neither a Regexp nor a length bound accepts nothing.
type CharField struct{ spec }

func Char(opts ...Option) *CharField { return &CharField{newSpec(opts)} }

func (f *CharField) Kind() string { return KindChar }

func (f *CharField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, f.run)
}

func (f *CharField) run(name string, v any) (any, error) {
	s, ok := text(v)
	if !ok {
		return nil, f.invalid(name, ErrTypeMismatch, v)
	}
	if f.re != nil {
		if matchPrefix(f.re, s) {
			return s, nil
		}
		return nil, f.invalid(name, ErrPatternMismatch, v)
	}
	if f.minLength == nil && f.maxLength == nil {
		return nil, f.invalid(name, ErrOutOfRange, v)
	}
	n := utf8.RuneCountInString(s)
	if f.minLength != nil && n < *f.minLength || f.maxLength != nil && n > *f.maxLength {
		return nil, f.invalid(name, ErrOutOfRange, v)
	}
	return s, nil
}

// ── Integer ──────────────────────────────────────────────────────────────────

// IntegerField coerces to int64.
type IntegerField struct{ spec }

func Integer(opts ...Option) *IntegerField { return &IntegerField{newSpec(opts)} }

func (f *IntegerField) Kind() string { return KindInteger }

func (f *IntegerField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, f.run)
}

func (f *IntegerField) run(name string, v any) (any, error) {
	n, ok := integer(v)
	if !ok {
		return nil, f.invalid(name, ErrTypeMismatch, v)
	}
	if !f.inRange(decimal.NewFromInt(n)) {
		return nil, f.invalid(name, ErrOutOfRange, v)
	}
	return n, nil
}

// ── Decimal ──────────────────────────────────────────────────────────────────

// DecimalField coerces to decimal.Decimal. The written form is checked
// before parsing: a fractional part may have at most DecimalPlaces digits,
// a whole number at most MaxDigits digits.
type DecimalField struct{ spec }

func Decimal(opts ...Option) *DecimalField { return &DecimalField{newSpec(opts)} }

func (f *DecimalField) Kind() string { return KindDecimal }

func (f *DecimalField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, f.run)
}

func (f *DecimalField) run(name string, v any) (any, error) {
	s, ok := numeral(v)
	if !ok {
		return nil, f.invalid(name, ErrTypeMismatch, v)
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		if f.decimalPlaces != nil && len(s)-i-1 > *f.decimalPlaces {
			return nil, f.invalid(name, ErrOutOfRange, v)
		}
	} else if f.maxDigits != nil && digits(s) > *f.maxDigits {
		return nil, f.invalid(name, ErrOutOfRange, v)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, f.invalid(name, ErrMalformed, v)
	}
	if !f.inRange(d) {
		return nil, f.invalid(name, ErrOutOfRange, v)
	}
	return d, nil
}

func digits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// ── Boolean ──────────────────────────────────────────────────────────────────

// BooleanField maps "0", "false" and "null" to false and anything else to
// true. Go bool values are kept as they are.
type BooleanField struct{ spec }

func Boolean(opts ...Option) *BooleanField { return &BooleanField{newSpec(opts)} }

func (f *BooleanField) Kind() string { return KindBoolean }

func (f *BooleanField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, f.run)
}

func (f *BooleanField) run(_ string, v any) (any, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	switch s, _ := text(v); s {
	case "0", "false", "null":
		return false, nil
	}
	return true, nil
}

// ── Date / DateTime ──────────────────────────────────────────────────────────

// DateField parses text with Pattern (default "%Y-%m-%d") into a time.Time.
type DateField struct {
	spec
	layout string
}

func Date(opts ...Option) *DateField {
	s := newSpec(opts)
	if s.pattern == "" {
		s.pattern = DefaultDatePattern
	}
	return &DateField{spec: s, layout: mustLayout(s.pattern)}
}

func (f *DateField) Kind() string { return KindDate }

func (f *DateField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, func(name string, v any) (any, error) {
		return parseTime(&f.spec, f.layout, name, v)
	})
}

// DateTimeField parses text with Pattern (default "%Y-%m-%d %H:%M:%S").
type DateTimeField struct {
	spec
	layout string
}

func DateTime(opts ...Option) *DateTimeField {
	s := newSpec(opts)
	if s.pattern == "" {
		s.pattern = DefaultDateTimePattern
	}
	return &DateTimeField{spec: s, layout: mustLayout(s.pattern)}
}

func (f *DateTimeField) Kind() string { return KindDateTime }

func (f *DateTimeField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, func(name string, v any) (any, error) {
		return parseTime(&f.spec, f.layout, name, v)
	})
}

func parseTime(s *spec, layout, name string, v any) (any, error) {
	str, ok := text(v)
	if !ok {
		return nil, s.invalid(name, ErrTypeMismatch, v)
	}
	if str == "" {
		return nil, s.invalid(name, ErrMalformed, v)
	}
	t, err := time.Parse(layout, str)
	if err != nil {
		return nil, s.invalid(name, ErrMalformed, v)
	}
	return t, nil
}

// ── Email / URL ──────────────────────────────────────────────────────────────

type EmailField struct{ spec }

func Email(opts ...Option) *EmailField {
	s := newSpec(opts)
	if s.re == nil {
		s.re = emailPattern
	}
	return &EmailField{s}
}

func (f *EmailField) Kind() string { return KindEmail }

func (f *EmailField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, func(name string, v any) (any, error) {
		return matchText(&f.spec, name, v)
	})
}

type URLField struct{ spec }

func URL(opts ...Option) *URLField {
	s := newSpec(opts)
	if s.re == nil {
		s.re = urlPattern
	}
	return &URLField{s}
}

func (f *URLField) Kind() string { return KindURL }

func (f *URLField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, func(name string, v any) (any, error) {
		return matchText(&f.spec, name, v)
	})
}

func matchText(s *spec, name string, v any) (any, error) {
	str, ok := text(v)
	if !ok {
		return nil, s.invalid(name, ErrTypeMismatch, v)
	}
	if !matchPrefix(s.re, str) {
		return nil, s.invalid(name, ErrPatternMismatch, v)
	}
	return str, nil
}

// ── Base64 ───────────────────────────────────────────────────────────────────

// Base64Field decodes padded standard base64 into []byte.
type Base64Field struct{ spec }

func Base64(opts ...Option) *Base64Field { return &Base64Field{newSpec(opts)} }

func (f *Base64Field) Kind() string { return KindBase64 }

func (f *Base64Field) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, f.run)
}

func (f *Base64Field) run(name string, v any) (any, error) {
	s, ok := text(v)
	if !ok {
		return nil, f.invalid(name, ErrTypeMismatch, v)
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, f.invalid(name, ErrMalformed, v)
	}
	return b, nil
}

// ── JSON ─────────────────────────────────────────────────────────────────────

// JSONField decodes JSON text into an untyped Go value. Go bool and
// float64 values are taken as already decoded.
type JSONField struct{ spec }

func JSON(opts ...Option) *JSONField {
	s := newSpec(opts)
	if s.decodeJSON == nil {
		s.decodeJSON = json.Unmarshal
	}
	return &JSONField{s}
}

func (f *JSONField) Kind() string { return KindJSON }

func (f *JSONField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, f.run)
}

func (f *JSONField) run(name string, v any) (any, error) {
	// Already-decoded JSON scalars, e.g. from a JSON request body.
	switch v.(type) {
	case bool, float64:
		return v, nil
	}
	s, ok := text(v)
	if !ok {
		return nil, f.invalid(name, ErrTypeMismatch, v)
	}
	var out any
	if err := f.decodeJSON([]byte(s), &out); err != nil {
		return nil, f.invalid(name, ErrMalformed, v)
	}
	return out, nil
}

// ── Choice ───────────────────────────────────────────────────────────────────

// ChoiceField accepts values equal to one of its Choices. A scalar choice
// also matches input of another Go type with the same value, so the choice 1
// accepts "1", json.Number("1") and int64(1); the declared choice is
// returned in that case.
type ChoiceField struct{ spec }

func Choice(opts ...Option) *ChoiceField { return &ChoiceField{newSpec(opts)} }

func (f *ChoiceField) Kind() string { return KindChoice }

func (f *ChoiceField) Validate(name string, input map[string]any) (any, error) {
	return f.check(name, input, f.run)
}

func (f *ChoiceField) run(name string, v any) (any, error) {
	for _, c := range f.choices {
		if reflect.DeepEqual(c, v) {
			return v, nil
		}
	}
	for _, c := range f.choices {
		if looseEqual(c, v) {
			return c, nil
		}
	}
	return nil, f.invalid(name, ErrOutOfRange, v)
}

func looseEqual(choice, v any) bool {
	switch c := choice.(type) {
	case string:
		s, ok := scalarText(v)
		return ok && s == c
	case bool:
		s, ok := scalarText(v)
		return ok && s == strconv.FormatBool(c)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, decimal.Decimal:
		cs, _ := numeral(choice)
		vs, ok := numeral(v)
		if !ok {
			return false
		}
		cd, err := decimal.NewFromString(cs)
		if err != nil {
			return false
		}
		vd, err := decimal.NewFromString(vs)
		return err == nil && cd.Equal(vd)
	}
	return false
}

// scalarText is text extended to Go booleans and numbers.
func scalarText(v any) (string, bool) {
	if s, ok := text(v); ok {
		return s, true
	}
	switch v.(type) {
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v), true
	}
	return "", false
}

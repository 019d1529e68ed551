package serializer

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/shopspring/decimal"
)

// Option configures a field at declaration time. Options that do not apply
// to a field's kind are ignored by it.
//
//	serializer.Integer(serializer.Required(), serializer.MinValue(1), serializer.MaxValue(10))
type Option func(*spec)

// spec is the immutable configuration captured when a field is built.
// A nil pointer means the constraint was never set.
type spec struct {
	required     bool
	def          any
	errorMessage string

	minLength *int
	maxLength *int

	minValue *decimal.Decimal
	maxValue *decimal.Decimal

	maxDigits     *int
	decimalPlaces *int

	choices []any
	pattern string
	re      *regexp.Regexp

	decodeJSON func([]byte, any) error
}

func newSpec(opts []Option) spec {
	var s spec
	for _, opt := range opts {
		opt(&s)
	}
	// Each field owns its choice set.
	s.choices = slices.Clone(s.choices)
	return s
}

// Required makes the field fail when its name is absent from the input.
func Required() Option {
	return func(s *spec) { s.required = true }
}

// Default is returned for an optional field whose value is absent or nil.
func Default(v any) Option {
	return func(s *spec) { s.def = v }
}

// ErrorMessage replaces "parameter <name> not valid" for this field.
// It does not replace the "is required" message.
func ErrorMessage(msg string) Option {
	return func(s *spec) { s.errorMessage = msg }
}

func MinLength(n int) Option {
	return func(s *spec) { s.minLength = &n }
}

func MaxLength(n int) Option {
	return func(s *spec) { s.maxLength = &n }
}

// MinValue sets an inclusive lower bound for integer and decimal fields.
func MinValue(n int64) Option {
	d := decimal.NewFromInt(n)
	return func(s *spec) { s.minValue = &d }
}

// MaxValue sets an inclusive upper bound for integer and decimal fields.
func MaxValue(n int64) Option {
	d := decimal.NewFromInt(n)
	return func(s *spec) { s.maxValue = &d }
}

// MinDecimal is MinValue for a bound written as decimal text ("0.01").
// It panics if text is not a decimal.
func MinDecimal(text string) Option {
	d := decimal.RequireFromString(text)
	return func(s *spec) { s.minValue = &d }
}

// MaxDecimal is MaxValue for a bound written as decimal text.
// It panics if text is not a decimal.
func MaxDecimal(text string) Option {
	d := decimal.RequireFromString(text)
	return func(s *spec) { s.maxValue = &d }
}

// MaxDigits limits the digit count of a decimal written without a fractional part.
func MaxDigits(n int) Option {
	return func(s *spec) { s.maxDigits = &n }
}

// DecimalPlaces limits the number of digits after the decimal point.
func DecimalPlaces(n int) Option {
	return func(s *spec) { s.decimalPlaces = &n }
}

// Choices sets the allowed values of a choice field. The values are copied.
func Choices(values ...any) Option {
	owned := slices.Clone(values)
	return func(s *spec) { s.choices = owned }
}

// Pattern sets the strftime-style format of a date or datetime field,
// e.g. "%d/%m/%Y". Unsupported directives make the field constructor panic.
func Pattern(format string) Option {
	return func(s *spec) { s.pattern = format }
}

// Regexp overrides the pattern of char, email and URL fields.
// The value must match from the start of the string.
func Regexp(re *regexp.Regexp) Option {
	return func(s *spec) { s.re = re }
}

// JSONDecoder replaces the parser used by JSON fields.
func JSONDecoder(fn func(data []byte, v any) error) Option {
	return func(s *spec) { s.decodeJSON = fn }
}

// boundOption builds MinValue/MaxValue from loosely typed input such as a
// YAML scalar.
func boundOption(v any, upper bool) (Option, error) {
	d, err := decimal.NewFromString(fmt.Sprint(v))
	if err != nil {
		return nil, fmt.Errorf("bound %v is not a number: %w", v, err)
	}
	if upper {
		return func(s *spec) { s.maxValue = &d }, nil
	}
	return func(s *spec) { s.minValue = &d }, nil
}

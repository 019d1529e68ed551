package serializer

import (
	"slices"

	"go.uber.org/zap"
)

// Observer is told the outcome of every validation run.
// err is nil when the input was valid.
type Observer interface {
	Observe(schema string, err *FieldError)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(schema string, err *FieldError)

func (f ObserverFunc) Observe(schema string, err *FieldError) { f(schema, err) }

type nopObserver struct{}

func (nopObserver) Observe(string, *FieldError) {}

// SerializerOption configures a Serializer.
type SerializerOption func(*Serializer)

// WithUpdate installs a hook that may modify the input in place before any
// field is validated, e.g. to inject derived values.
func WithUpdate(fn func(input map[string]any)) SerializerOption {
	return func(s *Serializer) {
		if fn != nil {
			s.update = fn
		}
	}
}

func WithLogger(l *zap.Logger) SerializerOption {
	return func(s *Serializer) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithObserver(o Observer) SerializerOption {
	return func(s *Serializer) {
		if o != nil {
			s.observer = o
		}
	}
}

// Serializer validates input maps against a Schema, stopping at the first
// failing field.
//
// Validate is safe for concurrent use. IsValid records its result on the
// Serializer for Data, Err and ErrorMessage, so a Serializer used through
// IsValid must not be shared between goroutines.
type Serializer struct {
	schema   string
	fields   []entry
	update   func(map[string]any)
	logger   *zap.Logger
	observer Observer

	data map[string]any
	err  *FieldError
}

// New snapshots the fields of schema. Fields added to schema afterwards are
// not seen by the returned Serializer.
func New(schema *Schema, opts ...SerializerOption) *Serializer {
	s := &Serializer{
		schema:   schema.name,
		fields:   slices.Clone(schema.fields),
		update:   func(map[string]any) {},
		logger:   zap.NewNop(),
		observer: nopObserver{},
		data:     map[string]any{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsValid validates input and records the outcome.
//
//	if !s.IsValid(input) {
//	    return s.ErrorMessage()
//	}
//	use(s.Data())
func (s *Serializer) IsValid(input map[string]any) bool {
	s.data, s.err = map[string]any{}, nil
	data, err := s.validate(input)
	if err != nil {
		s.err = err
		return false
	}
	s.data = data
	return true
}

// Validate returns the coerced values of every field, or the first
// *FieldError encountered.
func (s *Serializer) Validate(input map[string]any) (map[string]any, error) {
	data, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Serializer) validate(input map[string]any) (map[string]any, *FieldError) {
	if input == nil {
		input = map[string]any{}
	}
	s.update(input)

	data := make(map[string]any, len(s.fields))
	for _, e := range s.fields {
		v, err := e.field.Validate(e.name, input)
		if err != nil {
			fe := asFieldError(e.name, err)
			s.logger.Debug("validation failed",
				zap.String("schema", s.schema),
				zap.String("field", e.name),
				zap.Stringer("kind", fe.Kind),
			)
			s.observer.Observe(s.schema, fe)
			return nil, fe
		}
		data[e.name] = v
	}
	s.observer.Observe(s.schema, nil)
	return data, nil
}

// Data returns the coerced values from the last successful IsValid call.
// It is empty after a failed call.
func (s *Serializer) Data() map[string]any { return s.data }

// Err returns the failure from the last IsValid call, or nil.
func (s *Serializer) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// ErrorMessage returns the message of the last IsValid failure, or "".
func (s *Serializer) ErrorMessage() string {
	if s.err == nil {
		return ""
	}
	return s.err.Message
}

// Schema returns the name of the schema this Serializer validates.
func (s *Serializer) Schema() string { return s.schema }

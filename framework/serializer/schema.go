package serializer

import (
	"fmt"
	"strings"
)

// Schema is a named, ordered list of fields. Fields are validated in the
// order they were added.
//
//	signup := serializer.NewSchema("signup").
//	    Add("email", serializer.Email(serializer.Required())).
//	    Add("age", serializer.Integer(serializer.MinValue(18)))
type Schema struct {
	name   string
	fields []entry
	index  map[string]int
}

type entry struct {
	name  string
	field Field
}

func NewSchema(name string) *Schema {
	return &Schema{name: name, index: make(map[string]int)}
}

// Add declares a field. It panics if name is empty, starts with "_"
// (reserved) or is already declared.
func (s *Schema) Add(name string, f Field) *Schema {
	if err := s.add(name, f); err != nil {
		panic(err.Error())
	}
	return s
}

func (s *Schema) add(name string, f Field) error {
	switch {
	case name == "":
		return fmt.Errorf("serializer: schema %q: field name is empty", s.name)
	case strings.HasPrefix(name, "_"):
		return fmt.Errorf("serializer: schema %q: field name %q is reserved", s.name, name)
	case f == nil:
		return fmt.Errorf("serializer: schema %q: field %q is nil", s.name, name)
	}
	if _, dup := s.index[name]; dup {
		return fmt.Errorf("serializer: schema %q: field %q declared twice", s.name, name)
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, entry{name: name, field: f})
	return nil
}

func (s *Schema) Name() string { return s.name }

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, e := range s.fields {
		out[i] = e.name
	}
	return out
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].field, true
}

func (s *Schema) Len() int { return len(s.fields) }

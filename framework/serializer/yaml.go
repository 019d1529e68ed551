package serializer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// ── Schema files ─────────────────────────────────────────────────────────────
//
//	name: signup
//	fields:
//	  - name: email
//	    kind: email
//	    required: true
//	  - name: age
//	    kind: integer
//	    min_value: 18
//	  - name: plan
//	    kind: choice
//	    choices: [free, pro]
//	    default: free

type schemaFile struct {
	Name   string      `yaml:"name"`
	Fields []fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Name          string `yaml:"name"`
	Kind          string `yaml:"kind"`
	Required      bool   `yaml:"required"`
	Default       any    `yaml:"default"`
	ErrorMessage  string `yaml:"error_message"`
	MinLength     *int   `yaml:"min_length"`
	MaxLength     *int   `yaml:"max_length"`
	MinValue      any    `yaml:"min_value"`
	MaxValue      any    `yaml:"max_value"`
	MaxDigits     *int   `yaml:"max_digits"`
	DecimalPlaces *int   `yaml:"decimal_places"`
	Choices       []any  `yaml:"choices"`
	Pattern       string `yaml:"pattern"`
	Regexp        string `yaml:"regexp"`
}

var constructors = map[string]func(...Option) Field{
	KindChar:     func(o ...Option) Field { return Char(o...) },
	KindInteger:  func(o ...Option) Field { return Integer(o...) },
	KindDecimal:  func(o ...Option) Field { return Decimal(o...) },
	KindBoolean:  func(o ...Option) Field { return Boolean(o...) },
	KindDate:     func(o ...Option) Field { return Date(o...) },
	KindDateTime: func(o ...Option) Field { return DateTime(o...) },
	KindEmail:    func(o ...Option) Field { return Email(o...) },
	KindURL:      func(o ...Option) Field { return URL(o...) },
	KindBase64:   func(o ...Option) Field { return Base64(o...) },
	KindJSON:     func(o ...Option) Field { return JSON(o...) },
	KindChoice:   func(o ...Option) Field { return Choice(o...) },
}

// ParseYAML builds a Schema from a YAML document.
func ParseYAML(data []byte) (*Schema, error) {
	var doc schemaFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("serializer: empty schema document")
		}
		return nil, fmt.Errorf("serializer: parse schema: %w", err)
	}
	if doc.Name == "" {
		return nil, errors.New("serializer: schema has no name")
	}

	schema := NewSchema(doc.Name)
	for i, ff := range doc.Fields {
		f, err := ff.build()
		if err != nil {
			return nil, fmt.Errorf("serializer: schema %q: field #%d (%s): %w", doc.Name, i+1, ff.Name, err)
		}
		if err := schema.add(ff.Name, f); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

// LoadFile reads and parses one schema file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("serializer: %w", err)
	}
	s, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, sorted by file name.
// Two files declaring the same schema name is an error.
func LoadDir(dir string) ([]*Schema, error) {
	var paths []string
	for _, glob := range []string{"*.yaml", "*.yml"} {
		m, err := filepath.Glob(filepath.Join(dir, glob))
		if err != nil {
			return nil, fmt.Errorf("serializer: %w", err)
		}
		paths = append(paths, m...)
	}
	sort.Strings(paths)

	seen := make(map[string]string, len(paths))
	schemas := make([]*Schema, 0, len(paths))
	for _, p := range paths {
		s, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[s.Name()]; dup {
			return nil, fmt.Errorf("serializer: schema %q declared in %s and %s", s.Name(), prev, p)
		}
		seen[s.Name()] = p
		schemas = append(schemas, s)
	}
	return schemas, nil
}

func (ff fieldFile) build() (Field, error) {
	ctor, ok := constructors[ff.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", ff.Kind)
	}

	var opts []Option
	if ff.Required {
		opts = append(opts, Required())
	}
	if ff.Default != nil {
		opts = append(opts, Default(ff.Default))
	}
	if ff.ErrorMessage != "" {
		opts = append(opts, ErrorMessage(ff.ErrorMessage))
	}
	if ff.MinLength != nil {
		opts = append(opts, MinLength(*ff.MinLength))
	}
	if ff.MaxLength != nil {
		opts = append(opts, MaxLength(*ff.MaxLength))
	}
	if ff.MaxDigits != nil {
		opts = append(opts, MaxDigits(*ff.MaxDigits))
	}
	if ff.DecimalPlaces != nil {
		opts = append(opts, DecimalPlaces(*ff.DecimalPlaces))
	}
	for _, b := range []struct {
		v     any
		upper bool
	}{{ff.MinValue, false}, {ff.MaxValue, true}} {
		if b.v == nil {
			continue
		}
		opt, err := boundOption(b.v, b.upper)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	if len(ff.Choices) > 0 {
		opts = append(opts, Choices(ff.Choices...))
	}
	if ff.Pattern != "" {
		if _, err := Layout(ff.Pattern); err != nil {
			return nil, err
		}
		opts = append(opts, Pattern(ff.Pattern))
	}
	if ff.Regexp != "" {
		re, err := regexp.Compile(ff.Regexp)
		if err != nil {
			return nil, fmt.Errorf("regexp: %w", err)
		}
		opts = append(opts, Regexp(re))
	}
	return ctor(opts...), nil
}

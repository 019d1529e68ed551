package serializer

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag read by Decode.
const TagName = "serializer"

// Decode copies the data of the last successful IsValid call into out,
// which must be a pointer to a struct. Struct fields are matched by their
// `serializer:"name"` tag, or case-insensitively by field name.
//
//	var form struct {
//	    Email string `serializer:"email"`
//	    Age   int    `serializer:"age"`
//	}
//	if s.IsValid(input) {
//	    err := s.Decode(&form)
//	}
func (s *Serializer) Decode(out any) error {
	if s.err != nil {
		return s.err
	}
	return Decode(s.data, out)
}

// Decode copies validated data into out. See Serializer.Decode.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: TagName,
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("serializer: decode: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("serializer: decode: %w", err)
	}
	return nil
}

// Package serializer validates untyped input maps, such as decoded query
// parameters or form fields, against a declared schema of typed fields.
//
// # Declaring a schema
//
//	signup := serializer.NewSchema("signup").
//	    Add("name", serializer.Char(serializer.Required(), serializer.MaxLength(100))).
//	    Add("email", serializer.Email(serializer.Required())).
//	    Add("age", serializer.Integer(serializer.MinValue(18), serializer.MaxValue(130))).
//	    Add("newsletter", serializer.Boolean(serializer.Default(false)))
//
// Schemas may also be declared in YAML and loaded with ParseYAML, LoadFile or
// LoadDir.
//
// # Validating
//
//	s := serializer.New(signup)
//	if s.IsValid(map[string]any{"name": "Alice", "email": "alice@example.com", "age": "30"}) {
//	    s.Data()["age"] // int64(30)
//	}
//	if !s.IsValid(map[string]any{"name": "Alice", "email": "alice@example.com", "age": "12"}) {
//	    fmt.Println(s.ErrorMessage()) // "parameter age not valid"
//	}
//
// Fields run in declaration order and validation stops at the first failing
// field; only that failure is reported.
//
// # Field kinds
//
//   - Char: text; Regexp match, or rune length within MinLength/MaxLength
//   - Integer: int64; inclusive MinValue/MaxValue
//   - Decimal: decimal.Decimal; DecimalPlaces, MaxDigits, MinValue/MaxValue
//   - Boolean: "0", "false", "null" are false, anything else true
//   - Date: time.Time parsed with Pattern (default "%Y-%m-%d")
//   - DateTime: time.Time parsed with Pattern (default "%Y-%m-%d %H:%M:%S")
//   - Email: local@domain.tld
//   - URL: http, https, ftp or file URL
//   - Base64: []byte
//   - JSON: any, decoded JSON text
//   - Choice: one of Choices
//
// # Errors
//
// A required field missing from the input fails with "parameter <name> is
// required". Any other failure reports the field's ErrorMessage, or
// "parameter <name> not valid". Failures are *FieldError values and match
// their ErrorKind with errors.Is.
package serializer

package serializer

import (
	"errors"
	"fmt"
)

// ── Error kinds ──────────────────────────────────────────────────────────────

// ErrorKind classifies why a field rejected its value.
//
// It implements error so callers can match a kind with errors.Is:
//
//	if errors.Is(err, serializer.ErrRequired) { ... }
type ErrorKind int

const (
	ErrRequired ErrorKind = iota + 1
	ErrTypeMismatch
	ErrOutOfRange
	ErrPatternMismatch
	ErrMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrRequired:
		return "required"
	case ErrTypeMismatch:
		return "type_mismatch"
	case ErrOutOfRange:
		return "out_of_range"
	case ErrPatternMismatch:
		return "pattern_mismatch"
	case ErrMalformed:
		return "malformed"
	}
	return "unknown"
}

func (k ErrorKind) Error() string { return k.String() }

// ── FieldError ───────────────────────────────────────────────────────────────

// FieldError is the single failure reported by a field or a Serializer.
// Message is the human-readable text ("parameter age not valid").
type FieldError struct {
	Field   string
	Kind    ErrorKind
	Message string
	Value   any
}

func (e *FieldError) Error() string { return e.Message }

// Is reports whether target is this error's kind.
func (e *FieldError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func missing(name string) *FieldError {
	return &FieldError{
		Field:   name,
		Kind:    ErrRequired,
		Message: fmt.Sprintf("parameter %s is required", name),
	}
}

// asFieldError normalises errors returned by Field implementations.
// Fields built by this package always return *FieldError.
func asFieldError(name string, err error) *FieldError {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe
	}
	return &FieldError{Field: name, Kind: ErrMalformed, Message: err.Error()}
}

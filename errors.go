package modus

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/modus/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired      = "required"
	CodeInvalidChoice = "invalid_choice"
	CodeInvalidType   = "invalid_type"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeWrongLength   = "wrong_length"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
	CodeOverflow      = "overflow"
	CodeParseError    = "parse_error"
	// Cross-field rules (business semantics)
	CodeBusinessRule = "business_rule"
)

// ErrSkipField signals the chain executor to skip the remaining validators of a
// field without reporting an error. The built-in required check returns it for
// an absent optional value; custom validators may return it for the same
// purpose.
var ErrSkipField = errors.New("modus: skip remaining validators")

// FieldError carries the human-readable messages produced by one field's
// validator chain. Stop tells the executor to abort the remaining validators
// after collecting the messages.
type FieldError struct {
	Messages []string
	Stop     bool
}

func (e *FieldError) Error() string { return strings.Join(e.Messages, "; ") }

// NewFieldError builds a FieldError from literal messages. Custom validators
// use it to report soft constraint violations.
func NewFieldError(msgs ...string) *FieldError {
	return &FieldError{Messages: msgs}
}

// fieldErr renders a catalog message for code with the given params.
func fieldErr(code string, stop bool, params map[string]string) *FieldError {
	return &FieldError{Messages: []string{i18n.T(code, params)}, Stop: stop}
}

// SchemaError reports raw input that cannot be coerced into a field's target
// type at all. It is a hard failure: deserialization of the offending field
// aborts and the error propagates to the caller, never into the validation
// aggregate.
type SchemaError struct {
	Code    string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *SchemaError) Unwrap() error { return e.Cause }

func schemaErr(code string, params map[string]string) *SchemaError {
	return &SchemaError{Code: code, Message: i18n.T(code, params)}
}

// ModelError is the aggregate produced by Instance.Validate: one entry per
// failing field, holding that field's *FieldError, or a nested *ModelError for
// a nested-model field. A fresh value is built on every Validate call.
type ModelError struct {
	Fields map[string]error
}

// Error summarizes the first few entries.
func (e *ModelError) Error() string {
	if len(e.Fields) == 0 {
		return ""
	}
	const maxShown = 3
	names := e.sortedNames()
	b := &strings.Builder{}
	lim := len(names)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s: %s", names[i], e.Fields[names[i]].Error())
	}
	if len(names) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(names))
	}
	return b.String()
}

func (e *ModelError) sortedNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flatten renders the aggregate as plain data: []string per field, a nested
// map for nested-model fields. The result encodes directly to JSON.
func (e *ModelError) Flatten() map[string]any {
	out := make(map[string]any, len(e.Fields))
	for name, err := range e.Fields {
		switch fe := err.(type) {
		case *ModelError:
			out[name] = fe.Flatten()
		case *FieldError:
			out[name] = append([]string(nil), fe.Messages...)
		default:
			out[name] = []string{err.Error()}
		}
	}
	return out
}

// AsFieldError extracts a *FieldError from err using errors.As internally.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsSchemaError extracts a *SchemaError from err.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsModelError extracts a *ModelError from err.
func AsModelError(err error) (*ModelError, bool) {
	var me *ModelError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

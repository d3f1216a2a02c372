package modus

import (
	"encoding/json"
	"time"

	"github.com/reoring/modus/internal/isotime"
)

// DateTimeField holds a time.Time. Input may be an already-typed time.Time,
// an integer of epoch seconds, or lenient ISO-8601 text (see internal/isotime
// for the accepted forms). Serialization emits canonical ISO-8601 text with
// the value's own offset, so the absolute instant round-trips exactly.
type DateTimeField struct {
	core
}

// DateTime returns a new datetime field definition.
func DateTime() *DateTimeField {
	f := &DateTimeField{}
	f.init(f.checkType)
	return f
}

func (f *DateTimeField) Required() *DateTimeField         { f.markRequired(); return f }
func (f *DateTimeField) Default(v any) *DateTimeField     { f.setDefault(v); return f }
func (f *DateTimeField) Choices(vs ...any) *DateTimeField { f.setChoices(vs); return f }
func (f *DateTimeField) Validators(fns ...Validator) *DateTimeField {
	f.addValidators(fns)
	return f
}
func (f *DateTimeField) Sanitizers(fns ...Sanitizer) *DateTimeField {
	f.addSanitizers(fns)
	return f
}

func (f *DateTimeField) Clone() Field {
	c := DateTime()
	c.adopt(&f.core)
	return c
}

func (f *DateTimeField) Deserialize(v any) (any, error) {
	switch in := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return in, nil
	case string:
		t, err := isotime.Parse(in)
		if err != nil {
			return nil, &SchemaError{Code: CodeInvalidFormat, Message: in + " is not a valid datetime", Cause: err}
		}
		return t, nil
	case json.Number:
		sec, err := in.Int64()
		if err != nil {
			return nil, schemaErr(CodeInvalidFormat, map[string]string{"value": in.String(), "expected": "datetime"})
		}
		return time.Unix(sec, 0).UTC(), nil
	default:
		if sec, ok := asInt64(v); ok {
			return time.Unix(sec, 0).UTC(), nil
		}
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "datetime"})
	}
}

func (f *DateTimeField) Serialize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "datetime"})
	}
	return isotime.Format(t), nil
}

func (f *DateTimeField) checkType(v any) error {
	if _, ok := v.(time.Time); !ok {
		return fieldErr(CodeInvalidType, true, map[string]string{"expected": "datetime"})
	}
	return nil
}

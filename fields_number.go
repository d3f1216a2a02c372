package modus

import (
	"fmt"
	"strconv"
)

// IntegerField coerces loosely-typed numeric input to int64 and checks
// optional inclusive-exclusive bounds.
type IntegerField struct {
	core
	min *int64
	max *int64
}

// Integer returns a new integer field definition.
func Integer() *IntegerField {
	f := &IntegerField{}
	f.init(f.checkType, f.checkMin, f.checkMax)
	return f
}

func (f *IntegerField) Min(v int64) *IntegerField { f.min = &v; return f }
func (f *IntegerField) Max(v int64) *IntegerField { f.max = &v; return f }

func (f *IntegerField) Required() *IntegerField          { f.markRequired(); return f }
func (f *IntegerField) Default(v any) *IntegerField      { f.setDefault(v); return f }
func (f *IntegerField) Choices(vs ...any) *IntegerField  { f.setChoices(vs); return f }
func (f *IntegerField) Validators(fns ...Validator) *IntegerField {
	f.addValidators(fns)
	return f
}
func (f *IntegerField) Sanitizers(fns ...Sanitizer) *IntegerField {
	f.addSanitizers(fns)
	return f
}

func (f *IntegerField) Clone() Field {
	c := Integer()
	c.min, c.max = f.min, f.max
	c.adopt(&f.core)
	return c
}

func (f *IntegerField) Deserialize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	n, ok := asInt64(v)
	if !ok {
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "integer"})
	}
	return n, nil
}

func (f *IntegerField) Serialize(v any) (any, error) { return v, nil }

func (f *IntegerField) checkType(v any) error {
	if _, ok := asInt64(v); !ok {
		return fieldErr(CodeInvalidType, true, map[string]string{"expected": "integer"})
	}
	return nil
}

func (f *IntegerField) checkMin(v any) error {
	if f.min == nil {
		return nil
	}
	if n, ok := asInt64(v); ok && n < *f.min {
		return fieldErr(CodeTooSmall, false, map[string]string{
			"value": fmt.Sprint(v), "min": strconv.FormatInt(*f.min, 10),
		})
	}
	return nil
}

func (f *IntegerField) checkMax(v any) error {
	if f.max == nil {
		return nil
	}
	if n, ok := asInt64(v); ok && n > *f.max {
		return fieldErr(CodeTooBig, false, map[string]string{
			"value": fmt.Sprint(v), "max": strconv.FormatInt(*f.max, 10),
		})
	}
	return nil
}

// BooleanField accepts only boolean-typed values; there is no implicit
// truthiness coercion.
type BooleanField struct {
	core
}

// Boolean returns a new boolean field definition.
func Boolean() *BooleanField {
	f := &BooleanField{}
	f.init(f.checkType)
	return f
}

func (f *BooleanField) Required() *BooleanField         { f.markRequired(); return f }
func (f *BooleanField) Default(v any) *BooleanField     { f.setDefault(v); return f }
func (f *BooleanField) Choices(vs ...any) *BooleanField { f.setChoices(vs); return f }
func (f *BooleanField) Validators(fns ...Validator) *BooleanField {
	f.addValidators(fns)
	return f
}
func (f *BooleanField) Sanitizers(fns ...Sanitizer) *BooleanField {
	f.addSanitizers(fns)
	return f
}

func (f *BooleanField) Clone() Field {
	c := Boolean()
	c.adopt(&f.core)
	return c
}

func (f *BooleanField) Deserialize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if _, ok := v.(bool); !ok {
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "boolean"})
	}
	return v, nil
}

func (f *BooleanField) Serialize(v any) (any, error) { return v, nil }

func (f *BooleanField) checkType(v any) error {
	if _, ok := v.(bool); !ok {
		return fieldErr(CodeInvalidType, false, map[string]string{"expected": "boolean"})
	}
	return nil
}

// SnowflakeField holds a 64-bit unsigned id. It deserializes from anything
// integer-coercible but serializes to a decimal string, so text formats never
// lose precision on large ids.
type SnowflakeField struct {
	core
}

// Snowflake returns a new snowflake-id field definition.
func Snowflake() *SnowflakeField {
	f := &SnowflakeField{}
	f.init(f.checkType)
	return f
}

func (f *SnowflakeField) Required() *SnowflakeField         { f.markRequired(); return f }
func (f *SnowflakeField) Default(v any) *SnowflakeField     { f.setDefault(v); return f }
func (f *SnowflakeField) Choices(vs ...any) *SnowflakeField { f.setChoices(vs); return f }
func (f *SnowflakeField) Validators(fns ...Validator) *SnowflakeField {
	f.addValidators(fns)
	return f
}
func (f *SnowflakeField) Sanitizers(fns ...Sanitizer) *SnowflakeField {
	f.addSanitizers(fns)
	return f
}

func (f *SnowflakeField) Clone() Field {
	c := Snowflake()
	c.adopt(&f.core)
	return c
}

func (f *SnowflakeField) Deserialize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	u, ok := asUint64(v)
	if !ok {
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "snowflake id"})
	}
	return u, nil
}

func (f *SnowflakeField) Serialize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	u, ok := asUint64(v)
	if !ok {
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "snowflake id"})
	}
	return strconv.FormatUint(u, 10), nil
}

func (f *SnowflakeField) checkType(v any) error {
	if _, ok := asUint64(v); !ok {
		return fieldErr(CodeInvalidType, true, map[string]string{"expected": "snowflake id"})
	}
	return nil
}

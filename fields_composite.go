package modus

import (
	"fmt"
	"sort"
	"strconv"
)

// ListField applies an element field to every member of a sequence.
type ListField struct {
	core
	elem     Field
	minItems int
	maxItems int
}

// List returns a new list field definition over elem.
func List(elem Field) *ListField {
	f := &ListField{elem: elem, minItems: -1, maxItems: -1}
	f.init(f.checkType, f.checkBounds, f.checkElements)
	f.sans = []Sanitizer{f.sanitizeElements}
	return f
}

func (f *ListField) MinItems(n int) *ListField { f.minItems = n; return f }
func (f *ListField) MaxItems(n int) *ListField { f.maxItems = n; return f }

func (f *ListField) Required() *ListField         { f.markRequired(); return f }
func (f *ListField) Default(v any) *ListField     { f.setDefault(v); return f }
func (f *ListField) Choices(vs ...any) *ListField { f.setChoices(vs); return f }
func (f *ListField) Validators(fns ...Validator) *ListField {
	f.addValidators(fns)
	return f
}
func (f *ListField) Sanitizers(fns ...Sanitizer) *ListField {
	f.addSanitizers(fns)
	return f
}

func (f *ListField) Clone() Field {
	c := List(f.elem.Clone())
	c.minItems, c.maxItems = f.minItems, f.maxItems
	c.adopt(&f.core)
	return c
}

// Deserialize maps the element field over the input; a nil input becomes an
// empty sequence rather than staying absent.
func (f *ListField) Deserialize(v any) (any, error) {
	if v == nil {
		return []any{}, nil
	}
	in, ok := v.([]any)
	if !ok {
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "sequence"})
	}
	out := make([]any, len(in))
	for i, e := range in {
		de, err := f.elem.Deserialize(e)
		if err != nil {
			return nil, err
		}
		out[i] = de
	}
	return out, nil
}

func (f *ListField) Serialize(v any) (any, error) {
	if v == nil {
		return []any{}, nil
	}
	in, ok := v.([]any)
	if !ok {
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "sequence"})
	}
	out := make([]any, len(in))
	for i, e := range in {
		se, err := f.elem.Serialize(e)
		if err != nil {
			return nil, err
		}
		out[i] = se
	}
	return out, nil
}

func (f *ListField) checkType(v any) error {
	if _, ok := v.([]any); !ok {
		return fieldErr(CodeInvalidType, true, map[string]string{"expected": "sequence"})
	}
	return nil
}

func (f *ListField) checkBounds(v any) error {
	vs, _ := v.([]any)
	if f.minItems != -1 && len(vs) < f.minItems {
		return fieldErr(CodeTooShort, false, map[string]string{
			"value": fmt.Sprint(vs), "min": strconv.Itoa(f.minItems),
		})
	}
	if f.maxItems != -1 && len(vs) > f.maxItems {
		return fieldErr(CodeTooLong, false, map[string]string{
			"value": fmt.Sprint(vs), "max": strconv.Itoa(f.maxItems),
		})
	}
	return nil
}

// checkElements validates every element, folding the failures into this
// field's own error so one bad element never hides another.
func (f *ListField) checkElements(v any) error {
	vs, _ := v.([]any)
	var msgs []string
	for i, e := range vs {
		if err := f.elem.Validate(e); err != nil {
			msgs = append(msgs, prefixMessages(strconv.Itoa(i), err)...)
		}
	}
	if len(msgs) > 0 {
		return &FieldError{Messages: msgs}
	}
	return nil
}

func (f *ListField) sanitizeElements(v any) (any, error) {
	vs, ok := v.([]any)
	if !ok {
		return v, nil
	}
	out := make([]any, len(vs))
	for i, e := range vs {
		se, err := f.elem.Sanitize(e)
		if err != nil {
			return nil, err
		}
		out[i] = se
	}
	return out, nil
}

// prefixMessages rebases a child error's messages under an element label.
func prefixMessages(label string, err error) []string {
	if fe, ok := AsFieldError(err); ok {
		out := make([]string, len(fe.Messages))
		for i, m := range fe.Messages {
			out[i] = label + ": " + m
		}
		return out
	}
	return []string{label + ": " + err.Error()}
}

// KeyFunc derives the mapping key for a sequence element fed to a Dict field.
type KeyFunc func(elem any) (string, error)

// KeyField returns a KeyFunc that reads the named attribute of each element
// (a nested Instance or a plain mapping) and stringifies it.
func KeyField(name string) KeyFunc {
	return func(elem any) (string, error) {
		switch e := elem.(type) {
		case *Instance:
			return fmt.Sprint(e.Get(name)), nil
		case map[string]any:
			return fmt.Sprint(e[name]), nil
		default:
			return "", fmt.Errorf("cannot derive key %q from %T", name, elem)
		}
	}
}

// DictField applies an element field to every value of a mapping. Sequence
// input is accepted too: elements are deserialized first, then indexed by the
// configured key function.
type DictField struct {
	core
	elem       Field
	key        KeyFunc
	valuesOnly bool
}

// Dict returns a new dict field definition over elem.
func Dict(elem Field) *DictField {
	f := &DictField{elem: elem}
	f.init(f.checkType, f.checkElements)
	f.sans = []Sanitizer{f.sanitizeElements}
	return f
}

// Key sets the function used to index sequence input into the mapping.
func (f *DictField) Key(fn KeyFunc) *DictField { f.key = fn; return f }

// ValuesOnly makes Serialize emit the key-sorted sequence of values instead of
// a mapping.
func (f *DictField) ValuesOnly() *DictField { f.valuesOnly = true; return f }

func (f *DictField) Required() *DictField         { f.markRequired(); return f }
func (f *DictField) Default(v any) *DictField     { f.setDefault(v); return f }
func (f *DictField) Choices(vs ...any) *DictField { f.setChoices(vs); return f }
func (f *DictField) Validators(fns ...Validator) *DictField {
	f.addValidators(fns)
	return f
}
func (f *DictField) Sanitizers(fns ...Sanitizer) *DictField {
	f.addSanitizers(fns)
	return f
}

func (f *DictField) Clone() Field {
	c := Dict(f.elem.Clone())
	c.key = f.key
	c.valuesOnly = f.valuesOnly
	c.adopt(&f.core)
	return c
}

func (f *DictField) Deserialize(v any) (any, error) {
	switch in := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		out := make(map[string]any, len(in))
		for k, e := range in {
			de, err := f.elem.Deserialize(e)
			if err != nil {
				return nil, err
			}
			out[k] = de
		}
		return out, nil
	case []any:
		if f.key == nil {
			return nil, &SchemaError{Code: CodeParseError, Message: "dict field needs a key function for sequence input"}
		}
		out := make(map[string]any, len(in))
		for _, e := range in {
			de, err := f.elem.Deserialize(e)
			if err != nil {
				return nil, err
			}
			k, err := f.key(de)
			if err != nil {
				return nil, &SchemaError{Code: CodeParseError, Message: "cannot key dict element", Cause: err}
			}
			out[k] = de
		}
		return out, nil
	default:
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "mapping"})
	}
}

func (f *DictField) Serialize(v any) (any, error) {
	vs, _ := v.(map[string]any)
	out := make(map[string]any, len(vs))
	for k, e := range vs {
		se, err := f.elem.Serialize(e)
		if err != nil {
			return nil, err
		}
		out[k] = se
	}
	if !f.valuesOnly {
		return out, nil
	}
	keys := sortedKeys(out)
	seq := make([]any, 0, len(keys))
	for _, k := range keys {
		seq = append(seq, out[k])
	}
	return seq, nil
}

func (f *DictField) checkType(v any) error {
	if _, ok := v.(map[string]any); !ok {
		return fieldErr(CodeInvalidType, true, map[string]string{"expected": "mapping"})
	}
	return nil
}

func (f *DictField) checkElements(v any) error {
	vs, _ := v.(map[string]any)
	var msgs []string
	for _, k := range sortedKeys(vs) {
		if err := f.elem.Validate(vs[k]); err != nil {
			msgs = append(msgs, prefixMessages(k, err)...)
		}
	}
	if len(msgs) > 0 {
		return &FieldError{Messages: msgs}
	}
	return nil
}

func (f *DictField) sanitizeElements(v any) (any, error) {
	vs, ok := v.(map[string]any)
	if !ok {
		return v, nil
	}
	out := make(map[string]any, len(vs))
	for k, e := range vs {
		se, err := f.elem.Sanitize(e)
		if err != nil {
			return nil, err
		}
		out[k] = se
	}
	return out, nil
}

// sortedKeys returns map keys in ascending order for deterministic behavior.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ModelField nests one model inside another. The value is a *Instance of the
// nested schema; validation delegates to the instance and surfaces its
// aggregate as this field's error payload, preserving structure instead of
// flattening.
type ModelField struct {
	core
	schema *Schema
}

// Model returns a nested-model field over schema.
func Model(schema *Schema) *ModelField {
	f := &ModelField{schema: schema}
	f.init()
	return f
}

func (f *ModelField) Required() *ModelField         { f.markRequired(); return f }
func (f *ModelField) Default(v any) *ModelField     { f.setDefault(v); return f }
func (f *ModelField) Choices(vs ...any) *ModelField { f.setChoices(vs); return f }
func (f *ModelField) Validators(fns ...Validator) *ModelField {
	f.addValidators(fns)
	return f
}
func (f *ModelField) Sanitizers(fns ...Sanitizer) *ModelField {
	f.addSanitizers(fns)
	return f
}

func (f *ModelField) Clone() Field {
	c := Model(f.schema)
	c.adopt(&f.core)
	return c
}

func (f *ModelField) Deserialize(v any) (any, error) {
	switch in := v.(type) {
	case nil:
		return nil, nil
	case *Instance:
		if in.Schema() != f.schema {
			return nil, schemaErr(CodeInvalidType, map[string]string{"expected": f.schema.Name() + " instance"})
		}
		return in, nil
	case map[string]any:
		return f.schema.Deserialize(in)
	default:
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "mapping"})
	}
}

func (f *ModelField) Serialize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	inst, ok := v.(*Instance)
	if !ok {
		return nil, schemaErr(CodeInvalidType, map[string]string{"expected": f.schema.Name() + " instance"})
	}
	return inst.Serialize()
}

func (f *ModelField) Sanitize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if inst, ok := v.(*Instance); ok {
		if _, err := inst.Sanitize(); err != nil {
			return nil, err
		}
	}
	return f.core.Sanitize(v)
}

// Validate runs the base chain (required, choices, user validators) and then
// hands off to the nested instance, whose aggregate becomes this field's
// error.
func (f *ModelField) Validate(v any) error {
	if err := f.core.Validate(v); err != nil {
		return err
	}
	inst, ok := v.(*Instance)
	if !ok {
		return nil
	}
	return inst.Validate()
}

package modus

import (
	"errors"
	"fmt"
)

// rule is a named cross-field validator, run after per-field validation.
type rule struct {
	name string
	fn   func(*Instance) error
}

// SchemaBuilder collects field declarations for one model type. It replaces
// the reflective collect-at-type-definition step of dynamic languages with an
// explicit registration pass: declare fields in order, optionally extend base
// schemas, then Build an immutable Schema.
type SchemaBuilder struct {
	name   string
	order  []string
	fields map[string]Field
	rules  []rule
	err    error
}

// NewSchema starts a builder for a model type called name.
func NewSchema(name string) *SchemaBuilder {
	return &SchemaBuilder{name: name, fields: map[string]Field{}}
}

// Extend merges every field of base into the builder, deep-copying each
// definition so the new type owns its metadata outright. Base fields keep
// their declaration order; bases are merged in call order, and fields
// declared later (or directly on this type) override same-named ones while
// keeping the original position. Cross-field rules are inherited too.
func (b *SchemaBuilder) Extend(base *Schema) *SchemaBuilder {
	if base == nil {
		b.fail(errors.New("modus: Extend(nil) schema"))
		return b
	}
	for _, name := range base.order {
		b.Field(name, base.fields[name])
	}
	b.rules = append(b.rules, base.rules...)
	return b
}

// Field declares (or overrides) a field under name.
func (b *SchemaBuilder) Field(name string, f Field) *SchemaBuilder {
	if f == nil {
		b.fail(fmt.Errorf("modus: nil field %q", name))
		return b
	}
	if _, exists := b.fields[name]; !exists {
		b.order = append(b.order, name)
	}
	b.fields[name] = f
	return b
}

// Rule registers a named cross-field validator. Rules run after per-field
// validation; a rule's error is recorded in the aggregate under the rule
// name.
func (b *SchemaBuilder) Rule(name string, fn func(*Instance) error) *SchemaBuilder {
	if fn == nil {
		b.fail(fmt.Errorf("modus: nil rule %q", name))
		return b
	}
	for i, r := range b.rules {
		if r.name == name {
			b.rules[i].fn = fn
			return b
		}
	}
	b.rules = append(b.rules, rule{name: name, fn: fn})
	return b
}

func (b *SchemaBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build freezes the declarations into an immutable Schema. Every field is
// deep-copied again so later mutation of the declared definitions cannot
// reach the schema, and names are stamped onto the copies.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.order) == 0 {
		return nil, fmt.Errorf("modus: schema %q has no fields", b.name)
	}
	s := &Schema{
		name:   b.name,
		order:  append([]string(nil), b.order...),
		fields: make(map[string]Field, len(b.fields)),
		rules:  append([]rule(nil), b.rules...),
	}
	for _, name := range s.order {
		f := b.fields[name].Clone()
		if n, ok := f.(interface{ setName(string) }); ok {
			n.setName(name)
		}
		s.fields[name] = f
	}
	return s, nil
}

// MustBuild is Build, panicking on error. Intended for package-level schema
// variables.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Schema is the immutable field map of one model type. It is safe for
// concurrent use from any number of goroutines because nothing mutates it
// after Build.
type Schema struct {
	name   string
	order  []string
	fields map[string]Field
	rules  []rule
}

func (s *Schema) Name() string { return s.name }
func (s *Schema) Len() int     { return len(s.order) }

// FieldNames returns the field names in declaration order.
func (s *Schema) FieldNames() []string { return append([]string(nil), s.order...) }

// Field returns the definition registered under name, or nil.
func (s *Schema) Field(name string) Field { return s.fields[name] }

// New returns an empty instance of the schema, every field unset.
func (s *Schema) New() *Instance {
	return &Instance{schema: s, values: make(map[string]any, len(s.order))}
}

// Deserialize builds an instance from loosely-typed input. Per field: a
// missing or null value is replaced by the field's default when one is
// configured (producer defaults are invoked fresh per call); a usable value
// then goes through the field's Deserialize. The first coercion failure
// aborts the whole call, wrapped with the field name — a malformed payload is
// a hard failure, not a per-field soft error.
func (s *Schema) Deserialize(data map[string]any) (*Instance, error) {
	inst := s.New()
	for _, name := range s.order {
		f := s.fields[name]
		v := data[name]
		if v == nil {
			if d, ok := fieldDefault(f); ok {
				v = d
			}
		}
		if v != nil {
			dv, err := f.Deserialize(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			v = dv
		}
		inst.values[name] = v
	}
	return inst, nil
}

func fieldDefault(f Field) (any, bool) {
	if d, ok := f.(Defaulter); ok {
		return d.DefaultValue()
	}
	return nil, false
}

// Instance holds one value per field of its schema. Instances are
// independently owned; only the read-only schema link is shared.
type Instance struct {
	schema *Schema
	values map[string]any
}

func (m *Instance) Schema() *Schema { return m.schema }

// Get returns the current value of name, nil when unset.
func (m *Instance) Get(name string) any { return m.values[name] }

// Set assigns a value directly, bypassing deserialization.
func (m *Instance) Set(name string, v any) error {
	if _, ok := m.schema.fields[name]; !ok {
		return fmt.Errorf("modus: schema %q has no field %q", m.schema.name, name)
	}
	m.values[name] = v
	return nil
}

// Map returns a shallow copy of the raw field values.
func (m *Instance) Map() map[string]any {
	out := make(map[string]any, len(m.schema.order))
	for _, name := range m.schema.order {
		out[name] = m.values[name]
	}
	return out
}

// Update re-deserializes only the fields present in data onto the instance.
func (m *Instance) Update(data map[string]any) error {
	for _, name := range m.schema.order {
		v, ok := data[name]
		if !ok {
			continue
		}
		if v != nil {
			dv, err := m.schema.fields[name].Deserialize(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			v = dv
		}
		m.values[name] = v
	}
	return nil
}

// Serialize renders the instance as plain data keyed by field name, suitable
// for direct JSON (or similar) encoding. Unset fields serialize as nil.
func (m *Instance) Serialize() (map[string]any, error) {
	out := make(map[string]any, len(m.schema.order))
	for _, name := range m.schema.order {
		v := m.values[name]
		if v != nil {
			sv, err := m.schema.fields[name].Serialize(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			v = sv
		}
		out[name] = v
	}
	return out, nil
}

// Sanitize runs every field's sanitizer chain over the current values,
// writing the results back in place. It returns the instance for chaining.
func (m *Instance) Sanitize() (*Instance, error) {
	for _, name := range m.schema.order {
		nv, err := m.schema.fields[name].Sanitize(m.values[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		m.values[name] = nv
	}
	return m, nil
}

// Validate checks every field and aggregates all failures into one
// *ModelError; one field's failure never stops the others from being checked.
// Cross-field rules run afterward and record their errors under the rule
// name. A nil return means the instance is valid.
func (m *Instance) Validate() error {
	failures := map[string]error{}
	for _, name := range m.schema.order {
		if err := m.schema.fields[name].Validate(m.values[name]); err != nil {
			failures[name] = err
		}
	}
	for _, r := range m.schema.rules {
		err := r.fn(m)
		if err == nil {
			continue
		}
		if _, ok := AsFieldError(err); !ok {
			if _, nested := AsModelError(err); !nested {
				err = &FieldError{Messages: []string{err.Error()}}
			}
		}
		failures[r.name] = err
	}
	if len(failures) > 0 {
		return &ModelError{Fields: failures}
	}
	return nil
}

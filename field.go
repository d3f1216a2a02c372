package modus

import (
	"errors"
	"fmt"
)

// Field is the per-value unit of the engine: one attribute's type coercion,
// normalization, and constraint checks. The built-in kinds (Integer, String,
// List, ...) all implement it; external implementations are welcome as long as
// they honor the same semantics:
//
//   - Deserialize converts the external representation to the field's internal
//     type and fails with *SchemaError when conversion is impossible. nil
//     passes through untouched; whether nil is acceptable is Validate's
//     business, not Deserialize's.
//   - Serialize is total for any value previously produced by Deserialize and
//     maps nil to nil.
//   - Sanitize applies the ordered sanitizer chain.
//   - Validate runs the ordered validator chain and reports all collected
//     messages as one *FieldError (or a nested *ModelError for model fields).
type Field interface {
	Name() string
	// Clone returns an independent deep copy of the definition. Schema
	// collection clones every declared field so that mutating one schema's
	// metadata can never leak into another.
	Clone() Field
	Deserialize(v any) (any, error)
	Serialize(v any) (any, error)
	Sanitize(v any) (any, error)
	Validate(v any) error
}

// Defaulter is an optional hook implemented by fields that carry a default.
// Schema.Deserialize consults it when the raw payload has no usable value. If
// it is not implemented, missing stays missing.
type Defaulter interface {
	// DefaultValue returns a fresh default and true, or (nil, false) when no
	// default is configured. Producer defaults are invoked per call, so two
	// deserializations never share a mutable default value.
	DefaultValue() (any, bool)
}

// Validator is a single step of a field's validator chain. It returns nil to
// continue, ErrSkipField to halt the chain cleanly, or a *FieldError whose
// messages are collected (halting afterward when Stop is set). Any other error
// is collected as a single message.
type Validator func(v any) error

// Sanitizer is a single step of a field's sanitizer chain: a pure value
// transformation.
type Sanitizer func(v any) (any, error)

// runValidators executes a validator chain as an explicit loop with a
// tri-state outcome per step: continue, halt clean, halt with the collected
// messages. All non-stopping errors are collected so the caller sees every
// violation in one pass.
func runValidators(steps []Validator, v any) error {
	var msgs []string
	for _, step := range steps {
		err := step(v)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrSkipField) {
			break
		}
		var fe *FieldError
		if errors.As(err, &fe) {
			msgs = append(msgs, fe.Messages...)
			if fe.Stop {
				break
			}
			continue
		}
		msgs = append(msgs, err.Error())
	}
	if len(msgs) > 0 {
		return &FieldError{Messages: msgs}
	}
	return nil
}

// core carries the configuration and chains shared by every built-in kind.
// Kind constructors assemble the validator chain once, in order: required
// check, choices check, kind-specific checks; user validators are appended
// after the built-ins, preserving attachment order.
type core struct {
	name       string
	required   bool
	def        any
	hasDefault bool
	choices    []any

	steps []Validator
	sans  []Sanitizer

	// user-attached steps, kept separately so Clone can rebind the built-in
	// chain to the copy and re-append these.
	extraV []Validator
	extraS []Sanitizer
}

// init assembles the built-in chain for a kind. Called once per constructor.
func (c *core) init(kindSteps ...Validator) {
	c.steps = append([]Validator{c.checkRequired, c.checkChoices}, kindSteps...)
}

func (c *core) Name() string { return c.name }

func (c *core) setName(name string) { c.name = name }

func (c *core) Validate(v any) error { return runValidators(c.steps, v) }

func (c *core) Sanitize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	for _, s := range c.sans {
		nv, err := s(v)
		if err != nil {
			return nil, err
		}
		v = nv
	}
	return v, nil
}

func (c *core) DefaultValue() (any, bool) {
	if !c.hasDefault {
		return nil, false
	}
	if producer, ok := c.def.(func() any); ok {
		return producer(), true
	}
	return c.def, true
}

func (c *core) markRequired()       { c.required = true }
func (c *core) setDefault(v any)    { c.def = v; c.hasDefault = true }
func (c *core) setChoices(vs []any) { c.choices = vs }

func (c *core) addValidators(fns []Validator) {
	c.extraV = append(c.extraV, fns...)
	c.steps = append(c.steps, fns...)
}

func (c *core) addSanitizers(fns []Sanitizer) {
	c.extraS = append(c.extraS, fns...)
	c.sans = append(c.sans, fns...)
}

// adopt copies configuration and user-attached steps from o onto c, whose
// built-in chain was already assembled by its own constructor. This is the
// deep-copy half of Field.Clone.
func (c *core) adopt(o *core) {
	c.name = o.name
	c.required = o.required
	c.def = o.def
	c.hasDefault = o.hasDefault
	c.choices = append([]any(nil), o.choices...)
	c.addValidators(append([]Validator(nil), o.extraV...))
	c.addSanitizers(append([]Sanitizer(nil), o.extraS...))
}

func (c *core) checkRequired(v any) error {
	if v != nil {
		return nil
	}
	if c.required {
		return fieldErr(CodeRequired, true, nil)
	}
	return ErrSkipField
}

func (c *core) checkChoices(v any) error {
	if len(c.choices) == 0 {
		return nil
	}
	for _, choice := range c.choices {
		if choiceEqual(choice, v) {
			return nil
		}
	}
	return fieldErr(CodeInvalidChoice, true, map[string]string{
		"choices": fmt.Sprint(c.choices),
	})
}

package modus

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"unicode/utf8"
)

// urlPattern accepts http(s) URLs only; everything else is a validation
// failure, not a deserialization one (a non-URL string is still a string).
const urlPattern = `https?://[^\s]+$`

// StringField holds text. Deserialization is strict unless Coerce is set, in
// which case any non-nil value is rendered with fmt. Length bounds count
// runes, not bytes, and are mutually independent checks. Pattern is anchored
// at the start of the value and compiled lazily, once per definition.
type StringField struct {
	core
	minLen   int
	maxLen   int
	exactLen int
	pattern  string
	coerce   bool
	urlOnly  bool

	rxOnce sync.Once
	rx     *regexp.Regexp
	rxErr  error
}

// String returns a new string field definition.
func String() *StringField {
	f := &StringField{minLen: -1, maxLen: -1, exactLen: -1}
	f.init(f.checkType, f.checkMinLength, f.checkMaxLength, f.checkLength, f.checkPattern, f.checkURL)
	return f
}

// URL returns a string field that additionally requires an http(s):// URL.
func URL() *StringField {
	f := String()
	f.urlOnly = true
	return f
}

func (f *StringField) MinLength(n int) *StringField { f.minLen = n; return f }
func (f *StringField) MaxLength(n int) *StringField { f.maxLen = n; return f }
func (f *StringField) Length(n int) *StringField    { f.exactLen = n; return f }

// Pattern sets a regular expression the value must match at its start.
func (f *StringField) Pattern(expr string) *StringField { f.pattern = expr; return f }

// Coerce allows non-string input to be converted to text instead of being
// rejected with a SchemaError.
func (f *StringField) Coerce() *StringField { f.coerce = true; return f }

func (f *StringField) Required() *StringField         { f.markRequired(); return f }
func (f *StringField) Default(v any) *StringField     { f.setDefault(v); return f }
func (f *StringField) Choices(vs ...any) *StringField { f.setChoices(vs); return f }
func (f *StringField) Validators(fns ...Validator) *StringField {
	f.addValidators(fns)
	return f
}
func (f *StringField) Sanitizers(fns ...Sanitizer) *StringField {
	f.addSanitizers(fns)
	return f
}

func (f *StringField) Clone() Field {
	c := String()
	c.minLen, c.maxLen, c.exactLen = f.minLen, f.maxLen, f.exactLen
	c.pattern = f.pattern
	c.coerce = f.coerce
	c.urlOnly = f.urlOnly
	c.adopt(&f.core)
	return c
}

func (f *StringField) Deserialize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	if f.coerce {
		return fmt.Sprint(v), nil
	}
	return nil, schemaErr(CodeInvalidType, map[string]string{"expected": "string"})
}

func (f *StringField) Serialize(v any) (any, error) { return v, nil }

// compiled returns the lazily-compiled, start-anchored pattern. Definitions
// are immutable after schema construction, so compile-once is safe under
// concurrent use.
func (f *StringField) compiled() (*regexp.Regexp, error) {
	f.rxOnce.Do(func() {
		f.rx, f.rxErr = regexp.Compile(`^(?:` + f.pattern + `)`)
	})
	return f.rx, f.rxErr
}

func (f *StringField) checkType(v any) error {
	if _, ok := v.(string); !ok {
		return fieldErr(CodeInvalidType, true, map[string]string{"expected": "string"})
	}
	return nil
}

func (f *StringField) checkMinLength(v any) error {
	s, _ := v.(string)
	if f.minLen != -1 && utf8.RuneCountInString(s) < f.minLen {
		return fieldErr(CodeTooShort, false, map[string]string{
			"value": s, "min": strconv.Itoa(f.minLen),
		})
	}
	return nil
}

func (f *StringField) checkMaxLength(v any) error {
	s, _ := v.(string)
	if f.maxLen != -1 && utf8.RuneCountInString(s) > f.maxLen {
		return fieldErr(CodeTooLong, false, map[string]string{
			"value": s, "max": strconv.Itoa(f.maxLen),
		})
	}
	return nil
}

func (f *StringField) checkLength(v any) error {
	s, _ := v.(string)
	if f.exactLen != -1 && utf8.RuneCountInString(s) != f.exactLen {
		return fieldErr(CodeWrongLength, false, map[string]string{
			"value": s, "length": strconv.Itoa(f.exactLen),
		})
	}
	return nil
}

func (f *StringField) checkPattern(v any) error {
	if f.pattern == "" {
		return nil
	}
	rx, err := f.compiled()
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", f.pattern, err)
	}
	s, _ := v.(string)
	if !rx.MatchString(s) {
		return fieldErr(CodePattern, false, map[string]string{
			"value": s, "pattern": f.pattern,
		})
	}
	return nil
}

var urlRx = regexp.MustCompile(`^(?:` + urlPattern + `)`)

func (f *StringField) checkURL(v any) error {
	if !f.urlOnly {
		return nil
	}
	s, _ := v.(string)
	if !urlRx.MatchString(s) {
		return fieldErr(CodeInvalidFormat, false, map[string]string{
			"value": s, "expected": "URL",
		})
	}
	return nil
}

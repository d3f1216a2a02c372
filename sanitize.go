package modus

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Reusable sanitizer steps for string-valued fields. Each step passes
// non-string values through unchanged, so they compose safely with coerced or
// absent input.

// TrimSpace trims leading and trailing whitespace.
func TrimSpace() Sanitizer {
	return func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return v, nil
	}
}

// Lower lowercases the value.
func Lower() Sanitizer {
	return func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return strings.ToLower(s), nil
		}
		return v, nil
	}
}

// Upper uppercases the value.
func Upper() Sanitizer {
	return func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return strings.ToUpper(s), nil
		}
		return v, nil
	}
}

// CollapseSpaces folds runs of whitespace into single spaces.
func CollapseSpaces() Sanitizer {
	return func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return strings.Join(strings.Fields(s), " "), nil
		}
		return v, nil
	}
}

var htmlPolicy = sync.OnceValue(func() *bluemonday.Policy {
	return bluemonday.StrictPolicy()
})

// StripHTML removes all HTML markup from the value, keeping only text
// content.
func StripHTML() Sanitizer {
	return func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return htmlPolicy().Sanitize(s), nil
		}
		return v, nil
	}
}

package modus_test

import (
	"testing"

	modus "github.com/reoring/modus"
)

func applySanitizer(t *testing.T, s modus.Sanitizer, in any) any {
	t.Helper()
	out, err := s(in)
	if err != nil {
		t.Fatalf("sanitizer error: %v", err)
	}
	return out
}

func TestSanitizers_StringSteps(t *testing.T) {
	if got := applySanitizer(t, modus.TrimSpace(), "  x  "); got != "x" {
		t.Fatalf("TrimSpace: %q", got)
	}
	if got := applySanitizer(t, modus.Lower(), "ABC"); got != "abc" {
		t.Fatalf("Lower: %q", got)
	}
	if got := applySanitizer(t, modus.Upper(), "abc"); got != "ABC" {
		t.Fatalf("Upper: %q", got)
	}
	if got := applySanitizer(t, modus.CollapseSpaces(), " a \t b\n\nc "); got != "a b c" {
		t.Fatalf("CollapseSpaces: %q", got)
	}
}

func TestSanitizers_StripHTML(t *testing.T) {
	if got := applySanitizer(t, modus.StripHTML(), `<b>bold</b> and <a href="x">link</a>`); got != "bold and link" {
		t.Fatalf("StripHTML: %q", got)
	}
}

// Non-string values pass through every step untouched.
func TestSanitizers_NonStringPassThrough(t *testing.T) {
	for _, s := range []modus.Sanitizer{
		modus.TrimSpace(), modus.Lower(), modus.Upper(), modus.CollapseSpaces(), modus.StripHTML(),
	} {
		if got := applySanitizer(t, s, 42); got != 42 {
			t.Fatalf("expected pass-through, got %v", got)
		}
	}
}

package modus_test

import (
	"strings"
	"testing"

	modus "github.com/reoring/modus"
)

// TestInteger_BoundsLifecycle walks the spec's canonical integer example:
// min=0, max=10; "5" deserializes and validates, "15" fails the max bound,
// "abc" is a hard deserialize-time failure that never reaches validation.
func TestInteger_BoundsLifecycle(t *testing.T) {
	f := modus.Integer().Min(0).Max(10)

	v, err := f.Deserialize("5")
	if err != nil {
		t.Fatalf("unexpected deserialize error: %v", err)
	}
	if v != int64(5) {
		t.Fatalf("expected int64(5), got %T %v", v, v)
	}
	if err := f.Validate(v); err != nil {
		t.Fatalf("5 should validate, got %v", err)
	}

	v, err = f.Deserialize("15")
	if err != nil {
		t.Fatalf("15 should deserialize fine: %v", err)
	}
	err = f.Validate(v)
	fe, ok := modus.AsFieldError(err)
	if !ok {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if !strings.Contains(fe.Messages[0], "lower than 10") {
		t.Fatalf("expected max-bound message, got %v", fe.Messages)
	}

	_, err = f.Deserialize("abc")
	se, ok := modus.AsSchemaError(err)
	if !ok {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if se.Code != modus.CodeInvalidType {
		t.Fatalf("unexpected code %q", se.Code)
	}
}

// TestInteger_CoercionSurface covers the loosely-typed inputs a decoder may
// hand back.
func TestInteger_CoercionSurface(t *testing.T) {
	f := modus.Integer()
	for _, in := range []any{int(7), int32(7), int64(7), float64(7), "7"} {
		v, err := f.Deserialize(in)
		if err != nil || v != int64(7) {
			t.Fatalf("%T(%v): got %v, %v", in, in, v, err)
		}
	}
	if _, err := f.Deserialize(7.5); err == nil {
		t.Fatalf("fractional float must not coerce")
	}
	if _, err := f.Deserialize(true); err == nil {
		t.Fatalf("bool must not coerce")
	}
}

// TestInteger_MinMessage checks the min-bound wording.
func TestInteger_MinMessage(t *testing.T) {
	f := modus.Integer().Min(3)
	err := f.Validate(int64(1))
	fe, _ := modus.AsFieldError(err)
	if fe == nil || !strings.Contains(fe.Messages[0], "greater than 3") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestBoolean_Strict: no truthiness coercion in either direction.
func TestBoolean_Strict(t *testing.T) {
	f := modus.Boolean()
	v, err := f.Deserialize(true)
	if err != nil || v != true {
		t.Fatalf("got %v, %v", v, err)
	}
	if _, err := f.Deserialize(1); err == nil {
		t.Fatalf("1 is not a boolean")
	}
	if _, err := f.Deserialize("true"); err == nil {
		t.Fatalf(`"true" is not a boolean`)
	}
	if err := f.Validate("yes"); err == nil {
		t.Fatalf("validate must reject non-bool")
	}
}

// TestSnowflake_RoundTripToString: a snowflake deserializes from any
// integer-coercible form and serializes to a decimal string so JSON clients
// never lose precision.
func TestSnowflake_RoundTripToString(t *testing.T) {
	f := modus.Snowflake()

	v, err := f.Deserialize("18446744073709551615") // max uint64
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != uint64(18446744073709551615) {
		t.Fatalf("got %T %v", v, v)
	}
	if err := f.Validate(v); err != nil {
		t.Fatalf("should validate, got %v", err)
	}

	s, err := f.Serialize(v)
	if err != nil || s != "18446744073709551615" {
		t.Fatalf("got %v, %v", s, err)
	}

	// 65-bit input does not fit
	if _, err := f.Deserialize("18446744073709551616"); err == nil {
		t.Fatalf("expected overflow rejection")
	}
	if _, err := f.Deserialize(-1); err == nil {
		t.Fatalf("expected negative rejection")
	}
	if _, err := f.Deserialize("abc"); err == nil {
		t.Fatalf("expected coercion failure")
	}
}

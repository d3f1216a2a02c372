package modus_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	modus "github.com/reoring/modus"
)

// TestParseJSON_NumbersSurviveUntruncated: JSON input decodes with UseNumber,
// so a max-range snowflake id arrives intact.
func TestParseJSON_NumbersSurviveUntruncated(t *testing.T) {
	s := modus.NewSchema("Ref").
		Field("id", modus.Snowflake().Required()).
		Field("count", modus.Integer()).
		MustBuild()

	inst, err := modus.ParseJSON(s, []byte(`{"id": 18446744073709551615, "count": 7}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Get("id") != uint64(18446744073709551615) {
		t.Fatalf("id lost precision: %v", inst.Get("id"))
	}
	if inst.Get("count") != int64(7) {
		t.Fatalf("unexpected count: %T %v", inst.Get("count"), inst.Get("count"))
	}
}

// TestParseJSON_MalformedPayload is a SchemaError, not a panic or aggregate.
func TestParseJSON_MalformedPayload(t *testing.T) {
	s := modus.NewSchema("X").Field("a", modus.Integer()).MustBuild()
	_, err := modus.ParseJSON(s, []byte(`{"a": `))
	se, ok := modus.AsSchemaError(err)
	if !ok || se.Code != modus.CodeParseError {
		t.Fatalf("expected parse_error SchemaError, got %v", err)
	}
}

// TestParseJSON_NestedModel exercises recursion through raw decoded
// mappings and sequences.
func TestParseJSON_NestedModel(t *testing.T) {
	item := modus.NewSchema("Item").
		Field("sku", modus.String().Required()).
		Field("qty", modus.Integer().Min(1)).
		MustBuild()
	order := modus.NewSchema("Order").
		Field("id", modus.Snowflake().Required()).
		Field("items", modus.List(modus.Model(item)).MinItems(1)).
		MustBuild()

	inst, err := modus.ParseJSON(order, []byte(`{
		"id": "991",
		"items": [{"sku": "a-1", "qty": 2}, {"sku": "b-2", "qty": 0}]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = inst.Validate()
	me, ok := modus.AsModelError(err)
	if !ok {
		t.Fatalf("expected *ModelError, got %v", err)
	}
	fe, _ := modus.AsFieldError(me.Fields["items"])
	if fe == nil || !strings.HasPrefix(fe.Messages[0], "1: ") {
		t.Fatalf("expected second item flagged, got %v", me.Flatten())
	}
}

// TestParseYAML decodes a YAML mapping through the same deserializer.
func TestParseYAML(t *testing.T) {
	s := modus.NewSchema("Cfg").
		Field("name", modus.String().Required()).
		Field("port", modus.Integer().Min(1).Max(65535)).
		Field("tags", modus.List(modus.String())).
		MustBuild()

	inst, err := modus.ParseYAML(s, []byte("name: api\nport: 8080\ntags:\n  - a\n  - b\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Get("port") != int64(8080) {
		t.Fatalf("unexpected port: %T %v", inst.Get("port"), inst.Get("port"))
	}
	if diff := cmp.Diff([]any{"a", "b"}, inst.Get("tags")); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if err := inst.Validate(); err != nil {
		t.Fatalf("expected valid instance, got %v", err)
	}

	if _, err := modus.ParseYAML(s, []byte("{name: [unclosed")); err == nil {
		t.Fatalf("expected SchemaError for malformed YAML")
	}
}

// TestEncodeJSON_AndMarshaler: serialized output encodes straight to JSON,
// including the instance's own MarshalJSON hook.
func TestEncodeJSON_AndMarshaler(t *testing.T) {
	s := modus.NewSchema("Ref").
		Field("id", modus.Snowflake().Required()).
		Field("name", modus.String()).
		MustBuild()
	inst, err := s.Deserialize(map[string]any{"id": 42, "name": "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := modus.EncodeJSON(inst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(b)
	if !strings.Contains(got, `"id":"42"`) || !strings.Contains(got, `"name":"x"`) {
		t.Fatalf("unexpected JSON: %s", got)
	}
}

// TestInstance_Into binds the serialized form onto a caller struct.
func TestInstance_Into(t *testing.T) {
	s := modus.NewSchema("Ref").
		Field("id", modus.Snowflake().Required()).
		Field("count", modus.Integer()).
		MustBuild()
	inst, err := s.Deserialize(map[string]any{"id": "42", "count": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}
	if err := inst.Into(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "42" || out.Count != 3 {
		t.Fatalf("unexpected binding: %+v", out)
	}
}

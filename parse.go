package modus

import (
	"bytes"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON object and deserializes it through the schema.
// Numbers are decoded as json.Number so large ids survive untruncated.
func ParseJSON(s *Schema, data []byte) (*Instance, error) {
	return ParseJSONReader(s, bytes.NewReader(data))
}

// ParseJSONReader is ParseJSON over an io.Reader.
func ParseJSONReader(s *Schema, r io.Reader) (*Instance, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &SchemaError{Code: CodeParseError, Message: "invalid JSON payload", Cause: err}
	}
	return s.Deserialize(raw)
}

// ParseYAML decodes a YAML mapping and deserializes it through the schema.
func ParseYAML(s *Schema, data []byte) (*Instance, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Code: CodeParseError, Message: "invalid YAML payload", Cause: err}
	}
	return s.Deserialize(raw)
}

// EncodeJSON serializes the instance and encodes the result as JSON.
func EncodeJSON(m *Instance) ([]byte, error) {
	out, err := m.Serialize()
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// MarshalJSON makes instances encode directly with any encoding/json-style
// marshaler.
func (m *Instance) MarshalJSON() ([]byte, error) { return EncodeJSON(m) }

// Into binds the serialized instance onto dst (a struct pointer with json
// tags, typically). It is a convenience bridge from the dynamic instance
// representation to caller-owned types.
func (m *Instance) Into(dst any) error {
	b, err := EncodeJSON(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

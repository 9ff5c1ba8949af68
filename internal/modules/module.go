package modules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Module is a page section record. Type and Key come from _type and _key;
// Raw keeps the full decoded payload, discriminant included.
type Module struct {
	Type string         `json:"_type"`
	Key  string         `json:"_key,omitempty"`
	Raw  map[string]any `json:"-"`
}

// UnmarshalJSON decodes the discriminant and keeps every field in Raw.
func (m *Module) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = FromMap(raw)
	return nil
}

// MarshalJSON writes Raw back out, with Type and Key taking precedence.
func (m Module) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Raw)+2)
	for key, value := range m.Raw {
		out[key] = value
	}
	out["_type"] = m.Type
	if m.Key != "" {
		out["_key"] = m.Key
	} else {
		delete(out, "_key")
	}
	return json.Marshal(out)
}

// FromMap builds a module from an already decoded payload. _type is kept
// verbatim: it is matched exactly against the registered variants.
func FromMap(raw map[string]any) Module {
	if raw == nil {
		raw = map[string]any{}
	}
	typ, _ := raw["_type"].(string)
	key, _ := raw["_key"].(string)
	return Module{
		Type: typ,
		Key:  key,
		Raw:  raw,
	}
}

// Field returns a top-level payload field.
func (m Module) Field(name string) (any, bool) {
	if m.Raw == nil {
		return nil, false
	}
	value, ok := m.Raw[name]
	return value, ok
}

// String returns a string field, or "" when missing or not a string.
func (m Module) String(name string) string {
	value, _ := m.Field(name)
	s, _ := value.(string)
	return s
}

// StringOr returns the trimmed string field or fallback when it is blank.
func (m Module) StringOr(name, fallback string) string {
	if s := strings.TrimSpace(m.String(name)); s != "" {
		return s
	}
	return fallback
}

// Slice returns an array field.
func (m Module) Slice(name string) []any {
	value, _ := m.Field(name)
	items, _ := value.([]any)
	return items
}

// Maps returns the object entries of an array field, skipping anything else.
func (m Module) Maps(name string) []map[string]any {
	items := m.Slice(name)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if entry, ok := item.(map[string]any); ok {
			out = append(out, entry)
		}
	}
	return out
}

// Map returns an object field.
func (m Module) Map(name string) map[string]any {
	value, _ := m.Field(name)
	entry, _ := value.(map[string]any)
	return entry
}

// Decode reads a page section list. The input may be a JSON array of
// modules, an object with a "modules" array, or a single module object.
func Decode(r io.Reader) ([]Module, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("modules: read: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode for an in-memory payload.
func DecodeBytes(data []byte) ([]Module, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var list []Module
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("modules: decode: %w", err)
		}
		return list, nil
	}

	var envelope struct {
		Modules []Module `json:"modules"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("modules: decode: %w", err)
	}
	if envelope.Modules != nil {
		return envelope.Modules, nil
	}

	var single Module
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, fmt.Errorf("modules: decode: %w", err)
	}
	if single.Type == "" {
		return nil, nil
	}
	return []Module{single}, nil
}

package richtext

import (
	"encoding/json"
	"strconv"
	"strings"
)

const (
	TypeBlock = "block"
	TypeSpan  = "span"

	StyleNormal = "normal"

	ListBullet = "bullet"
	ListNumber = "number"
)

// Document is an ordered list of rich text nodes.
type Document []Node

// Node is a block or an embedded object. Every decoded field, known or not,
// is also kept in Raw so custom serializers can read schema specific values.
type Node struct {
	Type     string         `json:"_type"`
	Key      string         `json:"_key,omitempty"`
	Style    string         `json:"style,omitempty"`
	ListItem string         `json:"listItem,omitempty"`
	Level    int            `json:"level,omitempty"`
	Children []Span         `json:"children,omitempty"`
	MarkDefs []MarkDef      `json:"markDefs,omitempty"`
	Raw      map[string]any `json:"-"`
}

// Span is an inline child of a block. Marks hold decorator names or the keys
// of mark definitions declared on the parent block.
type Span struct {
	Type  string         `json:"_type"`
	Key   string         `json:"_key,omitempty"`
	Text  string         `json:"text"`
	Marks []string       `json:"marks,omitempty"`
	Raw   map[string]any `json:"-"`
}

// MarkDef declares an annotation such as a link on a block.
type MarkDef struct {
	Key  string         `json:"_key"`
	Type string         `json:"_type"`
	Raw  map[string]any `json:"-"`
}

// Mark is a resolved inline annotation. Decorators carry only a Type;
// annotations carry the fields of their mark definition in Raw.
type Mark struct {
	Type string
	Key  string
	Raw  map[string]any
}

// UnmarshalJSON decodes the known fields and keeps the full payload in Raw.
func (n *Node) UnmarshalJSON(data []byte) error {
	type alias Node
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Node(decoded)
	n.Raw = raw
	return nil
}

// UnmarshalJSON decodes the known fields and keeps the full payload in Raw.
func (s *Span) UnmarshalJSON(data []byte) error {
	type alias Span
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Span(decoded)
	s.Raw = raw
	return nil
}

// UnmarshalJSON decodes the known fields and keeps the full payload in Raw.
func (m *MarkDef) UnmarshalJSON(data []byte) error {
	type alias MarkDef
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = MarkDef(decoded)
	m.Raw = raw
	return nil
}

// IsBlock reports whether the node is a text block.
func (n *Node) IsBlock() bool {
	return n != nil && n.Type == TypeBlock
}

// IsListItem reports whether the node is a block that belongs to a list.
func (n *Node) IsListItem() bool {
	return n.IsBlock() && strings.TrimSpace(n.ListItem) != ""
}

// GetStyle returns the block style, defaulting to normal.
func (n *Node) GetStyle() string {
	if n == nil || strings.TrimSpace(n.Style) == "" {
		return StyleNormal
	}
	return n.Style
}

// GetListLevel returns the list nesting level, defaulting to 1.
func (n *Node) GetListLevel() int {
	if n == nil || n.Level < 1 {
		return 1
	}
	return n.Level
}

// Field returns a raw field value.
func (n *Node) Field(name string) (any, bool) {
	if n == nil {
		return nil, false
	}
	return lookup(n.Raw, name)
}

// String returns a field as a string, or "" when absent or not a string.
func (n *Node) String(name string) string {
	value, _ := n.Field(name)
	return asString(value)
}

// Float returns a numeric field. Numeric strings are accepted.
func (n *Node) Float(name string) (float64, bool) {
	value, ok := n.Field(name)
	if !ok {
		return 0, false
	}
	return asFloat(value)
}

// Text concatenates the text of every span in the block.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for _, child := range n.Children {
		b.WriteString(child.Text)
	}
	return b.String()
}

// markDef returns the definition registered under key on the block.
func (n *Node) markDef(key string) (MarkDef, bool) {
	for _, def := range n.MarkDefs {
		if def.Key == key {
			return def, true
		}
	}
	return MarkDef{}, false
}

// Field returns a raw field of the mark. Dotted names walk nested objects.
func (m Mark) Field(name string) (any, bool) {
	return lookup(m.Raw, name)
}

// String returns a mark field as a string, or "" when absent.
func (m Mark) String(name string) string {
	value, _ := m.Field(name)
	return asString(value)
}

// lookup resolves a dotted path such as "slug.current" inside raw.
func lookup(raw map[string]any, name string) (any, bool) {
	if raw == nil || name == "" {
		return nil, false
	}
	parts := strings.Split(name, ".")
	var current any = raw
	for _, part := range parts {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

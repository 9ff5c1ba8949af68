package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a JSON encoded document. A single object is accepted and
// treated as a one node document.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("richtext: read document: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes a JSON encoded document.
func DecodeBytes(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, nil
	}
	if trimmed[0] == '{' {
		var node Node
		if err := json.Unmarshal(trimmed, &node); err != nil {
			return nil, fmt.Errorf("richtext: decode node: %w", err)
		}
		return Document{node}, nil
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("richtext: decode document: %w", err)
	}
	return doc, nil
}

// FromValue converts an already decoded JSON value (for example a field of a
// section payload) into a document.
func FromValue(value any) (Document, error) {
	switch v := value.(type) {
	case nil:
		return Document{}, nil
	case Document:
		return v, nil
	case []Node:
		return Document(v), nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("richtext: encode value: %w", err)
	}
	return DecodeBytes(encoded)
}

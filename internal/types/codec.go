package types

import (
	"encoding/json"
	"fmt"
)

// ParseDocument decodes serialized document data onto the canonical empty
// document. Keys missing from data keep their defaults and unknown keys are
// ignored, so the result is always fully defined.
func ParseDocument(data []byte) (*Document, error) {
	doc := NewEmptyDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse document JSON: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// MarshalDocument encodes the document in its compact storage form
func MarshalDocument(d *Document) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// MarshalDocumentIndent encodes the document with two-space indentation
func MarshalDocumentIndent(d *Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Document is a single entry of a document collection.
// ID is the key under which the document appeared in the source object.
// HasTitle and HasText record whether the source carried each field at all,
// which is distinct from carrying an empty string.
type Document struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	HasTitle bool   `json:"-"`
	HasText  bool   `json:"-"`
}

// Complete reports whether the document carries both a title and a text field.
func (d Document) Complete() bool {
	return d.HasTitle && d.HasText
}

// Collection is an ordered set of documents, in the order their keys appeared in the source.
type Collection []Document

// IDs returns the document IDs in collection order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, doc := range c {
		ids[i] = doc.ID
	}
	return ids
}

// documentFields is the wire shape of one document value.
// Pointers distinguish a missing field from an empty one.
type documentFields struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

// ParseCollection decodes a JSON object of the form
//
//	{"doc1": {"title": "...", "text": "..."}, "doc2": {...}}
//
// into a Collection, keeping the key order of the object. Unknown fields are
// ignored. A repeated key replaces the earlier value but keeps its position.
func ParseCollection(data []byte) (Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("top-level value must be an object")
	}

	docs := make(Collection, 0)
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read document key: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v where a document key was expected", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to read document %q: %w", id, err)
		}
		doc, err := parseDocument(id, raw)
		if err != nil {
			return nil, err
		}

		if pos, dup := seen[id]; dup {
			docs[pos] = doc
			continue
		}
		seen[id] = len(docs)
		docs = append(docs, doc)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read end of object: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}
	return docs, nil
}

func parseDocument(id string, raw json.RawMessage) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Document{}, fmt.Errorf("document %q must be an object", id)
	}

	var fields documentFields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Document{}, fmt.Errorf("document %q has invalid fields: %w", id, err)
	}

	doc := Document{ID: id}
	if fields.Title != nil {
		doc.Title = *fields.Title
		doc.HasTitle = true
	}
	if fields.Text != nil {
		doc.Text = *fields.Text
		doc.HasText = true
	}
	return doc, nil
}

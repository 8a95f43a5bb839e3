package schema

import (
	"errors"
	"strings"
)

// Document wraps the raw registry payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Load reads the bytes behind src and wraps them as a Document.
func Load(src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	raw, err := read(src)
	if err != nil {
		return Document{}, err
	}
	return NewDocument(src, raw)
}

// Source returns where the document came from.
func (d Document) Source() Source {
	return d.source
}

// Raw returns the unparsed document bytes.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

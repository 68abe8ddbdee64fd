package pipeline

import (
	"bytes"

	"github.com/matzehuels/seqmap/pkg/cache"
	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/errors"
)

// Load reads the document file at path. The format follows the extension:
// .yaml and .yml are YAML, everything else JSON.
func Load(path string) (*document.Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	return document.Import(path)
}

// Decode reads a document from raw bytes. An empty format means JSON.
func Decode(data []byte, format string) (*document.Document, error) {
	f := document.FormatJSON
	if format != "" {
		var err error
		if f, err = document.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	return document.Read(bytes.NewReader(data), f)
}

// HashDocument returns the content hash used in cache keys. Two documents
// hash equal when their file forms are byte-identical.
func HashDocument(doc *document.Document) (string, error) {
	var buf bytes.Buffer
	if err := document.WriteJSON(doc, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

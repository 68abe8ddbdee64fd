package pipeline

import (
	"fmt"

	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/edit"
	"github.com/matzehuels/seqmap/pkg/errors"
)

// ApplyEdits applies ops in order to a copy of doc and returns the copy.
// Each op sees the sequence left by the previous one. On error doc is
// untouched and no partial result is returned.
func ApplyEdits(doc *document.Document, ops []edit.Op) (*document.Document, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	out := doc.Clone()
	for i, op := range ops {
		if err := out.ApplyEdit(op); err != nil {
			return nil, fmt.Errorf("edit %d (%s): %w", i+1, op, err)
		}
	}
	return out, nil
}

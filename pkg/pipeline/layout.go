package pipeline

import (
	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/render/circular"
	"github.com/matzehuels/seqmap/pkg/render/linear"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the map of doc in the view chosen by opts.
// Layout itself cannot fail; errors come from invalid options only.
func GenerateLayout(doc *document.Document, opts Options) (sink.Map, error) {
	if doc == nil {
		return sink.Map{}, errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	if err := opts.ValidateForLayout(); err != nil {
		return sink.Map{}, err
	}
	switch view := opts.ResolveView(doc); view {
	case ViewCircular:
		return sink.Circular(circular.Build(doc, opts.Circular)), nil
	default:
		return sink.Linear(linear.Build(doc, opts.Linear)), nil
	}
}

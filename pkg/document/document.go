// Package document ties a sequence to its annotations and selection.
//
// A [Document] is one editing session: it owns the sequence text, the
// [annotation.Collection] and the [selection.Selection]. Every edit goes
// through [Document.ApplyEdit], which changes the text, adjusts every
// annotation and leaves a cursor just after the new text. Documents share no
// state, so independent sessions can run side by side; edits to a single
// document must be serialized by the caller.
//
// # File Format
//
// Documents are stored as JSON or YAML:
//
//	{
//	  "name": "pUC19",
//	  "circular": true,
//	  "sequence": "TCGCGCGTTTCGGTGATGACGG...",
//	  "annotations": [
//	    {"id": "bla", "name": "AmpR", "type": "CDS", "span": "(1625..2486)"},
//	    {"name": "lacZα", "type": "CDS", "location": "complement(146..469)"}
//	  ],
//	  "selection": "10..20"
//	}
//
// Each annotation gives either "span" in text notation or "location" in the
// 1-based interchange notation. Annotations without an "id" get a random one.
// Use [ReadJSON]/[ReadYAML] or [Import] to load, and [WriteJSON]/[WriteYAML]
// or [Export] to save.
package document

import (
	"github.com/matzehuels/seqmap/pkg/annotation"
	"github.com/matzehuels/seqmap/pkg/edit"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
	"github.com/matzehuels/seqmap/pkg/selection"
	"github.com/matzehuels/seqmap/pkg/seq"
)

// Document is an annotated sequence with a selection.
type Document struct {
	Name        string
	Circular    bool
	Annotations *annotation.Collection
	Selection   *selection.Selection

	sequence string
}

// New creates a document. Whitespace and digits are stripped from sequence
// before it is validated.
func New(name, sequence string, circular bool) (*Document, error) {
	s := seq.Normalize(sequence)
	if err := seq.Validate(s); err != nil {
		return nil, err
	}
	anns, _ := annotation.NewCollection()
	return &Document{
		Name:        name,
		Circular:    circular,
		Annotations: anns,
		Selection:   selection.Cursor(0),
		sequence:    s,
	}, nil
}

// Sequence returns the sequence text.
func (d *Document) Sequence() string { return d.sequence }

// Len returns the sequence length.
func (d *Document) Len() int { return len(d.sequence) }

// AddAnnotation adds a after checking that its span fits the sequence.
func (d *Document) AddAnnotation(a annotation.Annotation) error {
	if err := d.checkSpan(a.Caption, a.Span); err != nil {
		return err
	}
	return d.Annotations.Add(a)
}

// Select replaces the selection, checking every range against the sequence.
func (d *Document) Select(ranges ...interval.Range) error {
	if err := d.checkSpan("selection", interval.SpanOf(ranges...)); err != nil {
		return err
	}
	sel, err := selection.New(ranges...)
	if err != nil {
		return err
	}
	if sel.IsEmpty() {
		sel = selection.Cursor(0)
	}
	d.Selection = sel
	return nil
}

// ApplyEdit changes the sequence, adjusts all annotations and moves the
// selection to a cursor just after the new text. Nothing changes if op is
// invalid for this document.
func (d *Document) ApplyEdit(op edit.Op) error {
	text, err := edit.Apply(d.sequence, op)
	if err != nil {
		return err
	}
	d.sequence = text
	d.Annotations.Apply(op)
	d.Selection = selection.Cursor(op.Cursor())
	return nil
}

// Insert inserts text at pos.
func (d *Document) Insert(pos int, text string) error {
	return d.ApplyEdit(edit.Insert(pos, text))
}

// Replace replaces r with text. An empty text deletes r.
func (d *Document) Replace(r interval.Range, text string) error {
	return d.ApplyEdit(edit.Replace(r, text))
}

// ReplaceSelection types text over the current selection: a cursor inserts,
// a single range is replaced. Multi-range selections cannot be typed over.
func (d *Document) ReplaceSelection(text string) error {
	rs := d.Selection.Ranges()
	switch {
	case len(rs) == 0:
		return d.Insert(0, text)
	case len(rs) > 1:
		return errors.New(errors.ErrCodeInvalidEdit, "cannot replace a selection of %d ranges", len(rs))
	case rs[0].IsCursor():
		return d.Insert(rs[0].Start, text)
	default:
		return d.Replace(rs[0], text)
	}
}

// SelectedText returns the selected bases, reverse complemented where the
// selection is on the minus strand.
func (d *Document) SelectedText() (string, error) {
	return d.Selection.Extract(d.sequence)
}

// Clone returns an independent copy of the document.
func (d *Document) Clone() *Document {
	return &Document{
		Name:        d.Name,
		Circular:    d.Circular,
		Annotations: d.Annotations.Clone(),
		Selection:   d.Selection.Clone(),
		sequence:    d.sequence,
	}
}

// Validate checks that every annotation and the selection fit the sequence.
func (d *Document) Validate() error {
	if err := seq.Validate(d.sequence); err != nil {
		return err
	}
	for _, a := range d.Annotations.All() {
		if err := d.checkSpan(a.Caption, a.Span); err != nil {
			return err
		}
	}
	return d.checkSpan("selection", d.Selection.Span())
}

func (d *Document) checkSpan(what string, sp interval.Span) error {
	for _, r := range sp.Ranges() {
		if err := r.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvariant, err, "%s", what)
		}
		if r.End > len(d.sequence) {
			return errors.New(errors.ErrCodeInvalidInput, "%s: range %s exceeds sequence length %d", what, r, len(d.sequence))
		}
	}
	return nil
}

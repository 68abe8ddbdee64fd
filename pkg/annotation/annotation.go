// Package annotation holds named sequence features and the collection that
// owns them for one document.
//
// An [Annotation] owns its [interval.Span]: constructors copy the span and
// attribute map so later changes by the caller never leak in. A [Collection]
// keeps annotations in insertion order, answers overlap queries through an
// interval tree and applies sequence edits atomically.
package annotation

import (
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
)

// Common feature types. Any type name passing errors.ValidateAnnotationType
// is accepted; these are the ones layout treats specially or colors by
// default.
const (
	TypeCDS        = "CDS"
	TypeGene       = "gene"
	TypePromoter   = "promoter"
	TypeTerminator = "terminator"
	TypeRepOrigin  = "rep_origin"
	TypePrimer     = "primer_bind"
	TypeMisc       = "misc_feature"
)

// Annotation is a named span on a sequence.
type Annotation struct {
	ID         string            `json:"id" yaml:"id"`
	Caption    string            `json:"name" yaml:"name"`
	Type       string            `json:"type,omitempty" yaml:"type,omitempty"`
	Span       interval.Span     `json:"span" yaml:"span"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// New creates an annotation with a fresh random ID.
func New(caption, typ string, span interval.Span, attrs map[string]string) (Annotation, error) {
	a := Annotation{
		ID:         NewID(),
		Caption:    caption,
		Type:       typ,
		Span:       span.Clone(),
		Attributes: maps.Clone(attrs),
	}
	if err := a.Validate(); err != nil {
		return Annotation{}, err
	}
	return a, nil
}

// NewID returns a random annotation ID.
func NewID() string { return uuid.NewString() }

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/seqmap/annotation"))

// DeriveID returns a name-based (version 5) UUID for parts. Equal parts
// always give the same ID.
func DeriveID(parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "\x00"))).String()
}

// Validate checks the caption, type, attribute keys and every range.
func (a Annotation) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "annotation %q has no id", a.Caption)
	}
	if err := errors.ValidateCaption(a.Caption); err != nil {
		return err
	}
	if err := errors.ValidateAnnotationType(a.Type); err != nil {
		return err
	}
	for k := range a.Attributes {
		if err := errors.ValidateAttributeKey(k); err != nil {
			return err
		}
	}
	if a.Span.IsEmpty() {
		return errors.New(errors.ErrCodeInvalidInput, "annotation %q has an empty span", a.Caption)
	}
	for _, r := range a.Span.Ranges() {
		if err := r.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvariant, err, "annotation %q", a.Caption)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (a Annotation) Clone() Annotation {
	a.Span = a.Span.Clone()
	a.Attributes = maps.Clone(a.Attributes)
	return a
}

// IsCDS reports whether the annotation is a coding sequence.
func (a Annotation) IsCDS() bool { return strings.EqualFold(a.Type, TypeCDS) }

// Bounds is the undirected extent of the annotation's span.
func (a Annotation) Bounds() interval.Range { return a.Span.Bounds() }

// Orientation is the dominant strand of the span.
func (a Annotation) Orientation() interval.Orientation { return a.Span.Orientation() }

// Length is the number of bases covered by the span.
func (a Annotation) Length() int { return a.Span.TotalLength() }

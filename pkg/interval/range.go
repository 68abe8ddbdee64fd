package interval

import (
	"fmt"

	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/seq"
)

// Orientation is the strand a range is read on.
type Orientation int8

const (
	Minus Orientation = -1
	None  Orientation = 0
	Plus  Orientation = 1
)

// String returns "+", "-" or ".".
func (o Orientation) String() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	default:
		return "."
	}
}

// Flip swaps plus and minus. Undirected stays undirected.
func (o Orientation) Flip() Orientation { return -o }

// Range is a directional half-open interval [Start, End).
type Range struct {
	Start       int         `json:"start"`
	End         int         `json:"end"`
	Orientation Orientation `json:"orientation"`
}

// New builds a Range, rejecting negative positions and End < Start.
func New(start, end int, o Orientation) (Range, error) {
	r := Range{Start: start, End: end, Orientation: o}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// MustNew is like New but panics on invalid input. Intended for literals in
// tests and examples.
func MustNew(start, end int, o Orientation) Range {
	r, err := New(start, end, o)
	if err != nil {
		panic(err)
	}
	return r
}

// Cursor returns a zero-width undirected range at pos.
func Cursor(pos int) Range { return Range{Start: pos, End: pos} }

// Validate checks the coordinate invariants.
func (r Range) Validate() error {
	if r.Start < 0 {
		return errors.New(errors.ErrCodeInvariant, "range start %d is negative", r.Start)
	}
	if r.End < r.Start {
		return errors.New(errors.ErrCodeInvariant, "range end %d is before start %d", r.End, r.Start)
	}
	if r.Orientation < Minus || r.Orientation > Plus {
		return errors.New(errors.ErrCodeInvariant, "invalid orientation %d", r.Orientation)
	}
	return nil
}

// Len returns the number of bases covered.
func (r Range) Len() int { return r.End - r.Start }

// IsCursor reports whether the range is zero-width.
func (r Range) IsCursor() bool { return r.Start == r.End }

// Contains reports whether the base at pos lies inside the range.
// The end fence post is excluded.
func (r Range) Contains(pos int) bool { return pos >= r.Start && pos < r.End }

// ContainsRange reports whether o lies entirely inside r.
func (r Range) ContainsRange(o Range) bool { return o.Start >= r.Start && o.End <= r.End }

// Overlaps reports whether the two ranges share at least one base.
// Touching ranges and cursors never overlap.
func (r Range) Overlaps(o Range) bool { return r.Start < o.End && o.Start < r.End }

// Intersect returns the shared part of r and o, keeping r's orientation.
// The second result is false when they do not overlap.
func (r Range) Intersect(o Range) (Range, bool) {
	if !r.Overlaps(o) {
		return Range{}, false
	}
	return Range{Start: max(r.Start, o.Start), End: min(r.End, o.End), Orientation: r.Orientation}, true
}

// Union returns the smallest range covering both, keeping r's orientation.
func (r Range) Union(o Range) Range {
	return Range{Start: min(r.Start, o.Start), End: max(r.End, o.End), Orientation: r.Orientation}
}

// Equal reports coordinate and orientation equality.
func (r Range) Equal(o Range) bool { return r == o }

// Shift returns the range moved by offset bases. The result may break the
// non-negative invariant; callers moving ranges left should Validate.
func (r Range) Shift(offset int) Range {
	return Range{Start: r.Start + offset, End: r.End + offset, Orientation: r.Orientation}
}

// Flip returns the range on the opposite strand.
func (r Range) Flip() Range {
	return Range{Start: r.Start, End: r.End, Orientation: r.Orientation.Flip()}
}

// Undirected returns the range with orientation cleared.
func (r Range) Undirected() Range {
	return Range{Start: r.Start, End: r.End}
}

// Extract slices the bases covered by r out of sequence, reverse
// complementing minus-strand ranges.
func (r Range) Extract(sequence string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	if r.End > len(sequence) {
		return "", errors.New(errors.ErrCodeInvariant, "range %s exceeds sequence length %d", r, len(sequence))
	}
	s := sequence[r.Start:r.End]
	if r.Orientation == Minus {
		return seq.ReverseComplement(s), nil
	}
	return s, nil
}

// String formats the range in text notation. Undirected cursors print as a
// bare position.
func (r Range) String() string {
	switch r.Orientation {
	case Plus:
		return fmt.Sprintf("%d..%d", r.Start, r.End)
	case Minus:
		return fmt.Sprintf("(%d..%d)", r.Start, r.End)
	default:
		if r.IsCursor() {
			return fmt.Sprintf("%d", r.Start)
		}
		return fmt.Sprintf("[%d..%d]", r.Start, r.End)
	}
}

// Package selection implements the editable multi-range selection of a
// document.
//
// A Selection is an ordered list of ranges. Every range is valid on its own,
// but the list may hold touching ranges, and overlapping ones between an
// Extend and the Normalize that follows it. Add merges on overlap.
// Drag-style operations (Move, Extend) clamp to the sequence instead of
// failing.
package selection

import (
	"slices"
	"strings"

	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
)

// Selection is an ordered list of selected ranges.
type Selection struct {
	ranges []interval.Range
}

// New returns a selection holding copies of ranges, normalized.
func New(ranges ...interval.Range) (*Selection, error) {
	s := &Selection{}
	for _, r := range ranges {
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Cursor returns a selection holding a single cursor.
func Cursor(pos int) *Selection {
	return &Selection{ranges: []interval.Range{interval.Cursor(max(pos, 0))}}
}

// Ranges returns a copy of the selected ranges.
func (s *Selection) Ranges() []interval.Range { return slices.Clone(s.ranges) }

// Len returns the number of ranges.
func (s *Selection) Len() int { return len(s.ranges) }

// IsEmpty reports whether nothing is selected, cursors included.
func (s *Selection) IsEmpty() bool { return len(s.ranges) == 0 }

// Span returns the selection as a span in its current order.
func (s *Selection) Span() interval.Span { return interval.SpanOf(s.ranges...) }

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection { return &Selection{ranges: slices.Clone(s.ranges)} }

// Clear removes every range.
func (s *Selection) Clear() { s.ranges = nil }

// Set replaces the selection with r.
func (s *Selection) Set(r interval.Range) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.ranges = []interval.Range{r}
	return nil
}

// Add appends r. If r overlaps existing ranges they are merged with it into
// one range that takes the place of the first of them. Adding a non-empty
// range drops any cursors; adding a cursor replaces the current cursor and is
// ignored while something is selected.
func (s *Selection) Add(r interval.Range) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.IsCursor() {
		s.ranges = slices.DeleteFunc(s.ranges, interval.Range.IsCursor)
	} else {
		if s.hasExtent() {
			return nil
		}
		s.ranges = nil
	}
	s.ranges = append(s.ranges, r)
	s.Normalize()
	return nil
}

// Remove deletes the i-th range.
func (s *Selection) Remove(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.ranges = slices.Delete(s.ranges, i, i+1)
	return nil
}

// Reorder moves the i-th range to position j.
func (s *Selection) Reorder(i, j int) error {
	if err := s.check(i); err != nil {
		return err
	}
	if err := s.check(j); err != nil {
		return err
	}
	r := s.ranges[i]
	s.ranges = slices.Delete(s.ranges, i, i+1)
	s.ranges = slices.Insert(s.ranges, j, r)
	return nil
}

// Move shifts the i-th range by offset, clamped so it stays inside a
// sequence of seqLen bases.
func (s *Selection) Move(i, offset, seqLen int) error {
	if err := s.check(i); err != nil {
		return err
	}
	r := s.ranges[i]
	lo, hi := -r.Start, seqLen-r.End
	s.ranges[i] = r.Shift(min(max(offset, lo), max(hi, lo)))
	return nil
}

// Split cuts the i-th range at pos into two ranges that keep its
// orientation. A minus-strand range lists its right half first. pos must
// lie strictly inside the range.
func (s *Selection) Split(i, pos int) error {
	if err := s.check(i); err != nil {
		return err
	}
	r := s.ranges[i]
	if pos <= r.Start || pos >= r.End {
		return errors.New(errors.ErrCodeInvalidInput, "split position %d not inside %s", pos, r)
	}
	left := interval.Range{Start: r.Start, End: pos, Orientation: r.Orientation}
	right := interval.Range{Start: pos, End: r.End, Orientation: r.Orientation}
	if r.Orientation == interval.Minus {
		left, right = right, left
	}
	s.ranges = slices.Replace(s.ranges, i, i+1, left, right)
	return nil
}

// Flip reverses the strand of the i-th range.
func (s *Selection) Flip(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.ranges[i] = s.ranges[i].Flip()
	return nil
}

// FlipAll reverses the strand and traversal order of the whole selection.
func (s *Selection) FlipAll() {
	s.ranges = interval.SpanOf(s.ranges...).Flip().Ranges()
}

// Extend grows the i-th range so that it reaches pos, clamped to
// [0, seqLen], then normalizes.
func (s *Selection) Extend(i, pos, seqLen int) error {
	if err := s.check(i); err != nil {
		return err
	}
	pos = min(max(pos, 0), seqLen)
	r := s.ranges[i]
	if pos < r.Start {
		r.Start = pos
	}
	if pos > r.End {
		r.End = pos
	}
	if r.Orientation == interval.None && !r.IsCursor() {
		r.Orientation = interval.Plus
	}
	s.ranges[i] = r
	s.Normalize()
	return nil
}

// Normalize merges overlapping ranges. The merged range keeps the position
// and orientation of the earliest one. Duplicate cursors are dropped.
func (s *Selection) Normalize() {
	out := s.ranges[:0:0]
	for _, r := range s.ranges {
		merged := false
		for j := range out {
			if out[j].Overlaps(r) || (r.IsCursor() && out[j] == r) {
				out[j] = out[j].Union(r)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, r)
		}
	}
	// A merge can create new overlaps with ranges already placed.
	if len(out) < len(s.ranges) {
		s.ranges = out
		s.Normalize()
		return
	}
	s.ranges = out
}

// Bounds is the undirected extent of the selection.
func (s *Selection) Bounds() interval.Range { return s.Span().Bounds() }

// Contains reports whether the base at pos is selected.
func (s *Selection) Contains(pos int) bool {
	for _, r := range s.ranges {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}

// Extract returns the selected bases in traversal order.
func (s *Selection) Extract(sequence string) (string, error) {
	return s.Span().Extract(sequence)
}

// String formats the selection in span notation. An empty selection is "".
func (s *Selection) String() string { return s.Span().String() }

// MarshalText encodes the selection in span notation.
func (s *Selection) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses span notation. Blank text clears the selection.
func (s *Selection) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		s.ranges = nil
		return nil
	}
	sp, err := interval.ParseSpan(string(text))
	if err != nil {
		return err
	}
	parsed, err := New(sp.Ranges()...)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

func (s *Selection) hasExtent() bool {
	return slices.ContainsFunc(s.ranges, func(r interval.Range) bool { return !r.IsCursor() })
}

func (s *Selection) check(i int) error {
	if i < 0 || i >= len(s.ranges) {
		return errors.New(errors.ErrCodeInvalidInput, "selection index %d out of range (have %d)", i, len(s.ranges))
	}
	return nil
}

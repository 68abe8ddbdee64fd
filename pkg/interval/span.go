package interval

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/matzehuels/seqmap/pkg/errors"
)

// Span is an ordered list of ranges describing one, possibly discontiguous,
// feature. Order is traversal order, so a minus-strand span usually lists its
// ranges right to left.
type Span struct {
	ranges []Range
}

// NewSpan builds a span from ranges, copying the slice. Each range is
// validated.
func NewSpan(ranges ...Range) (Span, error) {
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return Span{}, err
		}
	}
	return Span{ranges: slices.Clone(ranges)}, nil
}

// SpanOf builds a span from ranges known to be valid.
func SpanOf(ranges ...Range) Span {
	return Span{ranges: slices.Clone(ranges)}
}

// Ranges returns a copy of the span's ranges.
func (s Span) Ranges() []Range { return slices.Clone(s.ranges) }

// Len returns the number of ranges.
func (s Span) Len() int { return len(s.ranges) }

// At returns the i-th range.
func (s Span) At(i int) Range { return s.ranges[i] }

// IsEmpty reports whether the span has no ranges.
func (s Span) IsEmpty() bool { return len(s.ranges) == 0 }

// TotalLength sums the lengths of all ranges.
func (s Span) TotalLength() int {
	n := 0
	for _, r := range s.ranges {
		n += r.Len()
	}
	return n
}

// Bounds returns the undirected range from the smallest start to the
// largest end. An empty span has zero bounds.
func (s Span) Bounds() Range {
	if len(s.ranges) == 0 {
		return Range{}
	}
	b := s.ranges[0].Undirected()
	for _, r := range s.ranges[1:] {
		b = b.Union(r)
	}
	return b
}

// Orientation is Minus only when minus-strand bases strictly outnumber
// plus-strand bases, and Plus otherwise.
func (s Span) Orientation() Orientation {
	var plus, minus int
	for _, r := range s.ranges {
		switch r.Orientation {
		case Plus:
			plus += r.Len()
		case Minus:
			minus += r.Len()
		}
	}
	if minus > plus {
		return Minus
	}
	return Plus
}

// Overlaps reports whether any range of s overlaps r.
func (s Span) Overlaps(r Range) bool {
	for _, x := range s.ranges {
		if x.Overlaps(r) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (s Span) Clone() Span { return Span{ranges: slices.Clone(s.ranges)} }

// Equal compares ranges element by element.
func (s Span) Equal(o Span) bool { return slices.Equal(s.ranges, o.ranges) }

// Shift moves every range by offset.
func (s Span) Shift(offset int) Span {
	out := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = r.Shift(offset)
	}
	return Span{ranges: out}
}

// Flip returns the span read on the opposite strand: ranges reversed and
// each one flipped.
func (s Span) Flip() Span {
	out := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		out[len(out)-1-i] = r.Flip()
	}
	return Span{ranges: out}
}

// Map returns a new span with fn applied to each range.
func (s Span) Map(fn func(Range) Range) Span {
	out := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = fn(r)
	}
	return Span{ranges: out}
}

// Extract concatenates the bases of each range in traversal order.
func (s Span) Extract(sequence string) (string, error) {
	var b strings.Builder
	b.Grow(s.TotalLength())
	for _, r := range s.ranges {
		part, err := r.Extract(sequence)
		if err != nil {
			return "", err
		}
		b.WriteString(part)
	}
	return b.String(), nil
}

// String joins the ranges with " + ".
func (s Span) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, " "+spanSeparator+" ")
}

// MarshalText encodes the span in text notation.
func (s Span) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses span text notation.
func (s *Span) UnmarshalText(text []byte) error {
	parsed, err := ParseSpan(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText encodes the range in text notation.
func (r Range) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText parses range text notation.
func (r *Range) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalJSON keeps ranges as structured objects in JSON; text notation is
// reserved for spans.
func (r Range) MarshalJSON() ([]byte, error) {
	type plain Range
	return json.Marshal(plain(r))
}

// UnmarshalJSON accepts either a structured object or a text string.
func (r *Range) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		return r.UnmarshalText([]byte(text))
	}
	type plain Range
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "decode range")
	}
	parsed := Range(p)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*r = parsed
	return nil
}

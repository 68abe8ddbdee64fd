package linear

import "github.com/matzehuels/seqmap/pkg/interval"

// Fragment is the part of one range shown on one display line. Start and End
// are line-local: 0 is the first base of the line.
type Fragment struct {
	Line        int                  `json:"line"`
	Start       int                  `json:"start"`
	End         int                  `json:"end"`
	Orientation interval.Orientation `json:"orientation"`
	IsStart     bool                 `json:"is_start"`
	IsEnd       bool                 `json:"is_end"`
}

// Len returns the number of bases in the fragment.
func (f Fragment) Len() int { return f.End - f.Start }

// Overlaps reports whether two fragments on the same line share a base.
func (f Fragment) Overlaps(o Fragment) bool {
	return f.Line == o.Line && f.Start < o.End && o.Start < f.End
}

// HasArrow reports whether the fragment carries the range's arrow head: the
// last fragment of a plus-strand range or the first of a minus-strand one.
func (f Fragment) HasArrow() bool {
	switch f.Orientation {
	case interval.Plus:
		return f.IsEnd
	case interval.Minus:
		return f.IsStart
	default:
		return false
	}
}

// Fragments splits r into one fragment per display line of zoom bases. A
// cursor yields a single fragment on its own line. zoom below 1 is treated
// as 1.
func Fragments(r interval.Range, zoom int) []Fragment {
	zoom = max(zoom, 1)
	if r.IsCursor() {
		line := r.Start / zoom
		return []Fragment{{
			Line:        line,
			Start:       r.Start - line*zoom,
			End:         r.Start - line*zoom,
			Orientation: r.Orientation,
			IsStart:     true,
			IsEnd:       true,
		}}
	}

	first, last := r.Start/zoom, (r.End-1)/zoom
	out := make([]Fragment, 0, last-first+1)
	for line := first; line <= last; line++ {
		lineStart := line * zoom
		out = append(out, Fragment{
			Line:        line,
			Start:       max(r.Start, lineStart) - lineStart,
			End:         min(r.End, lineStart+zoom) - lineStart,
			Orientation: r.Orientation,
			IsStart:     line == first,
			IsEnd:       line == last,
		})
	}
	return out
}

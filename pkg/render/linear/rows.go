package linear

import (
	"github.com/matzehuels/seqmap/pkg/annotation"
)

// RowOptions controls sequence-space row packing.
type RowOptions struct {
	Zoom              int     // bases per line
	RowHeight         float64 // height of an annotation band
	RowPadding        float64 // gap between rows
	ShowTranslation   bool    // reserve TranslationHeight under CDS bands
	TranslationHeight float64
}

// Row is one stacked annotation track on a line.
type Row struct {
	Height float64 `json:"height"`
	Offset float64 `json:"offset"`

	occupied []Fragment
}

func (r *Row) fits(f Fragment) bool {
	for _, o := range r.occupied {
		if o.Overlaps(f) {
			return false
		}
	}
	return true
}

// Slot is one fragment of one annotation assigned to a row.
type Slot struct {
	Annotation annotation.Annotation
	Fragment   Fragment
	RangeIndex int // index of the fragment's range within the span
	Row        int
	Y          float64 // row offset from the top of the track area
	Height     float64 // band height, translation excluded
}

// Track holds the rows and slots of one display line.
type Track struct {
	Line   int
	Rows   []Row
	Slots  []Slot
	Height float64 // total height of all rows with padding
}

// PackRows stacks annotation fragments into rows, line by line. Annotations
// are visited in PriorityOf order; each fragment joins the first row on its
// line with no overlapping fragment, or opens a new row. Row heights are the
// tallest occupant and offsets are computed once every row is known. The
// result has one track per line of a sequence of seqLen bases.
func PackRows(anns []annotation.Annotation, seqLen int, opts RowOptions) []Track {
	zoom := max(opts.Zoom, 1)
	lines := max(1, (seqLen+zoom-1)/zoom)
	tracks := make([]Track, lines)
	for i := range tracks {
		tracks[i].Line = i
	}

	sorted := make([]annotation.Annotation, len(anns))
	copy(sorted, anns)
	annotation.SortByPriority(sorted)

	for _, a := range sorted {
		need := opts.RowHeight
		if a.IsCDS() && opts.ShowTranslation {
			need += opts.TranslationHeight
		}
		for ri, r := range a.Span.Ranges() {
			for _, f := range Fragments(r, zoom) {
				if f.Line < 0 || f.Line >= lines {
					continue
				}
				t := &tracks[f.Line]
				row := -1
				for i := range t.Rows {
					if t.Rows[i].fits(f) {
						row = i
						break
					}
				}
				if row < 0 {
					t.Rows = append(t.Rows, Row{})
					row = len(t.Rows) - 1
				}
				t.Rows[row].occupied = append(t.Rows[row].occupied, f)
				t.Rows[row].Height = max(t.Rows[row].Height, need)
				t.Slots = append(t.Slots, Slot{Annotation: a, Fragment: f, RangeIndex: ri, Row: row, Height: opts.RowHeight})
			}
		}
	}

	for i := range tracks {
		t := &tracks[i]
		y := 0.0
		for j := range t.Rows {
			if j > 0 {
				y += opts.RowPadding
			}
			t.Rows[j].Offset = y
			y += t.Rows[j].Height
		}
		t.Height = y
		for j := range t.Slots {
			t.Slots[j].Y = t.Rows[t.Slots[j].Row].Offset
		}
	}
	return tracks
}

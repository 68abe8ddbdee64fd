package circular

import (
	"math"

	"github.com/matzehuels/seqmap/pkg/annotation"
	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/interval"
	"github.com/matzehuels/seqmap/pkg/render/linear"
	"github.com/matzehuels/seqmap/pkg/render/path"
)

const labelFontSize = linear.LabelFontSize

// Layout is the computed circular map.
type Layout struct {
	Name       string      `json:"name"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Geometry   Geometry    `json:"geometry"`
	Radius     float64     `json:"radius"` // backbone radius after zoom
	Scale      float64     `json:"scale"`
	Rows       int         `json:"rows"`
	Backbone   path.Path   `json:"backbone"`
	Ticks      []Tick      `json:"ticks,omitempty"`
	Arcs       []Arc       `json:"arcs,omitempty"`
	Labels     []Label     `json:"labels,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty"`
}

// Arc is one annotation segment drawn as a band. Wrapped segments cross the
// origin and run from Start through 0 to End.
type Arc struct {
	AnnotationID string               `json:"annotation_id"`
	Caption      string               `json:"caption"`
	Type         string               `json:"type,omitempty"`
	Start        int                  `json:"start"`
	End          int                  `json:"end"`
	Wrap         bool                 `json:"wrap,omitempty"`
	Orientation  interval.Orientation `json:"orientation"`
	Row          int                  `json:"row"`
	Radius       float64              `json:"radius"`
	Path         path.Path            `json:"path"`
}

// Label is a caption placed just outside its arc at the arc's midpoint.
// Anchor is the SVG text-anchor that keeps the text off the circle.
type Label struct {
	AnnotationID string     `json:"annotation_id"`
	Text         string     `json:"text"`
	At           path.Point `json:"at"`
	Angle        float64    `json:"angle"`
	Anchor       string     `json:"anchor"`
}

// Highlight marks a selected stretch. Wrapped stretches run from Start
// through the origin to End. A cursor is a radial line.
type Highlight struct {
	Start       int                  `json:"start"`
	End         int                  `json:"end"`
	Wrap        bool                 `json:"wrap,omitempty"`
	Orientation interval.Orientation `json:"orientation"`
	Path        path.Path            `json:"path"`
}

// IsCursor reports whether the highlight marks a cursor.
func (h Highlight) IsCursor() bool { return h.Start == h.End && !h.Wrap }

// Build computes the circular layout of doc.
func Build(doc *document.Document, opts Options) Layout {
	opts.SetDefaults()
	n := doc.Len()

	anns := doc.Annotations.ByPriority()
	rows, placed := packRows(anns, n)

	band := opts.RowHeight + opts.RowPadding
	z := Zoom{
		Base:      opts.Radius,
		MinRadius: opts.MinRadius,
		Reserved:  opts.BackboneSize/2 + float64(rows)*band + opts.LabelMargin,
	}
	z.SetZoom(opts.Scale, Size{W: opts.Width, H: opts.Height})

	g := Geometry{
		Length:       n,
		Center:       path.Point{X: opts.Width / 2, Y: opts.Height / 2},
		OriginOffset: opts.OriginOffset,
	}
	r := z.Radius()
	l := Layout{
		Name:     doc.Name,
		Width:    opts.Width,
		Height:   opts.Height,
		Geometry: g,
		Radius:   r,
		Scale:    z.Scale,
		Rows:     rows,
		Backbone: g.Arc(0, 0, r, opts.BackboneSize, true),
	}
	if !opts.HideTicks {
		l.Ticks = Ticks(g, r-opts.BackboneSize/2, opts.TickLength, opts.TickCount)
	}

	rowRadius := func(row int) float64 {
		return r + opts.BackboneSize/2 + opts.RowPadding + float64(row)*band + opts.RowHeight/2
	}
	for _, p := range placed {
		rr := rowRadius(p.row)
		labelled := false
		for _, s := range p.segments {
			if s.start == s.end && !s.wrap {
				continue
			}
			l.Arcs = append(l.Arcs, Arc{
				AnnotationID: p.ann.ID,
				Caption:      p.ann.Caption,
				Type:         p.ann.Type,
				Start:        s.start,
				End:          s.end,
				Wrap:         s.wrap,
				Orientation:  s.orientation,
				Row:          p.row,
				Radius:       rr,
				Path:         g.ArrowArc(s.start, s.end, rr, opts.RowHeight, opts.ArrowLength, s.orientation, s.wrap),
			})
			if !labelled && !opts.HideLabels && p.ann.Caption != "" {
				labelled = true
				l.Labels = append(l.Labels, label(g, p.ann, s, rr+opts.RowHeight/2+2))
			}
		}
	}

	inner := r - opts.BackboneSize/2
	outer := rowRadius(max(rows-1, 0)) + opts.RowHeight/2
	if rows == 0 {
		outer = r + opts.BackboneSize/2
	}
	for _, s := range segments(doc.Selection.Span(), n) {
		h := Highlight{Start: s.start, End: s.end, Wrap: s.wrap, Orientation: s.orientation}
		if h.IsCursor() {
			h.Path.MoveTo(g.Point(float64(s.start), inner)).LineTo(g.Point(float64(s.start), outer))
		} else {
			h.Path = g.Arc(s.start, s.end, (inner+outer)/2, outer-inner, s.wrap)
		}
		l.Highlights = append(l.Highlights, h)
	}
	return l
}

func label(g Geometry, a annotation.Annotation, s segment, radius float64) Label {
	from, sweep := g.Sweep(s.start, s.end, s.wrap)
	mid := from + sweep/2
	anchor := "start"
	if math.Cos(mid) < -1e-9 {
		anchor = "end"
	} else if math.Abs(math.Cos(mid)) <= 1e-9 {
		anchor = "middle"
	}
	return Label{
		AnnotationID: a.ID,
		Text:         a.Caption,
		At:           path.Polar(g.Center, radius, mid),
		Angle:        mid,
		Anchor:       anchor,
	}
}

// PositionAt converts a pointer location to the nearest fence post.
func (l Layout) PositionAt(pt path.Point) int {
	return l.Geometry.PositionAtPoint(pt)
}

// =============================================================================
// Segments and rows
// =============================================================================

// segment is a stretch of a span drawn as one band.
type segment struct {
	start, end  int
	wrap        bool
	orientation interval.Orientation
}

// occupied returns the linear intervals the segment covers.
func (s segment) occupied(n int) []interval.Range {
	if s.wrap {
		return []interval.Range{{Start: s.start, End: n}, {Start: 0, End: s.end}}
	}
	return []interval.Range{{Start: s.start, End: s.end}}
}

// segments turns span ranges into bands. Two adjacent ranges with the same
// orientation where one ends at the origin and the other starts there are
// joined into one wrapped band.
func segments(sp interval.Span, n int) []segment {
	rs := sp.Ranges()
	out := make([]segment, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if i+1 < len(rs) && n > 0 {
			next := rs[i+1]
			if next.Orientation == r.Orientation && !r.IsCursor() && !next.IsCursor() {
				switch {
				case r.End == n && next.Start == 0:
					out = append(out, segment{start: r.Start, end: next.End, wrap: true, orientation: r.Orientation})
					i++
					continue
				case r.Start == 0 && next.End == n:
					out = append(out, segment{start: next.Start, end: r.End, wrap: true, orientation: r.Orientation})
					i++
					continue
				}
			}
		}
		out = append(out, segment{start: r.Start, end: r.End, orientation: r.Orientation})
	}
	return out
}

type placedAnnotation struct {
	ann      annotation.Annotation
	segments []segment
	row      int
}

// packRows assigns each annotation, in the given order, to the first ring
// where none of its segments overlap an earlier occupant.
func packRows(anns []annotation.Annotation, n int) (int, []placedAnnotation) {
	var (
		rows   [][]interval.Range
		placed []placedAnnotation
	)
	for _, a := range anns {
		segs := segments(a.Span, n)
		var occ []interval.Range
		for _, s := range segs {
			if s.start == s.end && !s.wrap {
				continue
			}
			occ = append(occ, s.occupied(n)...)
		}
		if len(occ) == 0 {
			continue
		}
		row := 0
		for ; row < len(rows); row++ {
			if !conflicts(rows[row], occ) {
				break
			}
		}
		if row == len(rows) {
			rows = append(rows, nil)
		}
		rows[row] = append(rows[row], occ...)
		placed = append(placed, placedAnnotation{ann: a, segments: segs, row: row})
	}
	return len(rows), placed
}

func conflicts(row, occ []interval.Range) bool {
	for _, a := range row {
		for _, b := range occ {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

package sink

import (
	"strconv"

	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/seqmap/pkg/render/circular"
	"github.com/matzehuels/seqmap/pkg/render/linear"
	"github.com/matzehuels/seqmap/pkg/render/path"
)

// View names.
const (
	ViewLinear   = "linear"
	ViewCircular = "circular"
)

// Map is a computed layout of either view. Exactly one of Linear and
// Circular is set.
type Map struct {
	View     string           `json:"view"`
	Linear   *linear.Layout   `json:"linear,omitempty"`
	Circular *circular.Layout `json:"circular,omitempty"`
}

// Linear wraps a linear layout.
func Linear(l linear.Layout) Map { return Map{View: ViewLinear, Linear: &l} }

// Circular wraps a circular layout.
func Circular(l circular.Layout) Map { return Map{View: ViewCircular, Circular: &l} }

// Name returns the document name the layout was built from.
func (m Map) Name() string {
	switch {
	case m.Linear != nil:
		return m.Linear.Name
	case m.Circular != nil:
		return m.Circular.Name
	}
	return ""
}

// Size returns the drawing size in pixels.
func (m Map) Size() (w, h float64) {
	switch {
	case m.Linear != nil:
		return m.Linear.Width, m.Linear.Height + 2*m.Linear.Margin
	case m.Circular != nil:
		return m.Circular.Width, m.Circular.Height
	}
	return 0, 0
}

// =============================================================================
// Scene
// =============================================================================

// shape is a filled and/or stroked outline.
type shape struct {
	Class       string
	Annotation  string
	Title       string
	Path        path.Path
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64 // 0 means opaque
}

// text is a single line of text. Y is the baseline.
type text struct {
	Class  string
	X, Y   float64
	Text   string
	Anchor string // start, middle or end
	Fill   string
}

type scene struct {
	Title      string
	Width      float64
	Height     float64
	Background string
	Shapes     []shape
	Texts      []text
}

var (
	fontSize    = float64(linear.LabelFontSize)
	fontDescent = float64(basicfont.Face7x13.Metrics().Descent.Ceil())
)

const (
	tickMark      = 4.0
	minBaseWidth  = 8.0 // narrowest base that still gets a letter
	selectionFade = 0.3
)

func buildScene(m Map, r *svgRenderer) scene {
	switch {
	case m.Linear != nil:
		return linearScene(*m.Linear, r)
	case m.Circular != nil:
		return circularScene(*m.Circular, r)
	}
	return scene{Background: r.theme.Background}
}

func linearScene(l linear.Layout, r *svgRenderer) scene {
	t := r.theme
	w, h := Linear(l).Size()
	s := scene{Title: l.Name, Width: w, Height: h, Background: t.Background}
	off := path.Point{Y: l.Margin}
	y := func(v float64) float64 { return v + l.Margin }

	for _, ln := range l.Lines {
		bb := ln.Backbone
		s.Shapes = append(s.Shapes, shape{Class: "backbone", Path: boxPath(bb).Translate(off), Fill: t.Backbone})

		for _, tk := range ln.Ticks {
			var p path.Path
			p.MoveTo(path.Point{X: tk.X, Y: bb.Top}).LineTo(path.Point{X: tk.X, Y: bb.Top + tickMark})
			s.Shapes = append(s.Shapes, shape{Class: "tick", Path: p.Translate(off), Stroke: t.Tick, StrokeWidth: 1})
			s.Texts = append(s.Texts, text{
				Class: "tick-label", X: tk.X, Y: y(tk.Label.Bottom - fontDescent),
				Text: tk.Text, Anchor: "middle", Fill: t.Tick,
			})
		}

		if r.sequence != "" && l.BaseWidth >= minBaseWidth && ln.Range.End <= len(r.sequence) {
			baseline := y(bb.Bottom - (bb.Height()-fontSize)/2 - fontDescent)
			for i := ln.Range.Start; i < ln.Range.End; i++ {
				s.Texts = append(s.Texts, text{
					Class: "base", X: bb.Left + (float64(i-ln.Range.Start)+0.5)*l.BaseWidth, Y: baseline,
					Text: r.sequence[i : i+1], Anchor: "middle", Fill: t.Text,
				})
			}
		}

		for _, f := range ln.Features {
			fill := t.FeatureColor(f.Type)
			if f.Translation != nil {
				s.Shapes = append(s.Shapes, shape{
					Class: "translation", Annotation: f.AnnotationID,
					Path: boxPath(*f.Translation).Translate(off), Fill: fill, Opacity: 0.35,
				})
			}
			s.Shapes = append(s.Shapes, shape{
				Class: "feature", Annotation: f.AnnotationID, Title: f.Caption,
				Path: f.Path.Translate(off), Fill: fill, Stroke: t.Outline, StrokeWidth: 0.5,
			})
		}

		for _, lb := range ln.Labels {
			b := lb.Box()
			if lb.Placement.Offset != 0 {
				var p path.Path
				p.MoveTo(path.Point{X: lb.Anchor, Y: bb.Top}).LineTo(path.Point{X: b.CenterX(), Y: b.Bottom})
				s.Shapes = append(s.Shapes, shape{Class: "leader", Path: p.Translate(off), Stroke: t.Tick, StrokeWidth: 0.5})
			}
			s.Texts = append(s.Texts, text{
				Class: "label", X: b.Left, Y: y(b.Bottom - fontDescent),
				Text: lb.Text, Anchor: "start", Fill: t.Text,
			})
		}

		for _, hl := range ln.Highlights {
			s.Shapes = append(s.Shapes, highlight(hl.Path.Translate(off), hl.Fragment.Len() == 0, t))
		}
	}
	return s
}

func circularScene(l circular.Layout, r *svgRenderer) scene {
	t := r.theme
	s := scene{Title: l.Name, Width: l.Width, Height: l.Height, Background: t.Background}
	s.Shapes = append(s.Shapes, shape{Class: "backbone", Path: l.Backbone, Fill: t.Backbone})

	for _, tk := range l.Ticks {
		var p path.Path
		p.MoveTo(tk.Inner).LineTo(tk.Outer)
		s.Shapes = append(s.Shapes, shape{Class: "tick", Path: p, Stroke: t.Tick, StrokeWidth: 1})
		s.Texts = append(s.Texts, text{
			Class: "tick-label", X: tk.LabelAt.X, Y: tk.LabelAt.Y + fontSize/2 - fontDescent,
			Text: tk.Text, Anchor: "middle", Fill: t.Tick,
		})
	}
	for _, a := range l.Arcs {
		s.Shapes = append(s.Shapes, shape{
			Class: "feature", Annotation: a.AnnotationID, Title: a.Caption,
			Path: a.Path, Fill: t.FeatureColor(a.Type), Stroke: t.Outline, StrokeWidth: 0.5,
		})
	}
	for _, lb := range l.Labels {
		s.Texts = append(s.Texts, text{
			Class: "label", X: lb.At.X, Y: lb.At.Y + fontSize/2 - fontDescent,
			Text: lb.Text, Anchor: lb.Anchor, Fill: t.Text,
		})
	}
	for _, hl := range l.Highlights {
		s.Shapes = append(s.Shapes, highlight(hl.Path, hl.IsCursor(), t))
	}

	c := l.Geometry.Center
	s.Texts = append(s.Texts,
		text{Class: "title", X: c.X, Y: c.Y - fontDescent, Text: l.Name, Anchor: "middle", Fill: t.Text},
		text{Class: "length", X: c.X, Y: c.Y + fontSize, Text: strconv.Itoa(l.Geometry.Length) + " bp", Anchor: "middle", Fill: t.Tick},
	)
	return s
}

func highlight(p path.Path, cursor bool, t Theme) shape {
	if cursor {
		return shape{Class: "cursor", Path: p, Stroke: t.Cursor, StrokeWidth: 1.5}
	}
	return shape{Class: "selection", Path: p, Fill: t.Selection, Opacity: selectionFade}
}

func boxPath(b linear.Box) path.Path {
	var p path.Path
	p.MoveTo(path.Point{X: b.Left, Y: b.Top}).
		LineTo(path.Point{X: b.Right, Y: b.Top}).
		LineTo(path.Point{X: b.Right, Y: b.Bottom}).
		LineTo(path.Point{X: b.Left, Y: b.Bottom}).
		Close()
	return p
}

// Package linear lays out a document as a scrolling linear map.
//
// The sequence is cut into display lines of Options.Zoom bases. For each line
// the engine produces:
//
//   - a backbone box for the sequence itself, with ruler ticks
//   - annotation features stacked into rows below the backbone by
//     [PackRows], each with a pixel box and an outline path whose arrow head
//     marks the 3' end (plus strand) or 5' end (minus strand)
//   - captions above the backbone, packed with the skyline packer [Pack]
//     using tick labels as anchored obstacles
//   - selection highlights
//
// Layout is pure: [Build] can be called again whenever the document, zoom or
// frame width changes.
package linear

import (
	"math"
	"strconv"

	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/interval"
	"github.com/matzehuels/seqmap/pkg/render"
	"github.com/matzehuels/seqmap/pkg/render/path"
)

// tickSpacing is the rough pixel distance between ruler ticks.
const tickSpacing = 80.0

// Layout is the computed linear map.
type Layout struct {
	Name           string  `json:"name"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Zoom           int     `json:"zoom"`
	BaseWidth      float64 `json:"base_width"`
	Margin         float64 `json:"margin"`
	SequenceLength int     `json:"sequence_length"`
	Lines          []Line  `json:"lines"`
}

// Line is one display line.
type Line struct {
	Index      int            `json:"index"`
	Range      interval.Range `json:"range"`
	Top        float64        `json:"top"`
	Height     float64        `json:"height"`
	Backbone   Box            `json:"backbone"`
	Ticks      []Tick         `json:"ticks,omitempty"`
	Features   []Feature      `json:"features,omitempty"`
	Labels     []Label        `json:"labels,omitempty"`
	Highlights []Highlight    `json:"highlights,omitempty"`
	Rows       []Row          `json:"rows,omitempty"`
}

// Tick is a ruler mark with its position label.
type Tick struct {
	Position int     `json:"position"`
	X        float64 `json:"x"`
	Label    Box     `json:"label"`
	Text     string  `json:"text"`
}

// Feature is one annotation fragment drawn on a line.
type Feature struct {
	AnnotationID string    `json:"annotation_id"`
	Caption      string    `json:"caption"`
	Type         string    `json:"type,omitempty"`
	Fragment     Fragment  `json:"fragment"`
	Row          int       `json:"row"`
	Box          Box       `json:"box"`
	Path         path.Path `json:"path"`
	Translation  *Box      `json:"translation,omitempty"`
}

// Label is a placed caption.
type Label struct {
	AnnotationID string    `json:"annotation_id"`
	Text         string    `json:"text"`
	Placement    Placement `json:"placement"`
	Anchor       float64   `json:"anchor"` // x of the feature the caption belongs to
}

// Box returns the final caption box.
func (l Label) Box() Box { return l.Placement.Final() }

// Highlight marks selected bases on a line. A cursor has zero width.
type Highlight struct {
	Fragment Fragment  `json:"fragment"`
	Box      Box       `json:"box"`
	Path     path.Path `json:"path"`
}

// Build computes the linear layout of doc.
func Build(doc *document.Document, opts Options) Layout {
	opts.SetDefaults()
	n := doc.Len()
	inner := max(opts.Width-2*opts.Margin, 1)
	l := Layout{
		Name:           doc.Name,
		Width:          opts.Width,
		Zoom:           opts.Zoom,
		BaseWidth:      inner / float64(opts.Zoom),
		Margin:         opts.Margin,
		SequenceLength: n,
	}

	tracks := PackRows(doc.Annotations.All(), n, RowOptions{
		Zoom:              opts.Zoom,
		RowHeight:         opts.RowHeight,
		RowPadding:        opts.RowPadding,
		ShowTranslation:   opts.ShowTranslation,
		TranslationHeight: opts.TranslationHeight,
	})
	highlights := selectionFragments(doc, opts.Zoom)
	step := render.NiceStep(tickSpacing / l.BaseWidth)

	y := 0.0
	for i, t := range tracks {
		if i > 0 {
			y += opts.LinePadding
		}
		line := l.buildLine(t, y, step, highlights[i], &opts)
		y += line.Height
		l.Lines = append(l.Lines, line)
	}
	l.Height = y
	return l
}

func (l *Layout) buildLine(t Track, top float64, step int, sel []Fragment, opts *Options) Line {
	start := t.Line * l.Zoom
	end := min(start+l.Zoom, l.SequenceLength)
	line := Line{
		Index: t.Line,
		Range: interval.Range{Start: start, End: end},
		Top:   top,
		Rows:  t.Rows,
	}

	// Captions and tick labels are packed with the backbone top at y=0 and
	// moved into place once the label area height is known.
	var (
		elements []Element
		texts    []string
		owners   []Feature
	)
	if !opts.HideTicks {
		for _, p := range render.Ticks(end-start, step) {
			text := strconv.Itoa(start + p)
			w, h := MeasureLabel(text)
			x := l.x(p)
			line.Ticks = append(line.Ticks, Tick{Position: start + p, X: x, Text: text})
			elements = append(elements, Anchored{Box: Rect(x-w/2, -h, w, h)})
		}
	}

	features := l.features(t, opts)
	if !opts.HideLabels {
		for _, f := range features {
			if !f.Fragment.IsStart || !f.labelled {
				continue
			}
			text := TruncateLabel(f.Caption, l.Width-2*l.Margin)
			w, h := MeasureLabel(text)
			b := Rect(f.Box.CenterX()-w/2, -h, w, h)
			b.Padding = Padding{Left: opts.LabelPadding, Right: opts.LabelPadding}
			elements = append(elements, Floating{Box: b})
			texts = append(texts, text)
			owners = append(owners, f.Feature)
		}
	}

	placed := Pack(elements, opts.LabelPadding)
	labelTop := 0.0
	for _, p := range placed {
		labelTop = math.Min(labelTop, p.Final().Outer().Top)
	}
	backboneTop := top - labelTop
	shift := func(p Placement) Placement {
		p.Box = p.Box.Translate(0, backboneTop)
		return p
	}

	k := 0
	for i, p := range placed {
		if p.Anchored {
			line.Ticks[i].Label = shift(p).Final()
			continue
		}
		line.Labels = append(line.Labels, Label{
			AnnotationID: owners[k].AnnotationID,
			Text:         texts[k],
			Placement:    shift(p),
			Anchor:       owners[k].Box.CenterX(),
		})
		k++
	}

	line.Backbone = Rect(l.x(0), backboneTop, float64(end-start)*l.BaseWidth, opts.SequenceHeight)
	rowsTop := backboneTop + opts.SequenceHeight + opts.RowPadding
	for _, f := range features {
		feat := f.Feature
		feat.Box = feat.Box.Translate(0, rowsTop)
		if feat.Translation != nil {
			tb := feat.Translation.Translate(0, rowsTop)
			feat.Translation = &tb
		}
		feat.Path = feat.Path.Translate(path.Point{Y: rowsTop})
		line.Features = append(line.Features, feat)
	}

	bottom := backboneTop + opts.SequenceHeight
	if t.Height > 0 {
		bottom = rowsTop + t.Height
	}
	for _, f := range sel {
		x0, x1 := l.x(f.Start), l.x(f.End)
		b := Box{Left: x0, Top: backboneTop, Right: x1, Bottom: bottom}
		var p path.Path
		if f.Len() == 0 {
			p.MoveTo(path.Point{X: x0, Y: backboneTop}).LineTo(path.Point{X: x0, Y: bottom})
		} else {
			rectPath(&p, b)
		}
		line.Highlights = append(line.Highlights, Highlight{Fragment: f, Box: b, Path: p})
	}

	line.Height = bottom - top
	return line
}

// pendingFeature is a feature positioned relative to the top of the rows,
// with whether it should carry the annotation's caption.
type pendingFeature struct {
	Feature
	labelled bool
}

func (l *Layout) features(t Track, opts *Options) []pendingFeature {
	out := make([]pendingFeature, 0, len(t.Slots))
	for _, s := range t.Slots {
		f := s.Fragment
		x0, x1 := l.x(f.Start), l.x(f.End)
		b := Box{Left: x0, Top: s.Y, Right: x1, Bottom: s.Y + s.Height}
		feat := Feature{
			AnnotationID: s.Annotation.ID,
			Caption:      s.Annotation.Caption,
			Type:         s.Annotation.Type,
			Fragment:     f,
			Row:          s.Row,
			Box:          b,
			Path:         featurePath(b, f, opts.ArrowLength),
		}
		if s.Annotation.IsCDS() && opts.ShowTranslation {
			tb := Box{Left: x0, Top: b.Bottom, Right: x1, Bottom: b.Bottom + opts.TranslationHeight}
			feat.Translation = &tb
		}
		out = append(out, pendingFeature{Feature: feat, labelled: s.RangeIndex == 0})
	}
	return out
}

// featurePath outlines a fragment, with an arrow head when the fragment
// carries the range's terminus.
func featurePath(b Box, f Fragment, arrow float64) path.Path {
	var p path.Path
	w := b.Right - b.Left
	a := math.Min(arrow, w)
	midY := (b.Top + b.Bottom) / 2
	switch {
	case !f.HasArrow() || a <= 0:
		rectPath(&p, b)
	case f.Orientation == interval.Plus:
		p.MoveTo(path.Point{X: b.Left, Y: b.Top}).
			LineTo(path.Point{X: b.Right - a, Y: b.Top}).
			LineTo(path.Point{X: b.Right, Y: midY}).
			LineTo(path.Point{X: b.Right - a, Y: b.Bottom}).
			LineTo(path.Point{X: b.Left, Y: b.Bottom}).
			Close()
	default:
		p.MoveTo(path.Point{X: b.Left + a, Y: b.Top}).
			LineTo(path.Point{X: b.Right, Y: b.Top}).
			LineTo(path.Point{X: b.Right, Y: b.Bottom}).
			LineTo(path.Point{X: b.Left + a, Y: b.Bottom}).
			LineTo(path.Point{X: b.Left, Y: midY}).
			Close()
	}
	return p
}

func rectPath(p *path.Path, b Box) {
	p.MoveTo(path.Point{X: b.Left, Y: b.Top}).
		LineTo(path.Point{X: b.Right, Y: b.Top}).
		LineTo(path.Point{X: b.Right, Y: b.Bottom}).
		LineTo(path.Point{X: b.Left, Y: b.Bottom}).
		Close()
}

func selectionFragments(doc *document.Document, zoom int) map[int][]Fragment {
	out := make(map[int][]Fragment)
	for _, r := range doc.Selection.Ranges() {
		for _, f := range Fragments(r, zoom) {
			out[f.Line] = append(out[f.Line], f)
		}
	}
	return out
}

// x converts a line-local base offset to a pixel x.
func (l *Layout) x(offset int) float64 {
	return l.Margin + float64(offset)*l.BaseWidth
}

// LineOf returns the display line holding pos, clamped to the layout.
func (l Layout) LineOf(pos int) int {
	if len(l.Lines) == 0 {
		return 0
	}
	return min(max(pos, 0)/max(l.Zoom, 1), len(l.Lines)-1)
}

// PositionAt converts a pixel x on a display line to the nearest fence post.
// Lines and x positions outside the layout are clamped.
func (l Layout) PositionAt(line int, x float64) int {
	if len(l.Lines) == 0 || l.BaseWidth <= 0 {
		return 0
	}
	ln := l.Lines[min(max(line, 0), len(l.Lines)-1)]
	off := int(math.Round((x - l.Margin) / l.BaseWidth))
	return min(max(ln.Range.Start+off, ln.Range.Start), ln.Range.End)
}

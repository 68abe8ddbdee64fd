package circular

import (
	"math"

	"github.com/matzehuels/seqmap/pkg/interval"
	"github.com/matzehuels/seqmap/pkg/render/path"
)

// minSweep is the smallest sweep drawn with true arcs.
const minSweep = math.Pi / 180

// Sweep returns the start angle and clockwise sweep of the band between two
// positions. Without wrap the band runs from the smaller position to the
// larger one; with wrap it runs from the larger one through the origin, so
// its sweep is 2π minus the direct one.
func (g Geometry) Sweep(start, end int, wrap bool) (from, sweep float64) {
	lo, hi := min(start, end), max(start, end)
	direct := float64(hi-lo) / float64(max(g.Length, 1)) * twoPi
	if wrap {
		return g.Angle(float64(hi)), twoPi - direct
	}
	return g.Angle(float64(lo)), direct
}

// Arc outlines the band between start and end centered on radius. A
// non-wrapping band with start == end is empty.
func (g Geometry) Arc(start, end int, radius, thickness float64, wrap bool) path.Path {
	if !wrap && start == end {
		return path.Path{}
	}
	from, sweep := g.Sweep(start, end, wrap)
	outer, inner := bandRadii(radius, thickness)
	return g.band(from, sweep, outer, inner)
}

// ArrowArc outlines a band like Arc with an arrow head arrowLength pixels
// long at the end given by o. The head is a quarter of the thickness wider
// than the band on each side. Unoriented bands and bands too short to carry
// a head fall back to Arc.
func (g Geometry) ArrowArc(start, end int, radius, thickness, arrowLength float64, o interval.Orientation, wrap bool) path.Path {
	if !wrap && start == end {
		return path.Path{}
	}
	from, sweep := g.Sweep(start, end, wrap)
	outer, inner := bandRadii(radius, thickness)
	head := arrowLength / math.Max(radius, 1)
	if o == interval.None || sweep < head+minSweep {
		return g.band(from, sweep, outer, inner)
	}

	headOuter := outer + thickness/4
	headInner := math.Max(inner-thickness/4, 0)
	c := g.Center
	var p path.Path
	if o == interval.Plus {
		neck := from + sweep - head
		arc(&p, c, outer, from, sweep-head)
		p.LineTo(path.Polar(c, headOuter, neck))
		p.LineTo(path.Polar(c, radius, from+sweep))
		p.LineTo(path.Polar(c, headInner, neck))
		p.LineTo(path.Polar(c, inner, neck))
		arc(&p, c, inner, neck, -(sweep - head))
		return *p.Close()
	}
	neck := from + head
	p.MoveTo(path.Polar(c, radius, from))
	p.LineTo(path.Polar(c, headOuter, neck))
	arc(&p, c, outer, neck, sweep-head)
	p.LineTo(path.Polar(c, inner, from+sweep))
	arc(&p, c, inner, from+sweep, -(sweep - head))
	p.LineTo(path.Polar(c, headInner, neck))
	return *p.Close()
}

func (g Geometry) band(from, sweep, outer, inner float64) path.Path {
	c := g.Center
	var p path.Path
	if sweep < minSweep {
		p.MoveTo(path.Polar(c, outer, from))
		p.LineTo(path.Polar(c, outer, from+sweep))
		p.LineTo(path.Polar(c, inner, from+sweep))
		p.LineTo(path.Polar(c, inner, from))
		return *p.Close()
	}
	arc(&p, c, outer, from, sweep)
	p.LineTo(path.Polar(c, inner, from+sweep))
	arc(&p, c, inner, from+sweep, -sweep)
	return *p.Close()
}

// arc appends an arc, splitting full turns in two since a single SVG arc
// cannot describe a whole circle.
func arc(p *path.Path, c path.Point, r, start, sweep float64) {
	if math.Abs(sweep) >= twoPi-1e-9 {
		p.Arc(c, r, start, sweep/2)
		p.Arc(c, r, start+sweep/2, sweep/2)
		return
	}
	p.Arc(c, r, start, sweep)
}

func bandRadii(radius, thickness float64) (outer, inner float64) {
	return radius + thickness/2, math.Max(radius-thickness/2, 0)
}

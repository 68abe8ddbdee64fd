// Package path describes vector outlines produced by the layout engines.
//
// A [Path] is a list of drawing commands in screen space (y grows downward):
// move, line, circular arc and close. Arc angles are in radians and a
// positive sweep runs clockwise on screen, which is the direction sequence
// positions advance around a circular map. Paths are plain values with JSON
// tags so layouts can be shipped to other renderers unchanged; [Path.SVG]
// produces an SVG "d" attribute and [Path.Flatten] turns a path into
// polygons for rasterizers.
package path

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position in screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Polar returns the point at distance r and angle a from c.
func Polar(c Point, r, a float64) Point {
	return Point{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
}

// Op identifies a path command.
type Op string

const (
	OpMove  Op = "M"
	OpLine  Op = "L"
	OpArc   Op = "A"
	OpClose Op = "Z"
)

// Element is one path command. Move and line use To. Arc uses Center,
// Radius, Start and Sweep, with To set to the arc's end point.
type Element struct {
	Op     Op      `json:"op"`
	To     Point   `json:"to"`
	Center Point   `json:"center,omitzero"`
	Radius float64 `json:"radius,omitempty"`
	Start  float64 `json:"start,omitempty"`
	Sweep  float64 `json:"sweep,omitempty"`
}

// Path is an ordered list of drawing commands. The zero value is an empty
// path.
type Path struct {
	Elements []Element `json:"elements"`
}

// IsEmpty reports whether the path draws nothing.
func (p *Path) IsEmpty() bool { return len(p.Elements) == 0 }

// MoveTo starts a new subpath at pt.
func (p *Path) MoveTo(pt Point) *Path {
	p.Elements = append(p.Elements, Element{Op: OpMove, To: pt})
	return p
}

// LineTo draws a straight segment to pt. On an empty path it moves instead.
func (p *Path) LineTo(pt Point) *Path {
	if p.IsEmpty() {
		return p.MoveTo(pt)
	}
	p.Elements = append(p.Elements, Element{Op: OpLine, To: pt})
	return p
}

// Arc draws a circular arc around center starting at angle start and
// sweeping by sweep radians. The current point is first joined to the arc's
// start with a line (or a move on an empty path).
func (p *Path) Arc(center Point, radius, start, sweep float64) *Path {
	from := Polar(center, radius, start)
	if cur, ok := p.current(); !ok || !near(cur, from) {
		p.LineTo(from)
	}
	p.Elements = append(p.Elements, Element{
		Op:     OpArc,
		To:     Polar(center, radius, start+sweep),
		Center: center,
		Radius: radius,
		Start:  start,
		Sweep:  sweep,
	})
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	if !p.IsEmpty() {
		p.Elements = append(p.Elements, Element{Op: OpClose})
	}
	return p
}

// Translate returns a copy of p moved by d.
func (p Path) Translate(d Point) Path {
	out := Path{Elements: make([]Element, len(p.Elements))}
	for i, e := range p.Elements {
		if e.Op != OpClose {
			e.To = e.To.Add(d)
		}
		if e.Op == OpArc {
			e.Center = e.Center.Add(d)
		}
		out.Elements[i] = e
	}
	return out
}

// SVG returns the path as an SVG "d" attribute value.
func (p Path) SVG() string {
	var b strings.Builder
	for i, e := range p.Elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch e.Op {
		case OpMove, OpLine:
			b.WriteString(string(e.Op))
			writePoint(&b, e.To)
		case OpArc:
			large, sweep := 0, 0
			if math.Abs(e.Sweep) > math.Pi {
				large = 1
			}
			if e.Sweep > 0 {
				sweep = 1
			}
			b.WriteString("A")
			b.WriteString(num(e.Radius))
			b.WriteByte(' ')
			b.WriteString(num(e.Radius))
			b.WriteString(" 0 ")
			b.WriteString(strconv.Itoa(large))
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(sweep))
			b.WriteByte(' ')
			writePoint(&b, e.To)
		case OpClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

// maxArcStep bounds the angle covered by one segment when flattening.
const maxArcStep = math.Pi / 90

// Flatten converts the path into closed or open polylines, one per subpath,
// approximating arcs with segments of at most two degrees.
func (p Path) Flatten() [][]Point {
	var (
		out [][]Point
		cur []Point
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, e := range p.Elements {
		switch e.Op {
		case OpMove:
			flush()
			cur = []Point{e.To}
		case OpLine:
			cur = append(cur, e.To)
		case OpArc:
			n := max(1, int(math.Ceil(math.Abs(e.Sweep)/maxArcStep-1e-9)))
			for i := 1; i <= n; i++ {
				cur = append(cur, Polar(e.Center, e.Radius, e.Start+e.Sweep*float64(i)/float64(n)))
			}
		case OpClose:
			if len(cur) > 0 {
				cur = append(cur, cur[0])
			}
			flush()
		}
	}
	flush()
	return out
}

// Bounds returns the smallest axis-aligned box containing the flattened
// path. An empty path returns zero points.
func (p Path) Bounds() (minPt, maxPt Point) {
	first := true
	for _, poly := range p.Flatten() {
		for _, pt := range poly {
			if first {
				minPt, maxPt, first = pt, pt, false
				continue
			}
			minPt = Point{math.Min(minPt.X, pt.X), math.Min(minPt.Y, pt.Y)}
			maxPt = Point{math.Max(maxPt.X, pt.X), math.Max(maxPt.Y, pt.Y)}
		}
	}
	return minPt, maxPt
}

// Sweep returns the total signed angle covered by the path's arcs on the
// given radius.
func (p Path) Sweep(radius float64) float64 {
	total := 0.0
	for _, e := range p.Elements {
		if e.Op == OpArc && math.Abs(e.Radius-radius) < 1e-9 {
			total += e.Sweep
		}
	}
	return total
}

func (p *Path) current() (Point, bool) {
	if p.IsEmpty() {
		return Point{}, false
	}
	last := p.Elements[len(p.Elements)-1]
	if last.Op == OpClose {
		return Point{}, false
	}
	return last.To, true
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func writePoint(b *strings.Builder, pt Point) {
	b.WriteString(num(pt.X))
	b.WriteByte(' ')
	b.WriteString(num(pt.Y))
}

func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

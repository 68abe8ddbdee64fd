package linear

import (
	"cmp"
	"slices"
)

// Padding is extra clearance around a box, per edge.
type Padding struct {
	Left   float64 `json:"left,omitempty"`
	Top    float64 `json:"top,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
}

// Box is an axis-aligned rectangle in screen space (y grows downward) with
// padding used for collision tests.
type Box struct {
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Right   float64 `json:"right"`
	Bottom  float64 `json:"bottom"`
	Padding Padding `json:"padding,omitzero"`
}

// Rect returns an unpadded box of the given size with its top-left corner at
// (x, y).
func Rect(x, y, w, h float64) Box {
	return Box{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width is the padded width.
func (b Box) Width() float64 {
	return b.Right - b.Left + b.Padding.Left + b.Padding.Right
}

// Height is the padded height.
func (b Box) Height() float64 {
	return b.Bottom - b.Top + b.Padding.Top + b.Padding.Bottom
}

// CenterX is the horizontal center of the unpadded box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// Outer returns the padded rectangle with zero padding.
func (b Box) Outer() Box {
	return Box{
		Left:   b.Left - b.Padding.Left,
		Top:    b.Top - b.Padding.Top,
		Right:  b.Right + b.Padding.Right,
		Bottom: b.Bottom + b.Padding.Bottom,
	}
}

// Overlaps reports whether the padded boxes intersect with positive area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	x, y := b.Outer(), o.Outer()
	return x.Left < y.Right && y.Left < x.Right && x.Top < y.Bottom && y.Top < x.Bottom
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.Left += dx
	b.Right += dx
	b.Top += dy
	b.Bottom += dy
	return b
}

// Element is a box taking part in skyline packing: either [Anchored] or
// [Floating].
type Element interface {
	measured() Box
	anchored() bool
}

// Anchored elements keep their position and act as obstacles.
type Anchored struct{ Box Box }

// Floating elements are pushed upward until they collide with nothing.
type Floating struct{ Box Box }

func (a Anchored) measured() Box { return a.Box }
func (Anchored) anchored() bool  { return true }
func (f Floating) measured() Box { return f.Box }
func (Floating) anchored() bool  { return false }

// Placement is the outcome of packing one element: the box as measured and
// the vertical offset found for it.
type Placement struct {
	Box      Box     `json:"box"`
	Offset   float64 `json:"offset"`
	Anchored bool    `json:"anchored,omitempty"`
}

// Final returns the measured box moved by its offset.
func (p Placement) Final() Box { return p.Box.Translate(0, p.Offset) }

// Pack places elements with a greedy skyline: elements are visited widest
// first (stable for equal widths), anchored ones stay put, and each floating
// one is pushed up past every obstacle it hits, contentPadding above it,
// until it is clear. Placements are returned in input order.
func Pack(elements []Element, contentPadding float64) []Placement {
	pad := max(contentPadding, 0)
	out := make([]Placement, len(elements))
	order := make([]int, len(elements))
	for i, e := range elements {
		order[i] = i
		out[i] = Placement{Box: e.measured(), Anchored: e.anchored()}
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(out[b].Box.Width(), out[a].Box.Width())
	})

	obstacles := make([]Box, 0, len(elements))
	for _, i := range order {
		if out[i].Anchored {
			obstacles = append(obstacles, out[i].Box)
		}
	}
	for _, i := range order {
		if out[i].Anchored {
			continue
		}
		cur := out[i].Box
		offset := 0.0
		for moved := true; moved; {
			moved = false
			for _, o := range obstacles {
				if cur.Overlaps(o) {
					dy := o.Outer().Top - cur.Outer().Bottom - pad
					offset += dy
					cur = cur.Translate(0, dy)
					moved = true
					break
				}
			}
		}
		out[i].Offset = offset
		obstacles = append(obstacles, cur)
	}
	return out
}

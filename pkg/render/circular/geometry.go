// Package circular lays out a document as a circular plasmid map.
//
// # Coordinates
//
// Position 0 sits at the top of the circle and positions advance clockwise:
//
//	angle = position/length·2π − π/2
//
// Angles are in screen space (y grows downward), so increasing angle is
// clockwise on screen. [Geometry] adds an origin offset that rotates the
// whole map; it is applied in both directions and when converting a pointer
// location back to a position.
//
// # Arcs
//
// [Geometry.Arc] outlines a band between two positions as a closed path:
// outer arc, end cap, inner arc back, close. Bands under one degree are drawn
// as quadrilaterals. With wrap set the band takes the long way round, which
// is how features crossing the origin are drawn. [Geometry.ArrowArc] adds an
// arrow head at the 3' end (plus strand) or 5' end (minus strand).
//
// # Layout
//
// [Build] places the backbone, ruler ticks, annotation arcs stacked on
// concentric rows outside the backbone, and the selection.
package circular

import (
	"math"

	"github.com/matzehuels/seqmap/pkg/render/path"
)

const twoPi = 2 * math.Pi

// PositionToAngle maps a sequence position to an angle in radians, with 0 at
// the top and positions advancing clockwise.
func PositionToAngle(pos float64, length int) float64 {
	return pos/float64(max(length, 1))*twoPi - math.Pi/2
}

// AngleToPosition is the inverse of PositionToAngle. The angle is normalized
// first, so the result lies in [0, length).
func AngleToPosition(angle float64, length int) float64 {
	a := normalize(angle + math.Pi/2)
	return a / twoPi * float64(max(length, 1))
}

// normalize folds a into [0, 2π).
func normalize(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// Geometry converts between positions, angles and points for one map.
type Geometry struct {
	Length       int        `json:"length"`
	Center       path.Point `json:"center"`
	OriginOffset float64    `json:"origin_offset,omitempty"` // radians, clockwise
}

// Angle returns the screen angle of pos.
func (g Geometry) Angle(pos float64) float64 {
	return PositionToAngle(pos, g.Length) + g.OriginOffset
}

// Position returns the position at a screen angle.
func (g Geometry) Position(angle float64) float64 {
	return AngleToPosition(angle-g.OriginOffset, g.Length)
}

// Point returns the point at pos on a circle of the given radius.
func (g Geometry) Point(pos, radius float64) path.Point {
	return path.Polar(g.Center, radius, g.Angle(pos))
}

// PositionAtPoint returns the fence post nearest to the direction of pt from
// the center. The center itself maps to 0.
func (g Geometry) PositionAtPoint(pt path.Point) int {
	dx, dy := pt.X-g.Center.X, pt.Y-g.Center.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	n := max(g.Length, 1)
	p := int(math.Round(g.Position(math.Atan2(dy, dx))))
	return p % n
}

package circular

import "math"

// Size is a viewport size in pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Zoom scales the backbone radius.
type Zoom struct {
	Base      float64 `json:"base"`      // radius at scale 1
	Scale     float64 `json:"scale"`     // current zoom factor
	MinRadius float64 `json:"min_radius"` // smallest legible radius
	Reserved  float64 `json:"reserved"`  // space kept free outside the backbone
}

// Radius is the current backbone radius.
func (z Zoom) Radius() float64 { return z.Base * z.Scale }

// MaxRadius is the largest radius that leaves Reserved pixels inside the
// viewport. It never drops below MinRadius.
func (z Zoom) MaxRadius(viewport Size) float64 {
	return math.Max(math.Min(viewport.W, viewport.H)/2-z.Reserved, z.MinRadius)
}

// SetZoom sets the scale, clamping it so the radius stays within
// [MinRadius, MaxRadius(viewport)]. Requests outside the range are not an
// error.
func (z *Zoom) SetZoom(scale float64, viewport Size) {
	if z.Base <= 0 {
		z.Scale = 1
		return
	}
	if math.IsNaN(scale) || scale <= 0 {
		scale = 0
	}
	r := math.Min(math.Max(z.Base*scale, z.MinRadius), z.MaxRadius(viewport))
	z.Scale = r / z.Base
}

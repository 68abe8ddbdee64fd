package circular

import (
	"math"
	"testing"

	"github.com/matzehuels/seqmap/pkg/render/path"
)

func TestPositionToAngle(t *testing.T) {
	tests := []struct {
		pos  float64
		n    int
		want float64
	}{
		{0, 100, -math.Pi / 2},
		{25, 100, 0},
		{50, 100, math.Pi / 2},
		{75, 100, math.Pi},
	}
	for _, tt := range tests {
		if got := PositionToAngle(tt.pos, tt.n); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PositionToAngle(%v, %d) = %v, want %v", tt.pos, tt.n, got, tt.want)
		}
	}
}

func TestAngleRoundTrip(t *testing.T) {
	for _, n := range []int{1, 7, 100, 4361} {
		for p := 0; p < n; p += max(1, n/37) {
			got := AngleToPosition(PositionToAngle(float64(p), n), n)
			if math.Abs(got-float64(p)) > 1e-6 {
				t.Errorf("n=%d: round trip of %d gave %v", n, p, got)
			}
		}
	}
}

func TestAngleToPositionNormalizes(t *testing.T) {
	for _, turns := range []float64{-3, -1, 1, 5} {
		got := AngleToPosition(-math.Pi/2+turns*twoPi, 100)
		if got < 0 || got >= 100 || math.Min(got, 100-got) > 1e-6 {
			t.Errorf("turns=%v: got %v, want 0", turns, got)
		}
	}
	if got := AngleToPosition(math.Pi, 200); math.Abs(got-150) > 1e-9 {
		t.Errorf("AngleToPosition(π) = %v, want 150", got)
	}
}

func TestPositionAtPoint(t *testing.T) {
	c := path.Point{X: 100, Y: 100}
	tests := []struct {
		name   string
		offset float64
		pt     path.Point
		want   int
	}{
		{"top", 0, path.Point{X: 100, Y: 0}, 0},
		{"right", 0, path.Point{X: 200, Y: 100}, 25},
		{"bottom", 0, path.Point{X: 100, Y: 180}, 50},
		{"left", 0, path.Point{X: 10, Y: 100}, 75},
		{"rotated right", math.Pi / 2, path.Point{X: 200, Y: 100}, 0},
		{"rotated bottom", math.Pi / 2, path.Point{X: 100, Y: 200}, 25},
		{"center", 0, c, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Geometry{Length: 100, Center: c, OriginOffset: tt.offset}
			if got := g.PositionAtPoint(tt.pt); got != tt.want {
				t.Errorf("PositionAtPoint(%v) = %d, want %d", tt.pt, got, tt.want)
			}
		})
	}
}

func TestGeometryPoint(t *testing.T) {
	g := Geometry{Length: 100, Center: path.Point{X: 50, Y: 50}}
	p := g.Point(0, 10)
	if math.Abs(p.X-50) > 1e-9 || math.Abs(p.Y-40) > 1e-9 {
		t.Errorf("Point(0, 10) = %v, want {50 40}", p)
	}
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		view  Size
		want  float64
	}{
		{"in range", 1.2, Size{W: 400, H: 300}, 1.2},
		{"too large", 2, Size{W: 400, H: 300}, 1.3},
		{"too small", 0.1, Size{W: 400, H: 300}, 0.5},
		{"negative", -1, Size{W: 400, H: 300}, 0.5},
		{"min wins", 1, Size{W: 100, H: 100}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := Zoom{Base: 100, MinRadius: 50, Reserved: 20}
			z.SetZoom(tt.scale, tt.view)
			if math.Abs(z.Scale-tt.want) > 1e-9 {
				t.Errorf("scale = %v, want %v", z.Scale, tt.want)
			}
		})
	}
}

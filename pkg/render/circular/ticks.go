package circular

import (
	"strconv"

	"github.com/matzehuels/seqmap/pkg/render"
	"github.com/matzehuels/seqmap/pkg/render/path"
)

// Tick is a ruler mark on the backbone. Marks point inward from the
// backbone so annotation rows outside it stay clear.
type Tick struct {
	Position int        `json:"position"`
	Angle    float64    `json:"angle"`
	Inner    path.Point `json:"inner"`
	Outer    path.Point `json:"outer"`
	Text     string     `json:"text"`
	LabelAt  path.Point `json:"label_at"`
}

// Ticks places about count ruler marks of the given length on a backbone of
// the given radius, at a round step. Position 0 always gets a mark.
func Ticks(g Geometry, radius, length float64, count int) []Tick {
	if g.Length < 1 || count < 1 {
		return nil
	}
	step := render.NiceStep(float64(g.Length) / float64(count))
	var out []Tick
	for _, pos := range render.Ticks(g.Length, step) {
		p := float64(pos)
		out = append(out, Tick{
			Position: pos,
			Angle:    g.Angle(p),
			Inner:    g.Point(p, radius-length),
			Outer:    g.Point(p, radius),
			Text:     strconv.Itoa(pos),
			LabelAt:  g.Point(p, radius-length-labelFontSize),
		})
	}
	return out
}

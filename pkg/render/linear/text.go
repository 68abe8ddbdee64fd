package linear

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// labelFace is the fixed-size face captions are measured with. Sinks draw
// captions at the same size so measured boxes match the drawn text.
var labelFace font.Face = basicfont.Face7x13

// LabelFontSize is the pixel size sinks use for captions.
const LabelFontSize = 13

// MeasureLabel returns the pixel width and height of a caption.
func MeasureLabel(text string) (w, h float64) {
	adv := font.MeasureString(labelFace, text)
	m := labelFace.Metrics()
	return float64(adv.Ceil()), float64((m.Ascent + m.Descent).Ceil())
}

// TruncateLabel shortens text with ".." so it measures at most maxWidth.
// Captions that cannot fit even three characters are left at three.
func TruncateLabel(text string, maxWidth float64) string {
	if w, _ := MeasureLabel(text); w <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 3; n-- {
		s := string(runes[:n-2]) + ".."
		if w, _ := MeasureLabel(s); w <= maxWidth {
			return s
		}
	}
	if len(runes) > 3 {
		return string(runes[:1]) + ".."
	}
	return text
}

package sink

import (
	"maps"
	"strings"

	"github.com/matzehuels/seqmap/pkg/annotation"
)

// Theme holds the colors a map is drawn with. Colors are hex strings.
type Theme struct {
	Background string
	Backbone   string
	Text       string
	Tick       string
	Selection  string
	Cursor     string
	Outline    string
	Fallback   string            // fill for types without an entry
	Features   map[string]string // fill by lower-cased annotation type
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		Background: "#ffffff",
		Backbone:   "#e4e4e4",
		Text:       "#333333",
		Tick:       "#777777",
		Selection:  "#4c8bf5",
		Cursor:     "#1a5fd1",
		Outline:    "#555555",
		Fallback:   "#d0cece",
		Features: map[string]string{
			strings.ToLower(annotation.TypeCDS):        "#f4b183",
			strings.ToLower(annotation.TypeGene):       "#a9d18e",
			strings.ToLower(annotation.TypePromoter):   "#9dc3e6",
			strings.ToLower(annotation.TypeTerminator): "#ff7c80",
			strings.ToLower(annotation.TypeRepOrigin):  "#ffd966",
			strings.ToLower(annotation.TypePrimer):     "#c9a0dc",
			strings.ToLower(annotation.TypeMisc):       "#d0cece",
		},
	}
}

// FeatureColor returns the fill for an annotation type.
func (t Theme) FeatureColor(typ string) string {
	if c, ok := t.Features[strings.ToLower(typ)]; ok {
		return c
	}
	return t.Fallback
}

// With returns a copy of t with the given overrides applied. Keys naming a
// theme slot replace that slot; any other key sets a feature color.
func (t Theme) With(colors map[string]string) Theme {
	t.Features = maps.Clone(t.Features)
	if t.Features == nil {
		t.Features = make(map[string]string)
	}
	for k, v := range colors {
		if v == "" {
			continue
		}
		switch strings.ToLower(k) {
		case "background":
			t.Background = v
		case "backbone":
			t.Backbone = v
		case "text":
			t.Text = v
		case "tick":
			t.Tick = v
		case "selection":
			t.Selection = v
		case "cursor":
			t.Cursor = v
		case "outline":
			t.Outline = v
		case "fallback", "default":
			t.Fallback = v
		default:
			t.Features[strings.ToLower(k)] = v
		}
	}
	return t
}

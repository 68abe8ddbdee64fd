package sink

import (
	"encoding/json"

	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/render/circular"
	"github.com/matzehuels/seqmap/pkg/render/linear"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme   *Theme
	compact bool
}

// WithJSONTheme records the colors the map should be drawn with, resolved
// per annotation type, so front ends can match the SVG output.
func WithJSONTheme(t Theme) JSONOption { return func(r *jsonRenderer) { r.theme = &t } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Name     string           `json:"name"`
	View     string           `json:"view"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Colors   *jsonColors      `json:"colors,omitempty"`
	Linear   *linear.Layout   `json:"linear,omitempty"`
	Circular *circular.Layout `json:"circular,omitempty"`
}

type jsonColors struct {
	Background string            `json:"background"`
	Backbone   string            `json:"backbone"`
	Text       string            `json:"text"`
	Selection  string            `json:"selection"`
	Features   map[string]string `json:"features"`
}

// RenderJSON serializes the layout of m together with its drawing size.
func RenderJSON(m Map, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	w, h := m.Size()
	out := jsonOutput{
		Name:     m.Name(),
		View:     m.View,
		Width:    w,
		Height:   h,
		Linear:   m.Linear,
		Circular: m.Circular,
	}
	if r.theme != nil {
		out.Colors = buildJSONColors(m, *r.theme)
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

// buildJSONColors resolves a fill for every annotation type in the layout.
func buildJSONColors(m Map, t Theme) *jsonColors {
	c := &jsonColors{
		Background: t.Background,
		Backbone:   t.Backbone,
		Text:       t.Text,
		Selection:  t.Selection,
		Features:   make(map[string]string),
	}
	if m.Linear != nil {
		for _, ln := range m.Linear.Lines {
			for _, f := range ln.Features {
				c.Features[f.Type] = t.FeatureColor(f.Type)
			}
		}
	}
	if m.Circular != nil {
		for _, a := range m.Circular.Arcs {
			c.Features[a.Type] = t.FeatureColor(a.Type)
		}
	}
	return c
}

// ReadJSON decodes output of [RenderJSON] back into a Map.
func ReadJSON(data []byte) (Map, error) {
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Map{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	m := Map{View: out.View, Linear: out.Linear, Circular: out.Circular}
	if (m.Linear == nil) == (m.Circular == nil) {
		return Map{}, errors.New(errors.ErrCodeInvalidFormat, "layout must hold exactly one of linear or circular")
	}
	return m, nil
}

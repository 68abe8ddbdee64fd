package circular

import "github.com/matzehuels/seqmap/pkg/errors"

// Default values for Options.
const (
	DefaultWidth        = 800.0
	DefaultHeight       = 800.0
	DefaultRadius       = 240.0
	DefaultScale        = 1.0
	DefaultMinRadius    = 60.0
	DefaultBackboneSize = 8.0
	DefaultRowHeight    = 12.0
	DefaultRowPadding   = 4.0
	DefaultArrowLength  = 8.0
	DefaultTickLength   = 6.0
	DefaultTickCount    = 12
	DefaultLabelMargin  = 40.0
)

// Options controls circular layout. Zero fields take the defaults above.
type Options struct {
	Width        float64 `json:"width,omitempty" toml:"width"`   // viewport width
	Height       float64 `json:"height,omitempty" toml:"height"` // viewport height
	Radius       float64 `json:"radius,omitempty" toml:"radius"` // backbone radius at scale 1
	Scale        float64 `json:"scale,omitempty" toml:"scale"`
	MinRadius    float64 `json:"min_radius,omitempty" toml:"min_radius"`
	BackboneSize float64 `json:"backbone_size,omitempty" toml:"backbone_size"`
	RowHeight    float64 `json:"row_height,omitempty" toml:"row_height"`
	RowPadding   float64 `json:"row_padding,omitempty" toml:"row_padding"`
	ArrowLength  float64 `json:"arrow_length,omitempty" toml:"arrow_length"`
	TickLength   float64 `json:"tick_length,omitempty" toml:"tick_length"`
	TickCount    int     `json:"tick_count,omitempty" toml:"tick_count"`
	LabelMargin  float64 `json:"label_margin,omitempty" toml:"label_margin"` // room for captions outside the last row
	OriginOffset float64 `json:"origin_offset,omitempty" toml:"origin_offset"`
	HideLabels   bool    `json:"hide_labels,omitempty" toml:"hide_labels"`
	HideTicks    bool    `json:"hide_ticks,omitempty" toml:"hide_ticks"`
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.MinRadius == 0 {
		o.MinRadius = DefaultMinRadius
	}
	if o.BackboneSize == 0 {
		o.BackboneSize = DefaultBackboneSize
	}
	if o.RowHeight == 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.RowPadding == 0 {
		o.RowPadding = DefaultRowPadding
	}
	if o.ArrowLength == 0 {
		o.ArrowLength = DefaultArrowLength
	}
	if o.TickLength == 0 {
		o.TickLength = DefaultTickLength
	}
	if o.TickCount == 0 {
		o.TickCount = DefaultTickCount
	}
	if o.LabelMargin == 0 {
		o.LabelMargin = DefaultLabelMargin
	}
}

// Validate rejects negative sizes. Out of range scales are clamped by
// SetZoom rather than rejected.
func (o *Options) Validate() error {
	for name, v := range map[string]float64{
		"width":         o.Width,
		"height":        o.Height,
		"radius":        o.Radius,
		"scale":         o.Scale,
		"min_radius":    o.MinRadius,
		"backbone_size": o.BackboneSize,
		"row_height":    o.RowHeight,
		"row_padding":   o.RowPadding,
		"arrow_length":  o.ArrowLength,
		"tick_length":   o.TickLength,
		"label_margin":  o.LabelMargin,
	} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidView, "%s must not be negative, got %g", name, v)
		}
	}
	if o.TickCount < 0 {
		return errors.New(errors.ErrCodeInvalidView, "tick_count must not be negative, got %d", o.TickCount)
	}
	return nil
}

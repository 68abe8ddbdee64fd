package linear

import "github.com/matzehuels/seqmap/pkg/errors"

// Default values for Options.
const (
	DefaultZoom              = 100
	DefaultWidth             = 1000.0
	DefaultMargin            = 20.0
	DefaultSequenceHeight    = 16.0
	DefaultRowHeight         = 12.0
	DefaultRowPadding        = 4.0
	DefaultLinePadding       = 24.0
	DefaultTranslationHeight = 14.0
	DefaultArrowLength       = 8.0
	DefaultLabelPadding      = 2.0
)

// Options controls linear layout. Zero fields take the defaults above.
type Options struct {
	Zoom              int     `json:"zoom,omitempty" toml:"zoom"`     // bases per display line
	Width             float64 `json:"width,omitempty" toml:"width"`   // frame width in pixels
	Margin            float64 `json:"margin,omitempty" toml:"margin"` // left and right margin
	SequenceHeight    float64 `json:"sequence_height,omitempty" toml:"sequence_height"`
	RowHeight         float64 `json:"row_height,omitempty" toml:"row_height"`
	RowPadding        float64 `json:"row_padding,omitempty" toml:"row_padding"`
	LinePadding       float64 `json:"line_padding,omitempty" toml:"line_padding"`
	ShowTranslation   bool    `json:"show_translation,omitempty" toml:"show_translation"`
	TranslationHeight float64 `json:"translation_height,omitempty" toml:"translation_height"`
	ArrowLength       float64 `json:"arrow_length,omitempty" toml:"arrow_length"`
	LabelPadding      float64 `json:"label_padding,omitempty" toml:"label_padding"`
	HideLabels        bool    `json:"hide_labels,omitempty" toml:"hide_labels"`
	HideTicks         bool    `json:"hide_ticks,omitempty" toml:"hide_ticks"`
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.SequenceHeight == 0 {
		o.SequenceHeight = DefaultSequenceHeight
	}
	if o.RowHeight == 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.RowPadding == 0 {
		o.RowPadding = DefaultRowPadding
	}
	if o.LinePadding == 0 {
		o.LinePadding = DefaultLinePadding
	}
	if o.TranslationHeight == 0 {
		o.TranslationHeight = DefaultTranslationHeight
	}
	if o.ArrowLength == 0 {
		o.ArrowLength = DefaultArrowLength
	}
	if o.LabelPadding == 0 {
		o.LabelPadding = DefaultLabelPadding
	}
}

// Validate rejects negative sizes and frames too narrow to draw a line.
func (o *Options) Validate() error {
	if o.Zoom < 0 {
		return errors.New(errors.ErrCodeInvalidView, "zoom must be positive, got %d", o.Zoom)
	}
	for name, v := range map[string]float64{
		"width":              o.Width,
		"margin":             o.Margin,
		"sequence_height":    o.SequenceHeight,
		"row_height":         o.RowHeight,
		"row_padding":        o.RowPadding,
		"line_padding":       o.LinePadding,
		"translation_height": o.TranslationHeight,
		"arrow_length":       o.ArrowLength,
		"label_padding":      o.LabelPadding,
	} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidView, "%s must not be negative, got %g", name, v)
		}
	}
	if o.Width > 0 && o.Width <= 2*o.Margin {
		return errors.New(errors.ErrCodeInvalidView, "width %g leaves no room inside margins of %g", o.Width, o.Margin)
	}
	return nil
}

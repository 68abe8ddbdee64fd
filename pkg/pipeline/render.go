package pipeline

import (
	"fmt"

	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

// RenderFromLayout generates output artifacts for m in the requested
// formats. doc supplies the bases when opts.Bases is set and may be nil
// otherwise.
func RenderFromLayout(m sink.Map, doc *document.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(doc, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(m, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(m, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatJSON:
			data, err = sink.RenderJSON(m, sink.WithJSONTheme(sink.DefaultTheme().With(opts.Colors)))
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders a layout previously written with the json
// format. This is useful when the layout was computed elsewhere.
func RenderFromLayoutData(layoutData []byte, doc *document.Document, opts Options) (map[string][]byte, error) {
	m, err := sink.ReadJSON(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(m, doc, opts)
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(doc *document.Document, opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if len(opts.Colors) > 0 {
		svgOpts = append(svgOpts, sink.WithColors(opts.Colors))
	}
	if opts.Bases && doc != nil {
		svgOpts = append(svgOpts, sink.WithSequence(doc.Sequence()))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}

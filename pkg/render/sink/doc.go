// Package sink turns computed map layouts into output formats.
//
// # Output Formats
//
//   - [RenderSVG]: scalable vector graphics, the primary output
//   - [RenderPNG]: raster images drawn with the gg software renderer
//   - [RenderJSON]: the layout itself, for custom front ends
//
// A [Map] holds either a linear or a circular layout. Both SVG and PNG are
// drawn from the same intermediate scene of filled and stroked paths and
// text, so the two formats always agree.
//
// # Usage
//
//	l := linear.Build(doc, linear.Options{Zoom: 120})
//	svg := sink.RenderSVG(sink.Linear(l), sink.WithSequence(doc.Sequence()))
//
//	c := circular.Build(doc, circular.Options{})
//	png, err := sink.RenderPNG(sink.Circular(c), sink.WithScale(2))
//
// # Colors
//
// Features are filled by annotation type from a [Theme]. [WithColors] takes
// overrides keyed by type ("CDS", "promoter") or by theme slot
// ("background", "backbone", "text", "tick", "selection", "cursor",
// "outline"), which is how the [colors] section of the config file is
// applied.
package sink

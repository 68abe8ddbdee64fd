// Package render turns documents into drawable maps.
//
// # Overview
//
// Rendering is split into layout and output. Layout engines compute geometry
// only; sinks draw it:
//
//   - [linear]: scrolling linear map, one display line per Zoom bases, with
//     annotations stacked into rows and captions packed above the sequence
//   - [circular]: plasmid map with annotation arcs on concentric rows
//     around a backbone circle
//   - [path]: vector path descriptors shared by both engines
//   - [sink]: SVG, PNG and JSON output
//
//	l := linear.Build(doc, linear.Options{Zoom: 100})
//	svg := sink.RenderSVG(sink.Linear(l))
//
// Layout is a pure function of the document and options and can be recomputed
// whenever either changes.
//
// [linear]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/render/linear
// [circular]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/render/circular
// [path]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/render/path
// [sink]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/render/sink
package render

// Package pkg provides the core libraries for seqmap sequence maps.
//
// # Overview
//
// Seqmap lays out annotated DNA sequences as linear and circular maps and
// keeps annotations attached to their bases while the sequence is edited.
// The pkg directory is organized into four areas:
//
//  1. Coordinates - [interval], [seq], [selection]
//  2. Documents - [annotation], [edit], [document]
//  3. Maps - [render/linear], [render/circular], [render/sink]
//  4. Plumbing - [pipeline], [cache], [config], [server], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	Document file (JSON/YAML)
//	         ↓
//	    [document] package (sequence + annotations + selection)
//	         ↓
//	    [edit] package (insert/replace, annotations adjusted)
//	         ↓
//	    [render/linear] or [render/circular] (layout)
//	         ↓
//	    [render/sink] (SVG, PNG, layout JSON)
//
// [pipeline] runs these stages with caching and is shared by the CLI and the
// HTTP server.
//
// # Quick Start
//
//	doc, _ := document.Import("pUC19.json")
//	_ = doc.Insert(0, "GGATCC")
//
//	l := circular.Build(doc, circular.Options{})
//	svg := sink.RenderSVG(sink.Circular(l))
//
// # Main Packages
//
// [interval] - Half-open ranges with strand orientation, multi-range spans,
// the text notation (10..20, (10..20), [10..20]) and the 1-based interchange
// notation (complement(11..20), join(...)).
//
// [edit] - Local edits and the rules that move, grow, shrink or collapse a
// range when the text around or inside it changes.
//
// [annotation] - Named, typed features over a span, indexed by an interval
// tree for overlap queries.
//
// [document] - One editing session: sequence, annotations and selection,
// read and written as JSON or YAML.
//
// [render/linear] - Wrapped linear maps: fragmentation per display line, row
// packing and caption placement.
//
// [render/circular] - Plasmid maps: angle mapping, arc spans across the
// origin, concentric rows and zoom.
//
// [render/sink] - SVG, PNG and layout JSON output.
//
// [cache] - File and Redis caches keyed by document and option hashes.
//
// [server] - HTTP API over the pipeline.
//
// [interval]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/interval
// [seq]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/seq
// [selection]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/selection
// [annotation]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/annotation
// [edit]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/edit
// [document]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/document
// [render/linear]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/render/linear
// [render/circular]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/render/circular
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/seqmap/pkg/observability
package pkg

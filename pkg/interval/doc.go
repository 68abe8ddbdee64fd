// Package interval implements the coordinate algebra used throughout seqmap.
//
// # Fenced Coordinates
//
// Positions are 0-based fence posts between bases: [0,1) is the first base
// and a [Range] with Start == End is a zero-width cursor. All containment and
// overlap tests are half-open, so ranges that merely touch do not overlap:
//
//	a := interval.MustNew(0, 10, interval.Plus)
//	b := interval.MustNew(10, 20, interval.Plus)
//	a.Overlaps(b) // false
//
// # Text Notation
//
// Ranges are written as
//
//	10..20     plus strand
//	(10..20)   minus strand
//	[10..20]   undirected
//	15         cursor (same as [15..15])
//
// and a [Span] joins terms with " + ", in traversal order:
//
//	sp, err := interval.ParseSpan("0..100 + (200..300)")
//
// [Range.String] and [Span.String] round-trip through [Parse] and
// [ParseSpan]. Parse failures carry the errors.ErrCodeParse code.
//
// # Interchange Notation
//
// At import and export boundaries the 1-based inclusive notation used by
// flat-file formats is accepted through [ParseInterchange] and produced by
// [FormatInterchange]: "11..20" is [10,20), "complement(11..20)" is the
// minus-strand (10..20), and "join(...)" builds a multi-range span.
//
// # Value Semantics
//
// [Range] is a small value type. [Range.Shift] and [Range.Flip] return new
// values; [Span] constructors copy their input so a span never aliases the
// caller's slice.
package interval

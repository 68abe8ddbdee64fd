package edit

import "github.com/matzehuels/seqmap/pkg/interval"

// AdjustInsert returns r as it reads after inserting length bases at pos.
func AdjustInsert(r interval.Range, pos, length int) interval.Range {
	if r.Start > pos {
		r.Start += length
	}
	if r.End > pos {
		r.End += length
	}
	return r
}

// AdjustReplace returns r as it reads after replacing [s,e) with length
// bases.
func AdjustReplace(r interval.Range, s, e, length int) interval.Range {
	net := length - (e - s)
	switch {
	case r.End <= s:
	case r.Start <= s && r.End >= e:
		r.End += net
	case r.Start >= e:
		r.Start += net
		r.End += net
	case r.Start >= s && r.End <= e:
		r.Start, r.End = s, s
	case r.Start < s:
		r.End = s
	default:
		r.Start = s + length
		r.End += net
	}
	return r
}

// AdjustSpan applies op to every range of sp in traversal order.
func AdjustSpan(sp interval.Span, op Op) interval.Span {
	return sp.Map(op.Adjust)
}

package interval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/seqmap/pkg/errors"
)

// ParseInterchange reads a 1-based inclusive location string:
//
//	11..20                      [10,20) plus
//	15                          [14,15) plus
//	14^15                       cursor at 14
//	<1..>20                     partial markers are accepted and dropped
//	complement(11..20)          (10..20)
//	join(1..10,21..30)          0..10 + 20..30
//	complement(join(1..10,21..30))  (20..30) + (0..10)
//
// "order(...)" is treated like "join(...)".
func ParseInterchange(text string) (Span, error) {
	p := &locParser{src: strings.Join(strings.Fields(text), "")}
	if p.src == "" {
		return Span{}, errors.New(errors.ErrCodeParse, "empty location")
	}
	ranges, err := p.location()
	if err != nil {
		return Span{}, err
	}
	if p.pos != len(p.src) {
		return Span{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return Span{ranges: ranges}, nil
}

// FormatInterchange writes s as a 1-based inclusive location string. A span
// whose ranges are all minus strand is written as a single complement of
// the reversed join, which is the form ParseInterchange reads back.
func FormatInterchange(s Span) string {
	if s.IsEmpty() {
		return ""
	}
	allMinus := true
	for _, r := range s.ranges {
		if r.Orientation != Minus {
			allMinus = false
			break
		}
	}
	if allMinus {
		return "complement(" + formatJoin(s.Flip().ranges, false) + ")"
	}
	return formatJoin(s.ranges, true)
}

func formatJoin(ranges []Range, wrapMinus bool) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = formatInterchangeRange(r)
		if wrapMinus && r.Orientation == Minus {
			parts[i] = "complement(" + parts[i] + ")"
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "join(" + strings.Join(parts, ",") + ")"
}

func formatInterchangeRange(r Range) string {
	switch {
	case r.IsCursor():
		return fmt.Sprintf("%d^%d", r.Start, r.Start+1)
	case r.Len() == 1:
		return fmt.Sprintf("%d", r.End)
	default:
		return fmt.Sprintf("%d..%d", r.Start+1, r.End)
	}
}

type locParser struct {
	src string
	pos int
}

func (p *locParser) errorf(format string, args ...any) error {
	return errors.New(errors.ErrCodeParse, "location %q at offset %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *locParser) consume(prefix string) bool {
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *locParser) location() ([]Range, error) {
	switch {
	case p.consume("complement("):
		inner, err := p.location()
		if err != nil {
			return nil, err
		}
		if !p.consume(")") {
			return nil, p.errorf("missing ')' after complement")
		}
		return Span{ranges: inner}.Flip().ranges, nil
	case p.consume("join("), p.consume("order("):
		var out []Range
		for {
			part, err := p.location()
			if err != nil {
				return nil, err
			}
			out = append(out, part...)
			if p.consume(",") {
				continue
			}
			if p.consume(")") {
				return out, nil
			}
			return nil, p.errorf("expected ',' or ')'")
		}
	default:
		r, err := p.simple()
		if err != nil {
			return nil, err
		}
		return []Range{r}, nil
	}
}

func (p *locParser) simple() (Range, error) {
	p.consume("<")
	first, err := p.number()
	if err != nil {
		return Range{}, err
	}
	if first < 1 {
		return Range{}, p.errorf("position %d is below 1", first)
	}
	switch {
	case p.consume(".."):
		p.consume(">")
		last, err := p.number()
		if err != nil {
			return Range{}, err
		}
		if last < first {
			return Range{}, p.errorf("end %d before start %d", last, first)
		}
		return Range{Start: first - 1, End: last, Orientation: Plus}, nil
	case p.consume("^"):
		if _, err := p.number(); err != nil {
			return Range{}, err
		}
		return Range{Start: first, End: first, Orientation: Plus}, nil
	default:
		p.consume(">")
		return Range{Start: first - 1, End: first, Orientation: Plus}, nil
	}
}

func (p *locParser) number() (int, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected number")
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("position %s out of range", p.src[start:p.pos])
	}
	return n, nil
}

package interval

import (
	"strconv"
	"strings"

	"github.com/matzehuels/seqmap/pkg/errors"
)

// spanSeparator joins ranges in span text.
const spanSeparator = "+"

// Parse reads a single range in text notation:
//
//	a..b     plus
//	(a..b)   minus
//	[a..b]   undirected
//	n        undirected cursor
//
// Surrounding whitespace is ignored. Malformed text, negative numbers and
// reversed bounds are rejected with errors.ErrCodeParse.
func Parse(text string) (Range, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return Range{}, errors.New(errors.ErrCodeParse, "empty range")
	}

	o := Plus
	body := t
	switch {
	case strings.HasPrefix(t, "("):
		if !strings.HasSuffix(t, ")") {
			return Range{}, errors.New(errors.ErrCodeParse, "unbalanced parenthesis in %q", text)
		}
		o, body = Minus, t[1:len(t)-1]
	case strings.HasPrefix(t, "["):
		if !strings.HasSuffix(t, "]") {
			return Range{}, errors.New(errors.ErrCodeParse, "unbalanced bracket in %q", text)
		}
		o, body = None, t[1:len(t)-1]
	case strings.HasSuffix(t, ")") || strings.HasSuffix(t, "]"):
		return Range{}, errors.New(errors.ErrCodeParse, "unbalanced delimiter in %q", text)
	}

	left, right, found := strings.Cut(body, "..")
	if !found {
		if o != Plus {
			return Range{}, errors.New(errors.ErrCodeParse, "missing '..' in %q", text)
		}
		pos, err := parsePosition(body, text)
		if err != nil {
			return Range{}, err
		}
		return Cursor(pos), nil
	}

	start, err := parsePosition(left, text)
	if err != nil {
		return Range{}, err
	}
	end, err := parsePosition(right, text)
	if err != nil {
		return Range{}, err
	}
	if end < start {
		return Range{}, errors.New(errors.ErrCodeParse, "end %d before start %d in %q", end, start, text)
	}
	return Range{Start: start, End: end, Orientation: o}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Range {
	r, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseSpan reads ranges joined by " + ".
func ParseSpan(text string) (Span, error) {
	if strings.TrimSpace(text) == "" {
		return Span{}, errors.New(errors.ErrCodeParse, "empty span")
	}
	parts := strings.Split(text, spanSeparator)
	ranges := make([]Range, 0, len(parts))
	for _, p := range parts {
		r, err := Parse(p)
		if err != nil {
			return Span{}, err
		}
		ranges = append(ranges, r)
	}
	return Span{ranges: ranges}, nil
}

// MustParseSpan is like ParseSpan but panics on error.
func MustParseSpan(text string) Span {
	s, err := ParseSpan(text)
	if err != nil {
		panic(err)
	}
	return s
}

func parsePosition(field, text string) (int, error) {
	f := strings.TrimSpace(field)
	if f == "" {
		return 0, errors.New(errors.ErrCodeParse, "missing position in %q", text)
	}
	if f[0] == '-' {
		return 0, errors.New(errors.ErrCodeParse, "negative position %s in %q", f, text)
	}
	for i := 0; i < len(f); i++ {
		if f[i] < '0' || f[i] > '9' {
			return 0, errors.New(errors.ErrCodeParse, "invalid position %q in %q", f, text)
		}
	}
	n, err := strconv.Atoi(f)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParse, err, "invalid position %q in %q", f, text)
	}
	return n, nil
}

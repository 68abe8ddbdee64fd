package pipeline

import (
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
)

// Notation names for ConvertNotation.
const (
	NotationText        = "text"        // 0..10 + (20..30)
	NotationInterchange = "interchange" // join(1..10,complement(21..30))
)

// ConvertNotation rewrites a span between the internal text notation and
// the 1-based interchange notation. Converting to the same notation
// normalizes the text.
func ConvertNotation(text, from, to string) (string, error) {
	var (
		sp  interval.Span
		err error
	)
	switch from {
	case NotationText:
		sp, err = interval.ParseSpan(text)
	case NotationInterchange:
		sp, err = interval.ParseInterchange(text)
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown notation %q (use text or interchange)", from)
	}
	if err != nil {
		return "", err
	}
	switch to {
	case NotationText:
		return sp.String(), nil
	case NotationInterchange:
		return interval.FormatInterchange(sp), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown notation %q (use text or interchange)", to)
	}
}

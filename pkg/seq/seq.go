// Package seq holds small helpers for raw nucleotide sequence text.
//
// Sequences are plain strings of IUPAC nucleotide codes. Case is preserved
// by every helper so that soft-masked (lowercase) regions survive edits and
// reverse complements.
package seq

import (
	"strings"
	"unicode"

	"github.com/matzehuels/seqmap/pkg/errors"
)

// complements maps every IUPAC nucleotide code to its complement.
var complements = [256]byte{}

func init() {
	pairs := []string{"AT", "CG", "RY", "KM", "SS", "WW", "BV", "DH", "NN", "UA"}
	for i := range complements {
		complements[i] = byte(i)
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		complements[a], complements[b] = b, a
		la, lb := byte(unicode.ToLower(rune(a))), byte(unicode.ToLower(rune(b)))
		complements[la], complements[lb] = lb, la
	}
	// U pairs with A, but A must keep pairing with T.
	complements['A'], complements['a'] = 'T', 't'
}

// Complement returns the base-wise complement of s without reversing it.
func Complement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = complements[s[i]]
	}
	return string(out)
}

// ReverseComplement returns the reverse complement of s.
func ReverseComplement(s string) string {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = complements[s[i]]
	}
	return string(out)
}

// validBases lists the accepted IUPAC nucleotide codes, gap included.
const validBases = "ACGTURYKMSWBDHVN-"

// Validate reports the first character of s that is not an IUPAC nucleotide.
func Validate(s string) error {
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(validBases, unicode.ToUpper(rune(s[i]))) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid base %q at position %d", s[i], i)
		}
	}
	return nil
}

// Normalize strips whitespace and digits, which is how sequence blocks are
// usually pasted from flat files.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// GC returns the GC fraction of s, ignoring gaps. Returns 0 for empty input.
func GC(s string) float64 {
	var gc, total int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G', 'C', 'g', 'c', 'S', 's':
			gc++
			total++
		case '-':
		default:
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(gc) / float64(total)
}

package seq

import (
	"testing"

	"github.com/matzehuels/seqmap/pkg/errors"
)

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"A", "T"},
		{"ATGC", "GCAT"},
		{"atgc", "gcat"},
		{"AAcc", "ggTT"},
		{"RYKM", "KMRY"},
		{"N-N", "N-N"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ReverseComplement(tt.in); got != tt.want {
				t.Errorf("ReverseComplement(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	s := "ACGTRYKMSWBDHVNacgt"
	if got := ReverseComplement(ReverseComplement(s)); got != s {
		t.Errorf("double reverse complement = %q, want %q", got, s)
	}
}

func TestComplement(t *testing.T) {
	if got := Complement("AACG"); got != "TTGC" {
		t.Errorf("Complement = %q, want TTGC", got)
	}
	if got := Complement("U"); got != "A" {
		t.Errorf("Complement(U) = %q, want A", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("ACGTNacgtn-"); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	err := Validate("ACGXT")
	if err == nil {
		t.Fatal("Validate() expected error for X")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestNormalize(t *testing.T) {
	in := "        1 acgtacgtac gtacgt\n       17 ACGT\n"
	if got := Normalize(in); got != "acgtacgtacgtacgtACGT" {
		t.Errorf("Normalize() = %q", got)
	}
}

func TestGC(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"GGCC", 1},
		{"ATAT", 0},
		{"ACGT", 0.5},
		{"GC--", 1},
	}
	for _, tt := range tests {
		if got := GC(tt.in); got != tt.want {
			t.Errorf("GC(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

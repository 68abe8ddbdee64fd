package selection

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/seqmap/pkg/interval"
)

func spanOf(s *Selection) string { return s.String() }

func TestAddMergesOnOverlap(t *testing.T) {
	tests := []struct {
		name string
		add  []string
		want string
	}{
		{"disjoint", []string{"0..10", "20..30"}, "0..10 + 20..30"},
		{"touching kept apart", []string{"0..10", "10..20"}, "0..10 + 10..20"},
		{"overlap merges", []string{"0..10", "5..20"}, "0..20"},
		{"bridge merges three", []string{"0..10", "20..30", "5..25"}, "0..30"},
		{"keeps first orientation", []string{"(0..10)", "5..20"}, "(0..20)"},
		{"range drops cursor", []string{"5", "10..20"}, "10..20"},
		{"cursor ignored with extent", []string{"10..20", "5"}, "10..20"},
		{"cursor replaces cursor", []string{"5", "9"}, "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Selection{}
			for _, a := range tt.add {
				if err := s.Add(interval.MustParse(a)); err != nil {
					t.Fatalf("Add(%s): %v", a, err)
				}
			}
			if got := spanOf(s); got != tt.want {
				t.Errorf("selection = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	s := &Selection{}
	if err := s.Add(interval.Range{Start: 4, End: 2}); err == nil {
		t.Error("Add accepted reversed range")
	}
	if !s.IsEmpty() {
		t.Error("failed Add changed the selection")
	}
}

func TestRemoveReorder(t *testing.T) {
	s, _ := New(interval.MustParse("0..1"), interval.MustParse("5..6"), interval.MustParse("9..10"))
	if err := s.Reorder(2, 0); err != nil {
		t.Fatal(err)
	}
	if got := spanOf(s); got != "9..10 + 0..1 + 5..6" {
		t.Errorf("after Reorder = %q", got)
	}
	if err := s.Remove(1); err != nil {
		t.Fatal(err)
	}
	if got := spanOf(s); got != "9..10 + 5..6" {
		t.Errorf("after Remove = %q", got)
	}
	if err := s.Remove(5); err == nil {
		t.Error("Remove(5) succeeded")
	}
}

func TestMoveClamps(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{5, "15..25"},
		{-100, "0..10"},
		{100, "90..100"},
	}
	for _, tt := range tests {
		s, _ := New(interval.MustNew(10, 20, interval.Plus))
		if err := s.Move(0, tt.offset, 100); err != nil {
			t.Fatal(err)
		}
		if got := spanOf(s); got != tt.want {
			t.Errorf("Move(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	s, _ := New(interval.MustNew(0, 10, interval.Plus), interval.MustNew(20, 30, interval.Minus))
	if err := s.Split(0, 4); err != nil {
		t.Fatal(err)
	}
	if err := s.Split(2, 25); err != nil {
		t.Fatal(err)
	}
	if got := spanOf(s); got != "0..4 + 4..10 + (25..30) + (20..25)" {
		t.Errorf("after Split = %q", got)
	}
	for _, pos := range []int{0, 4} {
		if err := s.Split(0, pos); err == nil {
			t.Errorf("Split(0, %d) at boundary succeeded", pos)
		}
	}
}

func TestFlip(t *testing.T) {
	s, _ := New(interval.MustNew(0, 10, interval.Plus), interval.MustNew(20, 30, interval.Plus))
	if err := s.Flip(1); err != nil {
		t.Fatal(err)
	}
	if got := spanOf(s); got != "0..10 + (20..30)" {
		t.Errorf("after Flip = %q", got)
	}
	s.FlipAll()
	if got := spanOf(s); got != "20..30 + (0..10)" {
		t.Errorf("after FlipAll = %q", got)
	}
}

func TestExtend(t *testing.T) {
	s, _ := New(interval.MustNew(10, 20, interval.Plus), interval.MustNew(40, 50, interval.Plus))
	if err := s.Extend(0, 45, 100); err != nil {
		t.Fatal(err)
	}
	if got := spanOf(s); got != "10..50" {
		t.Errorf("Extend into neighbour = %q, want merged 10..50", got)
	}

	c := Cursor(30)
	if err := c.Extend(0, 500, 100); err != nil {
		t.Fatal(err)
	}
	if got := spanOf(c); got != "30..100" {
		t.Errorf("Extend cursor = %q, want 30..100", got)
	}
}

func TestBoundsContainsExtract(t *testing.T) {
	s, _ := New(interval.MustNew(2, 4, interval.Plus), interval.MustNew(6, 8, interval.Minus))
	if got := s.Bounds(); got != (interval.Range{Start: 2, End: 8}) {
		t.Errorf("Bounds = %v", got)
	}
	if s.Contains(5) || !s.Contains(6) || s.Contains(8) {
		t.Error("Contains mismatch")
	}
	got, err := s.Extract("AACCGGTTAA")
	if err != nil {
		t.Fatal(err)
	}
	if got != "CCAA" {
		t.Errorf("Extract = %q, want CCAA", got)
	}
}

func TestSelectionJSON(t *testing.T) {
	type doc struct {
		Selection *Selection `json:"selection"`
	}
	in := doc{Selection: Cursor(0)}
	_ = in.Selection.Add(interval.MustParse("(3..9)"))
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"selection":"(3..9)"}` {
		t.Errorf("Marshal = %s", data)
	}
	var out doc
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in.Selection.Ranges(), out.Selection.Ranges()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

package annotation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/seqmap/pkg/edit"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
)

func testCollection(t *testing.T) *Collection {
	t.Helper()
	mk := func(id, span string) Annotation {
		return Annotation{ID: id, Caption: id, Type: TypeMisc, Span: interval.MustParseSpan(span)}
	}
	c, err := NewCollection(
		mk("a", "10..50"),
		mk("b", "40..60 + (80..90)"),
		mk("c", "100..120"),
	)
	if err != nil {
		t.Fatalf("NewCollection: %v", err)
	}
	return c
}

func ids(anns []Annotation) []string {
	out := make([]string, len(anns))
	for i, a := range anns {
		out[i] = a.ID
	}
	return out
}

func TestCollectionOverlapping(t *testing.T) {
	c := testCollection(t)
	tests := []struct {
		q    string
		want []string
	}{
		{"0..10", []string{}},
		{"0..11", []string{"a"}},
		{"45..46", []string{"a", "b"}},
		{"60..80", []string{}},
		{"85..105", []string{"b", "c"}},
		{"0..200", []string{"a", "b", "c"}},
		{"30..30", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got := ids(c.Overlapping(interval.MustParse(tt.q)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Overlapping(%s) mismatch (-want +got):\n%s", tt.q, diff)
			}
		})
	}
}

func TestCollectionAt(t *testing.T) {
	c := testCollection(t)
	if got := ids(c.At(49)); !cmp.Equal(got, []string{"a", "b"}) {
		t.Errorf("At(49) = %v", got)
	}
	if got := ids(c.At(50)); !cmp.Equal(got, []string{"b"}) {
		t.Errorf("At(50) = %v", got)
	}
}

func TestCollectionAddRemove(t *testing.T) {
	c := testCollection(t)
	dup := Annotation{ID: "a", Caption: "again", Span: interval.MustParseSpan("0..1")}
	if err := c.Add(dup); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Add duplicate err = %v", err)
	}

	// Populate the index, then mutate and query again.
	_ = c.At(45)
	if !c.Remove("a") {
		t.Fatal("Remove(a) = false")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	if got := ids(c.At(45)); !cmp.Equal(got, []string{"b"}) {
		t.Errorf("At(45) after remove = %v", got)
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("Get(c) after removing a failed")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestCollectionUpdate(t *testing.T) {
	c := testCollection(t)
	a, _ := c.Get("c")
	a.Span = interval.MustParseSpan("0..5")
	if err := c.Update(a); err != nil {
		t.Fatal(err)
	}
	if got := ids(c.At(2)); !cmp.Equal(got, []string{"c"}) {
		t.Errorf("At(2) after update = %v", got)
	}
	if err := c.Update(Annotation{ID: "zzz", Caption: "z", Span: a.Span}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Update unknown err = %v", err)
	}
}

func TestCollectionCopies(t *testing.T) {
	c := testCollection(t)
	a, _ := c.Get("a")
	a.Caption = "mutated"
	if got, _ := c.Get("a"); got.Caption != "a" {
		t.Error("Get returned an alias")
	}
	all := c.All()
	all[0].Span = interval.MustParseSpan("0..1")
	if got, _ := c.Get("a"); got.Span.String() != "10..50" {
		t.Error("All returned aliases")
	}
}

func TestCollectionApply(t *testing.T) {
	c := testCollection(t)
	c.Apply(edit.Replace(interval.MustNew(45, 85, interval.Plus), "ACG"))

	want := map[string]string{
		"a": "10..45",
		"b": "40..45 + (48..53)",
		"c": "63..83",
	}
	for id, span := range want {
		a, _ := c.Get(id)
		if a.Span.String() != span {
			t.Errorf("%s = %s, want %s", id, a.Span, span)
		}
	}
	if got := ids(c.At(70)); !cmp.Equal(got, []string{"c"}) {
		t.Errorf("index not refreshed after Apply: At(70) = %v", got)
	}
}

package linear

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/seqmap/pkg/annotation"
	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/interval"
)

func testDoc(t *testing.T) *document.Document {
	t.Helper()
	d, err := document.New("test", strings.Repeat("ACGTACGTAC", 25), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, a := range []annotation.Annotation{
		ann("span", annotation.TypeCDS, "80..170"),
		ann("rev", annotation.TypeGene, "(10..60)"),
		ann("over", annotation.TypeMisc, "20..40"),
		ann("split", annotation.TypeMisc, "200..210 + 230..240"),
	} {
		if err := d.AddAnnotation(a); err != nil {
			t.Fatalf("AddAnnotation(%s): %v", a.ID, err)
		}
	}
	if err := d.Select(interval.MustNew(90, 110, interval.Plus)); err != nil {
		t.Fatal(err)
	}
	return d
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuild(t *testing.T) {
	l := Build(testDoc(t), Options{Zoom: 100})

	if len(l.Lines) != 3 {
		t.Fatalf("Lines = %d, want 3", len(l.Lines))
	}
	if l.SequenceLength != 250 {
		t.Errorf("SequenceLength = %d, want 250", l.SequenceLength)
	}
	if !near(l.BaseWidth, 9.6) {
		t.Errorf("BaseWidth = %v, want 9.6", l.BaseWidth)
	}
	if want := (interval.Range{Start: 200, End: 250}); l.Lines[2].Range != want {
		t.Errorf("last line range = %v, want %v", l.Lines[2].Range, want)
	}

	// Lines are stacked without gaps smaller than the line padding.
	for i := 1; i < len(l.Lines); i++ {
		prev := l.Lines[i-1]
		if want := prev.Top + prev.Height + DefaultLinePadding; !near(l.Lines[i].Top, want) {
			t.Errorf("line %d top = %v, want %v", i, l.Lines[i].Top, want)
		}
	}
	last := l.Lines[len(l.Lines)-1]
	if !near(l.Height, last.Top+last.Height) {
		t.Errorf("Height = %v, want %v", l.Height, last.Top+last.Height)
	}
}

func TestBuildFeatures(t *testing.T) {
	l := Build(testDoc(t), Options{Zoom: 100})

	var spans []Feature
	for _, ln := range l.Lines {
		for _, f := range ln.Features {
			if f.AnnotationID == "span" {
				spans = append(spans, f)
			}
			if f.Box.Top < ln.Backbone.Bottom {
				t.Errorf("line %d: feature %s above backbone", ln.Index, f.AnnotationID)
			}
			if f.Path.IsEmpty() {
				t.Errorf("line %d: feature %s has no path", ln.Index, f.AnnotationID)
			}
		}
		for i := range ln.Features {
			for j := i + 1; j < len(ln.Features); j++ {
				if ln.Features[i].Box.Overlaps(ln.Features[j].Box) {
					t.Errorf("line %d: %s overlaps %s", ln.Index, ln.Features[i].AnnotationID, ln.Features[j].AnnotationID)
				}
			}
		}
	}
	if len(spans) != 2 {
		t.Fatalf("span fragments = %d, want 2", len(spans))
	}
	if spans[0].Fragment.Line != 0 || spans[1].Fragment.Line != 1 {
		t.Errorf("span lines = %d, %d, want 0, 1", spans[0].Fragment.Line, spans[1].Fragment.Line)
	}
	if spans[0].Fragment.HasArrow() || !spans[1].Fragment.HasArrow() {
		t.Error("only the fragment holding the 3' end should carry the arrow")
	}
	if want := 20 + 80*9.6; !near(spans[0].Box.Left, want) {
		t.Errorf("span left = %v, want %v", spans[0].Box.Left, want)
	}
}

func TestBuildLabels(t *testing.T) {
	l := Build(testDoc(t), Options{Zoom: 100})

	seen := map[string]int{}
	for _, ln := range l.Lines {
		var boxes []Box
		for _, tk := range ln.Ticks {
			boxes = append(boxes, tk.Label)
		}
		for _, lb := range ln.Labels {
			seen[lb.AnnotationID]++
			b := lb.Box()
			if b.Bottom > ln.Backbone.Top {
				t.Errorf("label %s below backbone", lb.Text)
			}
			if b.Outer().Top < ln.Top-1e-9 {
				t.Errorf("label %s above line", lb.Text)
			}
			boxes = append(boxes, b)
		}
		for i := range boxes {
			for j := i + 1; j < len(boxes); j++ {
				if boxes[i].Overlaps(boxes[j]) {
					t.Errorf("line %d: boxes %d and %d overlap", ln.Index, i, j)
				}
			}
		}
	}
	want := map[string]int{"span": 1, "rev": 1, "over": 1, "split": 1}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("labels per annotation mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildHighlights(t *testing.T) {
	l := Build(testDoc(t), Options{Zoom: 100})
	counts := []int{len(l.Lines[0].Highlights), len(l.Lines[1].Highlights), len(l.Lines[2].Highlights)}
	if diff := cmp.Diff([]int{1, 1, 0}, counts); diff != "" {
		t.Fatalf("highlights per line mismatch (-want +got):\n%s", diff)
	}
	if h := l.Lines[1].Highlights[0]; h.Fragment.Start != 0 || h.Fragment.End != 10 {
		t.Errorf("second line highlight = %d..%d, want 0..10", h.Fragment.Start, h.Fragment.End)
	}
}

func TestBuildHideLabels(t *testing.T) {
	l := Build(testDoc(t), Options{Zoom: 100, HideLabels: true, HideTicks: true})
	for _, ln := range l.Lines {
		if len(ln.Labels) != 0 || len(ln.Ticks) != 0 {
			t.Errorf("line %d: labels=%d ticks=%d, want none", ln.Index, len(ln.Labels), len(ln.Ticks))
		}
		if ln.Top != ln.Backbone.Top {
			t.Errorf("line %d: backbone should start the line", ln.Index)
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	d := testDoc(t)
	if diff := cmp.Diff(Build(d, Options{}), Build(d, Options{})); diff != "" {
		t.Errorf("Build is not deterministic (-first +second):\n%s", diff)
	}
}

func TestPositionAt(t *testing.T) {
	l := Build(testDoc(t), Options{Zoom: 100})
	tests := []struct {
		name string
		line int
		x    float64
		want int
	}{
		{"left of margin", 0, -50, 0},
		{"exact base", 1, 20 + 10*9.6, 110},
		{"rounds", 1, 20 + 10.6*9.6, 111},
		{"right of line", 0, 5000, 100},
		{"short last line", 2, 5000, 250},
		{"line clamped high", 99, 20, 200},
		{"line clamped low", -3, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.PositionAt(tt.line, tt.x); got != tt.want {
				t.Errorf("PositionAt(%d, %v) = %d, want %d", tt.line, tt.x, got, tt.want)
			}
		})
	}
	if got := l.LineOf(1000); got != 2 {
		t.Errorf("LineOf(1000) = %d, want 2", got)
	}
	if got := l.LineOf(100); got != 1 {
		t.Errorf("LineOf(100) = %d, want 1", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := (&Options{Width: 30, Margin: 20}).Validate(); err == nil {
		t.Error("margins wider than the map should fail")
	}
	if err := (&Options{RowHeight: -1}).Validate(); err == nil {
		t.Error("negative row height should fail")
	}
	o := Options{}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestMeasureLabel(t *testing.T) {
	if w, h := MeasureLabel("AmpR"); w != 28 || h != 13 {
		t.Errorf("MeasureLabel = %v x %v, want 28 x 13", w, h)
	}
	if got := TruncateLabel("long caption", 35); got != "lon.." {
		t.Errorf("TruncateLabel = %q, want %q", got, "lon..")
	}
	if got := TruncateLabel("ok", 35); got != "ok" {
		t.Errorf("TruncateLabel = %q, want %q", got, "ok")
	}
}

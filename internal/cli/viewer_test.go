package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/seqmap/pkg/annotation"
	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/interval"
	"github.com/matzehuels/seqmap/pkg/render/linear"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

func viewerDoc(t *testing.T) *document.Document {
	t.Helper()
	doc, err := document.New("pView", strings.Repeat("ATGC", 50), false)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range []struct {
		caption, typ, span string
	}{
		{"lacZ", annotation.TypeCDS, "5..60"},
		{"Plac", annotation.TypePromoter, "(40..52)"},
	} {
		ann, err := annotation.New(a.caption, a.typ, interval.MustParseSpan(a.span), nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := doc.AddAnnotation(ann); err != nil {
			t.Fatal(err)
		}
	}
	return doc
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m viewerModel, msgs ...tea.Msg) viewerModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(viewerModel)
	}
	return m
}

func TestViewerResize(t *testing.T) {
	m := newViewerModel(viewerDoc(t), sink.DefaultTheme())
	m = update(m, tea.WindowSizeMsg{Width: 54, Height: 40})

	// gutter is "200" plus a space, one column is kept free
	if m.zoom != 49 {
		t.Errorf("zoom = %d, want 49", m.zoom)
	}
	if len(m.tracks) != 5 {
		t.Errorf("tracks = %d, want 5 lines of 49 bases", len(m.tracks))
	}

	m = update(m, tea.WindowSizeMsg{Width: 5, Height: 10})
	if m.zoom != viewerMinZoom {
		t.Errorf("narrow terminal zoom = %d, want %d", m.zoom, viewerMinZoom)
	}
}

func TestViewerCursorMovement(t *testing.T) {
	m := newViewerModel(viewerDoc(t), sink.DefaultTheme())
	m = update(m, tea.WindowSizeMsg{Width: 54, Height: 40})

	m = update(m, key("right"), key("l"), key("down"))
	if m.cursor != 2+m.zoom {
		t.Errorf("cursor = %d, want %d", m.cursor, 2+m.zoom)
	}
	m = update(m, key("left"), key("up"), key("up"))
	if m.cursor != 0 {
		t.Errorf("cursor should clamp at 0, got %d", m.cursor)
	}
	m = update(m, key("G"))
	if m.cursor != 199 {
		t.Errorf("end: cursor = %d, want 199", m.cursor)
	}
	m = update(m, key("right"))
	if m.cursor != 199 {
		t.Errorf("cursor should clamp at the last base, got %d", m.cursor)
	}
	m = update(m, key("g"))
	if m.cursor != 0 || m.offset != 0 {
		t.Errorf("start: cursor=%d offset=%d", m.cursor, m.offset)
	}
}

func TestViewerScrollsToCursor(t *testing.T) {
	m := newViewerModel(viewerDoc(t), sink.DefaultTheme())
	m = update(m, tea.WindowSizeMsg{Width: 24, Height: viewerChrome + 4})

	m = update(m, key("G"))
	if line := m.cursor / m.zoom; line < m.offset {
		t.Fatalf("cursor line %d above offset %d", line, m.offset)
	}
	if m.offset == 0 {
		t.Error("jumping to the end of a long sequence should scroll")
	}
	if !strings.Contains(m.View(), "pos 199") {
		t.Error("status line should show the cursor position")
	}
}

func TestViewerQuit(t *testing.T) {
	m := newViewerModel(viewerDoc(t), sink.DefaultTheme())
	for _, k := range []string{"q", "esc"} {
		msg := key(k)
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		if _, cmd := m.Update(msg); cmd == nil {
			t.Errorf("%q should quit", k)
		}
	}
	if _, cmd := m.Update(key("x")); cmd != nil {
		t.Error("unbound key should not return a command")
	}
}

func TestViewerView(t *testing.T) {
	m := newViewerModel(viewerDoc(t), sink.DefaultTheme())
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m = update(m, key("right"), key("right"), key("right"), key("right"), key("right"), key("right"))

	view := m.View()
	for _, want := range []string{"pView", "200 bp", "linear", "2 annotations", "lacZ", "pos 6", "lacZ (CDS 5..60)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestFeatureBar(t *testing.T) {
	a := annotation.Annotation{Caption: "ori"}
	tests := []struct {
		name string
		frag linear.Fragment
		want string
	}{
		{"plus end", linear.Fragment{Start: 0, End: 9, Orientation: interval.Plus, IsStart: true, IsEnd: true}, "===ori==>"},
		{"plus middle", linear.Fragment{Start: 0, End: 6, Orientation: interval.Plus}, "=ori=="},
		{"minus start", linear.Fragment{Start: 0, End: 6, Orientation: interval.Minus, IsStart: true}, "<ori=="},
		{"too short for caption", linear.Fragment{Start: 0, End: 4, Orientation: interval.None}, "===="},
	}
	for _, tt := range tests {
		if got := string(featureBar(a, tt.frag)); got != tt.want {
			t.Errorf("%s: featureBar = %q, want %q", tt.name, got, tt.want)
		}
	}
}

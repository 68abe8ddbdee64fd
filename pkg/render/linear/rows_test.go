package linear

import (
	"testing"

	"github.com/matzehuels/seqmap/pkg/annotation"
	"github.com/matzehuels/seqmap/pkg/interval"
)

func ann(id, typ, span string) annotation.Annotation {
	return annotation.Annotation{ID: id, Caption: id, Type: typ, Span: interval.MustParseSpan(span)}
}

func slotRows(tr Track) map[string]int {
	out := make(map[string]int)
	for _, s := range tr.Slots {
		out[s.Annotation.ID] = s.Row
	}
	return out
}

func TestPackRowsFirstFit(t *testing.T) {
	anns := []annotation.Annotation{
		ann("a", annotation.TypeMisc, "0..30"),
		ann("b", annotation.TypeMisc, "20..40"),
		ann("c", annotation.TypeMisc, "30..50"),
		ann("d", annotation.TypeMisc, "40..45"),
	}
	tracks := PackRows(anns, 100, RowOptions{Zoom: 100, RowHeight: 10, RowPadding: 2})
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	got := slotRows(tracks[0])
	want := map[string]int{"a": 0, "b": 1, "c": 0, "d": 1}
	for id, row := range want {
		if got[id] != row {
			t.Errorf("%s in row %d, want %d", id, got[id], row)
		}
	}
	if tracks[0].Height != 22 {
		t.Errorf("track height = %v, want 22", tracks[0].Height)
	}
}

func TestPackRowsCDSFirst(t *testing.T) {
	anns := []annotation.Annotation{
		ann("wide", annotation.TypeGene, "0..90"),
		ann("cds", annotation.TypeCDS, "10..20"),
	}
	tracks := PackRows(anns, 100, RowOptions{Zoom: 100, RowHeight: 10})
	got := slotRows(tracks[0])
	if got["cds"] != 0 || got["wide"] != 1 {
		t.Errorf("rows = %v, want cds in 0 and wide in 1", got)
	}
}

func TestPackRowsTranslationHeight(t *testing.T) {
	anns := []annotation.Annotation{
		ann("x", annotation.TypeCDS, "0..10"),
		ann("y", annotation.TypeCDS, "5..15"),
		ann("z", annotation.TypeMisc, "20..30"),
		ann("w", annotation.TypeMisc, "22..28"),
	}
	opts := RowOptions{Zoom: 100, RowHeight: 10, RowPadding: 4, ShowTranslation: true, TranslationHeight: 6}
	tr := PackRows(anns, 100, opts)[0]

	if len(tr.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tr.Rows))
	}
	for i, want := range []float64{16, 16} {
		if tr.Rows[i].Height != want {
			t.Errorf("row %d height = %v, want %v", i, tr.Rows[i].Height, want)
		}
	}
	if tr.Rows[1].Offset != 20 {
		t.Errorf("row 1 offset = %v, want 20", tr.Rows[1].Offset)
	}
	for _, s := range tr.Slots {
		if s.Y != tr.Rows[s.Row].Offset {
			t.Errorf("slot %s y = %v, row offset %v", s.Annotation.ID, s.Y, tr.Rows[s.Row].Offset)
		}
		if s.Height != 10 {
			t.Errorf("slot %s band height = %v, want 10", s.Annotation.ID, s.Height)
		}
	}
}

func TestPackRowsPerLine(t *testing.T) {
	anns := []annotation.Annotation{
		ann("long", annotation.TypeMisc, "50..150"),
		ann("short", annotation.TypeMisc, "120..130"),
	}
	tracks := PackRows(anns, 250, RowOptions{Zoom: 100, RowHeight: 10})
	if len(tracks) != 3 {
		t.Fatalf("got %d tracks, want 3", len(tracks))
	}
	if rows := slotRows(tracks[0]); rows["long"] != 0 || len(tracks[0].Rows) != 1 {
		t.Errorf("line 0 rows = %v", rows)
	}
	if rows := slotRows(tracks[1]); rows["long"] != 0 || rows["short"] != 1 {
		t.Errorf("line 1 rows = %v", rows)
	}
	if len(tracks[2].Slots) != 0 || tracks[2].Height != 0 {
		t.Errorf("line 2 = %+v, want empty", tracks[2])
	}
}

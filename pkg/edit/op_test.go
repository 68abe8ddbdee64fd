package edit

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
)

func TestOpValidate(t *testing.T) {
	tests := []struct {
		name    string
		op      Op
		wantErr bool
	}{
		{"insert at start", Insert(0, "ACGT"), false},
		{"insert at end", Insert(10, "ACGT"), false},
		{"insert past end", Insert(11, "A"), true},
		{"insert negative", Insert(-1, "A"), true},
		{"insert empty", Insert(3, ""), true},
		{"insert bad base", Insert(3, "AXG"), true},
		{"replace", Replace(interval.MustNew(2, 5, interval.Plus), "TT"), false},
		{"delete", Delete(interval.MustNew(0, 10, interval.Plus)), false},
		{"replace past end", Replace(interval.MustNew(5, 11, interval.Plus), ""), true},
		{"replace reversed", Op{Kind: KindReplace, Range: interval.Range{Start: 5, End: 2}}, true},
		{"unknown kind", Op{Kind: Kind(9)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate(10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidEdit) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidEdit)
			}
		})
	}
}

func TestApply(t *testing.T) {
	const s = "AAAACCCCGGGG"
	tests := []struct {
		op   Op
		want string
	}{
		{Insert(0, "TT"), "TTAAAACCCCGGGG"},
		{Insert(12, "TT"), "AAAACCCCGGGGTT"},
		{Replace(interval.MustNew(4, 8, interval.Plus), "T"), "AAAATGGGG"},
		{Delete(interval.MustNew(0, 4, interval.Minus)), "CCCCGGGG"},
	}
	for _, tt := range tests {
		got, err := Apply(s, tt.op)
		if err != nil {
			t.Fatalf("Apply(%s): %v", tt.op, err)
		}
		if got != tt.want {
			t.Errorf("Apply(%s) = %q, want %q", tt.op, got, tt.want)
		}
		if len(got)-len(s) != tt.op.Delta() {
			t.Errorf("Delta(%s) = %d, length changed by %d", tt.op, tt.op.Delta(), len(got)-len(s))
		}
	}
	if _, err := Apply(s, Insert(20, "A")); err == nil {
		t.Error("Apply accepted out-of-range insert")
	}
}

func TestOpCursor(t *testing.T) {
	if got := Insert(5, "ACG").Cursor(); got != 8 {
		t.Errorf("insert cursor = %d, want 8", got)
	}
	if got := Replace(interval.MustNew(10, 20, interval.Plus), "AC").Cursor(); got != 12 {
		t.Errorf("replace cursor = %d, want 12", got)
	}
}

func TestOpJSON(t *testing.T) {
	var op Op
	data := `{"kind":"delete","range":"(3..9)","text":""}`
	if err := json.Unmarshal([]byte(data), &op); err != nil {
		t.Fatal(err)
	}
	if op.Kind != KindReplace || op.Range.Start != 3 || op.Range.End != 9 {
		t.Errorf("decoded %+v", op)
	}
	if err := json.Unmarshal([]byte(`{"kind":"move"}`), &op); err == nil {
		t.Error("unknown kind accepted")
	}
}

func ExampleAdjustReplace() {
	r := interval.MustNew(25, 45, interval.Plus)
	fmt.Println(AdjustReplace(r, 20, 30, 4))
	// Output: 24..39
}

package edit

import (
	"fmt"
	"strings"

	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
	"github.com/matzehuels/seqmap/pkg/seq"
)

// Kind distinguishes insertions from replacements.
type Kind int

const (
	KindInsert Kind = iota
	KindReplace
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindReplace:
		return "replace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind as "insert" or "replace".
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText accepts "insert", "replace" and "delete".
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "insert":
		*k = KindInsert
	case "replace", "delete":
		*k = KindReplace
	default:
		return errors.New(errors.ErrCodeInvalidEdit, "unknown edit kind %q", text)
	}
	return nil
}

// Op is a single local sequence edit. Insertions use Position; replacements
// use Range. Text is the new content.
type Op struct {
	Kind     Kind           `json:"kind" yaml:"kind"`
	Position int            `json:"position,omitempty" yaml:"position,omitempty"`
	Range    interval.Range `json:"range" yaml:"range,omitempty"`
	Text     string         `json:"text" yaml:"text"`
}

// Insert returns an insertion of text at pos.
func Insert(pos int, text string) Op {
	return Op{Kind: KindInsert, Position: pos, Text: text}
}

// Replace returns a replacement of r with text.
func Replace(r interval.Range, text string) Op {
	return Op{Kind: KindReplace, Range: r.Undirected(), Text: text}
}

// Delete returns a replacement of r with nothing.
func Delete(r interval.Range) Op { return Replace(r, "") }

// Validate checks the op against a sequence of seqLen bases.
func (op Op) Validate(seqLen int) error {
	if err := seq.Validate(op.Text); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidEdit, err, "invalid %s text", op.Kind)
	}
	switch op.Kind {
	case KindInsert:
		if op.Position < 0 || op.Position > seqLen {
			return errors.New(errors.ErrCodeInvalidEdit, "insert position %d outside 0..%d", op.Position, seqLen)
		}
		if op.Text == "" {
			return errors.New(errors.ErrCodeInvalidEdit, "insert with empty text")
		}
	case KindReplace:
		if err := op.Range.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidEdit, err, "invalid replace range")
		}
		if op.Range.End > seqLen {
			return errors.New(errors.ErrCodeInvalidEdit, "replace range %s exceeds sequence length %d", op.Range, seqLen)
		}
	default:
		return errors.New(errors.ErrCodeInvalidEdit, "unknown edit kind %d", int(op.Kind))
	}
	return nil
}

// Delta is the net change in sequence length.
func (op Op) Delta() int {
	if op.Kind == KindInsert {
		return len(op.Text)
	}
	return len(op.Text) - op.Range.Len()
}

// Cursor is the fence post just after the new text once op is applied.
func (op Op) Cursor() int {
	if op.Kind == KindInsert {
		return op.Position + len(op.Text)
	}
	return op.Range.Start + len(op.Text)
}

// Adjust returns r as it reads after op.
func (op Op) Adjust(r interval.Range) interval.Range {
	if op.Kind == KindInsert {
		return AdjustInsert(r, op.Position, len(op.Text))
	}
	return AdjustReplace(r, op.Range.Start, op.Range.End, len(op.Text))
}

func (op Op) String() string {
	if op.Kind == KindInsert {
		return fmt.Sprintf("insert %d bases at %d", len(op.Text), op.Position)
	}
	return fmt.Sprintf("replace %s with %d bases", op.Range, len(op.Text))
}

// Apply returns sequence with op applied.
func Apply(sequence string, op Op) (string, error) {
	if err := op.Validate(len(sequence)); err != nil {
		return "", err
	}
	if op.Kind == KindInsert {
		return sequence[:op.Position] + op.Text + sequence[op.Position:], nil
	}
	return sequence[:op.Range.Start] + op.Text + sequence[op.Range.End:], nil
}

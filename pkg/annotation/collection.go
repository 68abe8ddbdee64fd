package annotation

import (
	"slices"

	itree "github.com/biogo/store/interval"

	"github.com/matzehuels/seqmap/pkg/edit"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
)

// Collection owns the annotations of one document. It is not safe for
// concurrent mutation; callers serialize edits.
type Collection struct {
	items []Annotation
	byID  map[string]int
	tree  *itree.IntTree // built on first query, dropped on mutation
}

// NewCollection validates and copies anns into a new collection.
func NewCollection(anns ...Annotation) (*Collection, error) {
	c := &Collection{byID: make(map[string]int, len(anns))}
	for _, a := range anns {
		if err := c.Add(a); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of annotations.
func (c *Collection) Len() int { return len(c.items) }

// Add appends a copy of a. IDs must be unique.
func (c *Collection) Add(a Annotation) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, dup := c.byID[a.ID]; dup {
		return errors.New(errors.ErrCodeInvalidInput, "duplicate annotation id %q", a.ID)
	}
	if c.byID == nil {
		c.byID = make(map[string]int)
	}
	c.byID[a.ID] = len(c.items)
	c.items = append(c.items, a.Clone())
	c.tree = nil
	return nil
}

// Update replaces the annotation with a's ID.
func (c *Collection) Update(a Annotation) error {
	i, ok := c.byID[a.ID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "annotation %q not found", a.ID)
	}
	if err := a.Validate(); err != nil {
		return err
	}
	c.items[i] = a.Clone()
	c.tree = nil
	return nil
}

// Remove deletes the annotation with the given ID and reports whether it
// existed.
func (c *Collection) Remove(id string) bool {
	i, ok := c.byID[id]
	if !ok {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.reindex()
	return true
}

// Get returns a copy of the annotation with the given ID.
func (c *Collection) Get(id string) (Annotation, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Annotation{}, false
	}
	return c.items[i].Clone(), true
}

// All returns copies of every annotation in insertion order.
func (c *Collection) All() []Annotation {
	out := make([]Annotation, len(c.items))
	for i, a := range c.items {
		out[i] = a.Clone()
	}
	return out
}

// ByPriority returns copies sorted for row stacking.
func (c *Collection) ByPriority() []Annotation {
	out := c.All()
	SortByPriority(out)
	return out
}

// Clone returns an independent copy of the collection.
func (c *Collection) Clone() *Collection {
	out := &Collection{items: c.All()}
	out.reindex()
	return out
}

// Apply adjusts every annotation for a sequence edit. New spans are
// computed for the whole collection before any annotation changes.
func (c *Collection) Apply(op edit.Op) {
	spans := make([]interval.Span, len(c.items))
	for i, a := range c.items {
		spans[i] = edit.AdjustSpan(a.Span, op)
	}
	for i := range c.items {
		c.items[i].Span = spans[i]
	}
	c.tree = nil
}

// Overlapping returns the annotations with at least one range overlapping r,
// in collection order.
func (c *Collection) Overlapping(r interval.Range) []Annotation {
	if r.IsCursor() || len(c.items) == 0 {
		return nil
	}
	hits := c.index().Get(query(r))
	idx := make([]int, 0, len(hits))
	for _, h := range hits {
		idx = append(idx, h.(entry).item)
	}
	slices.Sort(idx)
	idx = slices.Compact(idx)
	out := make([]Annotation, len(idx))
	for i, j := range idx {
		out[i] = c.items[j].Clone()
	}
	return out
}

// At returns the annotations covering the base at pos.
func (c *Collection) At(pos int) []Annotation {
	return c.Overlapping(interval.Range{Start: pos, End: pos + 1})
}

func (c *Collection) reindex() {
	c.byID = make(map[string]int, len(c.items))
	for i, a := range c.items {
		c.byID[a.ID] = i
	}
	c.tree = nil
}

func (c *Collection) index() *itree.IntTree {
	if c.tree != nil {
		return c.tree
	}
	t := &itree.IntTree{}
	var uid uintptr
	for i, a := range c.items {
		for _, r := range a.Span.Ranges() {
			if r.IsCursor() {
				continue
			}
			uid++
			// Ranges are validated on Add, so Insert cannot fail.
			_ = t.Insert(entry{r: r, item: i, uid: uid}, true)
		}
	}
	t.AdjustRanges()
	c.tree = t
	return t
}

// entry indexes one range of one annotation.
type entry struct {
	r    interval.Range
	item int
	uid  uintptr
}

func (e entry) Overlap(b itree.IntRange) bool { return e.r.End > b.Start && e.r.Start < b.End }
func (e entry) ID() uintptr                   { return e.uid }
func (e entry) Range() itree.IntRange         { return itree.IntRange{Start: e.r.Start, End: e.r.End} }

type query interval.Range

func (q query) Overlap(b itree.IntRange) bool { return q.End > b.Start && q.Start < b.End }

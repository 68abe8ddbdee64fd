package annotation

import (
	"cmp"
	"slices"
)

// Priority orders annotations for row stacking: lower tiers first, then
// wider bounds first.
type Priority struct {
	Tier  int
	Width int
}

// PriorityOf places coding sequences in tier 0 and everything else in
// tier 1.
func PriorityOf(a Annotation) Priority {
	tier := 1
	if a.IsCDS() {
		tier = 0
	}
	return Priority{Tier: tier, Width: a.Bounds().Len()}
}

// Compare returns a negative number when p sorts before o.
func (p Priority) Compare(o Priority) int {
	if c := cmp.Compare(p.Tier, o.Tier); c != 0 {
		return c
	}
	return cmp.Compare(o.Width, p.Width)
}

// SortByPriority stably sorts anns by PriorityOf. Annotations with equal
// priority keep their relative order.
func SortByPriority(anns []Annotation) {
	slices.SortStableFunc(anns, func(a, b Annotation) int {
		return PriorityOf(a).Compare(PriorityOf(b))
	})
}

package container

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type Set[T comparable] map[T]struct{}

func (set Set[T]) Add(v T) {
	set[v] = struct{}{}
}

func (set Set[T]) Has(v T) bool {
	_, ok := set[v]
	return ok
}

// Sorted returns the elements of the set in ascending order.
func Sorted[T constraints.Ordered](set Set[T]) []T {
	out := make([]T, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

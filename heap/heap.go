package heap

import "golang.org/x/exp/constraints"

// @Author KHighness
// @Update 2026-10-16

// Comparator is a three-way ordering function.
// It returns -1 if a ranks before b, 0 if they rank equally and +1 if a ranks after b.
type Comparator[T any] func(a, b T) int

// Ascending orders ordered values from the smallest to the largest.
func Ascending[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Descending orders ordered values from the largest to the smallest.
func Descending[T constraints.Ordered](a, b T) int {
	return Ascending(b, a)
}

// Reverse returns a comparator with the opposite order of cmp.
func Reverse[T any](cmp Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return cmp(b, a)
	}
}

// violates reports if the parent ranks after the child.
func violates[T any](cmp Comparator[T], parent, child T) bool {
	return cmp(parent, child) > 0
}

// up moves the element at index j towards the root until its parent no longer ranks after it.
func up[T any](entries []T, cmp Comparator[T], j int) {
	for j > 0 {
		i := (j - 1) / 2 // parent node
		if !violates(cmp, entries[i], entries[j]) {
			break
		}
		entries[i], entries[j] = entries[j], entries[i]
		j = i
	}
}

// down moves the element at index i0 towards the leaves of entries[:n].
// It reports whether the element moved.
func down[T any](entries []T, cmp Comparator[T], i0, n int) bool {
	i := i0

	for {
		j1 := (i << 1) + 1 // left node
		if j1 >= n || j1 < 0 {
			break
		}

		j := j1
		if j2 := j1 + 1; j2 < n && cmp(entries[j2], entries[j1]) < 0 {
			j = j2 // right node, only when strictly smaller
		}

		if !violates(cmp, entries[i], entries[j]) {
			break
		}

		entries[i], entries[j] = entries[j], entries[i]
		i = j
	}

	return i > i0
}

// build establishes the heap property over entries[:n].
func build[T any](entries []T, cmp Comparator[T], n int) {
	if n < 2 {
		return
	}
	for i := (n - 1) / 2; i >= 0; i-- {
		down(entries, cmp, i, n)
	}
}

package heap

import (
	"errors"
	"fmt"
)

// @Author KHighness
// @Update 2026-10-16

var (
	// ErrInvalidCapacity is returned when a heap is created with a negative capacity.
	ErrInvalidCapacity = errors.New("heap: capacity must not be negative")
	// ErrNilComparator is returned when a heap is created without a comparator.
	ErrNilComparator = errors.New("heap: comparator must not be nil")
	// ErrAllocation is returned when the backing store cannot be allocated.
	ErrAllocation = errors.New("heap: could not allocate backing store")
)

// Bounded is a binary min-heap with a capacity fixed at creation.
//
// Inserts into a full heap are silently dropped, which makes Bounded a
// building block for top-K selection: the caller decides whether a candidate
// deserves a slot before offering it. The heap never allocates after
// NewBounded and never inspects its elements other than through the
// comparator. It is not safe for concurrent use.
type Bounded[T any] struct {
	entries []T
	count   int
	compare Comparator[T]
}

// NewBounded creates a Bounded heap holding at most capacity elements ordered by compare.
func NewBounded[T any](capacity int, compare Comparator[T]) (*Bounded[T], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if compare == nil {
		return nil, ErrNilComparator
	}

	entries, err := allocate[T](capacity)
	if err != nil {
		return nil, err
	}

	return &Bounded[T]{
		entries: entries,
		compare: compare,
	}, nil
}

func allocate[T any](capacity int) (entries []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("%w: %d slots: %v", ErrAllocation, capacity, r)
		}
	}()
	return make([]T, capacity), nil
}

// Release drops the backing store. The stored elements are left untouched
// and remain owned by the caller. A released heap has capacity zero.
func (h *Bounded[T]) Release() {
	h.entries = nil
	h.count = 0
}

// Insert adds v to the heap in O(log n).
// It returns false, discarding v, if the heap is full.
func (h *Bounded[T]) Insert(v T) bool {
	if h.IsFull() {
		return false
	}

	h.entries[h.count] = v
	h.count++
	up(h.entries, h.compare, h.count-1)
	return true
}

// BulkInsert adds as many values as fit into the remaining capacity and
// restores the heap property once for the whole store, in O(n).
// It returns the number of accepted values; the rest are dropped.
func (h *Bounded[T]) BulkInsert(values []T) int {
	accepted := copy(h.entries[h.count:], values)
	h.count += accepted
	build(h.entries, h.compare, h.count)
	return accepted
}

// ExtractMin removes and returns the minimum element.
// It returns false if the heap is empty.
func (h *Bounded[T]) ExtractMin() (T, bool) {
	var zero T
	if h.count == 0 {
		return zero, false
	}

	extracted := h.entries[0]
	last := h.count - 1
	h.entries[0] = h.entries[last]
	h.entries[last] = zero
	h.count = last
	down(h.entries, h.compare, 0, h.count)
	return extracted, true
}

// Peek returns the minimum element without removing it.
func (h *Bounded[T]) Peek() (T, bool) {
	if h.count == 0 {
		var zero T
		return zero, false
	}
	return h.entries[0], true
}

// ReplaceMin replaces the minimum element with v and returns the replaced element.
// On an empty heap v is inserted and false is returned.
//
// Callers keeping the best K candidates compare against Peek first and only
// call ReplaceMin for a candidate worth a slot.
func (h *Bounded[T]) ReplaceMin(v T) (T, bool) {
	if h.count == 0 {
		var zero T
		h.Insert(v)
		return zero, false
	}

	replaced := h.entries[0]
	h.entries[0] = v
	down(h.entries, h.compare, 0, h.count)
	return replaced, true
}

// Fix re-establishes the heap ordering after the element at index i has changed its rank.
func (h *Bounded[T]) Fix(i int) {
	if i < 0 || i >= h.count {
		panic(fmt.Errorf("Bounded: idx(%d) is out bound of [0, %d)", i, h.count))
	}
	if !down(h.entries, h.compare, i, h.count) {
		up(h.entries, h.compare, i)
	}
}

// Rebuild re-establishes the heap ordering of all elements in O(n).
func (h *Bounded[T]) Rebuild() {
	build(h.entries, h.compare, h.count)
}

// Reset empties the heap and keeps its capacity.
func (h *Bounded[T]) Reset() {
	var zero T
	for i := 0; i < h.count; i++ {
		h.entries[i] = zero
	}
	h.count = 0
}

// Drain extracts every element, appending them to dst in ascending order.
func (h *Bounded[T]) Drain(dst []T) []T {
	for h.count > 0 {
		v, _ := h.ExtractMin()
		dst = append(dst, v)
	}
	return dst
}

// Len returns the number of stored elements.
func (h *Bounded[T]) Len() int { return h.count }

// Cap returns the fixed capacity.
func (h *Bounded[T]) Cap() int { return len(h.entries) }

// IsEmpty checks if the heap is empty.
func (h *Bounded[T]) IsEmpty() bool { return h.count == 0 }

// IsFull checks if the heap is full.
func (h *Bounded[T]) IsFull() bool { return h.count == len(h.entries) }

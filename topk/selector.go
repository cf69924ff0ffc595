package topk

import (
	"github.com/Khighness/topkit/heap"
)

// @Author KHighness
// @Update 2026-10-16

// Selector keeps the k best candidates of a stream.
//
// better ranks candidates: a candidate ranked before another one is the better of the two.
// The candidates live in a heap.Bounded ordered by the reverse of better, so the root is
// always the worst retained candidate and the admission check is a single comparison.
// A Selector is not safe for concurrent use.
type Selector[T any] struct {
	better heap.Comparator[T]
	h      *heap.Bounded[T]
	seen   uint64
}

// NewSelector creates a Selector that retains at most k candidates.
func NewSelector[T any](k int, better heap.Comparator[T]) (*Selector[T], error) {
	if better == nil {
		return nil, heap.ErrNilComparator
	}
	h, err := heap.NewBounded[T](k, heap.Reverse(better))
	if err != nil {
		return nil, err
	}
	return &Selector[T]{better: better, h: h}, nil
}

// Offer considers v and reports whether it was retained.
// When the selector is full, v replaces the worst retained candidate only if it ranks strictly better.
func (s *Selector[T]) Offer(v T) bool {
	s.seen++
	if s.h.Insert(v) {
		return true
	}

	worst, ok := s.h.Peek()
	if !ok || s.better(v, worst) >= 0 {
		return false
	}
	s.h.ReplaceMin(v)
	return true
}

// OfferAll considers every value and returns how many of them were retained at the time they were offered.
// Values that fit into the free slots are added in a single O(n) pass.
func (s *Selector[T]) OfferAll(values []T) int {
	accepted := s.h.BulkInsert(values)
	s.seen += uint64(accepted)

	retained := accepted
	for _, v := range values[accepted:] {
		if s.Offer(v) {
			retained++
		}
	}
	return retained
}

// Threshold returns the worst retained candidate.
// Once the selector is full, only candidates ranked strictly better than it are admitted.
func (s *Selector[T]) Threshold() (T, bool) {
	return s.h.Peek()
}

// Drain returns the retained candidates, the best first, and empties the selector.
func (s *Selector[T]) Drain() []T {
	n := s.h.Len()
	if n == 0 {
		return nil
	}

	result := make([]T, n)
	for i := n - 1; i >= 0; i-- {
		result[i], _ = s.h.ExtractMin()
	}
	return result
}

// Reset empties the selector and clears its counters.
func (s *Selector[T]) Reset() {
	s.h.Reset()
	s.seen = 0
}

// Len returns the number of retained candidates.
func (s *Selector[T]) Len() int { return s.h.Len() }

// Cap returns the maximum number of retained candidates.
func (s *Selector[T]) Cap() int { return s.h.Cap() }

// Seen returns the number of offered candidates.
func (s *Selector[T]) Seen() uint64 { return s.seen }

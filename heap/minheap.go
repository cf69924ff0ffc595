package heap

import (
	"fmt"
	"sort"
)

// @Author KHighness
// @Update 2026-10-16

// MinHeap keeps the K nodes with the largest values, with the smallest of them on top.
type MinHeap struct {
	b *Bounded[*Node]
	K uint32
}

// NewMinHeap creates a MinHeap instance.
func NewMinHeap(k uint32) MinHeap {
	b, err := NewBounded[*Node](int(k), compareNodes)
	if err != nil {
		panic(fmt.Errorf("MinHeap: %w", err))
	}
	return MinHeap{
		b: b,
		K: k,
	}
}

// Add adds a node to the min heap and returns the expelled node if the heap is full.
func (h *MinHeap) Add(x *Node) *Node {
	if !h.IsFull() {
		h.b.Insert(x)
	} else if h.K > 0 && x.Val > h.Min() {
		expelled, _ := h.b.ReplaceMin(x)
		return expelled
	}
	return nil
}

// Pop removes and returns the minimum node from the min heap.
func (h *MinHeap) Pop() (*Node, bool) {
	return h.b.ExtractMin()
}

// Fix re-establishes the min heap ordering after the element at index i has changed its value.
func (h *MinHeap) Fix(idx int, val uint32) {
	if idx < 0 || idx >= h.Len() {
		panic(fmt.Errorf("MinHeap: idx(%d) is out bound of [0, %d)", idx, h.Len()))
	}
	h.b.entries[idx].Val = val
	h.b.Fix(idx)
}

// Min returns the value of the minimum element.
func (h *MinHeap) Min() uint32 {
	node, ok := h.b.Peek()
	if !ok {
		return 0
	}
	return node.Val
}

// Find returns the index for the given key and if the key exists.
func (h *MinHeap) Find(key string) (int, bool) {
	for i, node := range h.nodes() {
		if node.Key == key {
			return i, true
		}
	}
	return 0, false
}

// Sorted returns the Nodes sorted in descending order.
func (h *MinHeap) Sorted() Nodes {
	nodes := append(Nodes(nil), h.nodes()...)
	sort.Sort(sort.Reverse(nodes))
	return nodes
}

// Len returns the length of the min heap.
func (h *MinHeap) Len() int { return h.b.Len() }

// IsEmpty checks if the min heap is empty.
func (h *MinHeap) IsEmpty() bool { return h.b.IsEmpty() }

// IsFull checks if the min heap is full.
func (h *MinHeap) IsFull() bool { return h.b.IsFull() }

// Fade divides the value of all nodes by factor.
func (h *MinHeap) Fade(factor uint32) {
	if factor == 0 {
		return
	}
	for _, node := range h.nodes() {
		node.Val /= factor
	}
	// Integer division may tie values whose key order disagrees with the old layout.
	h.b.Rebuild()
}

// Halve halves the value of all nodes.
func (h *MinHeap) Halve() { h.Fade(2) }

func (h *MinHeap) nodes() []*Node {
	return h.b.entries[:h.b.count]
}

// Node structure.
type Node struct {
	Key string
	Val uint32
}

func compareNodes(a, b *Node) int {
	switch {
	case a.Val < b.Val:
		return -1
	case a.Val > b.Val:
		return 1
	case a.Key > b.Key:
		return -1
	case a.Key < b.Key:
		return 1
	default:
		return 0
	}
}

// Nodes type.
type Nodes []*Node

func (n Nodes) Len() int           { return len(n) }
func (n Nodes) Less(i, j int) bool { return compareNodes(n[i], n[j]) < 0 }
func (n Nodes) Swap(i, j int)      { n[i], n[j] = n[j], n[i] }

package topk

import (
	"math"
	"sync"

	"github.com/twmb/murmur3"
	"golang.org/x/exp/rand"

	"github.com/Khighness/topkit/heap"
)

// @Author KHighness
// @Update 2026-10-16

const DecayTableLen = 1 << 8

const expelledBufferLen = 32

// Compile time check to ensure HeavyKeeper satisfies the TopK interface.
var _ TopK = (*HeavyKeeper)(nil)

// HeavyKeeper algorithm structure.
//
// See: https://www.usenix.org/system/files/conference/atc18/atc18-gong.pdf
type HeavyKeeper struct {
	k           uint32
	width       uint32
	depth       uint32
	decay       float64
	lookupTable []float64
	minCount    uint32

	mu       sync.Mutex
	r        *rand.Rand
	buckets  [][]bucket
	minHeap  heap.MinHeap
	expelled chan Item
	total    uint64
}

// bucket structure.
type bucket struct {
	fingerprint uint32 // hash fingerprint
	count       uint32
}

// NewHeavyKeeper creates a new HeavyKeeper instance.
func NewHeavyKeeper(k, width, depth uint32, decay float64, minCount uint32) TopK {
	if width == 0 {
		width = 1
	}

	lookupTable := make([]float64, DecayTableLen)
	for i := 0; i < DecayTableLen; i++ {
		lookupTable[i] = math.Pow(decay, float64(i))
	}

	buckets := make([][]bucket, depth)
	for i := range buckets {
		buckets[i] = make([]bucket, width)
	}

	return &HeavyKeeper{
		k:           k,
		width:       width,
		depth:       depth,
		decay:       decay,
		lookupTable: lookupTable,
		minCount:    minCount,

		r:        rand.New(rand.NewSource(0)),
		buckets:  buckets,
		minHeap:  heap.NewMinHeap(k),
		expelled: make(chan Item, expelledBufferLen),
	}
}

// Add counts incr occurrences of item and updates the top k with its estimated count.
func (hk *HeavyKeeper) Add(item string, incr uint32) (string, bool) {
	hk.mu.Lock()
	defer hk.mu.Unlock()

	itemBytes := []byte(item)
	itemFingerprint := murmur3.Sum32(itemBytes)

	var maxCount uint32

	for i, row := range hk.buckets {
		b := &row[murmur3.SeedSum32(uint32(i), itemBytes)%hk.width]

		if b.count == 0 { // The bucket is initial.
			b.fingerprint = itemFingerprint
			b.count = incr
			maxCount = max(maxCount, incr)

		} else if b.fingerprint == itemFingerprint { // Fingerprints match, do increment.
			b.count += incr
			maxCount = max(maxCount, b.count)

		} else { // Fingerprints do not match, decay the resident item.
			for localIncr := incr; localIncr > 0; localIncr-- {
				decay := hk.lookupTable[min(b.count, DecayTableLen-1)]
				if hk.r.Float64() < decay {
					b.count--
					if b.count == 0 {
						b.fingerprint = itemFingerprint
						b.count = localIncr
						maxCount = max(maxCount, localIncr)
						break
					}
				}
			}
		}
	}

	hk.total += uint64(incr)

	if maxCount < hk.minCount {
		return "", false
	}

	if itemHeapIdx, itemHeapExist := hk.minHeap.Find(item); itemHeapExist {
		hk.minHeap.Fix(itemHeapIdx, maxCount)
		return "", true
	}

	if hk.minHeap.IsFull() && maxCount <= hk.minHeap.Min() {
		return "", false
	}

	expelled := hk.minHeap.Add(&heap.Node{Key: item, Val: maxCount})
	if expelled != nil {
		hk.expel(Item{Key: expelled.Key, Count: expelled.Val})
		return expelled.Key, true
	}

	return "", hk.k > 0
}

// List returns the top k items, the heaviest first.
func (hk *HeavyKeeper) List() []Item {
	hk.mu.Lock()
	defer hk.mu.Unlock()

	items := hk.minHeap.Sorted()
	result := make([]Item, 0, len(items))
	for _, item := range items {
		result = append(result, Item{Key: item.Key, Count: item.Val})
	}
	return result
}

// Total returns the sum of all increments, halved by every Fading.
func (hk *HeavyKeeper) Total() uint64 {
	hk.mu.Lock()
	defer hk.mu.Unlock()
	return hk.total
}

// Expelled returns the channel of items pushed out of the top k.
// Sends never block, so items are dropped when nobody reads.
func (hk *HeavyKeeper) Expelled() <-chan Item {
	return hk.expelled
}

// Fading halves every bucket count, the total and the top k counts.
func (hk *HeavyKeeper) Fading() {
	hk.mu.Lock()
	defer hk.mu.Unlock()

	for _, row := range hk.buckets {
		for i := range row {
			row[i].count >>= 1
		}
	}
	hk.total >>= 1
	hk.minHeap.Halve()
}

func (hk *HeavyKeeper) expel(item Item) {
	select {
	case hk.expelled <- item:
	default:
	}
}

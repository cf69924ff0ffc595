package topk

import (
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// @Author KHighness
// @Update 2026-10-16

func TestHeavyKeeper(t *testing.T) {
	zipF := rand.NewZipf(rand.New(rand.NewSource(2023)), 3, 2, 1000)
	topK := NewHeavyKeeper(10, 10000, 5, 0.925, 0)
	dataMap := make(map[string]int)
	for i := 0; i < 10000; i++ {
		key := strconv.FormatUint(zipF.Uint64(), 10)
		dataMap[key] = dataMap[key] + 1
		topK.Add(key, 1)
	}

	list := topK.List()
	require.Len(t, list, 10)

	var rate float64
	for _, node := range list {
		rate += math.Abs(float64(node.Count)-float64(dataMap[node.Key])) / float64(dataMap[node.Key])
		t.Logf("[TestHeavyKeeper] item %s, count %d, expect %d", node.Key, node.Count, dataMap[node.Key])
	}
	t.Logf("[TestHeavyKeeper] err rate avg: %f", rate/float64(len(list)))
	assert.Less(t, rate/float64(len(list)), 0.05)

	for i, node := range list[:5] {
		assert.Equal(t, strconv.FormatInt(int64(i), 10), node.Key)
	}
	assert.Equal(t, uint64(10000), topK.Total())
}

func TestHeavyKeeper_Expelled(t *testing.T) {
	topK := NewHeavyKeeper(2, 1024, 3, 0.925, 0)

	topK.Add("a", 1)
	topK.Add("b", 2)
	expelled, ok := topK.Add("c", 3)
	assert.True(t, ok)
	assert.Equal(t, "a", expelled)

	select {
	case item := <-topK.Expelled():
		assert.Equal(t, Item{Key: "a", Count: 1}, item)
	default:
		t.Fatal("expected an expelled item")
	}

	expelled, ok = topK.Add("d", 1)
	assert.False(t, ok, "a light item does not enter a full top k")
	assert.Empty(t, expelled)

	assert.Equal(t, []Item{{Key: "c", Count: 3}, {Key: "b", Count: 2}}, topK.List())
}

func TestHeavyKeeper_MinCount(t *testing.T) {
	topK := NewHeavyKeeper(3, 1024, 3, 0.925, 5)

	_, ok := topK.Add("a", 4)
	assert.False(t, ok)
	assert.Empty(t, topK.List())

	_, ok = topK.Add("a", 1)
	assert.True(t, ok)
	assert.Equal(t, []Item{{Key: "a", Count: 5}}, topK.List())
}

func TestHeavyKeeper_Fading(t *testing.T) {
	topK := NewHeavyKeeper(3, 1024, 3, 0.925, 0)
	topK.Add("a", 8)
	topK.Add("b", 4)

	topK.Fading()

	assert.Equal(t, uint64(6), topK.Total())
	assert.Equal(t, []Item{{Key: "a", Count: 4}, {Key: "b", Count: 2}}, topK.List())

	topK.Add("a", 1)
	assert.Equal(t, Item{Key: "a", Count: 5}, topK.List()[0])
}

func TestHeavyKeeper_MultiGoroutine(t *testing.T) {
	topK := NewHeavyKeeper(3, 10000, 5, 0.925, 0)

	producers := 8
	rounds := 50
	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		val := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				topK.Add(strconv.Itoa(val), uint32((val+1)*100))
			}
		}()
	}
	wg.Wait()

	list := topK.List()
	require.Len(t, list, 3)
	for i, node := range list {
		assert.Equal(t, strconv.Itoa(producers-i-1), node.Key)
		assert.Equal(t, uint32((producers-i)*100*rounds), node.Count)
	}
}

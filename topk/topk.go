package topk

// @Author KHighness
// @Update 2026-10-16

// Item is a key with its estimated count.
type Item struct {
	Key   string
	Count uint32
}

// TopK algorithm interface.
type TopK interface {

	// Add adds an item to the list of top k.
	// It returns two values:
	//	- The first return value is the expelled item if any item was expelled.
	//	- The second return value represents if the item is in the top k after the call.
	Add(item string, incr uint32) (string, bool)

	// List returns all the items in the top k, the heaviest first.
	List() []Item

	// Total returns the total count of the items.
	Total() uint64

	// Expelled watches at the expelled items.
	Expelled() <-chan Item

	// Fading halves all counts, letting new heavy items overtake old ones.
	Fading()
}

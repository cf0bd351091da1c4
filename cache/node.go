package cache

// nilSlot marks an absent link (no predecessor, no successor, empty list).
const nilSlot = -1

// node is one arena slot of a level's recency list.
// Links are slot indices rather than pointers: head is MRU, tail is LRU.
// A slot whose live flag is false sits on the level's free list and its
// links are meaningless.
type node[K comparable, V any] struct {
	item Item[K, V]

	prev int
	next int

	live bool
}

package cache

import "github.com/IvanBrykalov/tiercache/policy"

// Cache is a fixed-size, multi-level content cache. Every item is routed by
// its header to exactly one level, and all operations act on that level only.
//
// A Cache is not safe for concurrent use; callers that share one across
// goroutines must synchronize externally.
type Cache[K comparable, V any] interface {
	// Insert stores item in its level, evicting entries chosen by pol
	// (nil => LRU) until it fits.
	// Returns ErrOversizedItem if item is larger than a level, and
	// ErrDuplicateKey if the id is already present; in the latter case the
	// existing entry is promoted to MRU.
	Insert(item Item[K, V], pol policy.Policy) error

	// Lookup finds item.ID in the level item routes to and promotes it.
	// Only the id is matched; the rest of item serves routing.
	// On hit it returns the stored item (now that level's head).
	Lookup(item Item[K, V]) (Item[K, V], bool)

	// Update replaces the stored entry with item.ID by item.
	// Returns ErrCacheMiss if the id is absent or the replacement does not
	// fit into the old entry's size plus the level's free space.
	Update(item Item[K, V]) error

	// Clear empties every level.
	Clear()

	// Route returns the index of the level item belongs to.
	Route(item Item[K, V]) int

	// Level returns a read-only view of level i. Levels are mutated only
	// through the Cache, so every item stays in its routed level.
	// It panics if i is out of range.
	Level(i int) LevelView[K, V]

	// Levels returns the number of levels.
	Levels() int

	// Len returns the total number of resident entries across all levels.
	Len() int

	// String renders every level, L1 first.
	String() string
}

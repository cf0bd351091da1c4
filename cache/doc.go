// Package cache provides a fixed-capacity, multi-level content cache.
//
// # Design
//
//   - Levels: the cache owns a fixed number of independent levels (three by
//     default), each with the same size budget (200 units by default). Both
//     are chosen at construction and never change.
//
//   - Routing: an item's level is the sum of the code points of its Header
//     modulo the level count (HeaderRoute). Only the header matters, so items
//     with different ids may share a level and equal headers always do.
//
//   - Storage: each level keeps an arena of slots linked by index into a
//     MRU↔LRU doubly linked list, plus an id→slot index. Insert, lookup,
//     update and eviction are O(1).
//
//   - Promotion: Level.Contains is find-and-promote. Every successful lookup
//     moves the entry to MRU, including the duplicate check inside Insert and
//     the lookup inside Update. A rejected duplicate insert therefore still
//     reorders the level.
//
//   - Policies: the caller picks the eviction policy per Insert (MRU or LRU,
//     see package policy). LRU on a single-entry level evicts that entry,
//     exactly as MRU would.
//
//   - Ownership: a level belongs to its Cache. Cache.Level hands out a
//     read-only LevelView, so items can only be stored through the routing
//     operations.
//
//   - Size accounting: Used()+Free()==Capacity() at all times, and Used() is
//     the sum of resident item sizes.
//
//   - Errors: rejections are reported as wrapped sentinel errors
//     (ErrOversizedItem, ErrDuplicateKey, ErrCacheMiss, ErrInvalidSize);
//     test with errors.Is. The cache stays usable after any rejection.
//
//   - Observability: Options.Metrics receives per-level Hit/Miss/Evict/Size
//     signals (NoopMetrics by default; see metrics/prom) and
//     Options.OnEvict is called for every eviction. Package logging is
//     disabled until UseLogger is called.
//
// # Basic usage
//
//	c := cache.New[int, string](cache.Options[int, string]{})
//	item := cache.Item[int, string]{ID: 1, Size: 150, Header: "img", Payload: "…"}
//	if err := c.Insert(item, cache.LRU); err != nil {
//	    // ErrOversizedItem or ErrDuplicateKey
//	}
//	if got, ok := c.Lookup(item); ok {
//	    _ = got // got is now the head of its level
//	}
//	item.Size = 120
//	_ = c.Update(item) // ErrCacheMiss if absent or too large
//	c.Clear()
//
// # Thread safety
//
// Neither Cache nor Level is safe for concurrent use. Independent caches
// share no state and may be used from different goroutines.
package cache

package cache

import (
	"fmt"
	"strings"

	"github.com/IvanBrykalov/tiercache/policy"
	"github.com/davecgh/go-spew/spew"
)

// Level is one independently bounded store of the cache: a recency list
// (head=MRU, tail=LRU) whose entries together never exceed Capacity.
//
// Entries live in an arena of slots linked by index, so relinking an entry
// never allocates and no pointer cycles exist. An id→slot index gives O(1)
// lookup; since ids are unique it finds exactly the entry a head→tail scan
// would.
//
// Level is not safe for concurrent use.
type Level[K comparable, V any] struct {
	slots []node[K, V]
	free  []int     // recycled slot ids
	index map[K]int // id -> slot

	head int // MRU
	tail int // LRU

	count     int
	capacity  int
	remaining int

	// Owner-provided identity and observability.
	id      int
	metrics Metrics
	onEvict func(level int, item Item[K, V], reason EvictReason)
}

// NewLevel returns an empty standalone level with the given capacity.
func NewLevel[K comparable, V any](capacity int) *Level[K, V] {
	if capacity < 0 {
		panic("Capacity must be >= 0")
	}
	return newLevel[K, V](0, capacity, NoopMetrics{}, nil)
}

func newLevel[K comparable, V any](id, capacity int, m Metrics,
	onEvict func(int, Item[K, V], EvictReason)) *Level[K, V] {

	return &Level[K, V]{
		index:     make(map[K]int),
		head:      nilSlot,
		tail:      nilSlot,
		capacity:  capacity,
		remaining: capacity,
		id:        id,
		metrics:   m,
		onEvict:   onEvict,
	}
}

// Insert links item at MRU, evicting entries chosen by pol until it fits.
// A nil pol means LRU.
//
// Rejections leave the level untouched with one exception: the duplicate
// check is a find-and-promote lookup (Contains), so on ErrDuplicateKey the
// existing entry has been moved to MRU.
func (l *Level[K, V]) Insert(item Item[K, V], pol policy.Policy) error {
	if item.Size < 0 {
		return fmt.Errorf("%w: id %v size %d", ErrInvalidSize,
			item.ID, item.Size)
	}
	if item.Size > l.capacity {
		log.Debugf("level %d: rejected id %v, size %d exceeds "+
			"capacity %d", l.id, item.ID, item.Size, l.capacity)

		return fmt.Errorf("%w: id %v size %d > %d", ErrOversizedItem,
			item.ID, item.Size, l.capacity)
	}
	if l.Contains(item.ID) {
		log.Debugf("level %d: rejected duplicate id %v", l.id, item.ID)

		return fmt.Errorf("%w: id %v", ErrDuplicateKey, item.ID)
	}
	if pol == nil {
		pol = LRU
	}

	// Terminates: item.Size <= capacity, and every pass removes one entry.
	for l.remaining < item.Size {
		l.evictWith(pol, EvictPolicy)
	}

	s := l.alloc(item)
	l.index[item.ID] = s
	l.linkFront(s)
	l.remaining -= item.Size
	l.count++
	l.reportSize()

	log.Tracef("level %d: inserted id %v, free=%d: %v", l.id, item.ID,
		l.remaining, newLogClosure(func() string {
			return spew.Sdump(l.Items())
		}))

	return nil
}

// Contains reports whether an entry with the given id is present and, if so,
// relinks it at MRU.
//
// This is find-and-promote by contract: a successful lookup is a mutation.
// Insert's duplicate check and Update rely on it, so it is not split into
// separate find and promote steps.
func (l *Level[K, V]) Contains(id K) bool {
	if l.count == 0 {
		return false
	}
	s, ok := l.index[id]
	if !ok {
		return false
	}
	if s != l.head {
		l.unlink(s)
		l.linkFront(s)
		log.Tracef("level %d: promoted id %v to MRU", l.id, id)
	}
	return true
}

// Update replaces the entry identified by id with item.
//
// The lookup promotes the entry to MRU first. The replacement must fit into
// the old entry's size plus the free space; otherwise, and when id is absent,
// ErrCacheMiss is returned. If item carries a different id that another entry
// already owns, ErrDuplicateKey is returned.
func (l *Level[K, V]) Update(id K, item Item[K, V]) error {
	if item.Size < 0 {
		return fmt.Errorf("%w: id %v size %d", ErrInvalidSize,
			item.ID, item.Size)
	}
	if !l.Contains(id) {
		return fmt.Errorf("%w: id %v not present", ErrCacheMiss, id)
	}

	h := &l.slots[l.head]
	if avail := h.item.Size + l.remaining; item.Size > avail {
		log.Debugf("level %d: update of id %v needs %d, only %d "+
			"available", l.id, id, item.Size, avail)

		return fmt.Errorf("%w: id %v replacement size %d exceeds %d "+
			"available", ErrCacheMiss, id, item.Size, avail)
	}
	if item.ID != id {
		if _, dup := l.index[item.ID]; dup {
			return fmt.Errorf("%w: id %v", ErrDuplicateKey, item.ID)
		}
		delete(l.index, id)
		l.index[item.ID] = l.head
	}

	l.remaining += h.item.Size - item.Size
	h.item = item
	l.reportSize()

	return nil
}

// EvictMRU removes the head entry. It is a no-op on an empty level.
func (l *Level[K, V]) EvictMRU() (Item[K, V], bool) {
	return l.evictWith(MRU, EvictManual)
}

// EvictLRU removes the tail entry; with at most one entry it behaves exactly
// like EvictMRU. It is a no-op on an empty level.
func (l *Level[K, V]) EvictLRU() (Item[K, V], bool) {
	return l.evictWith(LRU, EvictManual)
}

// Evict removes the entry pol selects (nil means LRU).
func (l *Level[K, V]) Evict(pol policy.Policy) (Item[K, V], bool) {
	if pol == nil {
		pol = LRU
	}
	return l.evictWith(pol, EvictManual)
}

// Clear evicts every entry, head first, and restores the full capacity.
func (l *Level[K, V]) Clear() {
	for l.count > 0 {
		l.evictWith(MRU, EvictClear)
	}
	l.remaining = l.capacity
	l.slots = l.slots[:0]
	l.free = l.free[:0]
	l.reportSize()
}

// Front returns the MRU item without promoting anything.
func (l *Level[K, V]) Front() (Item[K, V], bool) {
	if l.head == nilSlot {
		var zero Item[K, V]
		return zero, false
	}
	return l.slots[l.head].item, true
}

// Back returns the LRU item without promoting anything.
func (l *Level[K, V]) Back() (Item[K, V], bool) {
	if l.tail == nilSlot {
		var zero Item[K, V]
		return zero, false
	}
	return l.slots[l.tail].item, true
}

// Items returns a snapshot of the entries ordered MRU -> LRU.
func (l *Level[K, V]) Items() []Item[K, V] {
	out := make([]Item[K, V], 0, l.count)
	for s := l.head; s != nilSlot; s = l.slots[s].next {
		out = append(out, l.slots[s].item)
	}
	return out
}

// Len returns the number of resident entries.
func (l *Level[K, V]) Len() int { return l.count }

// Capacity returns the fixed size budget.
func (l *Level[K, V]) Capacity() int { return l.capacity }

// Used returns the sum of the sizes of resident entries.
func (l *Level[K, V]) Used() int { return l.capacity - l.remaining }

// Free returns the remaining space.
func (l *Level[K, V]) Free() int { return l.remaining }

// PortionFilled returns the fraction of capacity in use (0 --> 1).
func (l *Level[K, V]) PortionFilled() float64 {
	if l.capacity == 0 {
		return 0
	}
	return float64(l.Used()) / float64(l.capacity)
}

// String renders the remaining space, the entry count and the list MRU first.
func (l *Level[K, V]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "REMAINING SPACE:%d\nITEMS:%d\nLIST:\n",
		l.remaining, l.count)
	for s := l.head; s != nilSlot; s = l.slots[s].next {
		fmt.Fprintf(&b, "[%v]\n", l.slots[s].item)
	}
	return b.String()
}

// -------------------- internals --------------------

// evictWith removes the victim pol picks and reports it.
func (l *Level[K, V]) evictWith(pol policy.Policy,
	reason EvictReason) (Item[K, V], bool) {

	if l.count == 0 {
		var zero Item[K, V]
		return zero, false
	}

	s, ok := pol.Victim(levelHooks[K, V]{l: l})
	if !ok || s < 0 || s >= len(l.slots) || !l.slots[s].live {
		panic(fmt.Sprintf("cache: policy %q returned invalid victim "+
			"slot %d on a level with %d entries", pol.Name(), s,
			l.count))
	}

	item := l.slots[s].item
	l.unlink(s)
	delete(l.index, item.ID)
	l.release(s)
	l.remaining += item.Size
	l.count--

	log.Debugf("level %d: evicted id %v (size=%d, policy=%s, "+
		"reason=%v), free=%d", l.id, item.ID, item.Size, pol.Name(),
		reason, l.remaining)

	l.metrics.Evict(l.id, reason)
	if cb := l.onEvict; cb != nil {
		cb(l.id, item, reason)
	}
	l.reportSize()

	return item, true
}

// alloc stores item in a free slot, growing the arena if none is recycled.
func (l *Level[K, V]) alloc(item Item[K, V]) int {
	n := node[K, V]{item: item, prev: nilSlot, next: nilSlot, live: true}
	if k := len(l.free); k > 0 {
		s := l.free[k-1]
		l.free = l.free[:k-1]
		l.slots[s] = n
		return s
	}
	l.slots = append(l.slots, n)
	return len(l.slots) - 1
}

// release returns an unlinked slot to the free list, dropping its item.
func (l *Level[K, V]) release(s int) {
	l.slots[s] = node[K, V]{prev: nilSlot, next: nilSlot}
	l.free = append(l.free, s)
}

// linkFront links an unlinked slot at MRU in O(1).
func (l *Level[K, V]) linkFront(s int) {
	n := &l.slots[s]
	n.prev = nilSlot
	n.next = l.head
	if l.head != nilSlot {
		l.slots[l.head].prev = s
	}
	l.head = s
	if l.tail == nilSlot {
		l.tail = s
	}
}

// unlink detaches s from the list in O(1); counters are left to the caller.
func (l *Level[K, V]) unlink(s int) {
	n := &l.slots[s]
	if n.prev != nilSlot {
		l.slots[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nilSlot {
		l.slots[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nilSlot, nilSlot
}

func (l *Level[K, V]) reportSize() {
	l.metrics.Size(l.id, l.count, l.Used())
}

// -------------------- policy hooks --------------------

// levelHooks adapts the level's list to policy.Hooks.
type levelHooks[K comparable, V any] struct{ l *Level[K, V] }

func (h levelHooks[K, V]) Front() (int, bool) { return h.l.head, h.l.head != nilSlot }
func (h levelHooks[K, V]) Back() (int, bool)  { return h.l.tail, h.l.tail != nilSlot }
func (h levelHooks[K, V]) Len() int           { return h.l.count }

// Package policy defines how a level chooses an eviction victim.
package policy

// Hooks expose a read-only view of a level's recency list to a policy.
// Slots are stable arena indices owned by the level; head is MRU, tail is LRU.
//
// Hooks never mutate the list: the level removes whatever victim the policy
// returns.
type Hooks interface {
	// Front returns the MRU slot, or ok=false if the list is empty.
	Front() (slot int, ok bool)
	// Back returns the LRU slot, or ok=false if the list is empty.
	Back() (slot int, ok bool)
	// Len returns the number of resident entries.
	Len() int
}

// Policy selects which entry a level evicts when it needs room.
//
// Semantics:
//   - Victim must return ok=true whenever Len() > 0, so eviction always
//     makes progress on a non-empty list.
//   - Victim must not retain the hooks beyond the call.
type Policy interface {
	// Name returns the stable identifier used in configuration ("lru", "mru").
	Name() string
	// Victim picks the slot to evict.
	Victim(Hooks) (slot int, ok bool)
}

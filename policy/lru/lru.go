// Package lru implements the LRU eviction policy.
package lru

import "github.com/IvanBrykalov/tiercache/policy"

// Name is the configuration identifier of this policy.
const Name = "lru"

// lru evicts the tail of the level's list.
type lru struct{}

// New returns the least-recently-used policy.
func New() policy.Policy { return lru{} }

// Name implements policy.Policy.
func (lru) Name() string { return Name }

// Victim returns the tail. A list with at most one entry has no tail distinct
// from its head, so the head is chosen instead; the result is the same entry.
func (lru) Victim(h policy.Hooks) (int, bool) {
	if h.Len() <= 1 {
		return h.Front()
	}
	return h.Back()
}

// Package mru implements the MRU eviction policy.
package mru

import "github.com/IvanBrykalov/tiercache/policy"

// Name is the configuration identifier of this policy.
const Name = "mru"

// mru evicts the head of the level's list.
type mru struct{}

// New returns the most-recently-used policy.
func New() policy.Policy { return mru{} }

// Name implements policy.Policy.
func (mru) Name() string { return Name }

// Victim returns the head (the entry touched last).
func (mru) Victim(h policy.Hooks) (int, bool) { return h.Front() }

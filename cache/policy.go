package cache

import (
	"fmt"
	"strings"

	"github.com/IvanBrykalov/tiercache/policy"
	"github.com/IvanBrykalov/tiercache/policy/lru"
	"github.com/IvanBrykalov/tiercache/policy/mru"
)

var (
	// MRU evicts the most recently used entry first.
	MRU = mru.New()
	// LRU evicts the least recently used entry first.
	LRU = lru.New()
)

// ParsePolicy maps a policy name ("mru" or "lru", case-insensitive) to
// its implementation.
func ParsePolicy(name string) (policy.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case mru.Name:
		return MRU, nil
	case lru.Name:
		return LRU, nil
	default:
		return nil, fmt.Errorf("%w: %q (use %s or %s)",
			ErrUnknownPolicy, name, mru.Name, lru.Name)
	}
}

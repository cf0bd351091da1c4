package cache

import "errors"

var (
	// ErrOversizedItem is returned when an item is larger than a whole level.
	ErrOversizedItem = errors.New("cache: item larger than level capacity")

	// ErrDuplicateKey is returned when the routed level already holds the id.
	// The existing entry has been promoted to MRU by the time this is returned.
	ErrDuplicateKey = errors.New("cache: id already present")

	// ErrCacheMiss is returned by Update both when the id is absent and when
	// the replacement does not fit into the head's size plus the free space.
	ErrCacheMiss = errors.New("cache: miss")

	// ErrInvalidSize is returned for items with a negative size.
	ErrInvalidSize = errors.New("cache: negative item size")

	// ErrUnknownPolicy is returned by ParsePolicy for unrecognized names.
	ErrUnknownPolicy = errors.New("cache: unknown eviction policy")
)

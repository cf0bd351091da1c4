package cache

import "github.com/IvanBrykalov/tiercache/internal/util"

const (
	// DefaultLevels is the number of levels of the reference topology.
	DefaultLevels = util.DefaultLevels
	// DefaultCapacity is the per-level capacity, in size units.
	DefaultCapacity = 200
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictPolicy: removed by the insert path to make room for a new item.
	EvictPolicy EvictReason = iota
	// EvictClear: removed by Clear.
	EvictClear
	// EvictManual: removed by a direct EvictMRU/EvictLRU/Evict call.
	EvictManual
)

// String returns a stable lowercase label for the reason.
func (r EvictReason) String() string {
	switch r {
	case EvictPolicy:
		return "policy"
	case EvictClear:
		return "clear"
	case EvictManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Metrics exposes level-scoped observability hooks.
// A NoopMetrics implementation is provided and used by default.
// Every call carries the index of the level it concerns.
type Metrics interface {
	Hit(level int)
	Miss(level int)
	Evict(level int, reason EvictReason)
	Size(level int, entries int, used int)
}

// Options configures the cache. Zero values are safe;
// defaults are applied in New():
//   - Levels == 0   => DefaultLevels
//   - Capacity == 0 => DefaultCapacity
//   - nil Metrics   => NoopMetrics
//
// Both sizes are fixed for the lifetime of the cache.
type Options[K comparable, V any] struct {
	// Levels is the number of independent levels items are routed to.
	Levels int

	// Capacity is the size budget of every level.
	Capacity int

	// OnEvict is called for every evicted entry, synchronously.
	OnEvict func(level int, item Item[K, V], reason EvictReason)

	// Metrics receives hit/miss/evict/size signals.
	Metrics Metrics
}

// withDefaults fills zero fields and panics on negative sizes.
func (o Options[K, V]) withDefaults() Options[K, V] {
	if o.Levels < 0 {
		panic("Levels must be >= 0")
	}
	if o.Capacity < 0 {
		panic("Capacity must be >= 0")
	}
	if o.Levels == 0 {
		o.Levels = DefaultLevels
	}
	if o.Capacity == 0 {
		o.Capacity = DefaultCapacity
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	return o
}

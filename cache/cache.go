package cache

import (
	"fmt"
	"strings"

	"github.com/IvanBrykalov/tiercache/internal/util"
	"github.com/IvanBrykalov/tiercache/policy"
)

// Router maps an item header to a level index in [0, levels).
type Router func(header string, levels int) int

// HeaderRoute sums the code points of header and reduces the sum modulo the
// level count. Items with equal headers always share a level.
func HeaderRoute(header string, levels int) int {
	return util.LevelIndex(util.CharSum(header), levels)
}

// cache routes items over a fixed set of levels.
type cache[K comparable, V any] struct {
	levels []*Level[K, V]
	route  Router

	opt Options[K, V]
}

// New constructs a cache with the provided Options.
// Defaults:
//   - Levels == 0   -> DefaultLevels (3)
//   - Capacity == 0 -> DefaultCapacity (200)
//   - nil Metrics   -> NoopMetrics
//
// Items are routed with HeaderRoute.
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	return newCache(opt, HeaderRoute)
}

// newCache builds a cache with an explicit router.
func newCache[K comparable, V any](opt Options[K, V], route Router) *cache[K, V] {
	opt = opt.withDefaults()

	ls := make([]*Level[K, V], opt.Levels)
	for i := range ls {
		ls[i] = newLevel[K, V](i, opt.Capacity, opt.Metrics, opt.OnEvict)
	}

	log.Debugf("created cache: levels=%d capacity=%d", opt.Levels,
		opt.Capacity)

	return &cache[K, V]{
		levels: ls,
		route:  route,
		opt:    opt,
	}
}

// ---- Cache[K,V] implementation ----

// Insert delegates to the routed level.
func (c *cache[K, V]) Insert(item Item[K, V], pol policy.Policy) error {
	return c.level(item).Insert(item, pol)
}

// Lookup promotes item.ID in its level and returns the level head on hit.
func (c *cache[K, V]) Lookup(item Item[K, V]) (Item[K, V], bool) {
	i := c.Route(item)
	l := c.levels[i]
	if !l.Contains(item.ID) {
		c.opt.Metrics.Miss(i)
		var zero Item[K, V]
		return zero, false
	}
	c.opt.Metrics.Hit(i)
	return l.Front()
}

// Update delegates to the routed level, keyed by item.ID.
func (c *cache[K, V]) Update(item Item[K, V]) error {
	return c.level(item).Update(item.ID, item)
}

// Clear empties every level.
func (c *cache[K, V]) Clear() {
	for _, l := range c.levels {
		l.Clear()
	}
	log.Debugf("cleared %d levels", len(c.levels))
}

// Route returns the level index for item.
func (c *cache[K, V]) Route(item Item[K, V]) int {
	return c.route(item.Header, len(c.levels))
}

// Level returns a read-only view of level i.
func (c *cache[K, V]) Level(i int) LevelView[K, V] {
	return LevelView[K, V]{l: c.levels[i]}
}

// Levels returns the number of levels.
func (c *cache[K, V]) Levels() int { return len(c.levels) }

// Len returns the total number of resident entries across all levels.
func (c *cache[K, V]) Len() int {
	total := 0
	for _, l := range c.levels {
		total += l.Len()
	}
	return total
}

// String renders each level under an "L<n> CACHE:" heading.
func (c *cache[K, V]) String() string {
	var b strings.Builder
	for i, l := range c.levels {
		fmt.Fprintf(&b, "L%d CACHE:\n%v\n", i+1, l)
	}
	return b.String()
}

// ---- helpers ----

func (c *cache[K, V]) level(item Item[K, V]) *Level[K, V] {
	return c.levels[c.Route(item)]
}

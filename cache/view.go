package cache

// LevelView is a read-only window onto one level of a Cache. It observes the
// live level, so it reflects later cache operations, but it never promotes,
// evicts or stores anything itself.
type LevelView[K comparable, V any] struct {
	l *Level[K, V]
}

// Front returns the MRU item without promoting anything.
func (v LevelView[K, V]) Front() (Item[K, V], bool) { return v.l.Front() }

// Back returns the LRU item without promoting anything.
func (v LevelView[K, V]) Back() (Item[K, V], bool) { return v.l.Back() }

// Items returns a snapshot of the entries ordered MRU -> LRU.
func (v LevelView[K, V]) Items() []Item[K, V] { return v.l.Items() }

func (v LevelView[K, V]) Len() int               { return v.l.Len() }
func (v LevelView[K, V]) Capacity() int          { return v.l.Capacity() }
func (v LevelView[K, V]) Used() int              { return v.l.Used() }
func (v LevelView[K, V]) Free() int              { return v.l.Free() }
func (v LevelView[K, V]) PortionFilled() float64 { return v.l.PortionFilled() }
func (v LevelView[K, V]) String() string         { return v.l.String() }

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// modelLevel is a naive slice-backed level (index 0 = MRU) used as the
// reference for the arena implementation.
type modelLevel struct {
	capacity, free int
	items          []testItem
}

func (m *modelLevel) find(id int) int {
	for i, x := range m.items {
		if x.ID == id {
			return i
		}
	}
	return -1
}

func (m *modelLevel) contains(id int) bool {
	i := m.find(id)
	if i < 0 {
		return false
	}
	x := m.items[i]
	m.items = append(m.items[:i], m.items[i+1:]...)
	m.items = append([]testItem{x}, m.items...)
	return true
}

func (m *modelLevel) evictHead() {
	m.free += m.items[0].Size
	m.items = m.items[1:]
}

func (m *modelLevel) evictTail() {
	if len(m.items) <= 1 {
		m.evictHead()
		return
	}
	last := len(m.items) - 1
	m.free += m.items[last].Size
	m.items = m.items[:last]
}

func (m *modelLevel) insert(x testItem, mru bool) error {
	switch {
	case x.Size > m.capacity:
		return ErrOversizedItem
	case m.contains(x.ID):
		return ErrDuplicateKey
	}
	for m.free < x.Size {
		if mru {
			m.evictHead()
		} else {
			m.evictTail()
		}
	}
	m.items = append([]testItem{x}, m.items...)
	m.free -= x.Size
	return nil
}

func (m *modelLevel) update(x testItem) error {
	if !m.contains(x.ID) || x.Size > m.items[0].Size+m.free {
		return ErrCacheMiss
	}
	m.free += m.items[0].Size - x.Size
	m.items[0] = x
	return nil
}

func (m *modelLevel) ids() []int {
	out := make([]int, 0, len(m.items))
	for _, x := range m.items {
		out = append(out, x.ID)
	}
	return out
}

var headers = []string{"a", "b", "c", "ab", "ba", "text/html", "image/png", ""}

func drawItem(t *rapid.T) testItem {
	return testItem{
		ID:      rapid.IntRange(0, 12).Draw(t, "id"),
		Size:    rapid.IntRange(0, 70).Draw(t, "size"),
		Header:  rapid.SampledFrom(headers).Draw(t, "header"),
		Payload: rapid.StringN(0, 4, -1).Draw(t, "payload"),
	}
}

// TestCache_MatchesModel drives random operation sequences against the cache
// and a naive model, checking every invariant after each step.
func TestCache_MatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		const capacity = 64

		c := New[int, string](Options[int, string]{Capacity: capacity})
		model := make([]*modelLevel, c.Levels())
		for i := range model {
			model[i] = &modelLevel{capacity: capacity, free: capacity}
		}

		sameErr := func(t *rapid.T, want, got error) {
			if want == nil {
				require.NoError(t, got)
				return
			}
			require.ErrorIs(t, got, want)
		}

		t.Repeat(map[string]func(*rapid.T){
			"insert": func(t *rapid.T) {
				x := drawItem(t)
				mru := rapid.Bool().Draw(t, "mru")
				pol := LRU
				if mru {
					pol = MRU
				}
				want := model[c.Route(x)].insert(x, mru)
				sameErr(t, want, c.Insert(x, pol))
			},
			"lookup": func(t *rapid.T) {
				x := drawItem(t)
				m := model[c.Route(x)]
				want := m.contains(x.ID)

				got, ok := c.Lookup(x)
				require.Equal(t, want, ok)
				if ok {
					require.True(t, got.Equal(m.items[0]))
				}
			},
			"update": func(t *rapid.T) {
				x := drawItem(t)
				want := model[c.Route(x)].update(x)
				sameErr(t, want, c.Update(x))
			},
			"evict": func(t *rapid.T) {
				i := rapid.IntRange(0, c.Levels()-1).Draw(t, "level")
				l, m := levelOf(c, i), model[i]
				if l.Len() == 0 {
					t.Skip("empty level")
				}

				before, free := l.Len(), l.Free()
				var (
					got testItem
					ok  bool
				)
				if rapid.Bool().Draw(t, "mru") {
					want := m.items[0]
					got, ok = l.EvictMRU()
					m.evictHead()
					require.Equal(t, want, got)
				} else {
					want := m.items[len(m.items)-1]
					if len(m.items) == 1 {
						want = m.items[0]
					}
					got, ok = l.EvictLRU()
					m.evictTail()
					require.Equal(t, want, got)
				}
				require.True(t, ok)
				require.Equal(t, before-1, l.Len())
				require.Equal(t, free+got.Size, l.Free())
			},
			"clear": func(t *rapid.T) {
				if rapid.IntRange(0, 9).Draw(t, "rarely") != 0 {
					t.Skip("clear is rare")
				}
				c.Clear()
				for _, m := range model {
					m.items, m.free = nil, m.capacity
				}
			},
			"": func(t *rapid.T) {
				checkCache(t, c)
				for i, m := range model {
					require.Equal(t, m.ids(), ids(c.Level(i)))
					require.Equal(t, m.free, c.Level(i).Free())
				}
			},
		})
	})
}

// TestLevel_HeadLookupIsIdempotent: Contains on the head never reorders.
func TestLevel_HeadLookupIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewLevel[int, string](100)
		n := rapid.IntRange(1, 10).Draw(t, "n")
		for id := 0; id < n; id++ {
			require.NoError(t, l.Insert(it(id, 10), LRU))
		}
		before := ids(l)
		head, _ := l.Front()

		for range rapid.IntRange(1, 5).Draw(t, "repeats") {
			require.True(t, l.Contains(head.ID))
		}
		require.Equal(t, before, ids(l))
	})
}

// TestLevel_LRUOnSingletonIsMRU: both evictions of a lone entry agree.
func TestLevel_LRUOnSingletonIsMRU(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := drawItem(t)
		x.Size = rapid.IntRange(0, 100).Draw(t, "size100")

		a, b := NewLevel[int, string](100), NewLevel[int, string](100)
		require.NoError(t, a.Insert(x, LRU))
		require.NoError(t, b.Insert(x, LRU))

		ga, oka := a.EvictLRU()
		gb, okb := b.EvictMRU()
		require.Equal(t, oka, okb)
		require.Equal(t, ga, gb)
		require.Equal(t, a.Free(), b.Free())
		checkLevel(t, a)
		checkLevel(t, b)
	})
}

// TestRoute_Deterministic: equal headers always route to the same level, and
// the routed level is the only place an item can be found.
func TestRoute_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		header := rapid.String().Draw(t, "header")
		levels := rapid.IntRange(1, 8).Draw(t, "levels")

		first := HeaderRoute(header, levels)
		require.GreaterOrEqual(t, first, 0)
		require.Less(t, first, levels)
		require.Equal(t, first, HeaderRoute(header, levels))

		c := New[int, string](Options[int, string]{Levels: levels})
		x := testItem{ID: 1, Size: 1, Header: header}
		require.NoError(t, c.Insert(x, LRU))
		for i := 0; i < levels; i++ {
			found := levelOf(c, i).Contains(1)
			require.Equal(t, i == first, found)
		}
	})
}

// errors.Is must see through the wrapped context.
func TestErrors_Wrapped(t *testing.T) {
	t.Parallel()

	l := NewLevel[int, string](1)
	err := l.Insert(it(1, 2), LRU)
	require.True(t, errors.Is(err, ErrOversizedItem))
	require.Contains(t, err.Error(), "size 2 > 1")
}

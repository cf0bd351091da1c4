package prom

import (
	"strconv"

	"github.com/IvanBrykalov/tiercache/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cache.Metrics and exports Prometheus counters/gauges,
// each labelled with the level index ("0", "1", ...).
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	evicts   *prometheus.CounterVec
	sizeEnt  *prometheus.GaugeVec
	sizeUsed *prometheus.GaugeVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		}, labels)
	}
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		}, []string{"level"})
	}

	a := &Adapter{
		hits:     counter("hits_total", "Cache hits", "level"),
		misses:   counter("misses_total", "Cache misses", "level"),
		evicts:   counter("evictions_total", "Cache evictions by reason", "level", "reason"),
		sizeEnt:  gauge("size_entries", "Number of resident entries"),
		sizeUsed: gauge("size_used", "Resident size units"),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.sizeEnt, a.sizeUsed)
	return a
}

// Hit increments the hit counter of level l.
func (a *Adapter) Hit(l int) { a.hits.WithLabelValues(level(l)).Inc() }

// Miss increments the miss counter of level l.
func (a *Adapter) Miss(l int) { a.misses.WithLabelValues(level(l)).Inc() }

// Evict increments the eviction counter with level and reason labels.
func (a *Adapter) Evict(l int, r cache.EvictReason) {
	a.evicts.WithLabelValues(level(l), r.String()).Inc()
}

// Size updates the entry and used-size gauges of level l.
func (a *Adapter) Size(l, entries, used int) {
	a.sizeEnt.WithLabelValues(level(l)).Set(float64(entries))
	a.sizeUsed.WithLabelValues(level(l)).Set(float64(used))
}

func level(l int) string { return strconv.Itoa(l) }

// Compile-time check: ensure Adapter implements cache.Metrics.
var _ cache.Metrics = (*Adapter)(nil)

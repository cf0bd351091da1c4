package cache

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is intended as the default when no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit(int)                {}
func (NoopMetrics) Miss(int)               {}
func (NoopMetrics) Evict(int, EvictReason) {}
func (NoopMetrics) Size(int, int, int)     {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}

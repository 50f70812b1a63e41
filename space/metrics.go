package space

// Metrics exposes namespace-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
//
// Hooks are invoked from inside the space's locked sections; keep
// implementations cheap (counter increments) and non-blocking.
type Metrics interface {
	// Create fires when an acquisition finds the key absent and creates
	// the entry; Reuse fires when the entry already existed.
	Create()
	Reuse()
	// Remove fires for every entry removal with the triggering reason.
	Remove(reason RemoveReason)
	// Poison fires when an entry is marked poisoned.
	Poison()
	// Size reports the resident entry count after it changed.
	Size(entries int64)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Create()             {}
func (NoopMetrics) Reuse()              {}
func (NoopMetrics) Remove(RemoveReason) {}
func (NoopMetrics) Poison()             {}
func (NoopMetrics) Size(int64)          {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}

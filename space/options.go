package space

import "github.com/IvanBrykalov/lockspace/policy"

// RemoveReason explains why an entry left the namespace.
type RemoveReason int

const (
	// RemoveExplicit: removed by a TryRemove call.
	RemoveExplicit RemoveReason = iota
	// RemovePolicy: removed by the cleanup policy when the last guard
	// was released.
	RemovePolicy
	// RemovePrune: removed by a Prune sweep.
	RemovePrune
	// RemovePurge: force-removed by Purge (poison recovery).
	RemovePurge
)

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// TraceHook observes entry reference-count changes, for debugging guard
// leaks (a key that never becomes unused). Implementations must not block
// and must not try to call back into the space: hooks run under a shard's
// map lock. The key is passed as its dynamic value.
//
// See the reftrace package for a slog-backed implementation that can
// attach stack traces to every Ref/Unref.
type TraceHook interface {
	// Ref fires after a reference was taken; refs is the new count
	// (baseline 1 = only the map itself).
	Ref(key any, refs int)
	// Unref fires after a reference was dropped.
	Unref(key any, refs int)
}

// Options configures a space. Zero values are safe; sane defaults are
// applied in New():
//   - nil Cleanup  => retain (entries persist until TryRemove)
//   - Shards <= 0  => auto (rounded up to power of two)
//   - nil Metrics  => NoopMetrics
//   - nil Clock    => time.Now
type Options[K comparable, V any] struct {
	// Shards defines the number of map shards. If 0, an automatic value
	// is chosen (≈ 2*GOMAXPROCS) and rounded to the next power of two.
	Shards int

	// Cleanup decides what happens to entries that become unused.
	// nil => retain-after-use.
	Cleanup policy.Policy

	// OnRemove is called for every removed entry, under the shard lock
	// but never with the entry's own lock held. Keep callbacks
	// lightweight; this is the place to close resources owned by V.
	OnRemove func(k K, v V, reason RemoveReason)

	// Observability.
	Metrics Metrics
	Trace   TraceHook

	// Clock allows overriding the time source (tests). Nil => time.Now().
	Clock Clock
}

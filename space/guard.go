package space

import "sync/atomic"

// Guard represents exclusive access to one key's value.
//
// The guard owns a reference to its entry, so it remains valid however
// long it is kept and wherever it is moved; its lifetime is independent
// of the Acquire call (and the Space lookup) that produced it. The value
// pointer returned by Value is stable for the life of the guard.
//
// A guard must eventually be released exactly once from the goroutine
// structure the caller chooses; Release is idempotent, so a deferred
// Release combined with an early release path is safe.
type Guard[K comparable, V any] struct {
	s   *space[K, V]
	sh  *shard[K, V]
	key K
	e   *entry[V]

	released atomic.Bool
}

// Value returns the protected value. The pointer is valid for reads and
// writes until Release; using it afterwards is a bug (and panics here
// rather than corrupting a future holder's view).
func (g *Guard[K, V]) Value() *V {
	if g.released.Load() {
		panic("space: Value on released guard")
	}
	return &g.e.val
}

// Key returns the key this guard locks. Valid even after Release.
func (g *Guard[K, V]) Key() K { return g.key }

// Release unlocks the entry and drops the guard's reference, in that
// order: the inner lock is free before the namespace re-examines the
// entry, so cleanup (and any OnRemove callback) never runs while the lock
// is still held. Safe to call more than once; extra calls do nothing.
func (g *Guard[K, V]) Release() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	g.e.mu.Unlock()
	g.s.unref(g.sh, g.key, g.e)
}

// Poison marks the entry as poisoned and releases the guard. Use it when
// the critical section failed and the value may be inconsistent: later
// acquisitions of this key fail with ErrPoisoned until the entry is
// purged. A no-op on an already released guard.
func (g *Guard[K, V]) Poison() {
	if g.released.Load() {
		return
	}
	g.e.poisoned.Store(true)
	g.s.poisons.Add(1)
	g.s.opt.Metrics.Poison()
	g.Release()
}

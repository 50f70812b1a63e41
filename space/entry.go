package space

import (
	"sync"
	"sync/atomic"
)

// entry is one key's slot in the namespace: the inner lock and the value it
// protects, plus the bookkeeping the shard needs to decide when the slot is
// unused. Entries are reached only through their *entry pointer, so the
// value's address is stable for as long as anything references it.
type entry[V any] struct {
	// mu is the inner lock. Acquire takes it only after the owning
	// shard's mutex has been released; TryRemove/Prune only probe it
	// with TryLock while the shard mutex is held.
	mu  sync.Mutex
	val V

	// refs is 1 (the map's own baseline reference) plus one per live
	// guard or in-flight acquisition. Guarded by the owning shard's
	// mutex; refs == 1 is the only state in which removal is allowed.
	refs int32

	// poisoned is set by a holder that failed mid-critical-section and
	// is never cleared. Atomic because it is written under the inner
	// lock but read under the shard mutex.
	poisoned atomic.Bool

	// idle is the UnixNano instant the entry last became unused (or was
	// created). Guarded by the owning shard's mutex; consumed by Prune.
	idle int64
}

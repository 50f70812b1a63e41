package space

// Space is a namespace of lazily created per-key locks.
// All methods are safe for concurrent use by multiple goroutines.
type Space[K comparable, V any] interface {
	// Acquire locks the entry for key, creating it (by calling init
	// exactly once, under the map lock) if absent. It blocks until the
	// entry's lock is free and returns a Guard exposing the value.
	// Fails with ErrPoisoned if a previous holder failed while holding
	// the lock, and with ErrNoInit if key is absent and init is nil.
	Acquire(key K, init func() V) (*Guard[K, V], error)

	// TryAcquire is Acquire without blocking: if the entry's lock is
	// held by someone else it fails with ErrWouldBlock instead of
	// waiting. Creation and poisoning behave exactly like Acquire.
	TryAcquire(key K, init func() V) (*Guard[K, V], error)

	// WithLock runs body on the locked value for key and releases the
	// lock on every exit path. If body panics, the entry is poisoned and
	// the panic is re-raised. Use Compute to return a result from body.
	WithLock(key K, init func() V, body func(*V)) error

	// TryRemove deletes the entry for key if nobody besides the map
	// itself references it. It never blocks: a referenced or locked
	// entry yields StatusWouldBlock, a poisoned one StatusPoisoned.
	TryRemove(key K) RemoveStatus

	// Purge is TryRemove that also removes poisoned entries. It is the
	// recovery path for a poisoned key: Purge, then Acquire afresh.
	Purge(key K) RemoveStatus

	// Prune sweeps every shard and removes the unused entries the
	// cleanup policy agrees to drop (see policy/idle). It never waits on
	// a per-entry lock and returns the number of entries removed.
	Prune() int

	// Len returns the number of resident entries across all shards.
	Len() int

	// Keys returns a snapshot of resident keys, in no particular order.
	// Intended for debugging; the snapshot is not atomic across shards.
	Keys() []K

	// Stats returns a snapshot of lifetime counters.
	Stats() Stats
}

// Stats is a snapshot of a space's lifetime counters.
type Stats struct {
	Creates uint64 // entries created
	Removes uint64 // entries removed, all reasons
	Poisons uint64 // entries poisoned
	Entries int64  // currently resident entries
}

// Compute runs body on the locked value for key and returns body's result.
// It exists because Go methods cannot introduce the result type parameter;
// semantics are exactly WithLock's.
func Compute[K comparable, V, R any](s Space[K, V], key K, init func() V, body func(*V) R) (R, error) {
	var out R
	err := s.WithLock(key, init, func(v *V) { out = body(v) })
	return out, err
}

// Package space provides a namespace of lazily created per-key locks:
// mutual exclusion for resources whose names are only known at runtime,
// without one pre-allocated lock per possible name and without leaking
// entries for names that are no longer used.
//
// Design
//
//   - Two-tier locking: the key→entry map is split into shards, each
//     protected by a mutex (the outer lock for every key that hashes to
//     it). Each entry carries its own mutex (the inner lock) protecting
//     the caller's value. Lookup, creation, reference counting, and
//     removal all happen under the outer lock; the inner lock is acquired
//     only after the outer lock has been released, and is never waited on
//     while any map lock is held. TryRemove probes the inner lock with a
//     non-blocking TryLock only. This total ordering makes deadlock
//     structurally impossible.
//
//   - Reference-counted lifecycle: each entry's count is 1 (the map's own
//     baseline reference) plus one per live guard or in-flight
//     acquisition, always adjusted under the outer lock. "Unused" is
//     exactly count == baseline, which is also the only state in which an
//     entry may be removed, so removal can never race with a goroutine
//     about to lock the entry; late arrivals always create a fresh entry.
//
//   - Guards: Acquire returns a *Guard that owns its entry reference, so
//     the guard (and the value it exposes) stays valid independent of the
//     lookup that produced it. Release unlocks the inner mutex strictly
//     before dropping the reference.
//
//   - Cleanup policies: what happens when an entry becomes unused is
//     pluggable via the policy package. retain (default) keeps entries
//     until TryRemove; auto removes them immediately; idle keeps them for
//     a grace period and relies on Prune sweeps.
//
//   - Poisoning: a panic inside a WithLock body, or an explicit
//     Guard.Poison, marks the entry poisoned. Later Acquire/WithLock calls
//     for that key fail with ErrPoisoned and TryRemove reports
//     StatusPoisoned; the flag is never cleared automatically. Only that
//     one key is affected; recover by Purge followed by a fresh Acquire.
//
//   - Metrics: Options.Metrics receives Create/Reuse/Remove/Poison/Size
//     signals. By default NoopMetrics is used; plug the Prometheus adapter
//     from metrics/prom to export them.
//
// Basic usage
//
//	s := space.New[string, int](space.Options[string, int]{})
//	g, err := s.Acquire("user:42", func() int { return 0 })
//	if err != nil {
//	    // previous holder failed mid-critical-section
//	}
//	*g.Value()++
//	g.Release()
//
// With WithLock (released on every exit path, including panics)
//
//	err := s.WithLock("user:42", func() int { return 0 }, func(v *int) {
//	    *v++
//	})
//
// With a result
//
//	n, err := space.Compute(s, "user:42", func() int { return 0 },
//	    func(v *int) int { return *v })
//
// Self-pruning namespace
//
//	s := space.New[string, conn](space.Options[string, conn]{
//	    Cleanup: auto.New(), // entry disappears when the last guard goes
//	})
//
// Keys
//
// Any comparable key type works; string and integer keys are hashed
// without allocation, so probing the namespace with an existing key never
// allocates. The key is stored once, when the entry is created.
//
// Thread-safety
//
// A *Space handle is cheap to share; all methods are safe for concurrent
// use from any goroutine holding the same handle. TryRemove, Purge, and
// Prune never wait on a per-entry lock.
package space

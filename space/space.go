package space

import (
	"sync"
	"time"

	"github.com/IvanBrykalov/lockspace/internal/util"
	"github.com/IvanBrykalov/lockspace/policy"
	"github.com/IvanBrykalov/lockspace/policy/retain"
)

// RemoveStatus reports the outcome of TryRemove and Purge.
type RemoveStatus int

const (
	// StatusSuccess: the entry was removed.
	StatusSuccess RemoveStatus = iota
	// StatusNotFound: no entry for the key.
	StatusNotFound
	// StatusWouldBlock: the entry is referenced or locked; removing
	// would have to wait, and TryRemove never waits.
	StatusWouldBlock
	// StatusPoisoned: the entry is poisoned; TryRemove leaves it in
	// place (Purge does not).
	StatusPoisoned
)

// String returns a stable label for the status (used in logs and tests).
func (s RemoveStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not-found"
	case StatusWouldBlock:
		return "would-block"
	case StatusPoisoned:
		return "poisoned"
	default:
		return "unknown"
	}
}

// space is the sharded implementation behind the Space interface.
type space[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	opt    Options[K, V]

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_       util.CacheLinePad
	entries util.PaddedAtomicInt64
	poisons util.PaddedAtomicUint64
}

// shard is an independent partition of the namespace. Its mutex is the
// outer lock for every key that hashes here: lookup, creation, reference
// counting, and removal all require it.
type shard[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*entry[V]

	_       util.CacheLinePad
	creates util.PaddedAtomicUint64
	removes util.PaddedAtomicUint64
}

// New constructs a Space with the provided Options.
// Defaults:
//   - nil Metrics  -> NoopMetrics
//   - nil Cleanup  -> retain (entries persist until TryRemove)
//   - Shards <= 0  -> auto, rounded up to the next power of two
func New[K comparable, V any](opt Options[K, V]) Space[K, V] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Cleanup == nil {
		opt.Cleanup = retain.New()
	}

	sh := opt.Shards
	if sh <= 0 {
		sh = util.ReasonableShardCount()
	} else {
		sh = int(util.NextPow2(uint64(sh)))
	}

	ss := make([]*shard[K, V], sh)
	for i := range ss {
		ss[i] = &shard[K, V]{m: make(map[K]*entry[V])}
	}

	// return pointer-to-impl as the interface (avoids unexported-return lint)
	return &space[K, V]{
		shards: ss,
		hash:   util.Sum64[K],
		opt:    opt,
	}
}

// ---- Space[K,V] implementation ----

// Acquire locks the entry for key, creating it on first use.
// The initializer runs exactly once per creation race because the shard
// mutex is held for the whole lookup-or-insert step; the inner lock is
// taken only after that mutex is released, so a slow initializer or a
// contended entry never stalls the rest of the shard.
func (s *space[K, V]) Acquire(key K, init func() V) (*Guard[K, V], error) {
	sh, e, err := s.ref(key, init)
	if err != nil {
		return nil, err
	}

	e.mu.Lock() // may block; no map lock is held here
	if e.poisoned.Load() {
		e.mu.Unlock()
		s.unref(sh, key, e)
		return nil, ErrPoisoned
	}
	return &Guard[K, V]{s: s, sh: sh, key: key, e: e}, nil
}

// TryAcquire is Acquire with a non-blocking inner lock attempt.
func (s *space[K, V]) TryAcquire(key K, init func() V) (*Guard[K, V], error) {
	sh, e, err := s.ref(key, init)
	if err != nil {
		return nil, err
	}

	if !e.mu.TryLock() {
		s.unref(sh, key, e)
		return nil, ErrWouldBlock
	}
	if e.poisoned.Load() {
		e.mu.Unlock()
		s.unref(sh, key, e)
		return nil, ErrPoisoned
	}
	return &Guard[K, V]{s: s, sh: sh, key: key, e: e}, nil
}

// WithLock runs body on the locked value and releases on every exit path.
// A panic inside body poisons the entry before the panic propagates.
func (s *space[K, V]) WithLock(key K, init func() V, body func(*V)) error {
	g, err := s.Acquire(key, init)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			g.Poison()
			panic(r)
		}
		g.Release()
	}()

	body(&g.e.val)
	return nil
}

// TryRemove deletes the entry for key if it is unused. Never blocks.
func (s *space[K, V]) TryRemove(key K) RemoveStatus {
	return s.remove(key, false, RemoveExplicit)
}

// Purge force-removes the entry for key even if poisoned. Never blocks.
func (s *space[K, V]) Purge(key K) RemoveStatus {
	return s.remove(key, true, RemovePurge)
}

// Prune sweeps all shards and removes unused entries the cleanup policy
// agrees to drop. Poisoned entries are skipped (use Purge). Never waits on
// a per-entry lock.
func (s *space[K, V]) Prune() int {
	now := s.now()
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for k, e := range sh.m {
			if e.refs > 1 || e.poisoned.Load() {
				continue
			}
			st := policy.Info{Idle: time.Duration(now - e.idle)}
			if s.opt.Cleanup.OnPrune(st) != policy.Remove {
				continue
			}
			if s.removeLocked(sh, k, e, RemovePrune) {
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Len returns the number of resident entries across all shards.
func (s *space[K, V]) Len() int {
	return int(s.entries.Load())
}

// Keys returns a snapshot of resident keys (not atomic across shards).
func (s *space[K, V]) Keys() []K {
	keys := make([]K, 0, s.Len())
	for _, sh := range s.shards {
		sh.mu.Lock()
		for k := range sh.m {
			keys = append(keys, k)
		}
		sh.mu.Unlock()
	}
	return keys
}

// Stats returns a snapshot of lifetime counters.
func (s *space[K, V]) Stats() Stats {
	st := Stats{
		Poisons: s.poisons.Load(),
		Entries: s.entries.Load(),
	}
	for _, sh := range s.shards {
		st.Creates += sh.creates.Load()
		st.Removes += sh.removes.Load()
	}
	return st
}

// ---- internals ----

func (s *space[K, V]) shardFor(key K) *shard[K, V] {
	return s.shards[util.ShardIndex(s.hash(key), len(s.shards))]
}

// ref finds or creates the entry for key and takes one reference to it,
// all under the shard mutex. The deferred unlock also covers a panicking
// initializer: the shard is released on unwind with the map untouched.
func (s *space[K, V]) ref(key K, init func() V) (*shard[K, V], *entry[V], error) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.m[key]
	if !ok {
		if init == nil {
			return nil, nil, ErrNoInit
		}
		e = &entry[V]{val: init(), refs: 1, idle: s.now()}
		sh.m[key] = e
		sh.creates.Add(1)
		s.opt.Metrics.Create()
		s.opt.Metrics.Size(s.entries.Add(1))
	} else {
		s.opt.Metrics.Reuse()
	}

	e.refs++
	if t := s.opt.Trace; t != nil {
		t.Ref(key, int(e.refs))
	}
	return sh, e, nil
}

// unref drops one reference. If the entry just became unused, the cleanup
// policy decides whether it stays resident; poisoned entries always stay
// (only Purge removes them). Callers must not hold the entry's inner lock.
func (s *space[K, V]) unref(sh *shard[K, V], key K, e *entry[V]) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e.refs--
	if t := s.opt.Trace; t != nil {
		t.Unref(key, int(e.refs))
	}
	if e.refs != 1 {
		return
	}

	e.idle = s.now()
	if e.poisoned.Load() {
		return
	}
	if s.opt.Cleanup.OnRelease(policy.Info{}) == policy.Remove {
		s.removeLocked(sh, key, e, RemovePolicy)
	}
}

// remove implements TryRemove/Purge: a refcount check plus a non-blocking
// probe of the inner lock, all under the shard mutex.
func (s *space[K, V]) remove(key K, evenIfPoisoned bool, reason RemoveReason) RemoveStatus {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.m[key]
	if !ok {
		return StatusNotFound
	}
	if e.refs > 1 {
		// Someone besides the map holds a reference: a live guard or an
		// in-flight acquisition. Removing would have to wait for it.
		return StatusWouldBlock
	}
	if e.poisoned.Load() && !evenIfPoisoned {
		return StatusPoisoned
	}
	if !s.removeLocked(sh, key, e, reason) {
		return StatusWouldBlock
	}
	return StatusSuccess
}

// removeLocked deletes the entry from the shard map. The caller holds the
// shard mutex and has verified refs == 1; the TryLock probe is an
// independent second check that nobody holds the inner lock.
func (s *space[K, V]) removeLocked(sh *shard[K, V], key K, e *entry[V], reason RemoveReason) bool {
	if !e.mu.TryLock() {
		return false
	}
	e.mu.Unlock()

	delete(sh.m, key)
	sh.removes.Add(1)
	s.opt.Metrics.Remove(reason)
	s.opt.Metrics.Size(s.entries.Add(-1))
	if cb := s.opt.OnRemove; cb != nil {
		// Called under the shard lock but never with the inner lock
		// held, so the callback may dispose resources owned by V.
		cb(key, e.val, reason)
	}
	return true
}

func (s *space[K, V]) now() int64 {
	if s.opt.Clock != nil {
		return s.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

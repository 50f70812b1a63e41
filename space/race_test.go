package space

import (
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IvanBrykalov/lockspace/policy/auto"
)

// Mutual exclusion: a counter incremented inside the critical section
// never observes a second holder, for any concurrent workload on one key.
func TestRace_MutualExclusion(t *testing.T) {
	s := New[string, int](Options[string, int]{})

	var inCS atomic.Int32
	var violations atomic.Int32
	var wg sync.WaitGroup

	workers := 8 * runtime.GOMAXPROCS(0)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				err := s.WithLock("mutex", zero, func(v *int) {
					if inCS.Add(1) != 1 {
						violations.Add(1)
					}
					*v++
					runtime.Gosched()
					inCS.Add(-1)
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if violations.Load() != 0 {
		t.Fatalf("critical section entered concurrently %d times", violations.Load())
	}
	want := workers * 200
	if n, err := Compute(s, "mutex", zero, func(v *int) int { return *v }); err != nil || n != want {
		t.Fatalf("final value: got %d err=%v, want %d", n, err, want)
	}
}

// A mixed workload of WithLock/TryAcquire/TryRemove/Prune on random keys
// under the self-pruning policy. Should pass under `-race` without
// detector reports, and the namespace must drain once idle.
func TestRace_MixedWorkload(t *testing.T) {
	s := New[string, []byte](Options[string, []byte]{
		Cleanup: auto.New(),
		Shards:  32,
	})

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 512
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5% TryRemove
					s.TryRemove(k)
				case 5, 6, 7, 8, 9: // ~5% TryAcquire
					if g, err := s.TryAcquire(k, func() []byte { return nil }); err == nil {
						g.Release()
					}
				case 10: // ~1% Prune
					s.Prune()
				default: // ~89% WithLock
					err := s.WithLock(k, func() []byte { return nil }, func(v *[]byte) {
						*v = append((*v)[:0], 'x')
					})
					if err != nil {
						t.Error(err)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()

	// All guards are gone; under auto cleanup every entry's last release
	// removed it, so the namespace must be empty.
	if s.Len() != 0 {
		t.Fatalf("namespace must drain, Len=%d keys=%v", s.Len(), s.Keys())
	}
}

// Removal racing with acquisition: a TryRemove between release and
// re-acquire either succeeds or reports would-block, and the acquirer
// never attaches to a removed entry (its initializer recreates it).
func TestRace_RemoveVsAcquire(t *testing.T) {
	s := New[string, int](Options[string, int]{})

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			s.TryRemove("contested")
		}
	}()

	var acquired int
	for i := 0; i < 5_000; i++ {
		err := s.WithLock("contested", zero, func(v *int) { *v++ })
		if err != nil {
			t.Fatal(err)
		}
		acquired++
	}
	close(stop)
	wg.Wait()

	if acquired != 5_000 {
		t.Fatalf("acquisitions: got %d", acquired)
	}
}

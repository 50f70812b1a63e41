// Command bench runs a synthetic workload against a lock space and exposes
// optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	pmet "github.com/IvanBrykalov/lockspace/metrics/prom"
	"github.com/IvanBrykalov/lockspace/policy/auto"
	"github.com/IvanBrykalov/lockspace/policy/idle"
	"github.com/IvanBrykalov/lockspace/space"
)

func main() {
	// ---- Flags ----
	var (
		shards  = flag.Int("shards", 0, "number of shards (0=auto)")
		cleanup = flag.String("cleanup", "retain", "cleanup policy: retain | auto | idle")
		grace   = flag.Duration("grace", time.Second, "idle grace period (cleanup=idle)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		rmPct    = flag.Int("removes", 5, "TryRemove percentage [0..100]")

		keys  = flag.Int("keys", 100_000, "keyspace size")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "lockspace", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build space ----
	opt := space.Options[string, int]{
		Shards:  *shards,
		Metrics: metrics,
	}
	switch *cleanup {
	case "retain":
		// nil => retain by default
	case "auto":
		opt.Cleanup = auto.New()
	case "idle":
		opt.Cleanup = idle.New(*grace)
	default:
		log.Fatalf("unknown cleanup policy: %q (use retain, auto or idle)", *cleanup)
	}
	s := space.New[string, int](opt)

	// Periodic pruning gives the idle policy a chance to act.
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	if *cleanup == "idle" {
		go func() {
			t := time.NewTicker(*grace)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					s.Prune()
				}
			}
		}()
	}

	// ---- Snapshot flags for goroutines ----
	rmPctVal := *rmPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var locks, removes, removed, total uint64

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < rmPctVal {
					atomic.AddUint64(&removes, 1)
					if s.TryRemove(keyByZipf()) == space.StatusSuccess {
						atomic.AddUint64(&removed, 1)
					}
				} else {
					atomic.AddUint64(&locks, 1)
					err := s.WithLock(keyByZipf(), func() int { return 0 }, func(v *int) {
						*v++
					})
					if err != nil {
						log.Fatalf("WithLock: %v", err)
					}
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	st := s.Stats()

	fmt.Printf("cleanup=%s shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		*cleanup, *shards, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  locks=%d  removes=%d (removed %d)\n",
		ops, float64(ops)/elapsed.Seconds(), atomic.LoadUint64(&locks),
		atomic.LoadUint64(&removes), atomic.LoadUint64(&removed))
	fmt.Printf("creates=%d  removals=%d  resident=%d\n", st.Creates, st.Removes, st.Entries)
}

// Package prom exports space.Metrics signals as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/lockspace/space"
)

// Adapter implements space.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	creates prometheus.Counter
	reuses  prometheus.Counter
	removes *prometheus.CounterVec
	poisons prometheus.Counter
	entries prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		creates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "entries_created_total",
			Help:        "Lock entries created on first acquisition of a key",
			ConstLabels: constLabels,
		}),
		reuses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "entries_reused_total",
			Help:        "Acquisitions that found an existing entry",
			ConstLabels: constLabels,
		}),
		removes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "entries_removed_total",
				Help:        "Lock entries removed by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		poisons: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "entries_poisoned_total",
			Help:        "Entries poisoned by a failed critical section",
			ConstLabels: constLabels,
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "entries_resident",
			Help:        "Currently resident lock entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.creates, a.reuses, a.removes, a.poisons, a.entries)
	return a
}

// Create increments the created-entries counter.
func (a *Adapter) Create() { a.creates.Inc() }

// Reuse increments the reused-entries counter.
func (a *Adapter) Reuse() { a.reuses.Inc() }

// Remove increments the removal counter with a reason label.
func (a *Adapter) Remove(r space.RemoveReason) {
	a.removes.WithLabelValues(reason(r)).Inc()
}

// Poison increments the poisoned-entries counter.
func (a *Adapter) Poison() { a.poisons.Inc() }

// Size updates the resident-entries gauge.
func (a *Adapter) Size(entries int64) { a.entries.Set(float64(entries)) }

// reason maps RemoveReason to a stable label value.
func reason(r space.RemoveReason) string {
	switch r {
	case space.RemoveExplicit:
		return "explicit"
	case space.RemovePolicy:
		return "policy"
	case space.RemovePrune:
		return "prune"
	case space.RemovePurge:
		return "purge"
	default:
		return "explicit"
	}
}

// Compile-time check: ensure Adapter implements space.Metrics.
var _ space.Metrics = (*Adapter)(nil)

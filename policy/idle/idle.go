// Package idle implements a grace-period cleanup policy.
//
// Entries survive their last release for a configurable grace period, so a
// key that is locked in bursts keeps its entry warm between bursts. Unused
// entries older than the grace period are removed by Space.Prune; call it
// periodically (e.g. from a ticker goroutine) or before memory-sensitive
// sections.
package idle

import (
	"time"

	"github.com/IvanBrykalov/lockspace/policy"
)

type idle struct {
	grace time.Duration
}

// New returns a policy that keeps unused entries resident for at least
// grace. A non-positive grace degrades to removing on every Prune sweep.
func New(grace time.Duration) policy.Policy {
	if grace < 0 {
		grace = 0
	}
	return idle{grace: grace}
}

// OnRelease keeps the entry; the grace period starts counting now.
func (idle) OnRelease(policy.Info) policy.Outcome { return policy.Keep }

// OnPrune removes the entry once it has been unused for the grace period.
func (p idle) OnPrune(st policy.Info) policy.Outcome {
	if st.Idle >= p.grace {
		return policy.Remove
	}
	return policy.Keep
}

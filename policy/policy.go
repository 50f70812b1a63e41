// Package policy defines the pluggable cleanup contract of a lock space.
//
// A cleanup policy decides when the space may drop an entry that has become
// unused (no live guards, no in-flight acquisitions). The space itself
// guarantees that a policy is only ever consulted for unused, non-poisoned
// entries, with the owning map lock held; a policy never observes an entry
// that some goroutine could still be attached to.
package policy

import "time"

// Outcome is a policy's verdict for one unused entry.
type Outcome int

const (
	// Keep leaves the entry resident.
	Keep Outcome = iota
	// Remove lets the space delete the entry.
	Remove
)

// Info describes one unused entry at decision time.
type Info struct {
	// Idle is how long the entry has been unused. It is zero when the
	// decision is made at release time (the entry just became unused)
	// and grows between sweeps.
	Idle time.Duration
}

// Policy decides when the space may drop an unused entry.
//
// Concurrency: both methods are called with the entry's map lock held;
// keep implementations cheap and non-blocking. Implementations must be
// safe for concurrent use by multiple shards.
type Policy interface {
	// OnRelease is consulted when an entry's last guard is released.
	OnRelease(Info) Outcome
	// OnPrune is consulted for each unused entry during an explicit
	// Space.Prune sweep.
	OnPrune(Info) Outcome
}

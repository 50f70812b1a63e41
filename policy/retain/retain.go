// Package retain implements the keep-until-removed cleanup policy.
package retain

import "github.com/IvanBrykalov/lockspace/policy"

// retain keeps every entry resident until the caller removes it explicitly
// via TryRemove or Purge. This is the default policy of a space.
type retain struct{}

// New returns the retain-after-use policy.
func New() policy.Policy { return retain{} }

// OnRelease keeps the entry; releasing the last guard has no effect on
// residency.
func (retain) OnRelease(policy.Info) policy.Outcome { return policy.Keep }

// OnPrune keeps the entry; a Prune sweep is a no-op under this policy.
func (retain) OnPrune(policy.Info) policy.Outcome { return policy.Keep }

// Package auto implements the self-pruning cleanup policy.
package auto

import "github.com/IvanBrykalov/lockspace/policy"

// auto removes an entry the moment it becomes unused, so the namespace
// holds only keys that are actively locked or being acquired.
type auto struct{}

// New returns the auto-cleanup policy.
func New() policy.Policy { return auto{} }

// OnRelease removes the entry as soon as its last guard goes away.
func (auto) OnRelease(policy.Info) policy.Outcome { return policy.Remove }

// OnPrune removes any unused entry a sweep happens to find. Under this
// policy a sweep only catches entries whose removal raced with a concurrent
// acquisition at release time.
func (auto) OnPrune(policy.Info) policy.Outcome { return policy.Remove }

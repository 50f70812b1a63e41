package space

import "errors"

var (
	// ErrPoisoned means a previous holder of this key's lock failed
	// mid-critical-section. The value may be inconsistent; the flag is
	// never cleared automatically. Recover with Purge + a fresh Acquire.
	ErrPoisoned = errors.New("space: lock poisoned by a previous holder")

	// ErrWouldBlock is returned by TryAcquire when the entry's lock is
	// currently held. An expected outcome, not a fault.
	ErrWouldBlock = errors.New("space: lock is held")

	// ErrNoInit is returned by Acquire/TryAcquire/WithLock when the key
	// is absent and no initializer was provided.
	ErrNoInit = errors.New("space: key absent and no initializer provided")
)

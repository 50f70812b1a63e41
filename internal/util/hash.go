// Package util contains internal helpers (hashing, sharding, padding).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Sum64 hashes common key types for shard selection.
// Byte-like keys go through xxhash; integer keys use a 64-bit finalizer
// (splitmix64), which is cheaper than hashing their byte representation.
// Supported: string, [16|32|64]byte, all int/uint widths, uintptr, fmt.Stringer.
// Panicking on unsupported types is deliberate to avoid silently poor sharding.
func Sum64[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return xxhash.Sum64String(v)
	case [16]byte:
		return xxhash.Sum64(v[:])
	case [32]byte:
		return xxhash.Sum64(v[:])
	case [64]byte:
		return xxhash.Sum64(v[:])

	case uint8:
		return mix64(uint64(v))
	case uint16:
		return mix64(uint64(v))
	case uint32:
		return mix64(uint64(v))
	case uint64:
		return mix64(v)
	case uint:
		return mix64(uint64(v))
	case uintptr:
		return mix64(uint64(v))
	case int8:
		return mix64(uint64(uint8(v)))
	case int16:
		return mix64(uint64(uint16(v)))
	case int32:
		return mix64(uint64(uint32(v)))
	case int64:
		return mix64(uint64(v))
	case int:
		return mix64(uint64(v))

	// Fallback for pseudo-keys via String() (avoid if you can).
	case fmt.Stringer:
		return xxhash.Sum64String(v.String())
	default:
		panic(fmt.Sprintf("util.Sum64: unsupported key type %T; convert key to string or provide a custom hasher", k))
	}
}

// mix64 is the splitmix64 finalizer. It spreads integer keys that tend to be
// sequential (ids, offsets) evenly across shards.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

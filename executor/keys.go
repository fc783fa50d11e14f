// File: executor/keys.go
// Package executor implements the port-driven reactor core.
// License: Apache-2.0

package executor

import (
	"fmt"
	"math"
)

// entryKind says which slab a packet key indexes.
type entryKind uint8

const (
	kindFuture entryKind = iota
	kindReceiver
)

// keyKindBit is the discriminant between the two slab namespaces. Slab ids
// therefore live in the low 63 bits; the slabs hand out dense indices from
// zero, so a colliding id is a programming error, not a resource limit.
const keyKindBit = uint64(1) << 63

// sentinelKey wakes the run loops themselves rather than a slab entry. It is
// the maximum representable key, which encodeKey can never produce.
const sentinelKey = uint64(math.MaxUint64)

// encodeKey packs a slab-local id and its kind into one packet key.
func encodeKey(id uint64, kind entryKind) uint64 {
	if id&keyKindBit != 0 {
		panic(fmt.Sprintf("executor: slab id %#x collides with the key kind bit", id))
	}
	if kind == kindReceiver {
		return id | keyKindBit
	}
	return id
}

// decodeKey recovers the slab-local id and kind from a packet key.
func decodeKey(key uint64) (uint64, entryKind) {
	if key&keyKindBit != 0 {
		return key &^ keyKindBit, kindReceiver
	}
	return key, kindFuture
}

// File: port/packet.go
// Package port implements the waitable packet queue the executor blocks on.
// License: Apache-2.0

package port

// Signals are readiness bits carried by object-wait packets. User-queued wake
// packets leave them zero.
type Signals uint32

const (
	SignalReadable Signals = 1 << iota
	SignalWritable
	SignalPeerClosed
	SignalError
)

// Packet is the fixed-format message read from and written to a Port. Key is
// an opaque routing value: the port never inspects it, it only carries it.
type Packet struct {
	Key     uint64
	Status  int32
	Signals Signals
}

// File: api/receiver.go
// Package api defines the PacketReceiver capability.
// License: Apache-2.0

package api

import "github.com/vsrinivas/fuchsia-sub094/port"

// PacketReceiver consumes packets routed to a registration's key.
// ReceivePacket is invoked with no executor locks held and at most once per
// delivered packet. In multi-threaded mode any worker may invoke it, so
// implementations shared across packets must synchronize their own state.
type PacketReceiver interface {
	ReceivePacket(pkt port.Packet)
}

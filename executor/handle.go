// File: executor/handle.go
// License: Apache-2.0

package executor

import (
	"sync/atomic"

	"github.com/vsrinivas/fuchsia-sub094/api"
	"github.com/vsrinivas/fuchsia-sub094/port"
)

// Handle shares the executor's core. Copying it is cheap; every copy refers
// to the same reactor. All methods are safe from any goroutine, including
// reentrantly from inside a future's own Poll: they touch only the slabs
// and the port, both internally synchronized.
type Handle struct {
	inner *inner
}

// Spawn schedules f on the executor. The first poll happens on a reactor
// goroutine, never synchronously in the caller.
func (h Handle) Spawn(f api.Future) {
	h.inner.spawn(f)
}

// Port exposes the executor's port.
func (h Handle) Port() *port.Port {
	return h.inner.port
}

// RegisterReceiver routes packets carrying the registration's key to r until
// the registration is closed.
func (h Handle) RegisterReceiver(r api.PacketReceiver) *ReceiverRegistration {
	id := h.inner.receivers.Insert(r)
	return &ReceiverRegistration{
		inner:    h.inner,
		id:       id,
		key:      encodeKey(id, kindReceiver),
		receiver: r,
	}
}

// ReceiverRegistration ties a PacketReceiver to its packet key. The key and
// port accessors let the holder arm kernel-object waits addressed to this
// registration.
type ReceiverRegistration struct {
	inner    *inner
	id       uint64
	key      uint64
	receiver api.PacketReceiver
	closed   atomic.Bool
}

// Key returns the composite packet key routed to this registration.
func (rr *ReceiverRegistration) Key() uint64 {
	return rr.key
}

// Port exposes the port packets for this registration should be queued to.
func (rr *ReceiverRegistration) Port() *port.Port {
	return rr.inner.port
}

// Receiver returns the registered receiver.
func (rr *ReceiverRegistration) Receiver() api.PacketReceiver {
	return rr.receiver
}

// Close deregisters the receiver. Packets already in flight for the key are
// dropped silently when they arrive. Idempotent.
func (rr *ReceiverRegistration) Close() error {
	if rr.closed.CompareAndSwap(false, true) {
		rr.inner.receivers.Remove(rr.id)
	}
	return nil
}

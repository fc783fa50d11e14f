// File: executor/inner.go
// License: Apache-2.0
//
// inner is the reactor core shared by the Executor and every Handle and
// ReceiverRegistration derived from it. It owns the port and both slabs.
// Slab locks are internal to the slab and never held while user code runs;
// handles are copied out first.

package executor

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/vsrinivas/fuchsia-sub094/api"
	"github.com/vsrinivas/fuchsia-sub094/internal/atomicfuture"
	"github.com/vsrinivas/fuchsia-sub094/internal/slab"
	"github.com/vsrinivas/fuchsia-sub094/port"
)

type inner struct {
	port      *port.Port
	ownsPort  bool
	tasks     *slab.Slab[*atomicfuture.AtomicFuture]
	receivers *slab.Slab[api.PacketReceiver]
	log       *zap.Logger

	// done tells every worker to exit on its next loop iteration.
	done atomic.Bool

	// workerWG joins the worker pool; numWorkers is only touched by the
	// goroutine driving Run/Close.
	workerWG   sync.WaitGroup
	numWorkers int

	tasksSpawned     atomic.Int64
	tasksCompleted   atomic.Int64
	packetsDelivered atomic.Int64
	wakesDropped     atomic.Int64
}

func newTaskSlab() *slab.Slab[*atomicfuture.AtomicFuture] {
	return slab.New[*atomicfuture.AtomicFuture]()
}

func newReceiverSlab() *slab.Slab[api.PacketReceiver] {
	return slab.New[api.PacketReceiver]()
}

// Notify implements api.Notifier: queue a zero-payload wake packet for key.
// A failed enqueue is logged and swallowed; the entry behind key may simply
// never wake again, which is expected during shutdown races.
func (in *inner) Notify(key uint64) {
	pkt := port.Packet{Key: key}
	if err := in.port.Queue(&pkt); err != nil {
		in.wakesDropped.Add(1)
		in.log.Warn("wake packet dropped",
			zap.Uint64("key", key),
			zap.Error(err))
	}
}

// spawn wraps f, inserts it into the task slab, and queues an initial wake
// so the first poll happens on a reactor goroutine, not in the caller.
func (in *inner) spawn(f api.Future) {
	af := atomicfuture.New(f)
	id := in.tasks.Insert(af)
	in.tasksSpawned.Add(1)
	in.Notify(encodeKey(id, kindFuture))
}

// pollFuture services a future-kind packet. A vacant slot means the future
// already finished on another goroutine; tolerated, not an error.
func (in *inner) pollFuture(id uint64) {
	af, ok := in.tasks.Get(id)
	if !ok {
		return
	}
	if af.TryPoll(in, encodeKey(id, kindFuture)) == atomicfuture.Done {
		// The slab lock covers only the removal; the future itself was
		// already released inside TryPoll, outside any lock. A stale wake
		// can observe Done again after the removal, hence the ok guard.
		if _, ok := in.tasks.Remove(id); ok {
			in.tasksCompleted.Add(1)
		}
	}
}

// deliverPacket services a receiver-kind packet. The handle is copied out of
// the slab first so no lock is held during ReceivePacket; a vacant slot
// drops the packet silently (the registration closed while it was in
// flight).
func (in *inner) deliverPacket(id uint64, pkt port.Packet) {
	r, ok := in.receivers.Get(id)
	if !ok {
		return
	}
	in.packetsDelivered.Add(1)
	r.ReceivePacket(pkt)
}

// dispatch routes a non-sentinel packet to the right slab.
func (in *inner) dispatch(pkt port.Packet) {
	id, kind := decodeKey(pkt.Key)
	if kind == kindReceiver {
		in.deliverPacket(id, pkt)
		return
	}
	in.pollFuture(id)
}

// workerLoop is the multi-threaded reactor loop. Sentinel packets carry no
// work; they exist purely to bounce the worker off the port wait so it can
// observe the done flag.
func (in *inner) workerLoop() {
	for !in.done.Load() {
		pkt, err := in.port.Wait(port.InfiniteTimeout)
		if err != nil {
			if !errors.Is(err, port.ErrClosed) && !in.done.Load() {
				in.log.Error("worker port wait failed", zap.Error(err))
			}
			return
		}
		if pkt.Key == sentinelKey {
			continue
		}
		in.dispatch(pkt)
	}
}

// wakeWorkers queues exactly one sentinel packet per worker. Each queued
// packet releases exactly one port wait, so the fan-out must equal the
// worker count or a worker stays blocked past shutdown.
func (in *inner) wakeWorkers() {
	for i := 0; i < in.numWorkers; i++ {
		in.Notify(sentinelKey)
	}
}

// drainAll empties both slabs, releasing every outstanding future and
// receiver regardless of completion state. Entries implementing io.Closer
// get their teardown hook.
func (in *inner) drainAll() {
	for _, af := range in.tasks.Drain() {
		if err := af.Cancel(); err != nil {
			in.log.Warn("future teardown failed", zap.Error(err))
		}
	}
	for _, r := range in.receivers.Drain() {
		if c, ok := r.(io.Closer); ok {
			if err := c.Close(); err != nil {
				in.log.Warn("receiver teardown failed", zap.Error(err))
			}
		}
	}
}

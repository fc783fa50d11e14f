// File: port/port.go
// License: Apache-2.0
//
// Port is a bounded multi-producer multi-consumer packet queue with a
// blocking Wait. Each queued packet releases exactly one Wait call; that
// one-to-one pairing is load-bearing for the executor's shutdown fan-out.

package port

import (
	"errors"
	"sync"
	"time"

	"github.com/eapache/queue"
)

// InfiniteTimeout blocks Wait until a packet arrives or the port closes.
const InfiniteTimeout time.Duration = -1

// DefaultCapacity bounds the number of packets a port holds before Queue
// starts failing with ErrFull.
const DefaultCapacity = 4096

var (
	// ErrClosed is returned once the port is closed and drained.
	ErrClosed = errors.New("port: closed")

	// ErrTimedOut is returned by Wait when the timeout elapses first.
	ErrTimedOut = errors.New("port: wait timed out")

	// ErrFull is returned by Queue when the pending packet limit is hit.
	ErrFull = errors.New("port: queue full")
)

// Port is safe for concurrent use by any number of producers and waiters.
type Port struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	pending  *queue.Queue
	capacity int
	closed   bool
}

// New creates a port with DefaultCapacity.
func New() (*Port, error) {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates a port holding at most capacity pending packets.
func NewWithCapacity(capacity int) (*Port, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	p := &Port{
		pending:  queue.New(),
		capacity: capacity,
	}
	p.nonEmpty = sync.NewCond(&p.mu)
	return p, nil
}

// Queue appends a copy of pkt. It never blocks: a full or closed port is an
// error for the caller to deal with.
func (p *Port) Queue(pkt *Packet) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.pending.Length() >= p.capacity {
		return ErrFull
	}
	p.pending.Add(*pkt)
	p.nonEmpty.Signal()
	return nil
}

// Wait blocks until a packet is available, the timeout elapses, or the port
// closes. Packets still pending at close time are drained before ErrClosed
// is reported.
func (p *Port) Wait(timeout time.Duration) (Packet, error) {
	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
		// Cond has no timed wait; a one-shot timer broadcast stands in.
		t := time.AfterFunc(timeout, func() {
			p.mu.Lock()
			p.nonEmpty.Broadcast()
			p.mu.Unlock()
		})
		defer t.Stop()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if p.pending.Length() > 0 {
			pkt := p.pending.Remove().(Packet)
			return pkt, nil
		}
		if p.closed {
			return Packet{}, ErrClosed
		}
		if timeout >= 0 && !time.Now().Before(deadline) {
			return Packet{}, ErrTimedOut
		}
		p.nonEmpty.Wait()
	}
}

// Pending returns the number of queued packets.
func (p *Port) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.Length()
}

// Close rejects further Queue calls and releases all waiters. Idempotent.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		p.nonEmpty.Broadcast()
	}
	return nil
}

// File: internal/atomicfuture/atomicfuture.go
// Package atomicfuture wraps a future so it is polled by at most one
// goroutine at a time.
// License: Apache-2.0
//
// State machine: idle -> polling -> idle | done, with a polling+woken
// variant recording a wake that arrived mid-poll. The losing caller of a
// concurrent TryPoll only flips that flag and returns; the winner observes
// it and re-polls before yielding, so no wake is lost and no poll ever
// overlaps another.

package atomicfuture

import (
	"io"
	"sync/atomic"

	"github.com/vsrinivas/fuchsia-sub094/api"
)

// Result of a TryPoll attempt.
type Result uint8

const (
	// Pending: the future has not resolved (or another goroutine is polling
	// it right now and inherited our wake).
	Pending Result = iota

	// Done: the future resolved. Sticky; later calls keep returning Done.
	Done
)

const (
	stateIdle uint32 = iota
	statePolling
	statePollingWoken
	stateDone
)

// AtomicFuture owns the wrapped future from New until completion or Cancel,
// at which point the future is released for collection.
type AtomicFuture struct {
	state  atomic.Uint32
	future api.Future
}

// New wraps f. f must not be polled through any other path afterwards.
func New(f api.Future) *AtomicFuture {
	return &AtomicFuture{future: f}
}

// TryPoll polls the future with a waker that calls n.Notify(key). At most
// one caller at a time runs the inner Poll; every other concurrent caller
// returns Pending immediately.
func (a *AtomicFuture) TryPoll(n api.Notifier, key uint64) Result {
	for {
		switch a.state.Load() {
		case stateIdle:
			if !a.state.CompareAndSwap(stateIdle, statePolling) {
				continue
			}
			return a.pollLocked(n, key)
		case statePolling:
			// Someone else is polling; leave the wake with them.
			if a.state.CompareAndSwap(statePolling, statePollingWoken) {
				return Pending
			}
		case statePollingWoken:
			return Pending
		case stateDone:
			return Done
		}
	}
}

// pollLocked runs with the polling state owned by this goroutine.
func (a *AtomicFuture) pollLocked(n api.Notifier, key uint64) Result {
	cx := api.NewContext(&notifyWaker{notifier: n, key: key})
	for {
		if a.future.Poll(cx) == api.PollReady {
			a.future = nil
			a.state.Store(stateDone)
			return Done
		}
		if a.state.CompareAndSwap(statePolling, stateIdle) {
			return Pending
		}
		// A wake landed mid-poll; consume it with one more poll.
		a.state.Store(statePolling)
	}
}

// Cancel drops the wrapped future without polling it again. If the future
// implements io.Closer its Close is invoked, giving teardown-sensitive
// futures a hook. Safe to call at any point after the owning reactor has
// stopped polling.
func (a *AtomicFuture) Cancel() error {
	for {
		s := a.state.Load()
		if s == stateDone {
			return nil
		}
		if a.state.CompareAndSwap(s, stateDone) {
			f := a.future
			a.future = nil
			if c, ok := f.(io.Closer); ok {
				return c.Close()
			}
			return nil
		}
	}
}

// notifyWaker routes Wake through the reactor's notify bridge.
type notifyWaker struct {
	notifier api.Notifier
	key      uint64
}

func (w *notifyWaker) Wake() {
	w.notifier.Notify(w.key)
}

// File: api/future.go
// Package api defines the Future contract and its poll context.
// License: Apache-2.0

package api

// Poll is the outcome of a single poll of a Future.
type Poll uint8

const (
	// PollPending means the future cannot progress yet. The future must have
	// captured the context's Waker and arrange a Wake before it can be
	// polled again; without one it will never be re-polled.
	PollPending Poll = iota

	// PollReady means the future has resolved and must not be polled again.
	PollReady
)

// Waker requests a re-poll of the future it was handed to. Wake is safe to
// call from any goroutine, any number of times; multiple wakes may coalesce
// into a single subsequent poll.
type Waker interface {
	Wake()
}

// Context carries the waker for the current poll.
type Context struct {
	waker Waker
}

// NewContext builds a poll context around w.
func NewContext(w Waker) *Context {
	return &Context{waker: w}
}

// Waker returns the waker to arm before returning PollPending.
func (cx *Context) Waker() Waker {
	return cx.waker
}

// Future is a unit of cooperatively scheduled work. Poll either advances the
// future to completion or parks it behind the context's waker. The executor
// never polls a future concurrently with itself.
type Future interface {
	Poll(cx *Context) Poll
}

// ResultFuture is a future that yields a value when it resolves. The run
// entry points consume it for the root future; spawned futures are plain
// Futures whose outcome stays internal to them.
type ResultFuture[T any] interface {
	Poll(cx *Context) (T, Poll)
}

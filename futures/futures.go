// File: futures/futures.go
// Package futures provides small adapters between plain Go code and the
// executor's poll model. It is deliberately not a combinator library.
// License: Apache-2.0

package futures

import (
	"github.com/vsrinivas/fuchsia-sub094/api"
)

// Ready resolves immediately with a fixed value.
type Ready[T any] struct {
	Value T
}

func (r Ready[T]) Poll(_ *api.Context) (T, api.Poll) {
	return r.Value, api.PollReady
}

// Func adapts a poll function to api.Future.
type Func func(cx *api.Context) api.Poll

func (f Func) Poll(cx *api.Context) api.Poll {
	return f(cx)
}

// PollFn adapts a typed poll function to api.ResultFuture.
type PollFn[T any] func(cx *api.Context) (T, api.Poll)

func (f PollFn[T]) Poll(cx *api.Context) (T, api.Poll) {
	return f(cx)
}

// Discard erases a typed future for spawning, dropping its value.
func Discard[T any](f api.ResultFuture[T]) api.Future {
	return Func(func(cx *api.Context) api.Poll {
		_, p := f.Poll(cx)
		return p
	})
}

// WithCloser pairs a future with a teardown hook. The hook runs when the
// executor drops the future before completion (Executor.Close), not when the
// future resolves normally.
func WithCloser(f api.Future, hook func()) api.Future {
	return &closerFuture{future: f, hook: hook}
}

type closerFuture struct {
	future api.Future
	hook   func()
}

func (c *closerFuture) Poll(cx *api.Context) api.Poll {
	return c.future.Poll(cx)
}

func (c *closerFuture) Close() error {
	if c.hook != nil {
		c.hook()
	}
	return nil
}

// File: futures/channel.go
// License: Apache-2.0

package futures

import (
	"sync"

	"github.com/vsrinivas/fuchsia-sub094/api"
)

// FromChannel resolves with the first value received on c. A pump goroutine
// started on the first poll performs the receive and fires the most recent
// waker; the goroutine lives until the channel yields, so a channel that
// never does leaks it (same lifetime rules as the future itself).
func FromChannel[T any](c <-chan T) *ChannelFuture[T] {
	return &ChannelFuture[T]{c: c}
}

// ChannelFuture bridges native Go signalling into the reactor.
type ChannelFuture[T any] struct {
	c <-chan T

	mu      sync.Mutex
	started bool
	done    bool
	value   T
	waker   api.Waker
}

func (f *ChannelFuture[T]) Poll(cx *api.Context) (T, api.Poll) {
	f.mu.Lock()
	if f.done {
		v := f.value
		f.mu.Unlock()
		return v, api.PollReady
	}
	f.waker = cx.Waker()
	if !f.started {
		f.started = true
		go f.pump()
	}
	f.mu.Unlock()
	var zero T
	return zero, api.PollPending
}

func (f *ChannelFuture[T]) pump() {
	v := <-f.c
	f.mu.Lock()
	f.value = v
	f.done = true
	w := f.waker
	f.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}

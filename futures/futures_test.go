// File: futures/futures_test.go
// License: Apache-2.0

package futures

import (
	"testing"
	"time"

	"github.com/vsrinivas/fuchsia-sub094/api"
)

// chanWaker signals a channel on Wake.
type chanWaker chan struct{}

func (w chanWaker) Wake() {
	select {
	case w <- struct{}{}:
	default:
	}
}

func TestReady(t *testing.T) {
	v, p := Ready[int]{Value: 9}.Poll(api.NewContext(chanWaker(nil)))
	if p != api.PollReady || v != 9 {
		t.Errorf("Poll = (%d, %v), want (9, PollReady)", v, p)
	}
}

func TestFromChannel(t *testing.T) {
	c := make(chan string, 1)
	f := FromChannel(c)
	w := make(chanWaker, 1)
	cx := api.NewContext(w)

	if _, p := f.Poll(cx); p != api.PollPending {
		t.Fatalf("first Poll = %v, want PollPending", p)
	}
	c <- "hello"
	select {
	case <-w:
	case <-time.After(time.Second):
		t.Fatal("waker never fired")
	}
	v, p := f.Poll(cx)
	if p != api.PollReady || v != "hello" {
		t.Errorf("Poll after wake = (%q, %v), want (hello, PollReady)", v, p)
	}
	// Resolved futures stay resolved.
	if v, p := f.Poll(cx); p != api.PollReady || v != "hello" {
		t.Errorf("re-Poll = (%q, %v)", v, p)
	}
}

func TestDiscard(t *testing.T) {
	f := Discard[int](Ready[int]{Value: 1})
	if p := f.Poll(api.NewContext(chanWaker(nil))); p != api.PollReady {
		t.Errorf("Poll = %v, want PollReady", p)
	}
}

func TestWithCloser(t *testing.T) {
	ran := false
	f := WithCloser(Func(func(_ *api.Context) api.Poll { return api.PollPending }),
		func() { ran = true })
	c, ok := f.(interface{ Close() error })
	if !ok {
		t.Fatal("WithCloser future does not expose Close")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ran {
		t.Error("teardown hook not invoked")
	}
}

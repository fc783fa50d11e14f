//go:build linux
// +build linux

// File: fdwait/fdwait_linux_test.go
// License: Apache-2.0

package fdwait_test

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/vsrinivas/fuchsia-sub094/fdwait"
	"github.com/vsrinivas/fuchsia-sub094/port"
)

func mustPipe(t *testing.T) (int, int) {
	t.Helper()
	fds := make([]int, 2)
	if err := unix.Pipe(fds); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

// TestArmDeliversReadable: readiness arrives as a port packet carrying the
// armed key.
func TestArmDeliversReadable(t *testing.T) {
	p, _ := port.New()
	w, err := fdwait.NewWatcher(p)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	r, wr := mustPipe(t)
	if err := w.Arm(r, port.SignalReadable, 77); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if _, err := unix.Write(wr, []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}

	pkt, err := p.Wait(2 * time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if pkt.Key != 77 {
		t.Errorf("key = %d, want 77", pkt.Key)
	}
	if pkt.Signals&port.SignalReadable == 0 {
		t.Errorf("signals = %#x, missing readable", pkt.Signals)
	}
}

// TestArmIsOneShot: one Arm yields one packet; a re-arm yields the next.
func TestArmIsOneShot(t *testing.T) {
	p, _ := port.New()
	w, err := fdwait.NewWatcher(p)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	r, wr := mustPipe(t)
	if err := w.Arm(r, port.SignalReadable, 5); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	unix.Write(wr, []byte("x"))
	if _, err := p.Wait(2 * time.Second); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	// Still readable, but the one-shot wait is spent.
	if _, err := p.Wait(100 * time.Millisecond); !errors.Is(err, port.ErrTimedOut) {
		t.Fatalf("second Wait = %v, want ErrTimedOut", err)
	}

	if err := w.Arm(r, port.SignalReadable, 6); err != nil {
		t.Fatalf("re-Arm: %v", err)
	}
	pkt, err := p.Wait(2 * time.Second)
	if err != nil {
		t.Fatalf("Wait after re-arm: %v", err)
	}
	if pkt.Key != 6 {
		t.Errorf("key = %d, want 6", pkt.Key)
	}
}

// TestCloseStopsDelivery: no packets after Close, and Close is idempotent.
func TestCloseStopsDelivery(t *testing.T) {
	p, _ := port.New()
	w, err := fdwait.NewWatcher(p)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	r, wr := mustPipe(t)
	if err := w.Arm(r, port.SignalReadable, 1); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	unix.Write(wr, []byte("x"))
	if _, err := p.Wait(100 * time.Millisecond); !errors.Is(err, port.ErrTimedOut) {
		t.Errorf("Wait after Close = %v, want ErrTimedOut", err)
	}
}

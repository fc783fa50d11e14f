//go:build !linux
// +build !linux

// File: fdwait/fdwait_stub.go
// License: Apache-2.0
//
// Stub for platforms without an epoll-equivalent implementation.

package fdwait

import "github.com/vsrinivas/fuchsia-sub094/port"

// Watcher is unavailable on this platform.
type Watcher struct{}

// NewWatcher returns ErrUnsupported.
func NewWatcher(_ *port.Port, _ ...Option) (*Watcher, error) {
	return nil, ErrUnsupported
}

// Arm returns ErrUnsupported.
func (w *Watcher) Arm(_ int, _ port.Signals, _ uint64) error {
	return ErrUnsupported
}

// Close is a no-op.
func (w *Watcher) Close() error {
	return nil
}

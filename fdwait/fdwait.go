// File: fdwait/fdwait.go
// Package fdwait arms one-shot readiness waits on file descriptors and
// delivers the results as port packets, keyed by the caller.
// License: Apache-2.0
//
// The intended pairing: register a PacketReceiver on the executor, then arm
// the descriptor with the registration's key. The readiness packet lands in
// ReceivePacket on a reactor goroutine.

package fdwait

import (
	"errors"

	"go.uber.org/zap"
)

// ErrUnsupported is returned by NewWatcher on platforms without an
// implementation.
var ErrUnsupported = errors.New("fdwait: not supported on this platform")

type config struct {
	log *zap.Logger
}

// Option customizes watcher construction.
type Option func(*config)

// WithLogger routes the watcher's diagnostics through l.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

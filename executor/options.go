// File: executor/options.go
// Package executor defines functional options for the Executor.
// License: Apache-2.0

package executor

import (
	"go.uber.org/zap"

	"github.com/vsrinivas/fuchsia-sub094/port"
)

type config struct {
	log  *zap.Logger
	port *port.Port
}

// Option customizes executor construction.
type Option func(*config)

// WithLogger routes the executor's diagnostics through l.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPort runs the executor over a caller-supplied port. The caller keeps
// ownership; Close will not close it.
func WithPort(p *port.Port) Option {
	return func(c *config) {
		c.port = p
	}
}

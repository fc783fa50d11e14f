// File: executor/executor.go
// License: Apache-2.0

package executor

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/vsrinivas/fuchsia-sub094/port"
)

// Executor owns the reactor core. It is the single non-shareable owner;
// other goroutines interact through Handle. Close is the executor's only
// cancellation mechanism: it releases every outstanding future and receiver
// rather than signalling them.
type Executor struct {
	inner  *inner
	closed atomic.Bool
}

// New creates an executor. With no options it owns a fresh port and logs
// nowhere.
func New(opts ...Option) (*Executor, error) {
	cfg := config{log: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}
	in := &inner{
		port:     cfg.port,
		ownsPort: cfg.port == nil,
		log:      cfg.log,
	}
	if in.port == nil {
		p, err := port.New()
		if err != nil {
			return nil, err
		}
		in.port = p
	}
	in.tasks = newTaskSlab()
	in.receivers = newReceiverSlab()
	return &Executor{inner: in}, nil
}

// Handle returns a cheaply copyable handle sharing this executor's core.
func (e *Executor) Handle() Handle {
	return Handle{inner: e.inner}
}

// Port exposes the underlying port, e.g. for arming object waits.
func (e *Executor) Port() *port.Port {
	return e.inner.port
}

// Stats returns a snapshot of the executor's counters.
func (e *Executor) Stats() map[string]int64 {
	in := e.inner
	return map[string]int64{
		"tasks_spawned":     in.tasksSpawned.Load(),
		"tasks_completed":   in.tasksCompleted.Load(),
		"tasks_pending":     int64(in.tasks.Len()),
		"receivers":         int64(in.receivers.Len()),
		"packets_delivered": in.packetsDelivered.Load(),
		"wakes_dropped":     in.wakesDropped.Load(),
	}
}

// Close shuts the executor down: stop and join any workers, then drop every
// outstanding future and receiver. Futures and receivers implementing
// io.Closer are closed on the way out. Idempotent.
func (e *Executor) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	in := e.inner
	in.done.Store(true)
	in.wakeWorkers()
	in.workerWG.Wait()
	in.numWorkers = 0
	in.drainAll()
	in.log.Debug("executor closed")
	if in.ownsPort {
		return in.port.Close()
	}
	return nil
}

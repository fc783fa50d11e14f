//go:build linux
// +build linux

// File: fdwait/fdwait_linux.go
// License: Apache-2.0
//
// Linux epoll(7) implementation. Waits are EPOLLONESHOT: one Arm call
// produces at most one packet, and the descriptor must be re-armed for the
// next one. An eventfd doubles as the shutdown doorbell for the poll
// goroutine.

package fdwait

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/vsrinivas/fuchsia-sub094/port"
)

// Watcher multiplexes descriptor readiness into a port.
type Watcher struct {
	port   *port.Port
	log    *zap.Logger
	epfd   int
	wakefd int

	mu     sync.Mutex
	keys   map[int32]uint64
	closed bool

	wg sync.WaitGroup
}

// NewWatcher creates the epoll instance and starts the poll goroutine. The
// caller keeps ownership of p.
func NewWatcher(p *port.Port, opts ...Option) (*Watcher, error) {
	cfg := config{log: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("fdwait: epoll create: %w", err)
	}
	wakefd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		unix.Close(epfd)
		return nil, fmt.Errorf("fdwait: eventfd: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakefd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakefd, &ev); err != nil {
		unix.Close(epfd)
		unix.Close(wakefd)
		return nil, fmt.Errorf("fdwait: epoll ctl add wakefd: %w", err)
	}
	w := &Watcher{
		port:   p,
		log:    cfg.log,
		epfd:   epfd,
		wakefd: wakefd,
		keys:   make(map[int32]uint64),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Arm requests a single readiness notification for fd. When any of the
// interest signals is satisfied, a packet with the given key and the actual
// readiness lands in the watcher's port. Re-arming an already-watched fd
// replaces its interest and key.
func (w *Watcher) Arm(fd int, interest port.Signals, key uint64) error {
	ev := unix.EpollEvent{
		Events: toEpoll(interest) | unix.EPOLLONESHOT,
		Fd:     int32(fd),
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrUnsupported
	}
	op := unix.EPOLL_CTL_ADD
	if _, known := w.keys[int32(fd)]; known {
		op = unix.EPOLL_CTL_MOD
	}
	if err := unix.EpollCtl(w.epfd, op, fd, &ev); err != nil {
		return fmt.Errorf("fdwait: epoll ctl: %w", err)
	}
	w.keys[int32(fd)] = key
	return nil
}

// Close stops the poll goroutine and releases the epoll instance. Packets
// already queued stay in the port. Idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	var one [8]byte
	one[0] = 1
	unix.Write(w.wakefd, one[:])
	w.wg.Wait()

	unix.Close(w.epfd)
	unix.Close(w.wakefd)
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	events := make([]unix.EpollEvent, 64)
	for {
		n, err := unix.EpollWait(w.epfd, events, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			w.log.Error("fdwait: epoll wait failed", zap.Error(err))
			return
		}
		for i := 0; i < n; i++ {
			if events[i].Fd == int32(w.wakefd) {
				w.mu.Lock()
				done := w.closed
				w.mu.Unlock()
				if done {
					return
				}
				var buf [8]byte
				unix.Read(w.wakefd, buf[:])
				continue
			}
			w.deliver(events[i])
		}
	}
}

func (w *Watcher) deliver(ev unix.EpollEvent) {
	w.mu.Lock()
	key, ok := w.keys[ev.Fd]
	w.mu.Unlock()
	if !ok {
		return
	}
	pkt := port.Packet{Key: key, Signals: fromEpoll(ev.Events)}
	if err := w.port.Queue(&pkt); err != nil {
		w.log.Warn("fdwait: readiness packet dropped",
			zap.Uint64("key", key),
			zap.Error(err))
	}
}

func toEpoll(s port.Signals) uint32 {
	var ev uint32
	if s&port.SignalReadable != 0 {
		ev |= unix.EPOLLIN
	}
	if s&port.SignalWritable != 0 {
		ev |= unix.EPOLLOUT
	}
	if s&port.SignalPeerClosed != 0 {
		ev |= unix.EPOLLRDHUP
	}
	return ev
}

func fromEpoll(ev uint32) port.Signals {
	var s port.Signals
	if ev&unix.EPOLLIN != 0 {
		s |= port.SignalReadable
	}
	if ev&unix.EPOLLOUT != 0 {
		s |= port.SignalWritable
	}
	if ev&(unix.EPOLLRDHUP|unix.EPOLLHUP) != 0 {
		s |= port.SignalPeerClosed
	}
	if ev&unix.EPOLLERR != 0 {
		s |= port.SignalError
	}
	return s
}

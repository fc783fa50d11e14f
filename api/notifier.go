// File: api/notifier.go
// License: Apache-2.0

package api

// Notifier bridges waker machinery to the reactor: a Notify(key) call means
// "the entry behind key wants another poll". Implementations queue a wake
// packet; a failed enqueue is logged and swallowed, never surfaced to the
// waker.
type Notifier interface {
	Notify(key uint64)
}

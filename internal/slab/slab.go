// File: internal/slab/slab.go
// Package slab implements a dense reusable-index map for reactor entries.
// License: Apache-2.0
//
// Insert hands out the lowest free index and Remove returns it to the free
// list, so ids stay dense and never approach the key tag bit in practice.
// A missing id on Get or Remove is a normal outcome, not an error: the entry
// raced to completion or deregistration on another goroutine.

package slab

import "sync"

type entry[T any] struct {
	value T
	live  bool
}

// Slab is safe for concurrent use. The internal lock is never held while the
// caller runs: Get returns a copy of the stored handle.
type Slab[T any] struct {
	mu      sync.Mutex
	entries []entry[T]
	free    []uint64
	count   int
}

// New creates an empty slab.
func New[T any]() *Slab[T] {
	return &Slab[T]{}
}

// Insert stores v and returns its index, reusing freed slots first.
func (s *Slab[T]) Insert(v T) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		s.entries[id] = entry[T]{value: v, live: true}
		return id
	}
	s.entries = append(s.entries, entry[T]{value: v, live: true})
	return uint64(len(s.entries) - 1)
}

// Get returns the value at id, or ok=false if the slot is vacant.
func (s *Slab[T]) Get(id uint64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id >= uint64(len(s.entries)) || !s.entries[id].live {
		var zero T
		return zero, false
	}
	return s.entries[id].value, true
}

// Remove vacates id and returns the value that was stored there.
func (s *Slab[T]) Remove(id uint64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id >= uint64(len(s.entries)) || !s.entries[id].live {
		var zero T
		return zero, false
	}
	v := s.entries[id].value
	s.entries[id] = entry[T]{}
	s.free = append(s.free, id)
	s.count--
	return v, true
}

// Drain empties the slab and returns every live value, in index order.
func (s *Slab[T]) Drain() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, s.count)
	for i := range s.entries {
		if s.entries[i].live {
			out = append(out, s.entries[i].value)
		}
	}
	s.entries = nil
	s.free = nil
	s.count = 0
	return out
}

// Len returns the number of live entries.
func (s *Slab[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// File: internal/slab/slab_test.go
// License: Apache-2.0

package slab

import "testing"

func TestInsertGetRemove(t *testing.T) {
	s := New[string]()
	a := s.Insert("a")
	b := s.Insert("b")
	if a == b {
		t.Fatalf("duplicate ids: %d", a)
	}
	if v, ok := s.Get(a); !ok || v != "a" {
		t.Errorf("Get(%d) = %q, %v", a, v, ok)
	}
	if v, ok := s.Remove(b); !ok || v != "b" {
		t.Errorf("Remove(%d) = %q, %v", b, v, ok)
	}
	if _, ok := s.Get(b); ok {
		t.Errorf("Get(%d) found a removed entry", b)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

// TestIndexReuse: freed slots are handed out again, keeping ids dense.
func TestIndexReuse(t *testing.T) {
	s := New[int]()
	a := s.Insert(1)
	s.Insert(2)
	s.Remove(a)
	c := s.Insert(3)
	if c != a {
		t.Errorf("freed id %d not reused, got %d", a, c)
	}
}

// TestMissingIDIsNormal: unknown and stale ids report ok=false, no panic.
func TestMissingIDIsNormal(t *testing.T) {
	s := New[int]()
	if _, ok := s.Get(7); ok {
		t.Error("Get on empty slab reported ok")
	}
	if _, ok := s.Remove(7); ok {
		t.Error("Remove on empty slab reported ok")
	}
	id := s.Insert(1)
	s.Remove(id)
	if _, ok := s.Remove(id); ok {
		t.Error("double Remove reported ok")
	}
}

func TestDrain(t *testing.T) {
	s := New[int]()
	s.Insert(1)
	mid := s.Insert(2)
	s.Insert(3)
	s.Remove(mid)
	got := s.Drain()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("Drain = %v, want [1 3]", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len after Drain = %d", s.Len())
	}
}

package ast

import "testing"

func TestArenaIndicesAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if got := a.Get(0); got != nil {
		t.Fatalf("index 0 must be absent, got %v", *got)
	}
	first := a.Allocate(10)
	second := a.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("unexpected indices %d, %d", first, second)
	}
	if v := a.Get(second); v == nil || *v != 20 {
		t.Fatalf("Get(2) = %v", v)
	}
	if a.Get(3) != nil {
		t.Fatalf("out-of-range index must be nil")
	}
	if a.Len() != 2 {
		t.Fatalf("Len = %d, want 2", a.Len())
	}
}

func TestNilArenaGet(t *testing.T) {
	var a *Arena[string]
	if a.Get(1) != nil {
		t.Fatalf("nil arena must return nil")
	}
	if a.Len() != 0 {
		t.Fatalf("nil arena must be empty")
	}
}

package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// objCmp lets cmp.Diff compare Obj values by Equals instead of reflecting
// into their (often unexported) internal storage.
var objCmp = cmp.Comparer(func(a, b Obj) bool { return a.Equals(b) })

func TestListGetSetNegativeIndex(t *testing.T) {
	l := NewList(NewInt(1), NewInt(2), NewInt(3))
	v, err := l.Get(-1)
	if err != nil {
		t.Fatalf("Get(-1): %v", err)
	}
	if !v.Equals(NewInt(3)) {
		t.Errorf("Get(-1) = %v, want 3 (last element)", v)
	}

	if err := l.Set(-1, NewInt(30)); err != nil {
		t.Fatalf("Set(-1): %v", err)
	}
	v, _ = l.Get(2)
	if !v.Equals(NewInt(30)) {
		t.Errorf("after Set(-1, 30), Get(2) = %v, want 30", v)
	}
}

func TestListGetOutOfRange(t *testing.T) {
	l := NewList(NewInt(1))
	if _, err := l.Get(5); err == nil {
		t.Fatal("expected an out-of-range error")
	}
	if _, err := l.Get(-5); err == nil {
		t.Fatal("expected an out-of-range error for a too-negative index")
	}
}

func TestListAddAndLen(t *testing.T) {
	l := NewList()
	l.Add(NewInt(1))
	l.Add(NewInt(2))
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
}

func TestListRemoveAt(t *testing.T) {
	l := NewList(NewInt(1), NewInt(2), NewInt(3))
	if err := l.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	v, _ := l.Get(1)
	if !v.Equals(NewInt(3)) {
		t.Errorf("Get(1) after removing index 1 = %v, want 3", v)
	}
}

func TestListEquals(t *testing.T) {
	a := NewList(NewInt(1), NewInt(2))
	b := NewList(NewInt(1), NewInt(2))
	c := NewList(NewInt(1), NewInt(3))
	if a.Equals(b) {
		t.Error("distinct lists with equal elements should not be equal (reference identity)")
	}
	if a.Equals(c) {
		t.Error("lists with different elements should not be equal")
	}
}

func TestListSlice(t *testing.T) {
	l := NewList(NewInt(1), NewInt(2), NewInt(3), NewInt(4))
	s := l.Slice(1, 3)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	got := s.Elements
	want := []Obj{NewInt(2), NewInt(3)}
	if diff := cmp.Diff(want, got, objCmp); diff != "" {
		t.Errorf("slice mismatch (-want +got):\n%s", diff)
	}
}

package value

import (
	"testing"

	"github.com/sergeych/lyng/internal/source"
)

var source0 = source.Pos{}

func TestPoolBorrowRecyclesReleasedScope(t *testing.T) {
	p := NewPool()
	root := NewRootScope()
	s1 := p.Borrow(root, Arguments{}, source0, nil)
	p.Release(s1)
	s2 := p.Borrow(root, Arguments{}, source0, nil)
	if s2 != s1 {
		t.Fatal("Borrow should hand back the just-released scope instead of allocating a new one")
	}
}

func TestPoolNeverRecyclesAnEscapedScope(t *testing.T) {
	p := NewPool()
	root := NewRootScope()
	frame := p.Borrow(root, Arguments{}, source0, nil)
	frame.MarkEscaped()
	p.Release(frame)

	other := p.Borrow(root, Arguments{}, source0, nil)
	if other == frame {
		t.Fatal("Release must not return an escaped frame to the idle list")
	}
}

func TestMarkEscapedPropagatesUpTheParentChain(t *testing.T) {
	root := NewRootScope()
	child := root.Child()
	grandchild := child.Child()

	grandchild.MarkEscaped()

	if !grandchild.Escaped || !child.Escaped || !root.Escaped {
		t.Fatal("MarkEscaped must flag every ancestor reachable through Parent")
	}
}

func TestBorrowResetsEscapedOnRecycledScope(t *testing.T) {
	p := NewPool()
	root := NewRootScope()
	s := p.Borrow(root, Arguments{}, source0, nil)
	p.Release(s)
	reborrowed := p.Borrow(root, Arguments{}, source0, nil)
	if reborrowed.Escaped {
		t.Fatal("a freshly borrowed frame must start with Escaped=false")
	}
}

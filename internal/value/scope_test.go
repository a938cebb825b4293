package value

import "testing"

func TestScopeDeclareAndResolve(t *testing.T) {
	root := NewRootScope()
	root.Declare("x", NewInt(1))

	child := root.Child()
	child.Declare("y", NewInt(2))

	sc, idx, ok := child.Resolve("x")
	if !ok {
		t.Fatal("expected to resolve x through the parent chain")
	}
	if sc != root {
		t.Error("x should resolve in the root scope, not the child")
	}
	if v := sc.Slot(idx); !v.Equals(NewInt(1)) {
		t.Errorf("x = %v, want 1", v)
	}

	if _, _, ok := root.Resolve("y"); ok {
		t.Error("y declared in child must not be visible from root")
	}
}

func TestScopeShadowing(t *testing.T) {
	root := NewRootScope()
	root.Declare("x", NewInt(1))
	child := root.Child()
	child.Declare("x", NewInt(2))

	sc, idx, ok := child.Resolve("x")
	if !ok {
		t.Fatal("expected to resolve x")
	}
	if sc != child {
		t.Error("the child's own x should shadow the parent's")
	}
	if v := sc.Slot(idx); !v.Equals(NewInt(2)) {
		t.Errorf("x = %v, want 2 (shadowed)", v)
	}
}

func TestScopeShapeRevBumpsOnDeclare(t *testing.T) {
	s := NewRootScope()
	before := s.ShapeRev
	s.Declare("x", NewInt(1))
	if s.ShapeRev == before {
		t.Error("ShapeRev must change when a new local is introduced")
	}
}

func TestArgsBuilderFreezeIsIndependentOfReuse(t *testing.T) {
	var b ArgsBuilder
	b.Add(NewInt(1))
	b.Add(NewInt(2))
	first := b.Freeze(false)

	b.Reset()
	b.Add(NewInt(99))
	second := b.Freeze(true)

	if len(first.Values) != 2 {
		t.Fatalf("first.Values has %d elements, want 2", len(first.Values))
	}
	if !first.Values[0].Equals(NewInt(1)) {
		t.Error("reusing the builder after Freeze must not mutate the earlier Arguments")
	}
	if len(second.Values) != 1 || !second.Values[0].Equals(NewInt(99)) {
		t.Errorf("second.Values = %v, want [99]", second.Values)
	}
	if !second.TailBlock {
		t.Error("second Arguments should carry TailBlock=true")
	}
}

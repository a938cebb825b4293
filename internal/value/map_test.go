package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapSetGetAndInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set(NewString("a"), NewInt(1))
	m.Set(NewString("b"), NewInt(2))
	m.Set(NewString("c"), NewInt(3))

	keys := m.Keys()
	want := []Obj{NewString("a"), NewString("b"), NewString("c")}
	if diff := cmp.Diff(want, keys, objCmp); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestMapOverwriteKeepsOriginalPosition(t *testing.T) {
	m := NewMap()
	m.Set(NewString("a"), NewInt(1))
	m.Set(NewString("b"), NewInt(2))
	m.Set(NewString("a"), NewInt(99))

	keys := m.Keys()
	if len(keys) != 2 {
		t.Fatalf("got %d keys after overwrite, want 2", len(keys))
	}
	if keys[0].(String).Value != "a" {
		t.Error("re-setting an existing key must not move it in iteration order")
	}
	v, _ := m.Get(NewString("a"))
	if !v.Equals(NewInt(99)) {
		t.Errorf("Get(a) = %v, want 99", v)
	}
}

func TestMapRemove(t *testing.T) {
	m := NewMap()
	m.Set(NewString("a"), NewInt(1))
	m.Set(NewString("b"), NewInt(2))
	if !m.Remove(NewString("a")) {
		t.Fatal("Remove(a) should report true")
	}
	if m.Remove(NewString("a")) {
		t.Fatal("Remove(a) a second time should report false")
	}
	if m.ContainsKey(NewString("a")) {
		t.Error("a should no longer be in the map")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestMapGetMissing(t *testing.T) {
	m := NewMap()
	_, ok := m.Get(NewString("missing"))
	if ok {
		t.Fatal("Get on a missing key should report false")
	}
}

package ic_test

import (
	"testing"

	"github.com/sergeych/lyng/internal/ic"
	"github.com/sergeych/lyng/internal/value"
)

func TestLocalSlotCacheHitAndShapeInvalidation(t *testing.T) {
	var c ic.LocalSlotCache
	if _, _, ok := c.Lookup(1); ok {
		t.Fatalf("empty cache should miss")
	}
	c.Store(2, 1, 3)
	depth, slot, ok := c.Lookup(1)
	if !ok || depth != 2 || slot != 3 {
		t.Fatalf("expected hit (2,3), got depth=%d slot=%d ok=%v", depth, slot, ok)
	}
	if _, _, ok := c.Lookup(2); ok {
		t.Fatalf("stale ShapeRev should miss")
	}
}

func TestFieldCacheHitMissAndVersionInvalidation(t *testing.T) {
	c := ic.NewFieldCache(2)
	cls := value.NewClass("Point", nil)
	cls.AddField(value.FieldDescriptor{Name: "x"})

	if _, ok := c.Lookup(cls); ok {
		t.Fatalf("empty cache should miss")
	}
	c.Store(cls, 0)
	if slot, ok := c.Lookup(cls); !ok || slot != 0 {
		t.Fatalf("expected hit at slot 0, got %d %v", slot, ok)
	}

	cls.AddField(value.FieldDescriptor{Name: "y"}) // bumps version
	if _, ok := c.Lookup(cls); ok {
		t.Fatalf("version bump should invalidate the cached entry")
	}
}

func TestFieldCacheMegamorphisesAtCapacity(t *testing.T) {
	c := ic.NewFieldCache(2)
	a := value.NewClass("A", nil)
	b := value.NewClass("B", nil)
	d := value.NewClass("D", nil)

	c.Store(a, 0)
	c.Store(b, 0)
	if _, ok := c.Lookup(a); !ok {
		t.Fatalf("expected a to still be cached before overflow")
	}

	c.RecordMiss(d)
	c.Store(d, 0)

	if _, ok := c.Lookup(a); ok {
		t.Fatalf("cache should have megamorphised and stopped answering hits")
	}
	if _, ok := c.Lookup(d); ok {
		t.Fatalf("megamorphic cache must fall through to full dispatch, never answer from cache")
	}
}

func TestMethodCacheKeyedByArity(t *testing.T) {
	c := ic.NewMethodCache(2)
	cls := value.NewClass("Greeter", nil)
	m0 := &value.Method{Selector: "greet", Arity: 0}
	m1 := &value.Method{Selector: "greet", Arity: 1}

	c.Store(cls, 0, m0)
	c.Store(cls, 1, m1)

	if got, ok := c.Lookup(cls, 0); !ok || got != m0 {
		t.Fatalf("expected arity-0 entry to resolve to m0")
	}
	if got, ok := c.Lookup(cls, 1); !ok || got != m1 {
		t.Fatalf("expected arity-1 entry to resolve to m1")
	}
}

func TestIndexCacheMegamorphisesOnSecondKind(t *testing.T) {
	var c ic.IndexCache
	if _, ok := c.Lookup(); ok {
		t.Fatalf("empty cache should miss")
	}
	c.Store(ic.IndexList)
	if kind, ok := c.Lookup(); !ok || kind != ic.IndexList {
		t.Fatalf("expected IndexList hit, got %v %v", kind, ok)
	}
	c.Store(ic.IndexMap)
	if _, ok := c.Lookup(); ok {
		t.Fatalf("a second distinct kind must megamorphise the index cache")
	}
}

func TestNilCachesAreSafeNoOps(t *testing.T) {
	var ls *ic.LocalSlotCache
	if _, _, ok := ls.Lookup(0); ok {
		t.Fatalf("nil LocalSlotCache must report a miss, not panic")
	}
	var fc *ic.FieldCache
	fc.Store(value.NewClass("X", nil), 0) // must not panic
	if _, ok := fc.Lookup(value.NewClass("X", nil)); ok {
		t.Fatalf("nil FieldCache must always miss")
	}
	var mc *ic.MethodCache
	mc.Store(value.NewClass("X", nil), 0, &value.Method{})
	if _, ok := mc.Lookup(value.NewClass("X", nil), 0); ok {
		t.Fatalf("nil MethodCache must always miss")
	}
}

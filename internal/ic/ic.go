// Package ic implements the four inline-cache shapes described in §4.7:
// local-slot, field, method and index PICs, plus the megamorphic fallback
// rule. Each cache type is a plain struct stored, via an `any` field, on
// the AST node that owns the call site (see internal/ast's Cache fields) —
// this package has no dependency on internal/ast, only on internal/value
// for class/method identities, keeping the AST package cache-agnostic.
//
// Every cache here is a pure optimisation: internal/eval must produce
// identical observable results whether a given cache hits, misses, or is
// compiled out entirely (§4.7 "Observable guarantee", §8 property 2).
package ic

import "github.com/sergeych/lyng/internal/value"

// DefaultPolySize and MaxPolySize are the field/method PIC capacities named
// in §4.6's flag table ("default size 2, optional 4").
const (
	DefaultPolySize = 2
	MaxPolySize     = 4
)

// LocalSlotCache is the local-variable PIC (§4.7.1): it remembers how many
// lexical levels up a name resolved to, and at which slot, valid as long as
// the resolved scope's ShapeRev (bumped on Scope.Declare) hasn't changed.
type LocalSlotCache struct {
	Valid    bool
	Depth    int // levels up from the access site's scope
	ShapeRev uint64
	Slot     int
}

// Lookup reports a cache hit's depth/slot if rev still matches.
func (c *LocalSlotCache) Lookup(rev uint64) (depth, slot int, ok bool) {
	if c == nil || !c.Valid || c.ShapeRev != rev {
		return 0, 0, false
	}
	return c.Depth, c.Slot, true
}

func (c *LocalSlotCache) Store(depth int, rev uint64, slot int) {
	c.Valid = true
	c.Depth = depth
	c.ShapeRev = rev
	c.Slot = slot
}

// fieldEntry/methodEntry are one PIC slot: the class snapshot this entry
// was resolved against, tagged with that class's Version() at insertion
// time (§4.7: "All PICs check class_version strictly; a version bump ...
// drops the entry silently").
type fieldEntry struct {
	class   *value.Class
	version uint64
	slot    int
}

// FieldCache is the field-access PIC (§4.7.2).
type FieldCache struct {
	entries      []fieldEntry
	megamorphic  bool
	maxSize      int
}

// NewFieldCache creates a cache with the given capacity (2 or 4, §4.6).
func NewFieldCache(maxSize int) *FieldCache {
	if maxSize <= 0 {
		maxSize = DefaultPolySize
	}
	return &FieldCache{maxSize: maxSize}
}

// Lookup returns the cached slot for class, or ok=false on a miss
// (including once the cache has megamorphised, per the observable
// guarantee: a disabled/megamorphic cache must fall through to full
// dispatch, never to a wrong answer).
func (c *FieldCache) Lookup(class *value.Class) (slot int, ok bool) {
	if c == nil || c.megamorphic {
		return 0, false
	}
	for _, e := range c.entries {
		if e.class == class && e.version == class.Version() {
			return e.slot, true
		}
	}
	return 0, false
}

// Store records a resolved (class, slot), refreshing the entry if class is
// already cached. Entries are never evicted: storing a new class while the
// cache is already full megamorphises it instead.
func (c *FieldCache) Store(class *value.Class, slot int) {
	if c == nil || c.megamorphic {
		return
	}
	for i, e := range c.entries {
		if e.class == class {
			c.entries[i] = fieldEntry{class, class.Version(), slot}
			return
		}
	}
	if len(c.entries) >= c.maxSize {
		c.megamorphise()
		return
	}
	c.entries = append(c.entries, fieldEntry{class, class.Version(), slot})
}

// RecordMiss is called when a lookup misses and the cache is already at
// capacity with *different* classes, per §4.7: "When a PIC reaches capacity
// and still misses, it megamorphises."
func (c *FieldCache) RecordMiss(newClass *value.Class) {
	if c == nil || c.megamorphic {
		return
	}
	if len(c.entries) >= c.maxSize {
		for _, e := range c.entries {
			if e.class == newClass {
				return // not actually new; Store will refresh version in place
			}
		}
		c.megamorphise()
	}
}

func (c *FieldCache) megamorphise() {
	c.entries = nil
	c.megamorphic = true
}

type methodEntry struct {
	class   *value.Class
	version uint64
	arity   int
	method  *value.Method
}

// MethodCache is the method-call PIC (§4.7.3); same shape and
// megamorphic rule as FieldCache, keyed additionally by arity bucket.
type MethodCache struct {
	entries     []methodEntry
	megamorphic bool
	maxSize     int
}

func NewMethodCache(maxSize int) *MethodCache {
	if maxSize <= 0 {
		maxSize = DefaultPolySize
	}
	return &MethodCache{maxSize: maxSize}
}

func (c *MethodCache) Lookup(class *value.Class, arity int) (*value.Method, bool) {
	if c == nil || c.megamorphic {
		return nil, false
	}
	for _, e := range c.entries {
		if e.class == class && e.arity == arity && e.version == class.Version() {
			return e.method, true
		}
	}
	return nil, false
}

func (c *MethodCache) Store(class *value.Class, arity int, m *value.Method) {
	if c == nil || c.megamorphic {
		return
	}
	for i, e := range c.entries {
		if e.class == class && e.arity == arity {
			c.entries[i] = methodEntry{class, class.Version(), arity, m}
			return
		}
	}
	if len(c.entries) >= c.maxSize {
		c.entries = nil
		c.megamorphic = true
		return
	}
	c.entries = append(c.entries, methodEntry{class, class.Version(), arity, m})
}

// IndexKind distinguishes the receiver shapes the index PIC specialises
// (§4.7.4).
type IndexKind int

const (
	IndexUnknown IndexKind = iota
	IndexList
	IndexMap
	IndexString
)

// IndexCache is a one-entry monomorphic cache for `get`/`set` on
// List/Map/String (§4.7.4); it megamorphises (falls back to full dispatch
// permanently) the moment a second distinct kind is observed at the site.
type IndexCache struct {
	kind        IndexKind
	megamorphic bool
}

func (c *IndexCache) Lookup() (IndexKind, bool) {
	if c == nil || c.megamorphic {
		return IndexUnknown, false
	}
	return c.kind, c.kind != IndexUnknown
}

func (c *IndexCache) Store(kind IndexKind) {
	if c == nil || c.megamorphic {
		return
	}
	if c.kind == IndexUnknown {
		c.kind = kind
		return
	}
	if c.kind != kind {
		c.megamorphic = true
	}
}

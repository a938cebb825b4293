package value

import (
	"sync/atomic"

	"github.com/sergeych/lyng/internal/source"
)

// SignalKind is the pending control-flow outcome carried by a Scope (§3.4,
// glossary "Signal").
type SignalKind int

const (
	SignalNone SignalKind = iota
	SignalBreak
	SignalContinue
	SignalReturn
)

// Signal is the non-value control-flow state threaded through statement
// evaluation: a break/continue/return, optionally labeled, optionally
// carrying a return value.
type Signal struct {
	Kind  SignalKind
	Label string // for Break/Continue; "" matches the innermost loop
	Value Obj    // for Return
}

// Arguments is the immutable argument list bound at a call site (§3.5).
// Built by an ArgsBuilder and frozen; TailBlock mirrors the AST-level flag
// so a callee can distinguish `foo(x) { ... }` from an ordinary lambda
// argument (§4.2).
type Arguments struct {
	Values    []Obj
	TailBlock bool
}

// ArgsBuilder is a reusable accumulator for building Arguments at a call
// site without reallocating a slice on every call (§4.6). It must not copy
// argument values — callers append the exact Obj references produced by
// evaluating each argument expression.
type ArgsBuilder struct {
	values []Obj
}

// Reset clears the builder for reuse, retaining its backing array.
func (b *ArgsBuilder) Reset() { b.values = b.values[:0] }

// Add appends one argument value.
func (b *ArgsBuilder) Add(v Obj) { b.values = append(b.values, v) }

// Freeze produces the immutable Arguments. The returned slice is a copy so
// that a subsequent Reset/reuse of the builder cannot mutate arguments
// already handed to a callee.
func (b *ArgsBuilder) Freeze(tailBlock bool) Arguments {
	frozen := make([]Obj, len(b.values))
	copy(frozen, b.values)
	return Arguments{Values: frozen, TailBlock: tailBlock}
}

// Scope is a lexical frame (§3.4): a parent pointer, an indexed local-slot
// array with a parallel name table, the active Arguments, `this`, the
// current position, and a pending control-flow Signal.
//
// Scopes are exclusively owned by the call that creates them; a closure
// that must outlive its creating call simply keeps its *Scope reference
// alive (Go's GC retains it), which is why scope pooling (below) only ever
// recycles frames the pool can prove are not referenced by an escaping
// closure — see Pool and MarkEscaped.
type Scope struct {
	Parent   *Scope
	Args     Arguments
	Pos      source.Pos
	This     Obj
	Signal   Signal
	FrameID  uint64
	ShapeRev uint64 // bumped when a local is introduced, for the local-slot PIC
	Escaped  bool   // set by MarkEscaped; Pool.Release refuses to recycle this frame

	names []string
	slots []Obj
}

// NewRootScope creates the embedder-visible root scope (§6 new_scope()).
func NewRootScope() *Scope {
	return &Scope{FrameID: nextFrameID()}
}

// Child creates a lexical child of s (e.g. a loop body or block), sharing
// no slot storage with the parent — name resolution walks Parent.
func (s *Scope) Child() *Scope {
	return &Scope{Parent: s, FrameID: nextFrameID(), This: s.This}
}

// Declare introduces a new local in this scope, returning its slot index.
// It bumps ShapeRev, invalidating any local-slot PIC entry that assumed a
// fixed shape for this scope's lexical level (§4.7.1).
func (s *Scope) Declare(name string, v Obj) int {
	s.names = append(s.names, name)
	s.slots = append(s.slots, v)
	s.ShapeRev++
	return len(s.slots) - 1
}

// SlotIndex returns the slot index of name declared directly in this scope
// (not searching Parent), or -1.
func (s *Scope) SlotIndex(name string) int {
	for i := len(s.names) - 1; i >= 0; i-- {
		if s.names[i] == name {
			return i
		}
	}
	return -1
}

// Slot returns the value at index i in this scope's own slot array.
func (s *Scope) Slot(i int) Obj { return s.slots[i] }

// SetSlot assigns the value at index i in this scope's own slot array.
func (s *Scope) SetSlot(i int, v Obj) { s.slots[i] = v }

// MarkEscaped flags s, and every ancestor still reachable through Parent, as
// captured by a Function/Method value that may outlive the call which
// created them (§4.6 "frames leaked, held by a closure, stay allocated
// normally"). Called at every site that stores a *Scope into a Closure
// field. The walk stops as soon as it reaches an already-escaped ancestor,
// since that ancestor's own chain was fully marked the first time it
// escaped.
func (s *Scope) MarkEscaped() {
	for cur := s; cur != nil && !cur.Escaped; cur = cur.Parent {
		cur.Escaped = true
	}
}

// Resolve walks from s up through Parent looking for name, returning the
// owning scope and slot index, or (nil, -1, false).
func (s *Scope) Resolve(name string) (*Scope, int, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if idx := cur.SlotIndex(name); idx >= 0 {
			return cur, idx, true
		}
	}
	return nil, -1, false
}

// reset clears a scope for reuse from the pool (§4.6: "slot array cleared,
// signal cleared, new frameId").
func (s *Scope) reset(parent *Scope, args Arguments, pos source.Pos, this Obj) {
	s.Parent = parent
	s.Args = args
	s.Pos = pos
	s.This = this
	s.Signal = Signal{}
	s.FrameID = nextFrameID()
	s.ShapeRev = 0
	s.Escaped = false
	s.names = s.names[:0]
	s.slots = s.slots[:0]
}

var frameIDCounter atomic.Uint64

func nextFrameID() uint64 {
	return frameIDCounter.Add(1)
}

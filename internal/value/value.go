// Package value implements the SL value universe (§3.2 "Obj"): the tagged
// value types, their class registry, and the scope/argument machinery that
// every evaluated program runs against.
//
// It intentionally also owns Scope, Arguments and the class registry (not
// just the value types) — the same way go-dws keeps values, class tables
// and environments in one `interp` package — because the three are
// mutually recursive: a Class's default-field thunks close over a Scope, a
// Scope's locals are Obj values, and a Function value's closure is a Scope.
// Splitting them across packages would just reintroduce the cycle through
// an unexported seam.
package value

import "github.com/sergeych/lyng/internal/source"

// Dispatcher is the callback surface a value needs to fully implement its
// contract (ToString/Inspect may have to invoke a user-overridden method,
// Equals may have to call a user `equals`). It is implemented by
// *eval.Evaluator; value never imports eval, breaking the cycle that would
// otherwise exist between "values can call methods" and "methods are run by
// the evaluator, which operates on values."
type Dispatcher interface {
	// Invoke calls a method/operator resolved on recv's class by selector,
	// following the dispatch protocol in §4.3 (including the binary-operator
	// symmetric-retry rule). ok is false if no such selector exists anywhere
	// in recv's class chain.
	Invoke(recv Obj, selector string, args []Obj) (result Obj, ok bool, err error)

	// Call runs a Function value directly, the same path a bare `fn(args)`
	// call expression takes (§4.3 "call" selector), so native builtins that
	// accept a callback argument (List.sort's comparator, Map/Set
	// higher-order helpers) don't need their own calling convention.
	Call(fn *Function, args []Obj) (Obj, error)
}

// Obj is the common contract every SL runtime value satisfies (§3.2).
type Obj interface {
	// Class returns the value's class pointer. Never nil — primitives have
	// synthetic classes (IntClass, StringClass, ...).
	Class() *Class

	// ToString renders the value's default string conversion, dispatching
	// through d if the class overrides "toString".
	ToString(d Dispatcher) (string, error)

	// Inspect renders a debug representation (distinct from ToString: e.g.
	// strings are quoted).
	Inspect(d Dispatcher) (string, error)

	// Equals reports value equality: content equality for immutables
	// (numbers, strings, chars, bools), reference identity for mutables
	// (lists, maps, instances) unless the class overrides "equals".
	Equals(other Obj) bool
}

// Hashable is implemented by values usable as Map/Set keys.
type Hashable interface {
	Hash() uint64
}

// Void is the result of evaluating a statement or a function with no
// return value. It is distinct from Null (§3.2 invariant).
type Void struct{}

func (Void) Class() *Class                       { return VoidClass }
func (Void) ToString(Dispatcher) (string, error) { return "void", nil }
func (Void) Inspect(Dispatcher) (string, error)  { return "void", nil }
func (Void) Equals(other Obj) bool               { _, ok := other.(Void); return ok }

// Null is the absence of a value (as opposed to Void's "no value produced").
type Null struct{}

func (Null) Class() *Class                       { return NullClass }
func (Null) ToString(Dispatcher) (string, error) { return "null", nil }
func (Null) Inspect(Dispatcher) (string, error)  { return "null", nil }
func (Null) Equals(other Obj) bool               { _, ok := other.(Null); return ok }
func (Null) Hash() uint64                        { return 0 }

// Bool wraps a boolean.
type Bool struct{ Value bool }

func (b Bool) Class() *Class { return BoolClass }
func (b Bool) ToString(Dispatcher) (string, error) {
	if b.Value {
		return "true", nil
	}
	return "false", nil
}
func (b Bool) Inspect(d Dispatcher) (string, error) { return b.ToString(d) }
func (b Bool) Equals(other Obj) bool {
	o, ok := other.(Bool)
	return ok && o.Value == b.Value
}
func (b Bool) Hash() uint64 {
	if b.Value {
		return 1
	}
	return 0
}

// Char is a single Unicode code point.
type Char struct{ Value rune }

func (c Char) Class() *Class                        { return CharClass }
func (c Char) ToString(Dispatcher) (string, error)  { return string(c.Value), nil }
func (c Char) Inspect(Dispatcher) (string, error)   { return "'" + string(c.Value) + "'", nil }
func (c Char) Equals(other Obj) bool {
	o, ok := other.(Char)
	return ok && o.Value == c.Value
}
func (c Char) Hash() uint64 { return uint64(c.Value) }

// Pos re-exports source.Pos for callers that only need value+pos without
// importing internal/source directly (stack-trace frames, exceptions).
type Pos = source.Pos

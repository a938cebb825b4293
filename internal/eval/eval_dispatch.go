package eval

import (
	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/source"
	"github.com/sergeych/lyng/internal/value"
)

// Invoke implements value.Dispatcher: it resolves selector/arity on recv's
// class (§4.3 step 2, walking the parent chain) and runs it, native or
// user-defined. ok is false only when no method of that name exists
// anywhere in the chain; a method that exists but itself raises reports
// ok=true with a non-nil err so callers (iterate, operator dispatch,
// ToString/Equals) can tell "not applicable" from "failed".
//
// A ClassValue receiver (a class referred to by name, e.g. `Color` in
// `Color.values()`) is dispatched against the class it names, not against
// its own meta-class: ClassValue.Class() reports the synthetic "Class"
// type, which never carries the static/enum methods (like an enum's
// `values`) that were registered on the named class itself.
func (e *Evaluator) Invoke(recv value.Obj, selector string, args []value.Obj) (value.Obj, bool, error) {
	class := recv.Class()
	if cv, ok := recv.(value.ClassValue); ok {
		class = cv.Info
	}
	m, ok := class.Lookup(selector, len(args))
	if !ok {
		return value.Null{}, false, nil
	}
	if m.IsNative() {
		result, err := m.Native(e, recv, args)
		return result, true, err
	}
	result, thrown := e.callUserMethod(m, recv, args)
	if thrown != nil {
		return nil, true, thrown
	}
	return result, true, nil
}

// Call implements value.Dispatcher: it runs fn the same way a bare
// `fn(args)` call expression does (applyCallee's *value.Function case),
// giving native builtins that accept a callback argument a calling
// convention without reaching into eval's unexported call machinery.
func (e *Evaluator) Call(fn *value.Function, args []value.Obj) (value.Obj, error) {
	result, thrown := e.callFunction(fn, args, source.Pos{})
	if thrown != nil {
		return nil, thrown
	}
	return result, nil
}

// callUserMethod runs a user-declared method/operator body (§4.3 step 3):
// a fresh scope child of the method's defining (lexical) scope, `this`
// bound to recv, parameters bound positionally.
func (e *Evaluator) callUserMethod(m *value.Method, recv value.Obj, args []value.Obj) (value.Obj, *Thrown) {
	frame := e.borrowChild(m.Closure, value.Arguments{Values: args}, m.Decl.KwPos, recv)
	bindParams(frame, m.Decl.Params, args)
	thrown := e.runBlock(nil, m.Decl.Body, frame)
	sig := frame.Signal
	e.release(frame)
	if thrown != nil {
		return nil, thrown
	}
	if sig.Kind == value.SignalReturn {
		return sig.Value, nil
	}
	return value.Void{}, nil
}

// callFunction runs a plain Function value (a `fun` declaration or a
// lambda): same shape as callUserMethod but closing over the function's own
// captured Closure rather than a class's defining scope, and inheriting
// `this` from wherever the function was defined (free functions have none).
func (e *Evaluator) callFunction(fn *value.Function, args []value.Obj, pos value.Pos) (value.Obj, *Thrown) {
	if fn.Native != nil {
		result, err := fn.Native(args)
		if err != nil {
			if t, ok := err.(*Thrown); ok {
				return nil, t
			}
			return nil, e.rawThrown(KindInternal, err.Error())
		}
		return result, nil
	}
	frame := e.borrowChild(fn.Closure, value.Arguments{Values: args}, pos, fn.This)
	bindParams(frame, fn.Params, args)
	thrown := e.runBlock(nil, fn.Body, frame)
	sig := frame.Signal
	e.release(frame)
	if thrown != nil {
		return nil, thrown
	}
	if sig.Kind == value.SignalReturn {
		return sig.Value, nil
	}
	return value.Void{}, nil
}

// bindParams declares each formal parameter in frame, defaulting to Null
// for a call supplying fewer arguments than declared (§4.2 leaves arity
// checking to resolution, which this runtime tree does not implement) and
// silently ignoring extras beyond the declared arity.
func bindParams(frame *value.Scope, params []ast.Identifier, args []value.Obj) {
	for i, p := range params {
		var v value.Obj = value.Null{}
		if i < len(args) {
			v = args[i]
		}
		frame.Declare(p.Name, v)
	}
}

// wrapNativeError adapts a plain Go error returned by a native method into
// a Thrown, passing an already-Thrown value through unchanged so a nested
// SL-level exception keeps its original class and stack.
func (e *Evaluator) wrapNativeError(sc *value.Scope, err error) *Thrown {
	if err == nil {
		return nil
	}
	if t, ok := err.(*Thrown); ok {
		return t
	}
	return e.Raise(sc, KindInternal, "%s", err.Error())
}

// rawThrown builds a Thrown without a capture-stack scope on hand (used
// from contexts, like a native function's Go error, where no live *Scope is
// available to walk).
func (e *Evaluator) rawThrown(k Kind, msg string) *Thrown {
	exc := value.NewException(e.classFor(k), msg, nil)
	return &Thrown{Kind: k, Exc: exc}
}

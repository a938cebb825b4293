package eval

import (
	"context"

	"github.com/sergeych/lyng/internal/value"
)

// iterate drives a `for x in iterable` loop (§4.8 "iterator" selector).
// visit is called once per produced element; it reports whether iteration
// should stop (a break/return propagated out of the loop body) and any
// in-flight exception. Built-in containers are iterated directly; anything
// else goes through the uniform "iterator"/"hasNext"/"next" dispatch so a
// user class can make itself for-in-able by implementing those three
// methods (§4.3 "the dispatch protocol applies uniformly").
func (e *Evaluator) iterate(ctx context.Context, sc *value.Scope, iterable value.Obj, visit func(value.Obj) (bool, *Thrown)) *Thrown {
	switch it := iterable.(type) {
	case *value.List:
		for _, v := range it.Elements {
			if stop, t := visit(v); stop || t != nil {
				return t
			}
		}
		return nil

	case *value.Range:
		if e.Flags.RangeFastIter {
			n := it.Count()
			for i := 0; i < n; i++ {
				if stop, t := visit(value.NewInt(it.At(i))); stop || t != nil {
					return t
				}
			}
			return nil
		}
		if it.Step > 0 {
			for v := it.From; it.Contains(v); v += it.Step {
				if stop, t := visit(value.NewInt(v)); stop || t != nil {
					return t
				}
			}
		} else {
			for v := it.From; it.Contains(v); v += it.Step {
				if stop, t := visit(value.NewInt(v)); stop || t != nil {
					return t
				}
			}
		}
		return nil

	case *value.Set:
		for _, v := range it.Elements() {
			if stop, t := visit(v); stop || t != nil {
				return t
			}
		}
		return nil

	case *value.Map:
		for _, k := range it.Keys() {
			if stop, t := visit(k); stop || t != nil {
				return t
			}
		}
		return nil

	case value.String:
		for _, r := range it.Value {
			if stop, t := visit(value.Char{Value: r}); stop || t != nil {
				return t
			}
		}
		return nil

	default:
		return e.iterateProtocol(sc, iterable, visit)
	}
}

// iterateProtocol drives iteration for a value whose class implements the
// "iterator" selector: iterator() returns a cursor object, which must in
// turn respond to hasNext()->Bool and next()->Obj.
func (e *Evaluator) iterateProtocol(sc *value.Scope, iterable value.Obj, visit func(value.Obj) (bool, *Thrown)) *Thrown {
	cursor, ok, err := e.Invoke(iterable, "iterator", nil)
	if err != nil {
		return e.wrapNativeError(sc, err)
	}
	if !ok {
		return e.Raise(sc, KindCast, "class %s is not iterable", iterable.Class().Name)
	}
	for {
		hasNext, ok, err := e.Invoke(cursor, "hasNext", nil)
		if err != nil {
			return e.wrapNativeError(sc, err)
		}
		if !ok {
			return e.Raise(sc, KindInternal, "iterator for class %s has no hasNext()", iterable.Class().Name)
		}
		b, isBool := hasNext.(value.Bool)
		if !isBool || !b.Value {
			return nil
		}
		next, ok, err := e.Invoke(cursor, "next", nil)
		if err != nil {
			return e.wrapNativeError(sc, err)
		}
		if !ok {
			return e.Raise(sc, KindInternal, "iterator for class %s has no next()", iterable.Class().Name)
		}
		if stop, t := visit(next); stop || t != nil {
			return t
		}
	}
}

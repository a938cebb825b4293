package builtins

import (
	"fmt"

	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

// installSet populates Set's method table (SPEC_FULL §4.8 supplement):
// add/remove/contains/union/intersect/size/iterator (iterator handled
// natively by eval_iter.go over the backing Map's insertion order).
func installSet(e *eval.Evaluator) {
	e.RegisterClass(value.SetClass)
	c := value.SetClass

	method(c, "add", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		this.(*value.Set).Add(args[0])
		return value.Void{}, nil
	})
	method(c, "remove", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		return value.Bool{Value: this.(*value.Set).Remove(args[0])}, nil
	})
	method(c, "contains", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		return value.Bool{Value: this.(*value.Set).Contains(args[0])}, nil
	})
	method(c, "union", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		other, ok := args[0].(*value.Set)
		if !ok {
			return nil, errNotASet("union")
		}
		return this.(*value.Set).Union(other), nil
	})
	method(c, "intersect", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		other, ok := args[0].(*value.Set)
		if !ok {
			return nil, errNotASet("intersect")
		}
		return this.(*value.Set).Intersect(other), nil
	})
	method(c, "size", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewInt(int64(this.(*value.Set).Len())), nil
	})
	method(c, "toList", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewList(this.(*value.Set).Elements()...), nil
	})
}

func errNotASet(selector string) error {
	return fmt.Errorf("%s requires a Set argument", selector)
}

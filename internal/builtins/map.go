package builtins

import (
	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

// installMap populates Map's method table per §4.8:
// get/set/remove/keys/values/containsKey/iterator (iterator itself handled
// natively by eval_iter.go, yielding keys in insertion order).
func installMap(_ *eval.Evaluator) {
	c := value.MapClass

	method(c, "get", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		v, _ := this.(*value.Map).Get(args[0])
		return v, nil
	})
	method(c, "set", 2, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		this.(*value.Map).Set(args[0], args[1])
		return value.Void{}, nil
	})
	method(c, "remove", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		return value.Bool{Value: this.(*value.Map).Remove(args[0])}, nil
	})
	method(c, "keys", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewList(this.(*value.Map).Keys()...), nil
	})
	method(c, "values", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewList(this.(*value.Map).Values()...), nil
	})
	method(c, "containsKey", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		return value.Bool{Value: this.(*value.Map).ContainsKey(args[0])}, nil
	})
	method(c, "size", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewInt(int64(this.(*value.Map).Len())), nil
	})
}

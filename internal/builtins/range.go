package builtins

import (
	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

// installRange populates Range's method table per §4.8:
// contains/iterator/reversed/step (iterator handled natively by
// eval_iter.go, including the range_fast_iter fast path).
func installRange(_ *eval.Evaluator) {
	c := value.RangeClass

	method(c, "contains", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		i, ok := args[0].(value.Int)
		if !ok {
			return value.Bool{Value: false}, nil
		}
		return value.Bool{Value: this.(*value.Range).Contains(i.Int64())}, nil
	})
	method(c, "reversed", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return this.(*value.Range).Reversed(), nil
	})
	// step(n) rebuilds the range with a different step, leaving from/to and
	// exclusivity untouched; the literal form `a..b step n` produces the
	// same shape directly via the parser/evaluator (eval_expr.go).
	method(c, "step", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		n, ok := args[0].(value.Int)
		if !ok {
			return nil, errNotAnInt("step")
		}
		r := this.(*value.Range)
		return value.NewRange(r.From, r.To, n.Int64(), r.Exclusive)
	})
	method(c, "toList", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		r := this.(*value.Range)
		elems := make([]value.Obj, r.Count())
		for i := range elems {
			elems[i] = value.NewInt(r.At(i))
		}
		return value.NewList(elems...), nil
	})
}

package builtins

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

// installList populates List's method table per §4.8:
// add/remove/size/contains/indexOf/iterator/get/set/slice. `iterator`
// itself is handled natively by the evaluator's for-in loop (eval_iter.go),
// so only the methods a program calls explicitly are registered here.
func installList(_ *eval.Evaluator) {
	c := value.ListClass

	method(c, "add", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		this.(*value.List).Add(args[0])
		return value.Void{}, nil
	})
	method(c, "remove", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		l := this.(*value.List)
		for i, v := range l.Elements {
			if v.Equals(args[0]) {
				return value.Bool{Value: true}, l.RemoveAt(int64(i))
			}
		}
		return value.Bool{Value: false}, nil
	})
	method(c, "removeAt", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		idx, ok := args[0].(value.Int)
		if !ok {
			return nil, fmt.Errorf("removeAt requires an Int index")
		}
		l := this.(*value.List)
		err := l.RemoveAt(idx.Int64())
		return value.Void{}, err
	})
	method(c, "size", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewInt(int64(this.(*value.List).Len())), nil
	})
	method(c, "contains", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		for _, v := range this.(*value.List).Elements {
			if v.Equals(args[0]) {
				return value.Bool{Value: true}, nil
			}
		}
		return value.Bool{Value: false}, nil
	})
	method(c, "indexOf", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		for i, v := range this.(*value.List).Elements {
			if v.Equals(args[0]) {
				return value.NewInt(int64(i)), nil
			}
		}
		return value.NewInt(-1), nil
	})
	method(c, "get", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		idx, ok := args[0].(value.Int)
		if !ok {
			return nil, fmt.Errorf("get requires an Int index")
		}
		return this.(*value.List).Get(idx.Int64())
	})
	method(c, "set", 2, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		idx, ok := args[0].(value.Int)
		if !ok {
			return nil, fmt.Errorf("set requires an Int index")
		}
		return value.Void{}, this.(*value.List).Set(idx.Int64(), args[1])
	})
	method(c, "slice", 2, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		from, ok1 := args[0].(value.Int)
		to, ok2 := args[1].(value.Int)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("slice requires Int bounds")
		}
		return this.(*value.List).Slice(from.Int64(), to.Int64()), nil
	})
	method(c, "toList", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return this.(*value.List).Slice(0, int64(this.(*value.List).Len())), nil
	})

	// sort() uses a comparator function argument when given one; otherwise
	// it falls back to maruel/natural ordering for strings ("item2" sorts
	// before "item10") and numeric ordering otherwise (§4.8 supplement).
	method(c, "sort", 0, func(d value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		return nil, sortList(d, this.(*value.List), nil)
	})
	method(c, "sort", 1, func(d value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		cmp, ok := args[0].(*value.Function)
		if !ok {
			return nil, fmt.Errorf("sort's comparator argument must be a Function")
		}
		return nil, sortList(d, this.(*value.List), cmp)
	})
}

func sortList(d value.Dispatcher, l *value.List, cmp *value.Function) error {
	var sortErr error
	sort.SliceStable(l.Elements, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		a, b := l.Elements[i], l.Elements[j]
		if cmp != nil {
			r, err := d.Call(cmp, []value.Obj{a, b})
			if err != nil {
				sortErr = err
				return false
			}
			n, isInt := r.(value.Int)
			if !isInt {
				sortErr = fmt.Errorf("comparator must return Int")
				return false
			}
			return n.Int64() < 0
		}
		return defaultLess(a, b)
	})
	return sortErr
}

// defaultLess orders Int/Real numerically, String naturally (via
// maruel/natural, matching §4.8's "item2 < item10" requirement), and
// anything else by its inspected text as a last resort.
func defaultLess(a, b value.Obj) bool {
	if ai, ok := a.(value.Int); ok {
		if bi, ok := b.(value.Int); ok {
			return value.CompareInt(ai, bi) < 0
		}
	}
	if ar, ok := a.(value.Real); ok {
		if br, ok := b.(value.Real); ok {
			return ar.Value < br.Value
		}
	}
	if as, ok := a.(value.String); ok {
		if bs, ok := b.(value.String); ok {
			return natural.Less(as.Value, bs.Value)
		}
	}
	as, _ := a.Inspect(nil)
	bs, _ := b.Inspect(nil)
	return as < bs
}

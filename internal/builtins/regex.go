package builtins

import (
	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

// installRegex populates Regex's method table per §4.8:
// matches/find/findAll/replace.
func installRegex(_ *eval.Evaluator) {
	c := value.RegexClass

	method(c, "matches", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		s, ok := args[0].(value.String)
		if !ok {
			return nil, errNotAString("matches")
		}
		return value.Bool{Value: this.(*value.Regex).Matches(s.Value)}, nil
	})
	method(c, "find", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		s, ok := args[0].(value.String)
		if !ok {
			return nil, errNotAString("find")
		}
		m, found := this.(*value.Regex).Find(s.Value)
		if !found {
			return value.Null{}, nil
		}
		return value.NewString(m), nil
	})
	method(c, "findAll", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		s, ok := args[0].(value.String)
		if !ok {
			return nil, errNotAString("findAll")
		}
		matches := this.(*value.Regex).FindAll(s.Value)
		elems := make([]value.Obj, len(matches))
		for i, m := range matches {
			elems[i] = value.NewString(m)
		}
		return value.NewList(elems...), nil
	})
	method(c, "replace", 2, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		s, ok1 := args[0].(value.String)
		repl, ok2 := args[1].(value.String)
		if !ok1 || !ok2 {
			return nil, errNotAString("replace")
		}
		return value.NewString(this.(*value.Regex).Replace(s.Value, repl.Value)), nil
	})
}

package builtins

import (
	"fmt"
	"io"
	"os"

	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

// installGlobals declares the free functions every root scope carries,
// mirroring go-dws's print/println/assert builtins (functions_calls.go)
// but expressed as add_function-style Native callables (§6) instead of
// a fixed interpreter opcode table. out defaults to os.Stdout when nil,
// and is otherwise whatever the embedder wired via WithOutput.
func installGlobals(e *eval.Evaluator, root *value.Scope, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	declare(root, "print", func(args []value.Obj) (value.Obj, error) {
		fmt.Fprint(out, joinArgs(args))
		return value.Void{}, nil
	})
	declare(root, "println", func(args []value.Obj) (value.Obj, error) {
		fmt.Fprintln(out, joinArgs(args))
		return value.Void{}, nil
	})
	declare(root, "typeOf", func(args []value.Obj) (value.Obj, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("typeOf expects exactly one argument")
		}
		return value.NewString(args[0].Class().Name), nil
	})
	// assert(cond [, message]) returns a plain Go error on failure, like
	// every other native method in this package; callFunction classifies
	// it into the Internal kind (§7) on the way out.
	declare(root, "assert", func(args []value.Obj) (value.Obj, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("assert expects at least a condition argument")
		}
		cond, ok := args[0].(value.Bool)
		if !ok || !cond.Value {
			msg := "assertion failed"
			if len(args) > 1 {
				if s, ok := args[1].(value.String); ok {
					msg = s.Value
				}
			}
			return nil, fmt.Errorf("%s", msg)
		}
		return value.Void{}, nil
	})
}

func declare(root *value.Scope, name string, fn func(args []value.Obj) (value.Obj, error)) {
	root.Declare(name, &value.Function{Name: name, Native: fn})
}

func joinArgs(args []value.Obj) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		if s, ok := a.(value.String); ok {
			out += s.Value
			continue
		}
		s, _ := a.ToString(nil)
		out += s
	}
	return out
}

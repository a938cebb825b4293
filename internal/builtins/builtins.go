// Package builtins installs the standard classes (§4.8) and free functions
// into an evaluator: the method tables for List/Map/Set/Range/Regex/String,
// the built-in Exception taxonomy (§7), and the handful of global functions
// every root scope carries (print, assert, typeOf, ...).
package builtins

import (
	"fmt"
	"io"

	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

// Install wires every standard class's method table and the Exception
// taxonomy into e, then declares the global functions into root, writing
// print/println output to out (nil means os.Stdout). Called once per
// Evaluator, analogous to go-dws's builtin registry bootstrap.
func Install(e *eval.Evaluator, root *value.Scope, out io.Writer) error {
	installExceptionHierarchy(e)
	installList(e)
	installMap(e)
	installSet(e)
	installRange(e)
	installRegex(e)
	installString(e)
	installGlobals(e, root, out)
	return nil
}

// method is a small helper for the repeated AddMethod(selector, arity, fn)
// pattern every installXxx function below uses.
func method(c *value.Class, selector string, arity int, fn func(d value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error)) {
	c.AddMethod(&value.Method{Selector: selector, Arity: arity, Native: fn})
}

func errNotAnInt(selector string) error {
	return fmt.Errorf("%s requires an Int argument", selector)
}


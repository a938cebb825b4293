package diag

import (
	"io"

	"github.com/kr/pretty"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/value"
)

// DumpAST renders a parsed program as a struct tree, the --dump-ast flag's
// backing implementation. kr/pretty is already an indirect dependency of
// go-dws (via its test tooling) and a direct one of cue-lang; it gives a
// much more readable recursive dump than ast.Node.String() for debugging
// a failed parse.
func DumpAST(w io.Writer, prog *ast.Program) error {
	_, err := pretty.Fprintf(w, "%# v\n", prog)
	return err
}

// DumpValue renders a runtime value's Go-level representation (not its
// script-level Inspect/ToString), for --trace output when a step's result
// needs to show container internals (slot order, map bucket contents).
func DumpValue(w io.Writer, v value.Obj) error {
	_, err := pretty.Fprintf(w, "%# v\n", v)
	return err
}

// Sprint is a convenience wrapper for callers (cmd/lyng's --trace line
// logger) that just want a one-line string rather than a Writer.
func Sprint(v any) string {
	return pretty.Sprint(v)
}

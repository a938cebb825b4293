// Package lyng is the public embedding API (§6): an embedder builds an
// Engine, compiles source into a Program, and runs it against the
// Engine's scope. It plays the role go-dws's pkg/dwscript package plays
// for that runtime, with the same New/Option/Eval/Compile/Run shape.
package lyng

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/builtins"
	"github.com/sergeych/lyng/internal/config"
	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

// Value is any runtime object an embedder can receive back from a script
// or pass into a registered Go function: the literal value model (§3.2)
// exposed at the package boundary instead of a Go-native mirror type.
type Value = value.Obj

// Engine is a fresh root scope with every built-in installed (§6
// new_scope()), paired with the Evaluator that will run scripts against
// it.
type Engine struct {
	eval  *eval.Evaluator
	scope *value.Scope
	out   *bytes.Buffer
}

type engineOptions struct {
	flags  config.Flags
	output io.Writer
}

// Option configures an Engine at construction time.
type Option func(*engineOptions)

// Flags is the performance-flag table (§4.6), re-exported so an embedder
// can build one without importing internal/config directly.
type Flags = config.Flags

// NoOptFlags returns every performance flag disabled, for exercising §8
// invariant 2 ("toggling any IC/pool flag does not change the observable
// value").
func NoOptFlags() Flags { return Flags{} }

// WithPerfFlags overrides the default performance-flag table (§4.6).
func WithPerfFlags(cfg config.Flags) Option {
	return func(o *engineOptions) { o.flags = cfg }
}

// WithConfigFile loads the performance-flag table from a YAML document,
// the variant the `lyng` CLI's --perf-config flag uses.
func WithConfigFile(path string) Option {
	return func(o *engineOptions) {
		if f, err := config.Load(path); err == nil {
			o.flags = f
		}
	}
}

// WithOutput directs print/println output to w instead of the Engine's
// own capture buffer, for an embedder that wants output interleaved with
// its own stream rather than read back from Result.Output.
func WithOutput(w io.Writer) Option {
	return func(o *engineOptions) { o.output = w }
}

// New creates a fresh Engine (§6 new_scope()).
func New(opts ...Option) (*Engine, error) {
	cfg := engineOptions{flags: config.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{eval: eval.New(cfg.flags), scope: value.NewRootScope()}
	out := cfg.output
	if out == nil {
		e.out = &bytes.Buffer{}
		out = e.out
	}
	if err := builtins.Install(e.eval, e.scope, out); err != nil {
		return nil, fmt.Errorf("installing builtins: %w", err)
	}
	return e, nil
}

// Program is source compiled once, runnable many times (§6 compile()).
type Program struct {
	script *eval.Script
}

// AST exposes the parsed tree, for tooling like the --dump-ast CLI flag
// that needs to render it without re-parsing.
func (p *Program) AST() *ast.Program { return p.script.Program }

// Compile lexes and parses source (§6 compile() → Script). Failures
// surface as a parser.ErrorList whose *parser.Error entries carry a Pos.
func (e *Engine) Compile(name, src string) (*Program, error) {
	script, err := eval.Compile(name, src)
	if err != nil {
		return nil, err
	}
	return &Program{script: script}, nil
}

// Result is what a run produces: the terminal value and any output the
// script printed during this call.
type Result struct {
	Value  Value
	Output string
}

// Run executes a compiled Program against the engine's scope (§6
// execute()). Every call resets the output capture so Result.Output is
// exactly what this run printed, not a running total.
func (e *Engine) Run(ctx context.Context, p *Program) (Result, error) {
	if e.out != nil {
		e.out.Reset()
	}
	v, err := e.eval.Execute(ctx, p.script, e.scope)
	if err != nil {
		return Result{}, err
	}
	out := ""
	if e.out != nil {
		out = e.out.String()
	}
	return Result{Value: v, Output: out}, nil
}

// Eval compiles and runs src in one step (§6 eval()).
func (e *Engine) Eval(ctx context.Context, src string) (Result, error) {
	p, err := e.Compile("<eval>", src)
	if err != nil {
		return Result{}, err
	}
	return e.Run(ctx, p)
}

// AddFunction installs a host-provided callable under name, arity
// argument(s) (§6 add_function(scope, name, arity, body)). arity -1
// means variadic/any.
func (e *Engine) AddFunction(name string, arity int, body func(args []Value) (Value, error)) {
	e.scope.Declare(name, &value.Function{
		Name: name,
		Native: func(args []value.Obj) (value.Obj, error) {
			if arity >= 0 && len(args) != arity {
				return nil, fmt.Errorf("%s expects %d argument(s), got %d", name, arity, len(args))
			}
			return body(args)
		},
	})
}

// AddGoFunc installs a variadic Go-native callable, mirroring go-dws's
// FFI registration tests (pkg/dwscript/ffi_*_test.go) so host code can
// hand the engine a plain `func(args ...lyng.Value) (lyng.Value, error)`
// without writing out the []Value plumbing AddFunction requires.
func (e *Engine) AddGoFunc(name string, fn func(args ...Value) (Value, error)) {
	e.scope.Declare(name, &value.Function{
		Name: name,
		Native: func(args []value.Obj) (value.Obj, error) {
			return fn(args...)
		},
	})
}

// Scope exposes the engine's root scope for advanced embedders that need
// direct access (e.g. to seed globals before the first Eval).
func (e *Engine) Scope() *value.Scope { return e.scope }

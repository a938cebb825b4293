// Package eval implements the tree-walking evaluator (§4.5): execution of
// AST nodes, control-flow signals, exception unwinding, and the uniform
// value-dispatch protocol (§4.3) that both user methods and built-in
// operators go through.
package eval

import (
	"context"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/config"
	"github.com/sergeych/lyng/internal/parser"
	"github.com/sergeych/lyng/internal/source"
	"github.com/sergeych/lyng/internal/value"
)

// Script is a compiled program ready to execute (§6 compile()).
type Script struct {
	Program *ast.Program
	Source  *source.Source
}

// Evaluator runs compiled Scripts against a Scope. One Evaluator instance
// is bound to a single logical execution (§5: "one logical execution is
// single-threaded and cooperative"); an embedder running several
// executions concurrently constructs one Evaluator (and one scope pool)
// per host thread.
type Evaluator struct {
	Flags config.Flags
	Pool  *value.Pool

	classes             map[string]*value.Class
	builtinErrorClasses map[Kind]*value.Class

	// ctx is the cancellation context for the current top-level Execute
	// call, used as a fallback by checkCancelled when a user method body is
	// reached through value.Dispatcher.Invoke (toString/equals callbacks
	// have no ctx of their own to thread through).
	ctx context.Context

	// callDepth guards against runaway recursion (scenario #7 in §8 relies
	// on deep-ish recursion working; this is just a backstop).
	callDepth    int
	maxCallDepth int
}

// New creates an Evaluator with the given performance flags and an empty
// user-class registry (internal/builtins populates the standard classes
// separately, via builtins.Install).
func New(flags config.Flags) *Evaluator {
	e := &Evaluator{
		Flags:               flags,
		classes:             make(map[string]*value.Class),
		builtinErrorClasses: make(map[Kind]*value.Class),
		maxCallDepth:        4096,
	}
	if flags.ScopePool {
		e.Pool = value.NewPool()
	}
	return e
}

// RegisterClass adds a class to the registry under its own name, used both
// by `class`/`enum` declarations at eval time and by internal/builtins for
// the standard library classes.
func (e *Evaluator) RegisterClass(c *value.Class) { e.classes[c.Name] = c }

// RegisterErrorClass associates a built-in error taxonomy Kind (§7) with
// its SL-visible class, so that a raised ArithmeticError etc. is an
// instance of the right catchable class.
func (e *Evaluator) RegisterErrorClass(k Kind, c *value.Class) {
	e.builtinErrorClasses[k] = c
	e.RegisterClass(c)
}

func (e *Evaluator) LookupClass(name string) (*value.Class, bool) {
	c, ok := e.classes[name]
	return c, ok
}

// Compile lexes and parses source into a Script (§6). Failures surface
// synchronously as a parser.ErrorList; lexer errors are included in it, each
// recorded as a *parser.Error.
func Compile(name, text string) (*Script, error) {
	src := source.New(name, text)
	p := parser.New(src)
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return &Script{Program: prog, Source: src}, nil
}

// borrowChild creates a scope.Child, routing through the pool when enabled
// so §4.6's "borrow/release" contract is honoured identically whether
// scope_pool is on or off (§8 property 2).
func (e *Evaluator) borrowChild(parent *value.Scope, args value.Arguments, pos value.Pos, this value.Obj) *value.Scope {
	if e.Pool != nil {
		return e.Pool.Borrow(parent, args, pos, this)
	}
	s := parent.Child()
	s.Args = args
	s.Pos = pos
	s.This = this
	return s
}

func (e *Evaluator) release(s *value.Scope) {
	if e.Pool != nil {
		e.Pool.Release(s)
	}
}

// Execute runs script's top-level statements against scope (§6), returning
// its terminal value or an *ExecutionError wrapping the uncaught SL
// exception (§7).
func (e *Evaluator) Execute(ctx context.Context, script *Script, scope *value.Scope) (value.Obj, error) {
	e.ctx = ctx
	var last value.Obj = value.Void{}
	for _, stmt := range script.Program.Statements {
		v, thrown := e.evalStatement(ctx, stmt, scope)
		if thrown != nil {
			return nil, &ExecutionError{Exception: thrown.Exc}
		}
		if scope.Signal.Kind == value.SignalReturn {
			return scope.Signal.Value, nil
		}
		if v != nil {
			last = v
		}
	}
	return last, nil
}

// checkCancelled implements §5's cancellation contract: the *next*
// suspension point raises Cancelled. Every loop iteration and call is
// treated as a suspension point for this purpose.
func (e *Evaluator) checkCancelled(ctx context.Context, sc *value.Scope) *Thrown {
	if ctx == nil {
		ctx = e.ctx
	}
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return e.Raise(sc, KindCancelled, "execution cancelled")
	default:
		return nil
	}
}

package eval

import (
	"context"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/value"
)

// evalStatement executes one statement, returning its value (only
// meaningful for *ast.ExprStmt; every other kind yields Void) and any
// in-flight exception. Control-flow outcomes (break/continue/return) are
// not returned directly — they are left on sc.Signal for the enclosing
// loop/function/try to observe and act on (§4.5).
func (e *Evaluator) evalStatement(ctx context.Context, stmt ast.Statement, sc *value.Scope) (value.Obj, *Thrown) {
	switch s := stmt.(type) {
	case *ast.ValDecl:
		return e.evalDecl(ctx, s.Name, s.Init, sc)
	case *ast.VarDecl:
		return e.evalDecl(ctx, s.Name, s.Init, sc)
	case *ast.FunDecl:
		sc.MarkEscaped()
		fn := &value.Function{Name: s.Name, Params: s.Params, Body: s.Body, Closure: sc}
		sc.Declare(s.Name, fn)
		return value.Void{}, nil
	case *ast.ImportDecl:
		// Core only records the import; resolving lyng.* modules is an
		// external collaborator's concern (§1).
		return value.Void{}, nil
	case *ast.ClassDecl:
		return e.evalClassDecl(s, sc)
	case *ast.EnumDecl:
		return e.evalEnumDecl(s, sc)
	case *ast.ExprStmt:
		v, t := e.evalExpr(ctx, s.Expr, sc)
		if t != nil {
			return nil, t
		}
		return v, nil
	case *ast.Block:
		return e.evalBlockStmt(ctx, s, sc)
	case *ast.IfStmt:
		return e.evalIf(ctx, s, sc)
	case *ast.WhileStmt:
		return e.evalWhile(ctx, s, sc)
	case *ast.DoWhileStmt:
		return e.evalDoWhile(ctx, s, sc)
	case *ast.ForInStmt:
		return e.evalForIn(ctx, s, sc)
	case *ast.BreakStmt:
		sc.Signal = value.Signal{Kind: value.SignalBreak, Label: s.Label}
		return value.Void{}, nil
	case *ast.ContinueStmt:
		sc.Signal = value.Signal{Kind: value.SignalContinue, Label: s.Label}
		return value.Void{}, nil
	case *ast.ReturnStmt:
		var v value.Obj = value.Void{}
		if s.Value != nil {
			rv, t := e.evalExpr(ctx, s.Value, sc)
			if t != nil {
				return nil, t
			}
			v = rv
		}
		sc.Signal = value.Signal{Kind: value.SignalReturn, Value: v}
		return value.Void{}, nil
	case *ast.ThrowStmt:
		v, t := e.evalExpr(ctx, s.Value, sc)
		if t != nil {
			return nil, t
		}
		exc, ok := v.(*value.Exception)
		if !ok {
			return nil, e.Raise(sc, KindCast, "cannot throw a value of class %s", v.Class().Name)
		}
		return nil, e.ThrowValue(sc, exc)
	case *ast.TryStmt:
		return e.evalTry(ctx, s, sc)
	default:
		return nil, e.Raise(sc, KindInternal, "unhandled statement node %T", stmt)
	}
}

func (e *Evaluator) evalDecl(ctx context.Context, name string, init ast.Expression, sc *value.Scope) (value.Obj, *Thrown) {
	var v value.Obj = value.Null{}
	if init != nil {
		iv, t := e.evalExpr(ctx, init, sc)
		if t != nil {
			return nil, t
		}
		v = iv
	}
	sc.Declare(name, v)
	return value.Void{}, nil
}

// evalBlockStmt runs a block in a fresh child scope, then propagates any
// pending Signal (and nothing else) back to the enclosing scope — locals
// declared inside the block do not leak, but break/continue/return do.
func (e *Evaluator) evalBlockStmt(ctx context.Context, b *ast.Block, sc *value.Scope) (value.Obj, *Thrown) {
	child := e.borrowChild(sc, value.Arguments{}, b.Pos(), sc.This)
	t := e.runBlock(ctx, b.Stmts, child)
	sc.Signal = child.Signal
	e.release(child)
	if t != nil {
		return nil, t
	}
	return value.Void{}, nil
}

// runBlock executes stmts directly against sc (no child scope of its own –
// the caller already supplied one), stopping early once sc.Signal becomes
// non-None or a statement raises.
func (e *Evaluator) runBlock(ctx context.Context, stmts []ast.Statement, sc *value.Scope) *Thrown {
	for _, stmt := range stmts {
		_, t := e.evalStatement(ctx, stmt, sc)
		if t != nil {
			return t
		}
		if sc.Signal.Kind != value.SignalNone {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) evalIf(ctx context.Context, s *ast.IfStmt, sc *value.Scope) (value.Obj, *Thrown) {
	cond, t := e.evalExpr(ctx, s.Cond, sc)
	if t != nil {
		return nil, t
	}
	ok, t := e.truthy(sc, cond)
	if t != nil {
		return nil, t
	}
	if ok {
		return e.evalStatement(ctx, s.Then, sc)
	}
	if s.Else != nil {
		return e.evalStatement(ctx, s.Else, sc)
	}
	return value.Void{}, nil
}

func (e *Evaluator) evalWhile(ctx context.Context, s *ast.WhileStmt, sc *value.Scope) (value.Obj, *Thrown) {
	for {
		if t := e.checkCancelled(ctx, sc); t != nil {
			return nil, t
		}
		cond, t := e.evalExpr(ctx, s.Cond, sc)
		if t != nil {
			return nil, t
		}
		ok, t := e.truthy(sc, cond)
		if t != nil {
			return nil, t
		}
		if !ok {
			return value.Void{}, nil
		}
		if _, t := e.evalStatement(ctx, s.Body, sc); t != nil {
			return nil, t
		}
		if done, t := e.handleLoopSignal(sc, s.Label); done || t != nil {
			return value.Void{}, t
		}
	}
}

func (e *Evaluator) evalDoWhile(ctx context.Context, s *ast.DoWhileStmt, sc *value.Scope) (value.Obj, *Thrown) {
	for {
		if t := e.checkCancelled(ctx, sc); t != nil {
			return nil, t
		}
		if _, t := e.evalStatement(ctx, s.Body, sc); t != nil {
			return nil, t
		}
		if done, t := e.handleLoopSignal(sc, s.Label); done || t != nil {
			return value.Void{}, t
		}
		cond, t := e.evalExpr(ctx, s.Cond, sc)
		if t != nil {
			return nil, t
		}
		ok, t := e.truthy(sc, cond)
		if t != nil {
			return nil, t
		}
		if !ok {
			return value.Void{}, nil
		}
	}
}

// handleLoopSignal inspects sc.Signal after a loop body ran, consuming a
// break/continue addressed to label (or unlabeled), and reports whether the
// loop should stop (done=true) — either because of a consumed break or
// because an un-matching signal must propagate to an outer construct.
func (e *Evaluator) handleLoopSignal(sc *value.Scope, label string) (done bool, t *Thrown) {
	switch sc.Signal.Kind {
	case value.SignalNone:
		return false, nil
	case value.SignalBreak:
		if sc.Signal.Label == "" || sc.Signal.Label == label {
			sc.Signal = value.Signal{}
		}
		return true, nil
	case value.SignalContinue:
		if sc.Signal.Label == "" || sc.Signal.Label == label {
			sc.Signal = value.Signal{}
			return false, nil
		}
		return true, nil
	default: // Return
		return true, nil
	}
}

func (e *Evaluator) evalForIn(ctx context.Context, s *ast.ForInStmt, sc *value.Scope) (value.Obj, *Thrown) {
	iterable, t := e.evalExpr(ctx, s.Iterable, sc)
	if t != nil {
		return nil, t
	}
	return value.Void{}, e.iterate(ctx, sc, iterable, func(v value.Obj) (bool, *Thrown) {
		if t := e.checkCancelled(ctx, sc); t != nil {
			return true, t
		}
		body := e.borrowChild(sc, value.Arguments{}, s.Pos(), sc.This)
		body.Declare(s.VarName, v)
		thrown := e.runBlock(ctx, s.Body.Stmts, body)
		sig := body.Signal
		e.release(body)
		if thrown != nil {
			return true, thrown
		}
		sc.Signal = sig
		done, lt := e.handleLoopSignal(sc, s.Label)
		return done, lt
	})
}

func (e *Evaluator) evalTry(ctx context.Context, s *ast.TryStmt, sc *value.Scope) (value.Obj, *Thrown) {
	bodySc := e.borrowChild(sc, value.Arguments{}, s.Pos(), sc.This)
	thrown := e.runBlock(ctx, s.Body.Stmts, bodySc)
	sig := bodySc.Signal
	e.release(bodySc)

	if thrown != nil {
		for _, c := range s.Catches {
			if c.ClassName != "" && !thrown.Exc.Class().InheritsFrom(c.ClassName) {
				continue
			}
			if c.ClassName == "" && !thrown.Exc.Class().InheritsFrom("Exception") {
				continue
			}
			catchSc := e.borrowChild(sc, value.Arguments{}, c.KwPos, sc.This)
			if c.Binding != "" {
				catchSc.Declare(c.Binding, thrown.Exc)
			}
			thrown = e.runBlock(ctx, c.Body.Stmts, catchSc)
			sig = catchSc.Signal
			e.release(catchSc)
			break
		}
	}

	sc.Signal = sig
	if s.Finally != nil {
		// The finally block's own control flow (its own break/continue/
		// return, or a new throw) supersedes whatever was pending (§8
		// property 4: "finally runs exactly once per entry").
		savedSignal := sc.Signal
		savedThrown := thrown
		sc.Signal = value.Signal{}
		finSc := e.borrowChild(sc, value.Arguments{}, s.Finally.Pos(), sc.This)
		fThrown := e.runBlock(ctx, s.Finally.Stmts, finSc)
		finSig := finSc.Signal
		e.release(finSc)
		if fThrown != nil {
			return value.Void{}, fThrown
		}
		if finSig.Kind != value.SignalNone {
			sc.Signal = finSig
			return value.Void{}, nil
		}
		sc.Signal = savedSignal
		thrown = savedThrown
	}
	if thrown != nil {
		return nil, thrown
	}
	return value.Void{}, nil
}

// truthy implements the condition check used by if/while/do-while: a
// non-Bool condition raises CastError (KindCast). sc is only used to capture
// the stack for the raised exception.
func (e *Evaluator) truthy(sc *value.Scope, v value.Obj) (bool, *Thrown) {
	b, ok := v.(value.Bool)
	if !ok {
		return false, e.Raise(sc, KindCast, "condition must be Bool, got %s", v.Class().Name)
	}
	return b.Value, nil
}

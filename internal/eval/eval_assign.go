package eval

import (
	"context"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/ic"
	"github.com/sergeych/lyng/internal/value"
)

func (e *Evaluator) evalAssign(ctx context.Context, n *ast.AssignExpr, sc *value.Scope) (value.Obj, *Thrown) {
	rhs, t := e.evalExpr(ctx, n.RHS, sc)
	if t != nil {
		return nil, t
	}
	if t := e.assignTo(ctx, n.LHS, rhs, sc); t != nil {
		return nil, t
	}
	return rhs, nil
}

// evalCompoundAssign desugars `lhs op= rhs` into reading lhs once,
// combining with the underlying binary operator, and assigning once —
// matching the single-evaluation-of-lhs-target rule implied by §4.2's
// grammar (re-reading the target expression twice could double a
// side-effecting index/member access).
func (e *Evaluator) evalCompoundAssign(ctx context.Context, n *ast.CompoundAssign, sc *value.Scope) (value.Obj, *Thrown) {
	cur, t := e.evalExpr(ctx, n.LHS, sc)
	if t != nil {
		return nil, t
	}
	rhs, t := e.evalExpr(ctx, n.RHS, sc)
	if t != nil {
		return nil, t
	}
	var result value.Obj
	switch n.Operator {
	case "+":
		result, t = e.evalAdd(cur, rhs, sc)
	case "-":
		result, t = e.numericOp(cur, rhs, sc, "minus", value.SubInt, func(a, b float64) float64 { return a - b })
	case "*":
		result, t = e.numericOp(cur, rhs, sc, "times", value.MulInt, func(a, b float64) float64 { return a * b })
	case "/":
		result, t = e.evalDiv(cur, rhs, sc)
	case "%":
		result, t = e.evalRem(cur, rhs, sc)
	default:
		return nil, e.Raise(sc, KindInternal, "unknown compound-assign operator %q", n.Operator)
	}
	if t != nil {
		return nil, t
	}
	if t := e.assignTo(ctx, n.LHS, result, sc); t != nil {
		return nil, t
	}
	return result, nil
}

// assignTo writes v to lhs, which must be an Identifier, MemberExpr or
// IndexExpr (the parser rejects any other assignment target, §4.2).
func (e *Evaluator) assignTo(ctx context.Context, lhs ast.Expression, v value.Obj, sc *value.Scope) *Thrown {
	switch n := lhs.(type) {
	case *ast.Identifier:
		owner, slot, found := sc.Resolve(n.Name)
		if !found {
			return e.Raise(sc, KindResolution, "undefined name '%s'", n.Name)
		}
		owner.SetSlot(slot, v)
		return nil
	case *ast.MemberExpr:
		recv, t := e.evalExpr(ctx, n.Recv, sc)
		if t != nil {
			return t
		}
		return e.writeField(n, recv, v, sc)
	case *ast.IndexExpr:
		recv, t := e.evalExpr(ctx, n.Recv, sc)
		if t != nil {
			return t
		}
		idx, t := e.evalExpr(ctx, n.Index, sc)
		if t != nil {
			return t
		}
		return e.indexSet(n, recv, idx, v, sc)
	default:
		return e.Raise(sc, KindInternal, "invalid assignment target %T", lhs)
	}
}

func (e *Evaluator) writeField(n *ast.MemberExpr, recv, v value.Obj, sc *value.Scope) *Thrown {
	if inst, ok := recv.(*value.Instance); ok {
		class := inst.Class()
		if e.Flags.FieldPIC {
			cache, _ := n.Cache.(*ic.FieldCache)
			if cache == nil {
				cache = ic.NewFieldCache(e.Flags.PolyCacheSize)
				n.Cache = cache
			}
			if slot, ok := cache.Lookup(class); ok {
				inst.Fields[slot] = v
				return nil
			}
		}
		if slot := class.FieldIndex(n.Name); slot >= 0 {
			inst.Fields[slot] = v
			if e.Flags.FieldPIC {
				if cache, ok := n.Cache.(*ic.FieldCache); ok {
					cache.RecordMiss(class)
					cache.Store(class, slot)
				}
			}
			return nil
		}
	}
	if _, ok, err := e.Invoke(recv, "set"+publicName(n.Name), []value.Obj{v}); ok {
		return e.wrapNativeError(sc, err)
	}
	return e.Raise(sc, KindResolution, "class %s has no settable member '%s'", recv.Class().Name, n.Name)
}

// publicName upper-cases a field name's first rune for the conventional
// `setName` selector used when a non-Instance receiver exposes a settable
// property through a native method rather than a raw field slot.
func publicName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}

func (e *Evaluator) indexSet(n *ast.IndexExpr, recv, idx, v value.Obj, sc *value.Scope) *Thrown {
	cache, _ := n.Cache.(*ic.IndexCache)
	if cache == nil {
		cache = &ic.IndexCache{}
		n.Cache = cache
	}
	switch r := recv.(type) {
	case *value.List:
		cache.Store(ic.IndexList)
		i, ok := idx.(value.Int)
		if !ok {
			return e.Raise(sc, KindCast, "List index must be Int")
		}
		if err := r.Set(i.Int64(), v); err != nil {
			return e.Raise(sc, KindIndex, "%s", err.Error())
		}
		return nil
	case *value.Map:
		cache.Store(ic.IndexMap)
		r.Set(idx, v)
		return nil
	default:
		if _, ok, err := e.Invoke(recv, "set", []value.Obj{idx, v}); ok {
			return e.wrapNativeError(sc, err)
		}
		return e.Raise(sc, KindCast, "class %s does not support index assignment", recv.Class().Name)
	}
}

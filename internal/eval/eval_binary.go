package eval

import (
	"context"
	"math"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/value"
)

// evalBinary implements §4.3's numeric tower and operator-overload dispatch:
// Int op Int stays Int (with overflow promotion inside value.AddInt & co),
// a mix with Real promotes to Real, String "+" concatenates via toString,
// and anything else tries the named selector on the left operand and then,
// symmetrically, the right operand's "<op>Right" selector (§4.3 "the
// binary-operator symmetric-retry rule") before giving up.
func (e *Evaluator) evalBinary(ctx context.Context, n *ast.BinaryExpr, sc *value.Scope) (value.Obj, *Thrown) {
	if n.Operator == "&&" {
		return e.evalShortCircuit(ctx, n, sc, false)
	}
	if n.Operator == "||" {
		return e.evalShortCircuit(ctx, n, sc, true)
	}

	left, t := e.evalExpr(ctx, n.Left, sc)
	if t != nil {
		return nil, t
	}
	right, t := e.evalExpr(ctx, n.Right, sc)
	if t != nil {
		return nil, t
	}

	switch n.Operator {
	case "==":
		eq, t := e.valuesEqual(left, right, sc)
		if t != nil {
			return nil, t
		}
		return value.Bool{Value: eq}, nil
	case "!=":
		eq, t := e.valuesEqual(left, right, sc)
		if t != nil {
			return nil, t
		}
		return value.Bool{Value: !eq}, nil
	case "<", "<=", ">", ">=":
		cmp, unordered, t := e.compare(left, right, sc)
		if t != nil {
			return nil, t
		}
		if unordered {
			// IEEE-754: a NaN operand compares unequal and unordered to
			// everything, including itself, so every ordering operator
			// reports false (§4.4).
			return value.Bool{Value: false}, nil
		}
		switch n.Operator {
		case "<":
			return value.Bool{Value: cmp < 0}, nil
		case "<=":
			return value.Bool{Value: cmp <= 0}, nil
		case ">":
			return value.Bool{Value: cmp > 0}, nil
		default:
			return value.Bool{Value: cmp >= 0}, nil
		}
	case "+":
		return e.evalAdd(left, right, sc)
	case "-":
		return e.numericOp(left, right, sc, "minus", value.SubInt, func(a, b float64) float64 { return a - b })
	case "*":
		return e.numericOp(left, right, sc, "times", value.MulInt, func(a, b float64) float64 { return a * b })
	case "/":
		return e.evalDiv(left, right, sc)
	case "%":
		return e.evalRem(left, right, sc)
	default:
		return nil, e.Raise(sc, KindInternal, "unknown binary operator %q", n.Operator)
	}
}

func (e *Evaluator) evalShortCircuit(ctx context.Context, n *ast.BinaryExpr, sc *value.Scope, isOr bool) (value.Obj, *Thrown) {
	left, t := e.evalExpr(ctx, n.Left, sc)
	if t != nil {
		return nil, t
	}
	lb, ok := left.(value.Bool)
	if !ok {
		return nil, e.Raise(sc, KindCast, "%q requires Bool operands, got %s", n.Operator, left.Class().Name)
	}
	if isOr && lb.Value {
		return value.Bool{Value: true}, nil
	}
	if !isOr && !lb.Value {
		return value.Bool{Value: false}, nil
	}
	right, t := e.evalExpr(ctx, n.Right, sc)
	if t != nil {
		return nil, t
	}
	rb, ok := right.(value.Bool)
	if !ok {
		return nil, e.Raise(sc, KindCast, "%q requires Bool operands, got %s", n.Operator, right.Class().Name)
	}
	return value.Bool{Value: rb.Value}, nil
}

// evalAdd special-cases String concatenation (either operand a String
// coerces the other via toString, §4.8) ahead of the plain numeric path.
func (e *Evaluator) evalAdd(left, right value.Obj, sc *value.Scope) (value.Obj, *Thrown) {
	ls, lok := left.(value.String)
	rs, rok := right.(value.String)
	if lok || rok {
		if lok && rok {
			return value.NewString(ls.Value + rs.Value), nil
		}
		var other value.Obj
		var prefix bool
		if lok {
			other, prefix = right, false
		} else {
			other, prefix = left, true
		}
		os, err := other.ToString(e)
		if err != nil {
			return nil, e.wrapNativeError(sc, err)
		}
		if prefix {
			return value.NewString(os + rs.Value), nil
		}
		return value.NewString(ls.Value + os), nil
	}
	return e.numericOp(left, right, sc, "plus", value.AddInt, func(a, b float64) float64 { return a + b })
}

// numericOp is the shared Int/Real/instance-dispatch path for +, -, *.
func (e *Evaluator) numericOp(left, right value.Obj, sc *value.Scope, selector string, intOp func(a, b value.Int) value.Int, realOp func(a, b float64) float64) (value.Obj, *Thrown) {
	li, lIsInt := left.(value.Int)
	ri, rIsInt := right.(value.Int)
	if lIsInt && rIsInt {
		return intOp(li, ri), nil
	}
	if lf, ok := asFloat(left); ok {
		if rf, ok := asFloat(right); ok {
			return value.NewReal(realOp(lf, rf)), nil
		}
	}
	return e.dispatchOperator(left, right, selector, sc)
}

func (e *Evaluator) evalDiv(left, right value.Obj, sc *value.Scope) (value.Obj, *Thrown) {
	if li, ok := left.(value.Int); ok {
		if ri, ok := right.(value.Int); ok {
			if ri.Int64() == 0 && !ri.IsBig() {
				return nil, e.Raise(sc, KindArithmetic, "division by zero")
			}
			return value.DivInt(li, ri), nil
		}
	}
	if lf, ok := asFloat(left); ok {
		if rf, ok := asFloat(right); ok {
			return value.NewReal(lf / rf), nil
		}
	}
	return e.dispatchOperator(left, right, "div", sc)
}

func (e *Evaluator) evalRem(left, right value.Obj, sc *value.Scope) (value.Obj, *Thrown) {
	if li, ok := left.(value.Int); ok {
		if ri, ok := right.(value.Int); ok {
			if ri.Int64() == 0 && !ri.IsBig() {
				return nil, e.Raise(sc, KindArithmetic, "division by zero")
			}
			return value.RemInt(li, ri), nil
		}
	}
	if lf, ok := asFloat(left); ok {
		if rf, ok := asFloat(right); ok {
			m := lf - rf*float64(int64(lf/rf))
			return value.NewReal(m), nil
		}
	}
	return e.dispatchOperator(left, right, "rem", sc)
}

func asFloat(v value.Obj) (float64, bool) {
	switch x := v.(type) {
	case value.Int:
		return x.Float64(), true
	case value.Real:
		return x.Value, true
	default:
		return 0, false
	}
}

// dispatchOperator implements the symmetric-retry rule (§4.3): try
// left.<selector>(right), then right.<selector>Right(left).
func (e *Evaluator) dispatchOperator(left, right value.Obj, selector string, sc *value.Scope) (value.Obj, *Thrown) {
	if v, ok, err := e.Invoke(left, selector, []value.Obj{right}); ok {
		if err != nil {
			return nil, e.wrapNativeError(sc, err)
		}
		return v, nil
	}
	if v, ok, err := e.Invoke(right, selector+"Right", []value.Obj{left}); ok {
		if err != nil {
			return nil, e.wrapNativeError(sc, err)
		}
		return v, nil
	}
	return nil, e.Raise(sc, KindCast, "no '%s' defined between %s and %s", selector, left.Class().Name, right.Class().Name)
}

// valuesEqual consults a class's `equals` override before falling back to
// the value's own Equals (§3.2 invariant, §4.3).
func (e *Evaluator) valuesEqual(left, right value.Obj, sc *value.Scope) (bool, *Thrown) {
	if _, ok := left.(*value.Instance); ok {
		if v, ok, err := e.Invoke(left, "equals", []value.Obj{right}); ok {
			if err != nil {
				return false, e.wrapNativeError(sc, err)
			}
			b, isBool := v.(value.Bool)
			return isBool && b.Value, nil
		}
	}
	return left.Equals(right), nil
}

// compare backs <, <=, >, >= for Int/Real/String, and the "compareTo"
// selector for instances (§4.3, §4.8). unordered reports true only for a
// NaN operand, per IEEE-754: NaN compares unordered (and so unequal) to
// everything, including another NaN, so callers must treat every ordering
// operator as false rather than reading meaning into the returned int.
func (e *Evaluator) compare(left, right value.Obj, sc *value.Scope) (ord int, unordered bool, t *Thrown) {
	if li, ok := left.(value.Int); ok {
		if ri, ok := right.(value.Int); ok {
			return value.CompareInt(li, ri), false, nil
		}
	}
	if lf, ok := asFloat(left); ok {
		if rf, ok := asFloat(right); ok {
			if math.IsNaN(lf) || math.IsNaN(rf) {
				return 0, true, nil
			}
			switch {
			case lf < rf:
				return -1, false, nil
			case lf > rf:
				return 1, false, nil
			default:
				return 0, false, nil
			}
		}
	}
	if ls, ok := left.(value.String); ok {
		if rs, ok := right.(value.String); ok {
			switch {
			case ls.Value < rs.Value:
				return -1, false, nil
			case ls.Value > rs.Value:
				return 1, false, nil
			default:
				return 0, false, nil
			}
		}
	}
	if v, ok, err := e.Invoke(left, "compareTo", []value.Obj{right}); ok {
		if err != nil {
			return 0, false, e.wrapNativeError(sc, err)
		}
		i, isInt := v.(value.Int)
		if !isInt {
			return 0, false, e.Raise(sc, KindCast, "compareTo must return Int")
		}
		return int(i.Int64()), false, nil
	}
	return 0, false, e.Raise(sc, KindCast, "cannot compare %s with %s", left.Class().Name, right.Class().Name)
}

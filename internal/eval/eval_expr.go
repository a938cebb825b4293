package eval

import (
	"context"
	"strings"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/ic"
	"github.com/sergeych/lyng/internal/value"
)

func (e *Evaluator) evalExpr(ctx context.Context, expr ast.Expression, sc *value.Scope) (value.Obj, *Thrown) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return value.NewInt(n.Value), nil
	case *ast.RealLiteral:
		return value.NewReal(n.Value), nil
	case *ast.CharLiteral:
		return value.Char{Value: n.Value}, nil
	case *ast.BoolLiteral:
		return value.Bool{Value: n.Value}, nil
	case *ast.NullLiteral:
		return value.Null{}, nil
	case *ast.VoidLiteral:
		return value.Void{}, nil
	case *ast.ThisExpr:
		if sc.This == nil {
			return nil, e.Raise(sc, KindNullAccess, "'this' is not bound in this context")
		}
		return sc.This, nil
	case *ast.StringLiteral:
		return e.evalStringLiteral(ctx, n, sc)
	case *ast.RegexLiteral:
		re, err := value.Compile(n.Pattern, n.Flags, e.Flags.RegexCache)
		if err != nil {
			return nil, e.Raise(sc, KindCast, "invalid regex /%s/%s: %s", n.Pattern, n.Flags, err.Error())
		}
		return re, nil
	case *ast.ListLiteral:
		return e.evalListLiteral(ctx, n, sc)
	case *ast.MapLiteral:
		return e.evalMapLiteral(ctx, n, sc)
	case *ast.RangeExpr:
		return e.evalRangeExpr(ctx, n, sc)
	case *ast.LambdaExpr:
		sc.MarkEscaped()
		return &value.Function{Params: n.Params, Body: n.Body, Closure: sc, This: sc.This}, nil
	case *ast.Identifier:
		return e.evalIdentifier(n, sc)
	case *ast.MemberExpr:
		return e.evalMember(ctx, n, sc)
	case *ast.IndexExpr:
		return e.evalIndex(ctx, n, sc)
	case *ast.CallExpr:
		return e.evalCall(ctx, n, sc)
	case *ast.UnaryExpr:
		return e.evalUnary(ctx, n, sc)
	case *ast.BinaryExpr:
		return e.evalBinary(ctx, n, sc)
	case *ast.AssignExpr:
		return e.evalAssign(ctx, n, sc)
	case *ast.CompoundAssign:
		return e.evalCompoundAssign(ctx, n, sc)
	case *ast.ElvisExpr:
		return e.evalElvis(ctx, n, sc)
	default:
		return nil, e.Raise(sc, KindInternal, "unhandled expression node %T", expr)
	}
}

func (e *Evaluator) evalStringLiteral(ctx context.Context, n *ast.StringLiteral, sc *value.Scope) (value.Obj, *Thrown) {
	var b strings.Builder
	b.WriteString(n.Parts[0])
	for i, expr := range n.Exprs {
		v, t := e.evalExpr(ctx, expr, sc)
		if t != nil {
			return nil, t
		}
		s, err := v.ToString(e)
		if err != nil {
			return nil, e.wrapNativeError(sc, err)
		}
		b.WriteString(s)
		b.WriteString(n.Parts[i+1])
	}
	return value.NewString(b.String()), nil
}

func (e *Evaluator) evalListLiteral(ctx context.Context, n *ast.ListLiteral, sc *value.Scope) (value.Obj, *Thrown) {
	elems := make([]value.Obj, 0, len(n.Elements))
	for _, el := range n.Elements {
		v, t := e.evalExpr(ctx, el, sc)
		if t != nil {
			return nil, t
		}
		elems = append(elems, v)
	}
	return value.NewList(elems...), nil
}

func (e *Evaluator) evalMapLiteral(ctx context.Context, n *ast.MapLiteral, sc *value.Scope) (value.Obj, *Thrown) {
	m := value.NewMap()
	for _, entry := range n.Entries {
		k, t := e.evalExpr(ctx, entry.Key, sc)
		if t != nil {
			return nil, t
		}
		v, t := e.evalExpr(ctx, entry.Value, sc)
		if t != nil {
			return nil, t
		}
		m.Set(k, v)
	}
	return m, nil
}

func (e *Evaluator) evalRangeExpr(ctx context.Context, n *ast.RangeExpr, sc *value.Scope) (value.Obj, *Thrown) {
	from, t := e.evalExpr(ctx, n.From, sc)
	if t != nil {
		return nil, t
	}
	to, t := e.evalExpr(ctx, n.To, sc)
	if t != nil {
		return nil, t
	}
	step := int64(1)
	if n.Step != nil {
		sv, t := e.evalExpr(ctx, n.Step, sc)
		if t != nil {
			return nil, t
		}
		si, ok := sv.(value.Int)
		if !ok {
			return nil, e.Raise(sc, KindCast, "range step must be Int")
		}
		step = si.Int64()
	}
	fi, ok1 := from.(value.Int)
	ti, ok2 := to.(value.Int)
	if !ok1 || !ok2 {
		return nil, e.Raise(sc, KindCast, "range bounds must be Int")
	}
	r, err := value.NewRange(fi.Int64(), ti.Int64(), step, n.Exclusive)
	if err != nil {
		return nil, e.Raise(sc, KindArithmetic, "%s", err.Error())
	}
	return r, nil
}

// evalIdentifier resolves a name through the local-slot PIC (§4.7.1),
// falling back to a full Scope.Resolve walk and, on a hit, refreshing the
// cache against this scope's current ShapeRev.
func (e *Evaluator) evalIdentifier(n *ast.Identifier, sc *value.Scope) (value.Obj, *Thrown) {
	if e.Flags.LocalSlotPIC {
		cache, _ := n.Cache.(*ic.LocalSlotCache)
		if cache == nil {
			cache = &ic.LocalSlotCache{}
			n.Cache = cache
		}
		owner := sc
		if depth, slot, ok := cache.Lookup(sc.ShapeRev); ok {
			for i := 0; i < depth; i++ {
				owner = owner.Parent
			}
			if owner != nil {
				return owner.Slot(slot), nil
			}
		}
		owner, slot, found := sc.Resolve(n.Name)
		if found {
			depth := 0
			for cur := sc; cur != owner; cur = cur.Parent {
				depth++
			}
			if depth == 0 {
				cache.Store(0, sc.ShapeRev, slot)
			}
			return owner.Slot(slot), nil
		}
	} else if owner, slot, found := sc.Resolve(n.Name); found {
		return owner.Slot(slot), nil
	}
	if c, ok := e.LookupClass(n.Name); ok {
		return value.ClassValue{Info: c}, nil
	}
	return nil, e.Raise(sc, KindResolution, "undefined name '%s'", n.Name)
}

func (e *Evaluator) evalMember(ctx context.Context, n *ast.MemberExpr, sc *value.Scope) (value.Obj, *Thrown) {
	recv, t := e.evalExpr(ctx, n.Recv, sc)
	if t != nil {
		return nil, t
	}
	if n.Safe {
		if _, isNull := recv.(value.Null); isNull {
			return value.Null{}, nil
		}
		if _, isVoid := recv.(value.Void); isVoid {
			return value.Void{}, nil
		}
	}
	return e.readField(n, recv, sc)
}

// readField implements the field PIC (§4.7.2): fast path for *value.Instance
// whose class still matches a cached slot, else a full field/method lookup
// (a bare `name` on a non-instance falls through to Invoke, covering
// built-in property-like selectors such as `size`).
func (e *Evaluator) readField(n *ast.MemberExpr, recv value.Obj, sc *value.Scope) (value.Obj, *Thrown) {
	inst, isInstance := recv.(*value.Instance)
	if isInstance {
		class := inst.Class()
		if e.Flags.FieldPIC {
			cache, _ := n.Cache.(*ic.FieldCache)
			if cache == nil {
				cache = ic.NewFieldCache(e.Flags.PolyCacheSize)
				n.Cache = cache
			}
			if slot, ok := cache.Lookup(class); ok {
				return inst.Fields[slot], nil
			}
			if slot := class.FieldIndex(n.Name); slot >= 0 {
				cache.RecordMiss(class)
				cache.Store(class, slot)
				return inst.Fields[slot], nil
			}
		} else if slot := inst.FieldSlot(n.Name); slot >= 0 {
			return inst.Fields[slot], nil
		}
	}
	if v, ok, err := e.Invoke(recv, n.Name, nil); ok {
		if err != nil {
			return nil, e.wrapNativeError(sc, err)
		}
		return v, nil
	}
	return nil, e.Raise(sc, KindResolution, "class %s has no member '%s'", describeReceiverClass(recv), n.Name)
}

func (e *Evaluator) evalIndex(ctx context.Context, n *ast.IndexExpr, sc *value.Scope) (value.Obj, *Thrown) {
	recv, t := e.evalExpr(ctx, n.Recv, sc)
	if t != nil {
		return nil, t
	}
	idx, t := e.evalExpr(ctx, n.Index, sc)
	if t != nil {
		return nil, t
	}
	return e.indexGet(n, recv, idx, sc)
}

func (e *Evaluator) indexGet(n *ast.IndexExpr, recv, idx value.Obj, sc *value.Scope) (value.Obj, *Thrown) {
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
			return nil, e.Raise(sc, KindCast, "List index must be Int")
		}
		v, err := r.Get(i.Int64())
		if err != nil {
			return nil, e.Raise(sc, KindIndex, "%s", err.Error())
		}
		return v, nil
	case *value.Map:
		cache.Store(ic.IndexMap)
		v, ok := r.Get(idx)
		if !ok {
			return nil, e.Raise(sc, KindKey, "key not found: %s", mustInspect(e, idx))
		}
		return v, nil
	case value.String:
		cache.Store(ic.IndexString)
		i, ok := idx.(value.Int)
		if !ok {
			return nil, e.Raise(sc, KindCast, "String index must be Int")
		}
		runes := []rune(r.Value)
		at := int(i.Int64())
		if at < 0 {
			at += len(runes)
		}
		if at < 0 || at >= len(runes) {
			return nil, e.Raise(sc, KindIndex, "index %d out of range (size %d)", i.Int64(), len(runes))
		}
		return value.Char{Value: runes[at]}, nil
	default:
		if v, ok, err := e.Invoke(recv, "get", []value.Obj{idx}); ok {
			if err != nil {
				return nil, e.wrapNativeError(sc, err)
			}
			return v, nil
		}
		return nil, e.Raise(sc, KindCast, "class %s does not support indexing", recv.Class().Name)
	}
}

func mustInspect(e *Evaluator, v value.Obj) string {
	s, err := v.Inspect(e)
	if err != nil {
		return "?"
	}
	return s
}

func (e *Evaluator) evalCall(ctx context.Context, n *ast.CallExpr, sc *value.Scope) (value.Obj, *Thrown) {
	args, t := e.evalArgs(ctx, n, sc)
	if t != nil {
		return nil, t
	}

	if member, isMember := n.Callee.(*ast.MemberExpr); isMember {
		return e.evalMethodCall(ctx, n, member, args, sc)
	}

	callee, t := e.evalExpr(ctx, n.Callee, sc)
	if t != nil {
		return nil, t
	}
	return e.applyCallee(callee, args, n.Pos(), sc)
}

// evalArgs evaluates a call site's argument expressions, reusing a
// per-site ArgsBuilder accumulator when the arg_builder flag is on (§4.6)
// to avoid allocating a fresh slice on every call; behaviour is identical
// either way, the builder is purely a reuse optimisation.
func (e *Evaluator) evalArgs(ctx context.Context, n *ast.CallExpr, sc *value.Scope) ([]value.Obj, *Thrown) {
	if !e.Flags.ArgBuilder {
		args := make([]value.Obj, 0, len(n.Args.Values))
		for _, a := range n.Args.Values {
			v, t := e.evalExpr(ctx, a, sc)
			if t != nil {
				return nil, t
			}
			args = append(args, v)
		}
		return args, nil
	}
	builder, _ := n.ArgsCache.(*value.ArgsBuilder)
	if builder == nil {
		builder = &value.ArgsBuilder{}
		n.ArgsCache = builder
	}
	builder.Reset()
	for _, a := range n.Args.Values {
		v, t := e.evalExpr(ctx, a, sc)
		if t != nil {
			return nil, t
		}
		builder.Add(v)
	}
	return builder.Freeze(n.Args.TailBlock).Values, nil
}

// evalMethodCall implements the method-call PIC (§4.7.3): `recv.name(args)`.
func (e *Evaluator) evalMethodCall(ctx context.Context, n *ast.CallExpr, member *ast.MemberExpr, args []value.Obj, sc *value.Scope) (value.Obj, *Thrown) {
	recv, t := e.evalExpr(ctx, member.Recv, sc)
	if t != nil {
		return nil, t
	}
	if member.Safe {
		if _, isNull := recv.(value.Null); isNull {
			return value.Null{}, nil
		}
	}
	if inst, ok := recv.(*value.Instance); ok && e.Flags.MethodPIC {
		cache, _ := n.MethodCache.(*ic.MethodCache)
		if cache == nil {
			cache = ic.NewMethodCache(e.Flags.PolyCacheSize)
			n.MethodCache = cache
		}
		class := inst.Class()
		if m, ok := cache.Lookup(class, len(args)); ok {
			return e.invokeMethod(m, recv, args, sc)
		}
		if m, ok := class.Lookup(member.Name, len(args)); ok {
			cache.Store(class, len(args), m)
			return e.invokeMethod(m, recv, args, sc)
		}
	}
	v, ok, err := e.Invoke(recv, member.Name, args)
	if err != nil {
		return nil, e.wrapNativeError(sc, err)
	}
	if !ok {
		return nil, e.Raise(sc, KindResolution, "class %s has no method '%s'", describeReceiverClass(recv), member.Name)
	}
	return v, nil
}

// describeReceiverClass names a method-call error's receiver the way a
// script author wrote it: a ClassValue (`Color.values()`) reports the
// named class, not the synthetic "Class" meta-type.
func describeReceiverClass(recv value.Obj) string {
	if cv, ok := recv.(value.ClassValue); ok {
		return cv.Info.Name
	}
	return recv.Class().Name
}

func (e *Evaluator) invokeMethod(m *value.Method, recv value.Obj, args []value.Obj, sc *value.Scope) (value.Obj, *Thrown) {
	if m.IsNative() {
		v, err := m.Native(e, recv, args)
		if err != nil {
			return nil, e.wrapNativeError(sc, err)
		}
		return v, nil
	}
	return e.callUserMethod(m, recv, args)
}

// applyCallee implements the "call" selector for a plain (non-method) call
// expression: a Function value calls directly; a ClassValue constructs a
// new Instance (§4.3 "new") and runs its `init` constructor if declared;
// anything else tries the uniform "call" selector before giving up.
func (e *Evaluator) applyCallee(callee value.Obj, args []value.Obj, pos value.Pos, sc *value.Scope) (value.Obj, *Thrown) {
	switch c := callee.(type) {
	case *value.Function:
		return e.callFunction(c, args, pos)
	case value.ClassValue:
		return e.construct(c.Info, args, sc)
	default:
		v, ok, err := e.Invoke(callee, "call", args)
		if err != nil {
			return nil, e.wrapNativeError(sc, err)
		}
		if !ok {
			return nil, e.Raise(sc, KindCast, "class %s is not callable", callee.Class().Name)
		}
		return v, nil
	}
}

func (e *Evaluator) evalUnary(ctx context.Context, n *ast.UnaryExpr, sc *value.Scope) (value.Obj, *Thrown) {
	v, t := e.evalExpr(ctx, n.Operand, sc)
	if t != nil {
		return nil, t
	}
	switch n.Operator {
	case "-":
		switch x := v.(type) {
		case value.Int:
			return value.SubInt(value.NewInt(0), x), nil
		case value.Real:
			return value.NewReal(-x.Value), nil
		}
		if r, ok, err := e.Invoke(v, "minus", nil); ok {
			if err != nil {
				return nil, e.wrapNativeError(sc, err)
			}
			return r, nil
		}
		return nil, e.Raise(sc, KindCast, "cannot negate a %s", v.Class().Name)
	case "!":
		b, ok := v.(value.Bool)
		if !ok {
			return nil, e.Raise(sc, KindCast, "'!' requires Bool, got %s", v.Class().Name)
		}
		return value.Bool{Value: !b.Value}, nil
	default:
		return nil, e.Raise(sc, KindInternal, "unknown unary operator %q", n.Operator)
	}
}

func (e *Evaluator) evalElvis(ctx context.Context, n *ast.ElvisExpr, sc *value.Scope) (value.Obj, *Thrown) {
	lhs, t := e.evalExpr(ctx, n.LHS, sc)
	if t != nil {
		return nil, t
	}
	switch lhs.(type) {
	case value.Null, value.Void:
		return e.evalExpr(ctx, n.RHS, sc)
	default:
		return lhs, nil
	}
}

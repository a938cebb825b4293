package eval

import (
	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/value"
)

// evalClassDecl registers a `class` declaration's runtime Class (§3.3) and
// binds its name to a ClassValue in the declaring scope, so later code can
// both construct instances (`Name(...)`) and refer to the class as a value.
func (e *Evaluator) evalClassDecl(s *ast.ClassDecl, sc *value.Scope) (value.Obj, *Thrown) {
	var parent *value.Class
	if s.Parent != "" {
		p, ok := e.LookupClass(s.Parent)
		if !ok {
			return nil, e.Raise(sc, KindResolution, "undefined parent class '%s'", s.Parent)
		}
		parent = p
	}
	class := value.NewClass(s.Name, parent)
	for _, fd := range s.Fields {
		fd := fd
		var defaultFn func(value.Dispatcher) (value.Obj, error)
		if fd.Default != nil {
			defaultFn = func(d value.Dispatcher) (value.Obj, error) {
				ev, ok := d.(*Evaluator)
				if !ok {
					return value.Null{}, nil
				}
				v, t := ev.evalExpr(nil, fd.Default, sc)
				if t != nil {
					return nil, t
				}
				return v, nil
			}
		}
		class.AddField(value.FieldDescriptor{Name: fd.Name, Mutable: fd.Mutable, Default: defaultFn})
	}
	if len(s.Methods) > 0 {
		sc.MarkEscaped()
	}
	for _, md := range s.Methods {
		md := md
		class.AddMethod(&value.Method{Selector: md.Selector, Arity: len(md.Params), Decl: &md, Closure: sc})
	}
	e.RegisterClass(class)
	sc.Declare(s.Name, value.ClassValue{Info: class})
	return value.Void{}, nil
}

// evalEnumDecl registers the synthetic enum class described in SPEC_FULL
// §3.3: each member is a singleton Instance carrying its `name` and
// `ordinal`, declared directly into the enclosing scope alongside the enum
// type itself.
func (e *Evaluator) evalEnumDecl(s *ast.EnumDecl, sc *value.Scope) (value.Obj, *Thrown) {
	class := value.NewClass(s.Name, nil)
	class.AddField(value.FieldDescriptor{Name: "name"})
	class.AddField(value.FieldDescriptor{Name: "ordinal"})
	e.RegisterClass(class)

	values := value.NewList()
	for i, name := range s.Members {
		inst, err := value.NewInstance(class, e)
		if err != nil {
			return nil, e.wrapNativeError(sc, err)
		}
		inst.Fields[0] = value.NewString(name)
		inst.Fields[1] = value.NewInt(int64(i))
		sc.Declare(name, inst)
		values.Add(inst)
	}
	class.AddMethod(&value.Method{
		Selector: "values",
		Arity:    0,
		Native: func(value.Dispatcher, value.Obj, []value.Obj) (value.Obj, error) {
			return values, nil
		},
	})
	sc.Declare(s.Name, value.ClassValue{Info: class})
	return value.Void{}, nil
}

// construct implements `new`: allocate an Instance with class defaults
// (§4.3 step 4), wrap it as an *Exception when the class descends from
// Exception, then run a declared `init` constructor if present.
func (e *Evaluator) construct(class *value.Class, args []value.Obj, sc *value.Scope) (value.Obj, *Thrown) {
	if class == value.SetClass {
		return value.NewSet(), nil
	}
	inst, err := value.NewInstance(class, e)
	if err != nil {
		return nil, e.wrapNativeError(sc, err)
	}
	var result value.Obj = inst
	if class.InheritsFrom("Exception") {
		msg := ""
		if len(args) > 0 {
			if s, ok := args[0].(value.String); ok {
				msg = s.Value
			}
		}
		result = value.WrapException(inst, msg)
	}
	if m, ok := class.Lookup("init", len(args)); ok {
		if _, t := e.invokeMethod(m, result, args, sc); t != nil {
			return nil, t
		}
	}
	return result, nil
}

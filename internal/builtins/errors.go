package builtins

import (
	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

// installExceptionHierarchy registers the §7 error taxonomy as SL classes.
// ArithmeticError/IndexError/KeyError/NullAccess/CastError/ResolutionError
// all inherit Exception, so `catch (e: Exception)` matches any of them
// (§7: "matches everything user-catchable"). Internal and Cancelled are
// registered as standalone classes with no Exception parent, so they are
// only caught when named explicitly, as §7 requires.
func installExceptionHierarchy(e *eval.Evaluator) {
	e.RegisterClass(value.ExceptionClass)
	method(value.ExceptionClass, "message", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewString(this.(*value.Exception).Message), nil
	})

	catchable := map[eval.Kind]string{
		eval.KindResolution:  "ResolutionError",
		eval.KindArithmetic:  "ArithmeticError",
		eval.KindIndex:       "IndexError",
		eval.KindKey:         "KeyError",
		eval.KindNullAccess:  "NullAccess",
		eval.KindCast:        "CastError",
	}
	for kind, name := range catchable {
		cls := value.NewClass(name, value.ExceptionClass)
		e.RegisterClass(cls)
		e.RegisterErrorClass(kind, cls)
	}

	internalCls := value.NewClass("Internal", nil)
	e.RegisterClass(internalCls)
	e.RegisterErrorClass(eval.KindInternal, internalCls)

	cancelledCls := value.NewClass("Cancelled", nil)
	e.RegisterClass(cancelledCls)
	e.RegisterErrorClass(eval.KindCancelled, cancelledCls)

	// KindUser has no dedicated class: ThrowValue keeps the thrown value's
	// own (already Exception-derived) class, classFor's ExceptionClass
	// fallback is only reached if that lookup somehow missed.
}

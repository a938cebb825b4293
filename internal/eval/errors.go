package eval

import (
	"fmt"

	"github.com/sergeych/lyng/internal/value"
)

// Kind classifies a runtime failure per the taxonomy in §7.
type Kind int

const (
	KindResolution Kind = iota
	KindArithmetic
	KindIndex
	KindKey
	KindNullAccess
	KindCast
	KindUser
	KindCancelled
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindResolution:
		return "ResolutionError"
	case KindArithmetic:
		return "ArithmeticError"
	case KindIndex:
		return "IndexError"
	case KindKey:
		return "KeyError"
	case KindNullAccess:
		return "NullAccess"
	case KindCast:
		return "CastError"
	case KindUser:
		return "UserException"
	case KindCancelled:
		return "Cancelled"
	default:
		return "Internal"
	}
}

// Thrown is the Go-level carrier for an in-flight SL exception: every
// evaluation function that can raise returns (nil, *Thrown) instead of
// panicking, so try/catch/finally is just ordinary control flow over Go
// error values (§4.5).
type Thrown struct {
	Kind Kind
	Exc  *value.Exception
}

func (t *Thrown) Error() string { return t.Exc.Message }

// classFor resolves the built-in Exception-taxonomy class for a Kind,
// registered into the root scope by internal/builtins at startup.
func (e *Evaluator) classFor(k Kind) *value.Class {
	if c, ok := e.builtinErrorClasses[k]; ok {
		return c
	}
	return value.ExceptionClass
}

// Raise constructs and wraps a Thrown of the given kind with a formatted
// message, capturing the current call stack (§3.6).
func (e *Evaluator) Raise(sc *value.Scope, k Kind, format string, args ...any) *Thrown {
	exc := value.NewException(e.classFor(k), fmt.Sprintf(format, args...), nil)
	exc.Stack = e.captureStack(sc)
	return &Thrown{Kind: k, Exc: exc}
}

// ThrowValue wraps a user-thrown value (already an *value.Exception, per
// the grammar's `throw` only accepting Exception-class values) into a
// Thrown, classifying it as KindUser unless it is one of the built-in
// taxonomy classes.
func (e *Evaluator) ThrowValue(sc *value.Scope, exc *value.Exception) *Thrown {
	if len(exc.Stack) == 0 {
		exc.Stack = e.captureStack(sc)
	}
	k := KindUser
	for kind, cls := range e.builtinErrorClasses {
		if exc.Class() == cls {
			k = kind
			break
		}
	}
	return &Thrown{Kind: k, Exc: exc}
}

func (e *Evaluator) captureStack(sc *value.Scope) []value.StackFrame {
	var frames []value.StackFrame
	for s := sc; s != nil; s = s.Parent {
		name := "<anonymous>"
		frames = append(frames, value.StackFrame{FunctionName: name, Pos: s.Pos})
	}
	return frames
}

// ExecutionError is what Execute returns to the embedder for an uncaught
// exception (§6, §7: "wrapped into ExecutionError and returned ... with the
// captured stack").
type ExecutionError struct {
	Exception *value.Exception
}

func (e *ExecutionError) Error() string {
	msg := e.Exception.Message
	for _, f := range e.Exception.Stack {
		msg += fmt.Sprintf("\n\tat %s (%s)", f.FunctionName, f.Pos.String())
	}
	return msg
}

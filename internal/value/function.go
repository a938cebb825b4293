package value

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sergeych/lyng/internal/ast"
)

// Function is SL's callable value (§3.2). A user-defined function or lambda
// carries its parameter list, body and defining (closure) Scope; a
// host-installed function (§6 add_function) carries a Native implementation
// instead. Calling it is the built-in "call" selector (§4.3), and it is
// what `add_function` installs into a Scope.
type Function struct {
	Name    string
	Params  []ast.Identifier
	Body    []ast.Statement
	Closure *Scope
	This    Obj // bound receiver for a method value; nil for a free function

	Native func(args []Obj) (Obj, error)
}

func (f *Function) Class() *Class { return FunctionClass }

func (f *Function) ToString(Dispatcher) (string, error) {
	name := f.Name
	if name == "" {
		name = "<lambda>"
	}
	return "fun " + name, nil
}
func (f *Function) Inspect(d Dispatcher) (string, error) { return f.ToString(d) }

func (f *Function) Equals(other Obj) bool {
	o, ok := other.(*Function)
	return ok && o == f
}

// Arity returns the declared parameter count, or -1 for a variadic native.
func (f *Function) Arity() int {
	if f.Native != nil {
		return -1
	}
	return len(f.Params)
}

// ClassValue is the meta-value produced when a class name is evaluated as
// an expression (§3.2: "Class (meta)"), letting SL code write `C` to refer
// to the class itself and `C(...)` to construct an instance.
type ClassValue struct {
	Info *Class
}

func (c ClassValue) Class() *Class                       { return ClassClass }
func (c ClassValue) ToString(Dispatcher) (string, error) { return "class " + c.Info.Name, nil }
func (c ClassValue) Inspect(d Dispatcher) (string, error) { return c.ToString(d) }
func (c ClassValue) Equals(other Obj) bool {
	o, ok := other.(ClassValue)
	return ok && o.Info == c.Info
}

// Instance is a user-defined object (§3.2). Fields are stored flattened
// across the class's full inheritance chain (ancestor fields first) so
// that a cached field-slot index (the field PIC, §4.7.2) stays valid as
// long as the class version matches, regardless of which ancestor declared
// the field.
type Instance struct {
	class  *Class
	Fields []Obj
}

// NewInstance allocates an instance with every field set to its class's
// default (§4.3 step 4, §3.3).
func NewInstance(class *Class, d Dispatcher) (*Instance, error) {
	descriptors := flattenFields(class)
	fields := make([]Obj, len(descriptors))
	for i, fd := range descriptors {
		if fd.Default != nil {
			v, err := fd.Default(d)
			if err != nil {
				return nil, err
			}
			fields[i] = v
		} else {
			fields[i] = Null{}
		}
	}
	return &Instance{class: class, Fields: fields}, nil
}

func flattenFields(class *Class) []FieldDescriptor {
	var chain []*Class
	for c := class; c != nil; c = c.Parent {
		chain = append(chain, c)
	}
	var out []FieldDescriptor
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].Fields...)
	}
	return out
}

func (i *Instance) Class() *Class { return i.class }

func (i *Instance) ToString(d Dispatcher) (string, error) {
	if result, ok, err := d.Invoke(i, "toString", nil); ok {
		if err != nil {
			return "", err
		}
		return result.ToString(d)
	}
	return i.Inspect(d)
}

func (i *Instance) Inspect(d Dispatcher) (string, error) {
	return fmt.Sprintf("%s@%p", i.class.Name, i), nil
}

func (i *Instance) Equals(other Obj) bool {
	o, ok := other.(*Instance)
	return ok && o == i
}

// FieldSlot returns the flattened field index for name, or -1.
func (i *Instance) FieldSlot(name string) int {
	descriptors := flattenFields(i.class)
	for idx, fd := range descriptors {
		if fd.Name == name {
			return idx
		}
	}
	return -1
}

// StackFrame is one entry of an Exception's captured stack trace (§3.6).
type StackFrame struct {
	FunctionName string
	Pos          Pos
}

// Exception is SL's throwable value (§3.6). It is itself an Instance (so
// user Exception subclasses can declare extra fields and override
// toString/equals through the normal dispatch protocol) plus the message,
// cause chain and captured stack the spec requires.
type Exception struct {
	*Instance
	id      uuid.UUID
	Message string
	Cause   Obj // another Exception, or Null{}
	Stack   []StackFrame
}

// NewException constructs an Exception of the given class (which must
// inherit ExceptionClass) with message and an empty field set besides the
// base Message/Cause/Stack.
func NewException(class *Class, message string, cause Obj) *Exception {
	inst := &Instance{class: class}
	if cause == nil {
		cause = Null{}
	}
	return &Exception{Instance: inst, id: uuid.New(), Message: message, Cause: cause}
}

// WrapException turns a freshly constructed Instance of an Exception
// subclass into an *Exception, used by the evaluator's `new`/constructor
// path (§4.3) when the class being constructed inherits from Exception —
// the one place a user-defined class needs extra Go-level state (Message,
// Cause, Stack) beyond its declared fields.
func WrapException(inst *Instance, message string) *Exception {
	return &Exception{Instance: inst, id: uuid.New(), Message: message, Cause: Null{}}
}

func (e *Exception) ToString(d Dispatcher) (string, error) { return e.Message, nil }

func (e *Exception) Inspect(d Dispatcher) (string, error) {
	return fmt.Sprintf("%s: %s", e.Class().Name, e.Message), nil
}

func (e *Exception) Equals(other Obj) bool {
	o, ok := other.(*Exception)
	return ok && o == e
}

// ID returns the embedder-correlation identity described in SPEC_FULL §3.6;
// never observable from SL code.
func (e *Exception) ID() uuid.UUID { return e.id }

package value

import (
	"sync"
	"sync/atomic"

	"github.com/sergeych/lyng/internal/ast"
)

// FieldDescriptor is one field slot in a Class (§3.3).
type FieldDescriptor struct {
	Name    string
	Mutable bool
	// Default produces the per-instance default value; nil means "zero
	// value of an untyped field", i.e. Null.
	Default func(d Dispatcher) (Obj, error)
}

// Method is a callable bound to a class: either a Go-native builtin or a
// user-defined method/operator overload closing over its defining scope.
// Selector is the dispatch name (§4.3); built-in operators use the fixed
// names "plus", "minus", "times", "div", "rem", "equals", "compareTo",
// "get", "set", "call", "iterator", plus the "*Right" symmetric-retry
// variants for binary operators.
type Method struct {
	Selector string
	Arity    int // number of declared parameters; native variadics use -1

	Native func(d Dispatcher, this Obj, args []Obj) (Obj, error)

	Decl    *ast.MethodDecl
	Closure *Scope // defining (lexical, not instance) scope for Decl methods
}

func (m *Method) IsNative() bool { return m.Native != nil }

type methodKey struct {
	selector string
	arity    int
}

// Class is the runtime type of every value (§3.3). Its method table mutates
// only through AddMethod/AddField, each of which bumps Version so
// that inline caches referencing a stale snapshot can detect it cheaply
// (§4.7: "All PICs check class_version strictly").
type Class struct {
	mu      sync.RWMutex
	Name    string
	Parent  *Class
	Fields  []FieldDescriptor
	methods map[methodKey]*Method
	version atomic.Uint64
}

// NewClass creates an empty class with the given name and optional parent.
func NewClass(name string, parent *Class) *Class {
	return &Class{Name: name, Parent: parent, methods: make(map[methodKey]*Method)}
}

// Version returns the current method/field-table version, the token an
// inline cache entry must match to remain valid (§4.7).
func (c *Class) Version() uint64 { return c.version.Load() }

func (c *Class) bump() { c.version.Add(1) }

// AddMethod installs or replaces a method/operator at (selector, arity),
// bumping the class version so every inline cache referencing this class is
// invalidated on next use (§3.3).
func (c *Class) AddMethod(m *Method) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.methods[methodKey{m.Selector, m.Arity}] = m
	c.bump()
}

// AddField appends a field descriptor, bumping the version (adding a field
// changes instance shape for any cached field-slot index).
func (c *Class) AddField(f FieldDescriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Fields = append(c.Fields, f)
	c.bump()
}

// Lookup resolves selector/arity on this class, walking the parent chain
//(§4.3 step 2). ok is false if no class in the chain defines it.
func (c *Class) Lookup(selector string, arity int) (*Method, bool) {
	for cls := c; cls != nil; cls = cls.Parent {
		cls.mu.RLock()
		m, ok := cls.methods[methodKey{selector, arity}]
		if !ok {
			// Fall back to any arity for the same selector (covers
			// variadic natives and single-overload user methods).
			for k, v := range cls.methods {
				if k.selector == selector {
					m, ok = v, true
					break
				}
			}
		}
		cls.mu.RUnlock()
		if ok {
			return m, true
		}
	}
	return nil, false
}

// FieldIndex returns the slot index of name within this class's own field
// list (not inherited fields), or -1 if absent. Used by the field PIC.
func (c *Class) FieldIndex(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i, f := range c.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// InheritsFrom reports whether c is name or a (possibly transitive)
// subclass of a class named name, used by `catch (e: Exception)` matching
// (§4.5) and `is`-style checks.
func (c *Class) InheritsFrom(name string) bool {
	for cls := c; cls != nil; cls = cls.Parent {
		if cls.Name == name {
			return true
		}
	}
	return false
}

// Synthetic classes for primitive values (§3.2: "primitives have synthetic
// classes"). They have no user-visible parent and their method tables are
// populated by internal/builtins at embedder-scope construction time.
var (
	VoidClass  = NewClass("Void", nil)
	NullClass  = NewClass("Null", nil)
	BoolClass  = NewClass("Bool", nil)
	CharClass  = NewClass("Char", nil)
	IntClass   = NewClass("Int", nil)
	RealClass  = NewClass("Real", nil)
	StringClass = NewClass("String", nil)
	ListClass  = NewClass("List", nil)
	MapClass   = NewClass("Map", nil)
	SetClass   = NewClass("Set", nil)
	RangeClass = NewClass("Range", nil)
	RegexClass = NewClass("Regex", nil)
	FunctionClass = NewClass("Function", nil)
	ClassClass = NewClass("Class", nil)
	ExceptionClass = NewClass("Exception", nil)
)

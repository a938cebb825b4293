package ast

import (
	"strings"

	"github.com/sergeych/lyng/internal/source"
)

func (*Identifier) expressionNode()     {}
func (*IntLiteral) expressionNode()     {}
func (*RealLiteral) expressionNode()    {}
func (*CharLiteral) expressionNode()    {}
func (*BoolLiteral) expressionNode()    {}
func (*NullLiteral) expressionNode()    {}
func (*VoidLiteral) expressionNode()    {}
func (*ThisExpr) expressionNode()       {}
func (*StringLiteral) expressionNode()  {}
func (*RegexLiteral) expressionNode()   {}
func (*ListLiteral) expressionNode()    {}
func (*MapLiteral) expressionNode()     {}
func (*RangeExpr) expressionNode()      {}
func (*LambdaExpr) expressionNode()     {}
func (*MemberExpr) expressionNode()     {}
func (*IndexExpr) expressionNode()      {}
func (*CallExpr) expressionNode()       {}
func (*UnaryExpr) expressionNode()      {}
func (*BinaryExpr) expressionNode()     {}
func (*AssignExpr) expressionNode()     {}
func (*CompoundAssign) expressionNode() {}
func (*ElvisExpr) expressionNode()      {}

// Identifier is a bare name reference, resolved against the lexical scope
// chain (and, via the local-slot PIC, a cached slot index).
type Identifier struct {
	NamePos source.Pos
	Name    string

	// Cache holds this site's local-slot PIC (internal/ic.LocalSlotCache),
	// populated and consulted only by internal/eval. Untyped here so that
	// ast has no dependency on the cache/value packages (they depend on
	// ast, not the other way around).
	Cache any
}

func (i *Identifier) Pos() source.Pos { return i.NamePos }
func (i *Identifier) String() string  { return i.Name }

type IntLiteral struct {
	LitPos source.Pos
	Value  int64
}

func (n *IntLiteral) Pos() source.Pos { return n.LitPos }
func (n *IntLiteral) String() string  { return n.LitPos.String() }

type RealLiteral struct {
	LitPos source.Pos
	Value  float64
}

func (n *RealLiteral) Pos() source.Pos { return n.LitPos }
func (n *RealLiteral) String() string  { return "real" }

type CharLiteral struct {
	LitPos source.Pos
	Value  rune
}

func (n *CharLiteral) Pos() source.Pos { return n.LitPos }
func (n *CharLiteral) String() string  { return string(n.Value) }

type BoolLiteral struct {
	LitPos source.Pos
	Value  bool
}

func (n *BoolLiteral) Pos() source.Pos { return n.LitPos }
func (n *BoolLiteral) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

type NullLiteral struct{ LitPos source.Pos }

func (n *NullLiteral) Pos() source.Pos { return n.LitPos }
func (n *NullLiteral) String() string  { return "null" }

type VoidLiteral struct{ LitPos source.Pos }

func (n *VoidLiteral) Pos() source.Pos { return n.LitPos }
func (n *VoidLiteral) String() string  { return "void" }

type ThisExpr struct{ LitPos source.Pos }

func (n *ThisExpr) Pos() source.Pos { return n.LitPos }
func (n *ThisExpr) String() string  { return "this" }

// StringLiteral is a (possibly interpolated) string. Parts alternates
// literal text fragments and embedded expressions: Parts has one more
// element than Exprs, and evaluation concatenates
// Parts[0], toString(Exprs[0]), Parts[1], toString(Exprs[1]), ...
type StringLiteral struct {
	LitPos source.Pos
	Parts  []string
	Exprs  []Expression
}

func (n *StringLiteral) Pos() source.Pos { return n.LitPos }
func (n *StringLiteral) String() string  { return strings.Join(n.Parts, "${…}") }

// RegexLiteral is a `/pattern/flags` literal.
type RegexLiteral struct {
	LitPos  source.Pos
	Pattern string
	Flags   string
}

func (n *RegexLiteral) Pos() source.Pos { return n.LitPos }
func (n *RegexLiteral) String() string  { return "/" + n.Pattern + "/" + n.Flags }

type ListLiteral struct {
	LitPos   source.Pos
	Elements []Expression
}

func (n *ListLiteral) Pos() source.Pos { return n.LitPos }
func (n *ListLiteral) String() string  { return "[...]" }

type MapEntry struct {
	Key   Expression
	Value Expression
}

type MapLiteral struct {
	LitPos  source.Pos
	Entries []MapEntry
}

func (n *MapLiteral) Pos() source.Pos { return n.LitPos }
func (n *MapLiteral) String() string  { return "{...}" }

// RangeExpr is `a..b`, `a..<b`, optionally `step s`.
type RangeExpr struct {
	OpPos     source.Pos
	From      Expression
	To        Expression
	Exclusive bool
	Step      Expression // nil if not given
}

func (n *RangeExpr) Pos() source.Pos { return n.OpPos }
func (n *RangeExpr) String() string  { return "range" }

// LambdaExpr is `{ params -> body }`, and also the desugared form of a
// trailing block `foo(x) { ... }`.
type LambdaExpr struct {
	LitPos source.Pos
	Params []Identifier
	Body   []Statement
}

func (n *LambdaExpr) Pos() source.Pos { return n.LitPos }
func (n *LambdaExpr) String() string  { return "lambda" }

// MemberExpr is `recv.name` or, if Safe is set, `recv?.name`.
type MemberExpr struct {
	DotPos source.Pos
	Recv   Expression
	Name   string
	Safe   bool

	// Cache holds this site's field PIC (internal/ic.FieldCache).
	Cache any
}

func (n *MemberExpr) Pos() source.Pos { return n.DotPos }
func (n *MemberExpr) String() string  { return n.Recv.String() + "." + n.Name }

type IndexExpr struct {
	BracketPos source.Pos
	Recv       Expression
	Index      Expression

	// Cache holds this site's index PIC (internal/ic.IndexCache).
	Cache any
}

func (n *IndexExpr) Pos() source.Pos { return n.BracketPos }
func (n *IndexExpr) String() string  { return n.Recv.String() + "[...]" }

// Arguments is the immutable argument list built by an ArgsBuilder at a call
// site (§3.5). TailBlock is true when the call used `foo(x) { ... }` syntax
// (§4.2), letting the callee distinguish a real trailing block from a
// caller-supplied lambda argument.
type Arguments struct {
	Values    []Expression
	TailBlock bool
}

type CallExpr struct {
	ParenPos source.Pos
	Callee   Expression
	Args     Arguments

	// MethodCache holds this site's method PIC (internal/ic.MethodCache),
	// used only when Callee is a MemberExpr (a method call, as opposed to
	// calling a plain function value). ArgsCache holds the reusable
	// ArgsBuilder accumulator (internal/value.ArgsBuilder) for this site.
	MethodCache any
	ArgsCache   any
}

func (n *CallExpr) Pos() source.Pos { return n.ParenPos }
func (n *CallExpr) String() string  { return n.Callee.String() + "(...)" }

type UnaryExpr struct {
	OpPos    source.Pos
	Operator string // "-", "!"
	Operand  Expression
}

func (n *UnaryExpr) Pos() source.Pos { return n.OpPos }
func (n *UnaryExpr) String() string  { return n.Operator + n.Operand.String() }

type BinaryExpr struct {
	OpPos    source.Pos
	Operator string
	Left     Expression
	Right    Expression
}

func (n *BinaryExpr) Pos() source.Pos { return n.OpPos }
func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// AssignExpr is a plain `lhs = rhs`. lhs must be an Identifier, MemberExpr,
// or IndexExpr.
type AssignExpr struct {
	OpPos source.Pos
	LHS   Expression
	RHS   Expression
}

func (n *AssignExpr) Pos() source.Pos { return n.OpPos }
func (n *AssignExpr) String() string  { return n.LHS.String() + " = " + n.RHS.String() }

// CompoundAssign is `lhs += rhs` and friends; Operator is the underlying
// binary operator ("+", "-", "*", "/", "%").
type CompoundAssign struct {
	OpPos    source.Pos
	Operator string
	LHS      Expression
	RHS      Expression
}

func (n *CompoundAssign) Pos() source.Pos { return n.OpPos }
func (n *CompoundAssign) String() string {
	return n.LHS.String() + " " + n.Operator + "= " + n.RHS.String()
}

// ElvisExpr is `lhs ?: rhs`: lhs unless it is null/void, else rhs.
type ElvisExpr struct {
	OpPos source.Pos
	LHS   Expression
	RHS   Expression
}

func (n *ElvisExpr) Pos() source.Pos { return n.OpPos }
func (n *ElvisExpr) String() string  { return n.LHS.String() + " ?: " + n.RHS.String() }

package ast

import "github.com/sergeych/lyng/internal/source"

func (*ValDecl) statementNode()      {}
func (*VarDecl) statementNode()      {}
func (*FunDecl) statementNode()      {}
func (*ImportDecl) statementNode()   {}
func (*ExprStmt) statementNode()     {}
func (*Block) statementNode()        {}
func (*IfStmt) statementNode()       {}
func (*WhileStmt) statementNode()    {}
func (*DoWhileStmt) statementNode()  {}
func (*ForInStmt) statementNode()    {}
func (*BreakStmt) statementNode()    {}
func (*ContinueStmt) statementNode() {}
func (*ReturnStmt) statementNode()   {}
func (*ThrowStmt) statementNode()    {}
func (*TryStmt) statementNode()      {}

// ValDecl/VarDecl bind a new local: `val name = expr` (immutable) or
// `var name = expr` (mutable). Init may be nil for `var` with no initializer.
type ValDecl struct {
	KwPos source.Pos
	Name  string
	Init  Expression
	Doc   DocComment
}

func (n *ValDecl) Pos() source.Pos { return n.KwPos }
func (n *ValDecl) String() string  { return "val " + n.Name }

type VarDecl struct {
	KwPos source.Pos
	Name  string
	Init  Expression
	Doc   DocComment
}

func (n *VarDecl) Pos() source.Pos { return n.KwPos }
func (n *VarDecl) String() string  { return "var " + n.Name }

// FunDecl is `fun name(params) { body }`.
type FunDecl struct {
	KwPos  source.Pos
	Name   string
	Params []Identifier
	Body   []Statement
	Doc    DocComment
}

func (n *FunDecl) Pos() source.Pos { return n.KwPos }
func (n *FunDecl) String() string  { return "fun " + n.Name }

// ImportDecl names a standard-library or host module; the core only parses
// and records it (§1: I/O/fs modules are an external collaborator).
type ImportDecl struct {
	KwPos source.Pos
	Path  string // dotted path, e.g. "lyng.io.fs"
}

func (n *ImportDecl) Pos() source.Pos { return n.KwPos }
func (n *ImportDecl) String() string  { return "import " + n.Path }

type ExprStmt struct {
	StartPos source.Pos
	Expr     Expression
}

func (n *ExprStmt) Pos() source.Pos { return n.StartPos }
func (n *ExprStmt) String() string  { return n.Expr.String() }

type Block struct {
	StartPos source.Pos
	Stmts    []Statement
}

func (n *Block) Pos() source.Pos { return n.StartPos }
func (n *Block) String() string  { return "{ ... }" }

type IfStmt struct {
	KwPos     source.Pos
	Cond      Expression
	Then      *Block
	Else      Statement // *Block or *IfStmt (else-if chain), or nil
}

func (n *IfStmt) Pos() source.Pos { return n.KwPos }
func (n *IfStmt) String() string  { return "if (...)" }

// Label optionally names a loop for `break label`/`continue label`.
type WhileStmt struct {
	KwPos source.Pos
	Label string
	Cond  Expression
	Body  *Block
}

func (n *WhileStmt) Pos() source.Pos { return n.KwPos }
func (n *WhileStmt) String() string  { return "while (...)" }

type DoWhileStmt struct {
	KwPos source.Pos
	Label string
	Body  *Block
	Cond  Expression
}

func (n *DoWhileStmt) Pos() source.Pos { return n.KwPos }
func (n *DoWhileStmt) String() string  { return "do ... while (...)" }

// ForInStmt is `for name in iterable { body }`; the iterable is obtained via
// the `iterator` selector (§4.3, §4.8).
type ForInStmt struct {
	KwPos    source.Pos
	Label    string
	VarName  string
	Iterable Expression
	Body     *Block
}

func (n *ForInStmt) Pos() source.Pos { return n.KwPos }
func (n *ForInStmt) String() string  { return "for " + n.VarName + " in ..." }

type BreakStmt struct {
	KwPos source.Pos
	Label string
}

func (n *BreakStmt) Pos() source.Pos { return n.KwPos }
func (n *BreakStmt) String() string  { return "break" }

type ContinueStmt struct {
	KwPos source.Pos
	Label string
}

func (n *ContinueStmt) Pos() source.Pos { return n.KwPos }
func (n *ContinueStmt) String() string  { return "continue" }

type ReturnStmt struct {
	KwPos source.Pos
	Value Expression // nil for bare `return`
}

func (n *ReturnStmt) Pos() source.Pos { return n.KwPos }
func (n *ReturnStmt) String() string  { return "return" }

type ThrowStmt struct {
	KwPos source.Pos
	Value Expression
}

func (n *ThrowStmt) Pos() source.Pos { return n.KwPos }
func (n *ThrowStmt) String() string  { return "throw" }

// CatchClause matches by class name, with an optional binding name.
type CatchClause struct {
	KwPos     source.Pos
	ClassName string // "" matches any Exception subtype
	Binding   string
	Body      *Block
}

type TryStmt struct {
	KwPos   source.Pos
	Body    *Block
	Catches []CatchClause
	Finally *Block // nil if absent
}

func (n *TryStmt) Pos() source.Pos { return n.KwPos }
func (n *TryStmt) String() string  { return "try ..." }

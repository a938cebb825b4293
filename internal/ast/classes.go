package ast

import "github.com/sergeych/lyng/internal/source"

// FieldDecl is one field of a ClassDecl: `var x = 0` or `val x = 0` inside a
// class body. Default is evaluated once per instance at construction time
// (a thunk re-evaluated per §3.3, never shared mutable state across
// instances).
type FieldDecl struct {
	Name      string
	Mutable   bool
	Default   Expression // nil => zero value of the implied type
	Doc       DocComment
}

// MethodDecl is a method or operator-overload body within a class.
// Selector is the dispatch name: a user method name, or one of the fixed
// operator selectors (§4.3: "plus", "minus", "times", "div", "rem",
// "equals", "compareTo", "get", "set", "call", "iterator").
type MethodDecl struct {
	KwPos    source.Pos
	Selector string
	Params   []Identifier
	Body     []Statement
	Doc      DocComment
}

// ClassDecl declares a class: optional parent, fields, methods, and
// operator overloads (the latter are just MethodDecls with a fixed
// selector name, per the uniform dispatch protocol in §4.3).
type ClassDecl struct {
	KwPos   source.Pos
	Name    string
	Parent  string // "" if none
	Fields  []FieldDecl
	Methods []MethodDecl
	Doc     DocComment
}

func (n *ClassDecl) statementNode()    {}
func (n *ClassDecl) Pos() source.Pos   { return n.KwPos }
func (n *ClassDecl) String() string    { return "class " + n.Name }

// EnumDecl declares an enum: a synthetic class whose instances are ordinal
// singletons (SPEC_FULL §3.3 supplement — the distilled spec names `enum`
// as a declaration keyword without specifying its runtime shape).
type EnumDecl struct {
	KwPos   source.Pos
	Name    string
	Members []string
	Doc     DocComment
}

func (n *EnumDecl) statementNode()  {}
func (n *EnumDecl) Pos() source.Pos { return n.KwPos }
func (n *EnumDecl) String() string  { return "enum " + n.Name }

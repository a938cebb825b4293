// Package ast defines the executable AST produced by the parser.
//
// Nodes are pure data: Node only carries a Pos() and a String() debug
// rendering. Evaluation lives in internal/eval, which dispatches on node
// type with a type switch — keeping this package free of a dependency on
// the value model lets internal/value's Function objects hold a *FunctionDecl
// body without an import cycle back to the evaluator.
package ast

import "github.com/sergeych/lyng/internal/source"

// Node is the base of every AST element.
type Node interface {
	Pos() source.Pos
	String() string
}

// Expression is any node that yields a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node executed for effect.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a compiled script: an ordered list of top-level
// statements (declarations and expression statements).
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() source.Pos {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return source.Pos{}
}

func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

// DocComment is the type of the Doc field on declaration nodes. The lexer
// discards comments and the parser never sets a Doc field, so it is always
// empty. It has no runtime effect.
type DocComment string

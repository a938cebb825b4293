package parser

import (
	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/token"
)

// parseClassDecl parses `class Name [: Parent] { fields and methods }`.
// Operator overloads are plain method declarations whose name happens to
// match one of the fixed dispatch selectors ("plus", "equals", "get", ...);
// there is no separate "operator" syntax.
func (p *Parser) parseClassDecl() ast.Statement {
	decl := &ast.ClassDecl{KwPos: p.cur.Pos}
	p.advance() // 'class'
	decl.Name = p.cur.Literal
	p.expect(token.IDENT)
	if p.curTokenIs(token.COLON) {
		p.advance()
		decl.Parent = p.cur.Literal
		p.expect(token.IDENT)
	}
	p.expect(token.LBRACE)
	p.skipTerminators()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		switch p.cur.Type {
		case token.VAL:
			decl.Fields = append(decl.Fields, p.parseFieldDecl(false))
		case token.VAR:
			decl.Fields = append(decl.Fields, p.parseFieldDecl(true))
		case token.FUN:
			decl.Methods = append(decl.Methods, p.parseMethodDecl())
		default:
			p.errorf(p.cur.Pos, "expected field or method declaration in class body, got %s", p.cur.Type)
			p.synchronize()
		}
		if !p.isTerminator() && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
			p.errorf(p.cur.Pos, "expected end of statement, got %s", p.cur.Type)
			p.synchronize()
		}
		p.skipTerminators()
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseFieldDecl(mutable bool) ast.FieldDecl {
	p.advance() // 'val' or 'var'
	field := ast.FieldDecl{Name: p.cur.Literal, Mutable: mutable}
	p.expect(token.IDENT)
	if p.curTokenIs(token.ASSIGN) {
		p.advance()
		field.Default = p.parseExpression(LOWEST)
	}
	return field
}

func (p *Parser) parseMethodDecl() ast.MethodDecl {
	method := ast.MethodDecl{KwPos: p.cur.Pos}
	p.advance() // 'fun'
	method.Selector = p.cur.Literal
	p.expect(token.IDENT)
	method.Params = p.parseParamList()
	if p.curTokenIs(token.LBRACE) {
		method.Body = p.parseBlock().Stmts
	} else {
		p.errorf(p.cur.Pos, "expected '{' to start method body, got %s", p.cur.Type)
	}
	return method
}

// parseEnumDecl parses `enum Name { A, B, C }`.
func (p *Parser) parseEnumDecl() ast.Statement {
	decl := &ast.EnumDecl{KwPos: p.cur.Pos}
	p.advance() // 'enum'
	decl.Name = p.cur.Literal
	p.expect(token.IDENT)
	p.expect(token.LBRACE)
	p.skipTerminators()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		decl.Members = append(decl.Members, p.cur.Literal)
		p.expect(token.IDENT)
		p.skipTerminators()
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
		p.skipTerminators()
	}
	p.skipTerminators()
	p.expect(token.RBRACE)
	return decl
}

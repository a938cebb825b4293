package parser

import (
	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/token"
)

// parseStatement dispatches on the current token to the right statement
// grammar rule. A bare `IDENT ":"` ahead of while/do/for is a loop label
// (§3.5's Label field on WhileStmt/DoWhileStmt/ForInStmt); everything else
// with no dedicated statement form falls through to an expression
// statement, covering plain calls and assignments alike.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.VAL:
		return p.parseValDecl()
	case token.VAR:
		return p.parseVarDecl()
	case token.FUN:
		return p.parseFunDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.IMPORT:
		return p.parseImportDecl()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt("")
	case token.DO:
		return p.parseDoWhileStmt("")
	case token.FOR:
		return p.parseForInStmt("")
	case token.BREAK:
		return p.parseBreakStmt()
	case token.CONTINUE:
		return p.parseContinueStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.THROW:
		return p.parseThrowStmt()
	case token.TRY:
		return p.parseTryStmt()
	case token.LBRACE:
		return p.parseBlock()
	case token.IDENT:
		if label, ok := p.tryParseLabel(); ok {
			return p.parseLabeledStmt(label)
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// tryParseLabel speculatively consumes `IDENT ":"` and reports whether it
// was actually there, restoring the cursor otherwise (an identifier
// followed by `:` that is not a label never occurs elsewhere in the
// grammar, but the lookahead is cheap enough to keep uniform).
func (p *Parser) tryParseLabel() (string, bool) {
	m := p.mark()
	name := p.cur.Literal
	p.advance()
	if p.curTokenIs(token.COLON) {
		p.advance()
		return name, true
	}
	p.reset(m)
	return "", false
}

func (p *Parser) parseLabeledStmt(label string) ast.Statement {
	switch p.cur.Type {
	case token.WHILE:
		return p.parseWhileStmt(label)
	case token.DO:
		return p.parseDoWhileStmt(label)
	case token.FOR:
		return p.parseForInStmt(label)
	default:
		p.errorf(p.cur.Pos, "label must precede while/do/for, got %s", p.cur.Type)
		return p.parseExprStmt()
	}
}

func (p *Parser) parseValDecl() ast.Statement {
	decl := &ast.ValDecl{KwPos: p.cur.Pos}
	p.advance() // 'val'
	decl.Name = p.cur.Literal
	p.expect(token.IDENT)
	if p.curTokenIs(token.ASSIGN) {
		p.advance()
		decl.Init = p.parseExpression(LOWEST)
	}
	return decl
}

func (p *Parser) parseVarDecl() ast.Statement {
	decl := &ast.VarDecl{KwPos: p.cur.Pos}
	p.advance() // 'var'
	decl.Name = p.cur.Literal
	p.expect(token.IDENT)
	if p.curTokenIs(token.ASSIGN) {
		p.advance()
		decl.Init = p.parseExpression(LOWEST)
	}
	return decl
}

func (p *Parser) parseFunDecl() *ast.FunDecl {
	decl := &ast.FunDecl{KwPos: p.cur.Pos}
	p.advance() // 'fun'
	decl.Name = p.cur.Literal
	p.expect(token.IDENT)
	decl.Params = p.parseParamList()
	if p.curTokenIs(token.LBRACE) {
		decl.Body = p.parseBlock().Stmts
	} else {
		p.errorf(p.cur.Pos, "expected '{' to start function body, got %s", p.cur.Type)
	}
	return decl
}

// parseParamList parses `(a, b, c)`, assuming cur is the opening LPAREN.
func (p *Parser) parseParamList() []ast.Identifier {
	var params []ast.Identifier
	if !p.expect(token.LPAREN) {
		return params
	}
	if p.curTokenIs(token.RPAREN) {
		p.advance()
		return params
	}
	for {
		params = append(params, ast.Identifier{NamePos: p.cur.Pos, Name: p.cur.Literal})
		p.expect(token.IDENT)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseImportDecl() ast.Statement {
	decl := &ast.ImportDecl{KwPos: p.cur.Pos}
	p.advance() // 'import'
	path := p.cur.Literal
	p.expect(token.IDENT)
	for p.curTokenIs(token.DOT) {
		p.advance()
		path += "." + p.cur.Literal
		p.expect(token.IDENT)
	}
	decl.Path = path
	return decl
}

func (p *Parser) parseExprStmt() ast.Statement {
	pos := p.cur.Pos
	expr := p.parseExpression(LOWEST)
	return &ast.ExprStmt{StartPos: pos, Expr: expr}
}

// parseParenCondition parses `( expr )`, the condition form every control
// statement in this grammar uses (§8 scenario table: `while(i<1000)`,
// `if(x==0)`).
func (p *Parser) parseParenCondition() ast.Expression {
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return cond
}

// parseControlBody parses either a `{ ... }` block or a single bare
// statement (`if(x==0) return 1;`), normalizing both into a *Block.
func (p *Parser) parseControlBody() *ast.Block {
	if p.curTokenIs(token.LBRACE) {
		return p.parseBlock()
	}
	pos := p.cur.Pos
	stmt := p.parseStatement()
	var stmts []ast.Statement
	if stmt != nil {
		stmts = []ast.Statement{stmt}
	}
	return &ast.Block{StartPos: pos, Stmts: stmts}
}

func (p *Parser) parseIfStmt() ast.Statement {
	stmt := &ast.IfStmt{KwPos: p.cur.Pos}
	p.advance() // 'if'
	stmt.Cond = p.parseParenCondition()
	stmt.Then = p.parseControlBody()
	p.skipTerminatorsBeforeElse()
	if p.curTokenIs(token.ELSE) {
		p.advance()
		if p.curTokenIs(token.IF) {
			stmt.Else = p.parseIfStmt()
		} else {
			stmt.Else = p.parseControlBody()
		}
	}
	return stmt
}

// skipTerminatorsBeforeElse allows `}` and `else` to sit on separate lines
// without the intervening newline being mistaken for the statement's own
// terminator.
func (p *Parser) skipTerminatorsBeforeElse() {
	m := p.mark()
	p.skipTerminators()
	if !p.curTokenIs(token.ELSE) {
		p.reset(m)
	}
}

func (p *Parser) parseWhileStmt(label string) ast.Statement {
	stmt := &ast.WhileStmt{KwPos: p.cur.Pos, Label: label}
	p.advance() // 'while'
	stmt.Cond = p.parseParenCondition()
	stmt.Body = p.parseControlBody()
	return stmt
}

func (p *Parser) parseDoWhileStmt(label string) ast.Statement {
	stmt := &ast.DoWhileStmt{KwPos: p.cur.Pos, Label: label}
	p.advance() // 'do'
	stmt.Body = p.parseControlBody()
	p.skipTerminators()
	p.expect(token.WHILE)
	stmt.Cond = p.parseParenCondition()
	return stmt
}

func (p *Parser) parseForInStmt(label string) ast.Statement {
	stmt := &ast.ForInStmt{KwPos: p.cur.Pos, Label: label}
	p.advance() // 'for'
	p.expect(token.LPAREN)
	stmt.VarName = p.cur.Literal
	p.expect(token.IDENT)
	p.expect(token.IN)
	stmt.Iterable = p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	stmt.Body = p.parseControlBody()
	return stmt
}

func (p *Parser) parseBreakStmt() ast.Statement {
	stmt := &ast.BreakStmt{KwPos: p.cur.Pos}
	p.advance() // 'break'
	if p.curTokenIs(token.IDENT) {
		stmt.Label = p.cur.Literal
		p.advance()
	}
	return stmt
}

func (p *Parser) parseContinueStmt() ast.Statement {
	stmt := &ast.ContinueStmt{KwPos: p.cur.Pos}
	p.advance() // 'continue'
	if p.curTokenIs(token.IDENT) {
		stmt.Label = p.cur.Literal
		p.advance()
	}
	return stmt
}

func (p *Parser) parseReturnStmt() ast.Statement {
	stmt := &ast.ReturnStmt{KwPos: p.cur.Pos}
	p.advance() // 'return'
	if !p.isTerminator() && !p.curTokenIs(token.EOF) && !p.curTokenIs(token.RBRACE) {
		stmt.Value = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseThrowStmt() ast.Statement {
	stmt := &ast.ThrowStmt{KwPos: p.cur.Pos}
	p.advance() // 'throw'
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

// parseTryStmt parses `try { } catch(e: Class) { } ... finally { }`. A
// catch clause may omit the binding (`catch(Class){}`: a single name in the
// parens is always taken as the class name), or the parens entirely
// (`catch {}`, matching any Exception subtype with no binding).
func (p *Parser) parseTryStmt() ast.Statement {
	stmt := &ast.TryStmt{KwPos: p.cur.Pos}
	p.advance() // 'try'
	stmt.Body = p.parseBlock()
	for {
		p.skipTerminatorsBeforeKeyword(token.CATCH)
		if !p.curTokenIs(token.CATCH) {
			break
		}
		stmt.Catches = append(stmt.Catches, p.parseCatchClause())
	}
	p.skipTerminatorsBeforeKeyword(token.FINALLY)
	if p.curTokenIs(token.FINALLY) {
		p.advance()
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

func (p *Parser) skipTerminatorsBeforeKeyword(t token.Type) {
	m := p.mark()
	p.skipTerminators()
	if !p.curTokenIs(t) {
		p.reset(m)
	}
}

func (p *Parser) parseCatchClause() ast.CatchClause {
	clause := ast.CatchClause{KwPos: p.cur.Pos}
	p.advance() // 'catch'
	if p.curTokenIs(token.LPAREN) {
		p.advance()
		first := p.cur.Literal
		p.expect(token.IDENT)
		if p.curTokenIs(token.COLON) {
			p.advance()
			clause.Binding = first
			clause.ClassName = p.cur.Literal
			p.expect(token.IDENT)
		} else {
			clause.ClassName = first
		}
		p.expect(token.RPAREN)
	}
	clause.Body = p.parseBlock()
	return clause
}

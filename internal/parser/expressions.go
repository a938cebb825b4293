package parser

import (
	"strconv"
	"strings"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/source"
	"github.com/sergeych/lyng/internal/token"
)

// assignOps maps a compound-assignment token to the binary operator it
// desugars to (§3.5: `x += y` runs `set(x, plus(get(x), y))` at eval time).
var assignOps = map[token.Type]string{
	token.PLUS_EQ:    "+",
	token.MINUS_EQ:   "-",
	token.STAR_EQ:    "*",
	token.SLASH_EQ:   "/",
	token.PERCENT_EQ: "%",
}

// parseExpression is the Pratt core: a prefix parse, then as many infix
// parses as the next operator's precedence allows. Assignment binds looser
// than everything else and is right-associative, so it is handled once,
// after the precedence-climbing loop bottoms out at LOWEST.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.cur.Type]
	if !ok {
		p.errorf(p.cur.Pos, "unexpected token %s", p.cur.Type)
		return nil
	}
	left := prefix()

	for precedence < p.curPrecedence() {
		infix, ok := p.infixParseFns[p.cur.Type]
		if !ok {
			return left
		}
		left = infix(left)
	}

	if precedence == LOWEST {
		left = p.parseAssignment(left)
	}
	return left
}

func (p *Parser) parseAssignment(left ast.Expression) ast.Expression {
	switch p.cur.Type {
	case token.ASSIGN:
		pos := p.cur.Pos
		p.advance()
		rhs := p.parseExpression(LOWEST)
		return &ast.AssignExpr{OpPos: pos, LHS: left, RHS: rhs}
	case token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ, token.PERCENT_EQ:
		pos := p.cur.Pos
		op := assignOps[p.cur.Type]
		p.advance()
		rhs := p.parseExpression(LOWEST)
		return &ast.CompoundAssign{OpPos: pos, Operator: op, LHS: left, RHS: rhs}
	default:
		return left
	}
}

func (p *Parser) parseIdentifier() ast.Expression {
	id := &ast.Identifier{NamePos: p.cur.Pos, Name: p.cur.Literal}
	p.advance()
	return id
}

func (p *Parser) parseIntLiteral() ast.Expression {
	pos := p.cur.Pos
	v, err := strconv.ParseInt(p.cur.Literal, 0, 64)
	if err != nil {
		p.errorf(pos, "invalid integer literal %q", p.cur.Literal)
	}
	p.advance()
	return &ast.IntLiteral{LitPos: pos, Value: v}
}

func (p *Parser) parseRealLiteral() ast.Expression {
	pos := p.cur.Pos
	v, err := strconv.ParseFloat(p.cur.Literal, 64)
	if err != nil {
		p.errorf(pos, "invalid real literal %q", p.cur.Literal)
	}
	p.advance()
	return &ast.RealLiteral{LitPos: pos, Value: v}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	pos := p.cur.Pos
	lit := &ast.CharLiteral{LitPos: pos}
	if r := []rune(p.cur.Literal); len(r) > 0 {
		lit.Value = r[0]
	}
	p.advance()
	return lit
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	lit := &ast.BoolLiteral{LitPos: p.cur.Pos, Value: p.curTokenIs(token.TRUE)}
	p.advance()
	return lit
}

func (p *Parser) parseNullLiteral() ast.Expression {
	lit := &ast.NullLiteral{LitPos: p.cur.Pos}
	p.advance()
	return lit
}

func (p *Parser) parseVoidLiteral() ast.Expression {
	lit := &ast.VoidLiteral{LitPos: p.cur.Pos}
	p.advance()
	return lit
}

func (p *Parser) parseThisExpr() ast.Expression {
	lit := &ast.ThisExpr{LitPos: p.cur.Pos}
	p.advance()
	return lit
}

// parseStringLiteral drives the lexer's STRING/STRING_PART alternation: a
// STRING_PART chunk is followed by an embedded expression (already switched
// to normal tokenization by the lexer) up to the matching '}', after which
// CloseInterpolation puts the lexer back into string-scanning mode for the
// next chunk. A plain STRING with no interpolation is just the first chunk.
func (p *Parser) parseStringLiteral() ast.Expression {
	lit := &ast.StringLiteral{LitPos: p.cur.Pos}
	for {
		lit.Parts = append(lit.Parts, p.cur.Literal)
		if p.curTokenIs(token.STRING) {
			p.advance()
			return lit
		}
		p.advance() // move onto the embedded expression's first token
		lit.Exprs = append(lit.Exprs, p.parseExpression(LOWEST))
		if !p.curTokenIs(token.RBRACE) {
			p.errorf(p.cur.Pos, "expected '}' to close string interpolation, got %s", p.cur.Type)
			return lit
		}
		p.l.CloseInterpolation()
		p.advance() // pulls the next STRING/STRING_PART chunk
	}
}

// parseRegexLiteral splits the lexer's NUL-packed "pattern\x00flags" literal.
func (p *Parser) parseRegexLiteral() ast.Expression {
	pos := p.cur.Pos
	pattern, flags, _ := strings.Cut(p.cur.Literal, "\x00")
	p.advance()
	return &ast.RegexLiteral{LitPos: pos, Pattern: pattern, Flags: flags}
}

func (p *Parser) parseListLiteral() ast.Expression {
	lit := &ast.ListLiteral{LitPos: p.cur.Pos}
	p.advance() // '['
	p.skipTerminators()
	if p.curTokenIs(token.RBRACKET) {
		p.advance()
		return lit
	}
	for {
		p.skipTerminators()
		lit.Elements = append(lit.Elements, p.parseExpression(LOWEST))
		p.skipTerminators()
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RBRACKET)
	return lit
}

// parseBraceExpression disambiguates a `{` in expression position between a
// lambda literal and a map literal. A lambda requires an explicit `->`
// (even with zero parameters: `{ -> body }`), so plain `{}` and
// `{"a": 1}` both read as maps (§8 scenario table's `{"a":1,"b":2}`).
func (p *Parser) parseBraceExpression() ast.Expression {
	pos := p.cur.Pos
	p.advance() // '{'
	if params, ok := p.tryParseLambdaHeader(); ok {
		return p.parseLambdaStatements(pos, params)
	}
	return p.parseMapLiteralBody(pos)
}

func (p *Parser) tryParseLambdaHeader() ([]ast.Identifier, bool) {
	m := p.mark()
	if p.curTokenIs(token.ARROW) {
		p.advance()
		return nil, true
	}
	var params []ast.Identifier
	for p.curTokenIs(token.IDENT) {
		params = append(params, ast.Identifier{NamePos: p.cur.Pos, Name: p.cur.Literal})
		p.advance()
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
	}
	if len(params) > 0 && p.curTokenIs(token.ARROW) {
		p.advance()
		return params, true
	}
	p.reset(m)
	return nil, false
}

// parseLambdaStatements parses a lambda or trailing-block body, assuming
// the opening '{' and any "params ->" header are already consumed.
func (p *Parser) parseLambdaStatements(pos source.Pos, params []ast.Identifier) *ast.LambdaExpr {
	lambda := &ast.LambdaExpr{LitPos: pos, Params: params}
	p.skipTerminators()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			lambda.Body = append(lambda.Body, stmt)
		}
		if !p.isTerminator() && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
			p.errorf(p.cur.Pos, "expected end of statement, got %s", p.cur.Type)
			p.synchronize()
		}
		p.skipTerminators()
	}
	p.expect(token.RBRACE)
	return lambda
}

func (p *Parser) parseMapLiteralBody(pos source.Pos) ast.Expression {
	lit := &ast.MapLiteral{LitPos: pos}
	p.skipTerminators()
	if p.curTokenIs(token.RBRACE) {
		p.advance()
		return lit
	}
	for {
		p.skipTerminators()
		key := p.parseExpression(LOWEST)
		p.expect(token.COLON)
		val := p.parseExpression(LOWEST)
		lit.Entries = append(lit.Entries, ast.MapEntry{Key: key, Value: val})
		p.skipTerminators()
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
		p.skipTerminators()
	}
	p.expect(token.RBRACE)
	return lit
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance() // '('
	expr := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return expr
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	pos := p.cur.Pos
	op := p.cur.Literal
	p.advance()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryExpr{OpPos: pos, Operator: op, Operand: operand}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	op := p.cur.Literal
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{OpPos: pos, Operator: op, Left: left, Right: right}
}

// parseElvisExpression is right-associative: `a ?: b ?: c` reads as
// `a ?: (b ?: c)`, so the RHS recurses at the same ELVIS precedence.
func (p *Parser) parseElvisExpression(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.advance() // '?:'
	right := p.parseExpression(ELVIS)
	return &ast.ElvisExpr{OpPos: pos, LHS: left, RHS: right}
}

func (p *Parser) parseRangeExpression(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	excl := p.curTokenIs(token.RANGE_EXCL)
	p.advance() // '..' or '..<'
	to := p.parseExpression(RANGE_)
	rng := &ast.RangeExpr{OpPos: pos, From: left, To: to, Exclusive: excl}
	if p.curTokenIs(token.STEP) {
		p.advance()
		rng.Step = p.parseExpression(RANGE_)
	}
	return rng
}

// parseArgumentList parses `(expr, expr, ...)`, assuming cur is the opening
// LPAREN.
func (p *Parser) parseArgumentList() ast.Arguments {
	var args ast.Arguments
	p.advance() // '('
	if p.curTokenIs(token.RPAREN) {
		p.advance()
		return args
	}
	for {
		args.Values = append(args.Values, p.parseExpression(LOWEST))
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return args
}

// parseCallExpression parses `callee(args)`, then checks for a trailing
// block `callee(args) { ... }` (§4.2: desugars to an appended lambda
// argument). The lexer never absorbs the newline after ')', so a trailing
// '{' on the same line is unambiguous without backtracking.
func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	pos := p.cur.Pos
	args := p.parseArgumentList()
	if p.curTokenIs(token.LBRACE) {
		lambdaPos := p.cur.Pos
		p.advance() // '{'
		block := p.parseLambdaStatements(lambdaPos, nil)
		args.Values = append(args.Values, block)
		args.TailBlock = true
	}
	return &ast.CallExpr{ParenPos: pos, Callee: callee, Args: args}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.advance() // '['
	idx := p.parseExpression(LOWEST)
	p.expect(token.RBRACKET)
	return &ast.IndexExpr{BracketPos: pos, Recv: left, Index: idx}
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	safe := p.curTokenIs(token.SAFE_DOT)
	p.advance() // '.' or '?.'
	name := p.cur.Literal
	p.expect(token.IDENT)
	return &ast.MemberExpr{DotPos: pos, Recv: left, Name: name, Safe: safe}
}

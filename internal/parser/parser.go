// Package parser implements a Pratt parser that turns a lexer's token
// stream into the AST defined by internal/ast.
//
// The lexer is a single-pass, non-bufferable scanner that also switches
// internal mode mid-stream (string-interpolation vs. normal tokens), so the
// parser keeps only a single current token rather than the classic
// cur/peek pair: every parse function, by convention, leaves the cursor on
// the first unconsumed token when it returns. The few places that
// genuinely need lookahead (an optional loop label, disambiguating a
// lambda literal from a map literal) use lexer.State snapshot/restore
// instead of a peek buffer.
package parser

import (
	"fmt"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/lexer"
	"github.com/sergeych/lyng/internal/source"
	"github.com/sergeych/lyng/internal/token"
)

// Precedence levels, lowest to highest binding power.
const (
	_ int = iota
	LOWEST
	ELVIS    // ?:
	LOGIC_OR // ||
	LOGIC_AND
	EQUALITY // == !=
	RELATIONAL
	RANGE_ // .. ..<
	SUM     // + -
	PRODUCT // * / %
	PREFIX  // -x, !x
	POSTFIX // call(), index[], member., safe-nav ?.
)

var precedences = map[token.Type]int{
	token.ELVIS:      ELVIS,
	token.OR:         LOGIC_OR,
	token.AND:        LOGIC_AND,
	token.EQ:         EQUALITY,
	token.NEQ:        EQUALITY,
	token.LT:         RELATIONAL,
	token.GT:         RELATIONAL,
	token.LE:         RELATIONAL,
	token.GE:         RELATIONAL,
	token.RANGE_INCL: RANGE_,
	token.RANGE_EXCL: RANGE_,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.STAR:       PRODUCT,
	token.SLASH:      PRODUCT,
	token.PERCENT:    PRODUCT,
	token.LPAREN:     POSTFIX,
	token.LBRACKET:   POSTFIX,
	token.DOT:        POSTFIX,
	token.SAFE_DOT:   POSTFIX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a recursive-descent/Pratt parser driven one token at a time.
type Parser struct {
	l *lexer.Lexer

	cur token.Token

	errors []*Error

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New returns a Parser positioned at the first token of src.
func New(src *source.Source) *Parser {
	p := &Parser{l: lexer.New(src)}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:       p.parseIdentifier,
		token.INT:         p.parseIntLiteral,
		token.REAL:        p.parseRealLiteral,
		token.CHAR:        p.parseCharLiteral,
		token.TRUE:        p.parseBoolLiteral,
		token.FALSE:       p.parseBoolLiteral,
		token.NULL:        p.parseNullLiteral,
		token.VOID:        p.parseVoidLiteral,
		token.THIS:        p.parseThisExpr,
		token.STRING:      p.parseStringLiteral,
		token.STRING_PART: p.parseStringLiteral,
		token.REGEX:       p.parseRegexLiteral,
		token.LBRACKET:    p.parseListLiteral,
		token.LBRACE:      p.parseBraceExpression,
		token.LPAREN:      p.parseGroupedExpression,
		token.MINUS:       p.parseUnaryExpression,
		token.NOT:         p.parseUnaryExpression,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:       p.parseBinaryExpression,
		token.MINUS:      p.parseBinaryExpression,
		token.STAR:       p.parseBinaryExpression,
		token.SLASH:      p.parseBinaryExpression,
		token.PERCENT:    p.parseBinaryExpression,
		token.EQ:         p.parseBinaryExpression,
		token.NEQ:        p.parseBinaryExpression,
		token.LT:         p.parseBinaryExpression,
		token.GT:         p.parseBinaryExpression,
		token.LE:         p.parseBinaryExpression,
		token.GE:         p.parseBinaryExpression,
		token.AND:        p.parseBinaryExpression,
		token.OR:         p.parseBinaryExpression,
		token.ELVIS:      p.parseElvisExpression,
		token.RANGE_INCL: p.parseRangeExpression,
		token.RANGE_EXCL: p.parseRangeExpression,
		token.LPAREN:     p.parseCallExpression,
		token.LBRACKET:   p.parseIndexExpression,
		token.DOT:        p.parseMemberExpression,
		token.SAFE_DOT:   p.parseMemberExpression,
	}

	p.advance()
	return p
}

// advance consumes the current token and pulls the next one from the
// lexer, passing cur's type (before it's replaced) so the lexer can decide
// whether an upcoming newline is a statement terminator.
func (p *Parser) advance() {
	tok, err := p.l.NextToken(p.cur.Type)
	if err != nil {
		p.errors = append(p.errors, &Error{Pos: tok.Pos, Message: err.Error()})
	}
	p.cur = tok
}

func (p *Parser) curTokenIs(t token.Type) bool { return p.cur.Type == t }

func (p *Parser) errorf(pos source.Pos, format string, args ...any) {
	p.errors = append(p.errors, &Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// expect advances past cur if it matches t, else records an error and
// leaves the cursor in place so the caller's synchronization loop can
// decide what to do next.
func (p *Parser) expect(t token.Type) bool {
	if p.curTokenIs(t) {
		p.advance()
		return true
	}
	p.errorf(p.cur.Pos, "expected %s, got %s", t, p.cur.Type)
	return false
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return LOWEST
}

// mark/reset implement the lexer.State-backed backtracking used by the
// handful of constructs ambiguous under one-token lookahead.
type mark struct {
	lexState  lexer.State
	cur       token.Token
	errorsLen int
}

func (p *Parser) mark() mark {
	return mark{lexState: p.l.Save(), cur: p.cur, errorsLen: len(p.errors)}
}

func (p *Parser) reset(m mark) {
	p.l.Restore(m.lexState)
	p.cur = m.cur
	p.errors = p.errors[:m.errorsLen]
}

// isTerminator reports whether cur ends a statement (a real newline or an
// explicit semicolon).
func (p *Parser) isTerminator() bool {
	return p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON)
}

// skipTerminators consumes zero or more consecutive statement terminators
// (blank lines, stray semicolons).
func (p *Parser) skipTerminators() {
	for p.isTerminator() {
		p.advance()
	}
}

// ParseProgram parses the whole token stream into a Program, accumulating
// every syntax error encountered rather than stopping at the first one.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	p.skipTerminators()
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if !p.isTerminator() && !p.curTokenIs(token.EOF) {
			p.errorf(p.cur.Pos, "expected end of statement, got %s", p.cur.Type)
			p.synchronize()
		}
		p.skipTerminators()
	}
	if len(p.errors) > 0 {
		return prog, ErrorList(p.errors)
	}
	return prog, nil
}

// synchronize advances past tokens until a plausible statement boundary,
// so one syntax error does not cascade into a wall of further ones.
func (p *Parser) synchronize() {
	for !p.isTerminator() && !p.curTokenIs(token.EOF) && !p.curTokenIs(token.RBRACE) {
		p.advance()
	}
}

// parseBlock parses `{ stmt* }`, assuming cur is already positioned at the
// opening LBRACE.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{StartPos: p.cur.Pos}
	p.advance() // consume '{'
	p.skipTerminators()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if !p.isTerminator() && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
			p.errorf(p.cur.Pos, "expected end of statement, got %s", p.cur.Type)
			p.synchronize()
		}
		p.skipTerminators()
	}
	p.expect(token.RBRACE)
	return block
}

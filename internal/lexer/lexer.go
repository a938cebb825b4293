// Package lexer turns SL source text into a token stream.
//
// # Unicode and column positions
//
// Source text is UTF-8. Column positions are rune counts from the start of
// the line, not byte offsets and not display widths — matching the
// convention used throughout this runtime's diagnostics.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sergeych/lyng/internal/source"
	"github.com/sergeych/lyng/internal/token"
)

// Error is a lexical failure: an unterminated literal or an unrecognised
// character.
type Error struct {
	Pos     source.Pos
	Message string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// braceContext records one open `${ … }` interpolation. nextStringPart
// pushes it and CloseInterpolation pops it; the lexer does not detect the
// closing `}` itself.
type braceContext struct {
	depth int // not updated by the lexer
}

// Lexer is a hand-rolled recursive scanner over a Source's text. It keeps no
// token buffer of its own; callers drive it one token at a time via
// NextToken, which is what lets the parser do cheap single-token lookahead
// without the lexer materializing the whole stream up front.
type Lexer struct {
	src *source.Source

	input        string
	position     int // byte offset of ch
	readPosition int // byte offset of the next rune
	line         int
	column       int
	ch           rune

	// braceStack/inString implement §4.1 string interpolation: once inside
	// a `"…"` we switch between STRING_PART tokens and, on `${`, a nested
	// expression-lexing mode that lasts until the parser calls
	// CloseInterpolation.
	braceStack []braceContext
	inString   bool
}

// New returns a Lexer positioned at the first character of src.
func New(src *source.Source) *Lexer {
	l := &Lexer{src: src, input: src.Text, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	l.position = l.readPosition
	l.readPosition += w
	l.ch = r
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekAt(offset int) rune {
	pos := l.readPosition
	var r rune
	for i := 0; i <= offset; i++ {
		if pos >= len(l.input) {
			return 0
		}
		var w int
		r, w = utf8.DecodeRuneInString(l.input[pos:])
		pos += w
	}
	return r
}

func (l *Lexer) pos() source.Pos {
	return source.Pos{Source: l.src, Offset: l.position, Line: l.line, Column: l.column}
}

// skipInsignificant consumes spaces, tabs, comments, and newlines
// that do not act as statement terminators: a newline following an open
// bracket/brace, a binary operator, or a comma is absorbed (§4.1), as is a
// newline preceded by a line-continuation backslash.
func (l *Lexer) skipInsignificant(lastSignificant token.Type) {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\\' && l.peekChar() == '\n':
			l.readChar()
			l.readChar()
		case l.ch == '\n' && absorbsNewline(lastSignificant):
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

// absorbsNewline reports whether a newline right after a token of this type
// is pure formatting rather than a statement terminator.
func absorbsNewline(t token.Type) bool {
	switch t {
	case token.LPAREN, token.LBRACE, token.LBRACKET, token.COMMA,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.POWER,
		token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE,
		token.AND, token.OR, token.ASSIGN, token.ARROW, token.DOT, token.COLON,
		token.RANGE_INCL, token.RANGE_EXCL, token.QUESTION, token.ELVIS, token.SAFE_DOT,
		token.ILLEGAL /* start-of-file */ :
		return true
	default:
		return false
	}
}

// NextToken scans and returns the next token, updating lexer state.
// prev is the type of the previously returned significant token; the lexer
// needs it to decide whether a following newline is a statement terminator
// and whether a leading `/` begins a regex literal or a division operator.
func (l *Lexer) NextToken(prev token.Type) (token.Token, error) {
	if l.inString {
		return l.nextStringPart()
	}

	l.skipInsignificant(prev)

	start := l.pos()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Pos: start}, nil
	case l.ch == '\n':
		l.readChar()
		return token.Token{Type: token.NEWLINE, Literal: "\n", Pos: start}, nil
	case isIdentStart(l.ch):
		return l.readIdentifier(start), nil
	case unicode.IsDigit(l.ch):
		return l.readNumber(start)
	case l.ch == '"':
		return l.beginString(start)
	case l.ch == '\'':
		return l.readChar_(start)
	case l.ch == '/' && prev.CanPrecedeRegex():
		return l.readRegex(start)
	default:
		return l.readOperator(start)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) readIdentifier(start source.Pos) token.Token {
	var sb strings.Builder
	for isIdentPart(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	lit := sb.String()
	return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: start}
}

// readNumber scans int/real literals with `_` separators, `0x`/`0o`/`0b`
// prefixes, and `e±N` exponents (§4.1).
func (l *Lexer) readNumber(start source.Pos) (token.Token, error) {
	var sb strings.Builder

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X' ||
		l.peekChar() == 'o' || l.peekChar() == 'O' ||
		l.peekChar() == 'b' || l.peekChar() == 'B') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		for isHexOrSep(l.ch) {
			if l.ch != '_' {
				sb.WriteRune(l.ch)
			}
			l.readChar()
		}
		return token.Token{Type: token.INT, Literal: sb.String(), Pos: start}, nil
	}

	isReal := false
	for unicode.IsDigit(l.ch) || l.ch == '_' {
		if l.ch != '_' {
			sb.WriteRune(l.ch)
		}
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		isReal = true
		sb.WriteRune(l.ch)
		l.readChar()
		for unicode.IsDigit(l.ch) || l.ch == '_' {
			if l.ch != '_' {
				sb.WriteRune(l.ch)
			}
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		isReal = true
		sb.WriteRune(l.ch)
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		if !unicode.IsDigit(l.ch) {
			return token.Token{}, &Error{Pos: l.pos(), Message: "malformed exponent in numeric literal"}
		}
		for unicode.IsDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}

	typ := token.INT
	if isReal {
		typ = token.REAL
	}
	return token.Token{Type: typ, Literal: sb.String(), Pos: start}, nil
}

func isHexOrSep(r rune) bool {
	return unicode.IsDigit(r) || r == '_' ||
		(r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) readChar_(start source.Pos) (token.Token, error) {
	l.readChar() // consume opening '
	var r rune
	if l.ch == '\\' {
		l.readChar()
		r = decodeEscape(l.ch)
		l.readChar()
	} else {
		r = l.ch
		l.readChar()
	}
	if l.ch != '\'' {
		return token.Token{}, &Error{Pos: start, Message: "unterminated char literal"}
	}
	l.readChar()
	return token.Token{Type: token.CHAR, Literal: string(r), Pos: start}, nil
}

func decodeEscape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return r
	}
}

// beginString starts scanning a `"…"` literal. The first part up to an
// interpolation marker or the closing quote is returned as STRING_PART (or
// STRING if there is no interpolation at all); nextStringPart is called by
// NextToken while l.inString is set.
func (l *Lexer) beginString(start source.Pos) (token.Token, error) {
	l.readChar() // consume opening "
	l.inString = true
	return l.nextStringPart()
}

// nextStringPart is the interpolation-aware continuation of string scanning.
// On encountering `${` it returns the text so far as a STRING_PART token,
// pushes a brace context and switches back to normal token mode; on the
// closing quote it returns the last chunk as STRING. In normal mode the
// lexer does not track braces: the `}` that ends the expression is returned
// as an ordinary RBRACE, and string-part scanning resumes only once the
// parser calls CloseInterpolation.
func (l *Lexer) nextStringPart() (token.Token, error) {
	start := l.pos()
	var sb strings.Builder
	for {
		switch l.ch {
		case 0, '\n':
			return token.Token{}, &Error{Pos: start, Message: "unterminated string literal"}
		case '"':
			l.readChar()
			l.inString = false
			return token.Token{Type: token.STRING, Literal: sb.String(), Pos: start}, nil
		case '\\':
			l.readChar()
			sb.WriteRune(decodeEscape(l.ch))
			l.readChar()
		case '$':
			if l.peekChar() == '{' {
				l.readChar()
				l.readChar()
				l.braceStack = append(l.braceStack, braceContext{})
				l.inString = false
				return token.Token{Type: token.STRING_PART, Literal: sb.String(), Pos: start}, nil
			}
			sb.WriteRune(l.ch)
			l.readChar()
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// State is an opaque snapshot of scanning position, restorable via Restore.
// The parser uses it for the handful of constructs that need lookahead past
// what a single token can decide (lambda-vs-map-literal, an optional loop
// label), mirroring go-dws's LexerState save/restore.
type State struct {
	position, readPosition, line, column int
	ch                                   rune
	braceStack                           []braceContext
	inString                             bool
}

// Save captures the lexer's current position.
func (l *Lexer) Save() State {
	bs := make([]braceContext, len(l.braceStack))
	copy(bs, l.braceStack)
	return State{l.position, l.readPosition, l.line, l.column, l.ch, bs, l.inString}
}

// Restore rewinds the lexer to a previously captured State.
func (l *Lexer) Restore(s State) {
	l.position, l.readPosition, l.line, l.column, l.ch = s.position, s.readPosition, s.line, s.column, s.ch
	l.braceStack = s.braceStack
	l.inString = s.inString
}

// CloseInterpolation is called by the parser after it finishes parsing the
// `${ expr }` expression, once it sees the `}` that matches the opening one
// pushed by nextStringPart. It pops the brace context and puts the lexer
// back into string-scanning mode for the remainder of the literal.
func (l *Lexer) CloseInterpolation() {
	if len(l.braceStack) > 0 {
		l.braceStack = l.braceStack[:len(l.braceStack)-1]
	}
	l.inString = true
}

// InInterpolation reports whether the lexer is currently inside a `${ … }`
// expression (as opposed to plain string-part scanning).
func (l *Lexer) InInterpolation() bool {
	return len(l.braceStack) > 0 && !l.inString
}

func (l *Lexer) readRegex(start source.Pos) (token.Token, error) {
	l.readChar() // consume opening /
	var sb strings.Builder
	for l.ch != '/' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{}, &Error{Pos: start, Message: "unterminated regex literal"}
		}
		if l.ch == '\\' {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing /
	var flags strings.Builder
	for isIdentPart(l.ch) {
		flags.WriteRune(l.ch)
		l.readChar()
	}
	// Literal packs pattern and flags with a NUL separator (illegal in SL
	// source, so unambiguous) since flag letters are otherwise indistinct
	// from a pattern that happens to end in word characters.
	return token.Token{Type: token.REGEX, Literal: sb.String() + "\x00" + flags.String(), Pos: start}, nil
}

func (l *Lexer) readOperator(start source.Pos) (token.Token, error) {
	ch := l.ch
	two := string(ch) + string(l.peekChar())
	three := two + string(l.peekAt(1))

	switch three {
	case "..<":
		l.readChar()
		l.readChar()
		l.readChar()
		return token.Token{Type: token.RANGE_EXCL, Literal: three, Pos: start}, nil
	}

	switch two {
	case "+=":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.PLUS_EQ, Literal: two, Pos: start}, nil
	case "-=":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.MINUS_EQ, Literal: two, Pos: start}, nil
	case "*=":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.STAR_EQ, Literal: two, Pos: start}, nil
	case "/=":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.SLASH_EQ, Literal: two, Pos: start}, nil
	case "%=":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.PERCENT_EQ, Literal: two, Pos: start}, nil
	case "**":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.POWER, Literal: two, Pos: start}, nil
	case "==":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.EQ, Literal: two, Pos: start}, nil
	case "!=":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.NEQ, Literal: two, Pos: start}, nil
	case "<=":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.LE, Literal: two, Pos: start}, nil
	case ">=":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.GE, Literal: two, Pos: start}, nil
	case "&&":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.AND, Literal: two, Pos: start}, nil
	case "||":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.OR, Literal: two, Pos: start}, nil
	case "->":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.ARROW, Literal: two, Pos: start}, nil
	case "..":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.RANGE_INCL, Literal: two, Pos: start}, nil
	case "?:":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.ELVIS, Literal: two, Pos: start}, nil
	case "?.":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.SAFE_DOT, Literal: two, Pos: start}, nil
	}

	single := map[rune]token.Type{
		'(': token.LPAREN, ')': token.RPAREN, '{': token.LBRACE, '}': token.RBRACE,
		'[': token.LBRACKET, ']': token.RBRACKET, ',': token.COMMA, ':': token.COLON,
		';': token.SEMICOLON, '.': token.DOT, '=': token.ASSIGN,
		'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH, '%': token.PERCENT,
		'<': token.LT, '>': token.GT, '!': token.NOT, '?': token.QUESTION,
	}
	if t, ok := single[ch]; ok {
		l.readChar()
		return token.Token{Type: t, Literal: string(ch), Pos: start}, nil
	}
	l.readChar()
	return token.Token{}, &Error{Pos: start, Message: "unexpected character " + string(ch)}
}

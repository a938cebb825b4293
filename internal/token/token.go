// Package token defines the lexical token types produced by the lexer and
// consumed by the parser.
package token

import "github.com/sergeych/lyng/internal/source"

// Type identifies the lexical category of a Token. Types are grouped below
// for readability; the numeric values carry no meaning of their own.
type Type int

const (
	ILLEGAL Type = iota
	EOF
	NEWLINE // statement terminator; suppressed after continuations (see lexer)
	COMMENT

	// Identifiers and literals
	IDENT
	INT
	REAL
	CHAR
	STRING      // a plain or interpolated string literal
	STRING_PART // one literal chunk of an interpolated string
	REGEX

	// Keywords - declarations
	VAL
	VAR
	FUN
	CLASS
	ENUM
	IMPORT

	// Keywords - control flow
	IF
	ELSE
	WHILE
	FOR
	IN
	DO
	BREAK
	CONTINUE
	RETURN
	THROW
	TRY
	CATCH
	FINALLY

	// Keywords - literals
	TRUE
	FALSE
	NULL
	VOID
	THIS
	STEP

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	COLON
	SEMICOLON
	DOT
	ARROW // ->

	// Operators
	ASSIGN     // =
	PLUS_EQ    // +=
	MINUS_EQ   // -=
	STAR_EQ    // *=
	SLASH_EQ   // /=
	PERCENT_EQ // %=
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POWER // **
	EQ    // ==
	NEQ   // !=
	LT
	GT
	LE
	GE
	AND // &&
	OR  // ||
	NOT // !
	RANGE_INCL    // ..
	RANGE_EXCL    // ..<
	QUESTION      // ?
	ELVIS         // ?:
	SAFE_DOT      // ?.
)

// Type.String names are used in parser error messages ("expected IDENT, got
// ...") so they must stay readable.
var names = map[Type]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", NEWLINE: "NEWLINE", COMMENT: "COMMENT",
	IDENT: "IDENT", INT: "INT", REAL: "REAL", CHAR: "CHAR", STRING: "STRING",
	STRING_PART: "STRING_PART", REGEX: "REGEX",
	VAL: "val", VAR: "var", FUN: "fun", CLASS: "class", ENUM: "enum", IMPORT: "import",
	IF: "if", ELSE: "else", WHILE: "while", FOR: "for", IN: "in", DO: "do",
	BREAK: "break", CONTINUE: "continue", RETURN: "return", THROW: "throw",
	TRY: "try", CATCH: "catch", FINALLY: "finally",
	TRUE: "true", FALSE: "false", NULL: "null", VOID: "void", THIS: "this", STEP: "step",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	COMMA: ",", COLON: ":", SEMICOLON: ";", DOT: ".", ARROW: "->",
	ASSIGN: "=", PLUS_EQ: "+=", MINUS_EQ: "-=", STAR_EQ: "*=", SLASH_EQ: "/=", PERCENT_EQ: "%=",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", POWER: "**",
	EQ: "==", NEQ: "!=", LT: "<", GT: ">", LE: "<=", GE: ">=",
	AND: "&&", OR: "||", NOT: "!",
	RANGE_INCL: "..", RANGE_EXCL: "..<",
	QUESTION: "?", ELVIS: "?:", SAFE_DOT: "?.",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// Keywords maps reserved identifiers to their Type. Lookup is case-sensitive;
// SL, unlike the Pascal-family languages, treats identifiers as case-sensitive.
var Keywords = map[string]Type{
	"val": VAL, "var": VAR, "fun": FUN, "class": CLASS, "enum": ENUM, "import": IMPORT,
	"if": IF, "else": ELSE, "while": WHILE, "for": FOR, "in": IN, "do": DO,
	"break": BREAK, "continue": CONTINUE, "return": RETURN, "throw": THROW,
	"try": TRY, "catch": CATCH, "finally": FINALLY,
	"true": TRUE, "false": FALSE, "null": NULL, "void": VOID, "this": THIS, "step": STEP,
}

// LookupIdent classifies ident as a keyword Type, or IDENT if it is not one.
func LookupIdent(ident string) Type {
	if t, ok := Keywords[ident]; ok {
		return t
	}
	return IDENT
}

// Token is a single lexical unit: its type, the literal source text it was
// scanned from, and the position of its first byte.
type Token struct {
	Type    Type
	Literal string
	Pos     source.Pos
}

// CanPrecedeRegex reports whether a token of this type can be immediately
// followed by a regex literal (as opposed to a division operator). It is
// consulted by the lexer to disambiguate `/…/ ` per spec.md §4.1.
func (t Type) CanPrecedeRegex() bool {
	switch t {
	case IDENT, INT, REAL, STRING, CHAR, RPAREN, RBRACKET, RBRACE, THIS, TRUE, FALSE, NULL:
		return false
	default:
		return true
	}
}

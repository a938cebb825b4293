package lexer

import (
	"testing"

	"github.com/sergeych/lyng/internal/source"
	"github.com/sergeych/lyng/internal/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(source.New("test", src))
	var toks []token.Token
	prev := token.ILLEGAL
	for {
		tok, err := l.NextToken(prev)
		if err != nil {
			t.Fatalf("NextToken: %v", err)
		}
		toks = append(toks, tok)
		prev = tok.Type
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestNextTokenBasics(t *testing.T) {
	input := "var x = 5\nx = x + 10"

	want := []struct {
		typ     token.Type
		literal string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.NEWLINE, ""},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.INT, "10"},
		{token.EOF, ""},
	}

	toks := scanAll(t, input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ {
			t.Errorf("tok[%d]: type = %s, want %s (literal=%q)", i, toks[i].Type, w.typ, toks[i].Literal)
		}
		if w.literal != "" && toks[i].Literal != w.literal {
			t.Errorf("tok[%d]: literal = %q, want %q", i, toks[i].Literal, w.literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "val var fun class enum import if else while for in do break continue return throw try catch finally true false null void this step"
	wantTypes := []token.Type{
		token.VAL, token.VAR, token.FUN, token.CLASS, token.ENUM, token.IMPORT,
		token.IF, token.ELSE, token.WHILE, token.FOR, token.IN, token.DO,
		token.BREAK, token.CONTINUE, token.RETURN, token.THROW,
		token.TRY, token.CATCH, token.FINALLY,
		token.TRUE, token.FALSE, token.NULL, token.VOID, token.THIS, token.STEP,
	}

	toks := scanAll(t, input)
	if len(toks) != len(wantTypes)+1 {
		t.Fatalf("got %d tokens, want %d (+EOF)", len(toks), len(wantTypes))
	}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("tok[%d]: %s, want %s", i, toks[i].Type, want)
		}
	}
}

func TestOperators(t *testing.T) {
	// `/` right after an operator starts a regex literal, so `/=` follows an
	// identifier here to be lexed as SLASH_EQ.
	input := "+= -= *= x /= %= ** == != <= >= && || ! .. ..< ?: ?. ->"
	wantTypes := []token.Type{
		token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.IDENT, token.SLASH_EQ, token.PERCENT_EQ,
		token.POWER, token.EQ, token.NEQ, token.LE, token.GE, token.AND, token.OR, token.NOT,
		token.RANGE_INCL, token.RANGE_EXCL, token.ELVIS, token.SAFE_DOT, token.ARROW,
	}
	toks := scanAll(t, input)
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("tok[%d]: %s, want %s (literal=%q)", i, toks[i].Type, want, toks[i].Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		src  string
		typ  token.Type
		want string
	}{
		{"123", token.INT, "123"},
		{"1_000_000", token.INT, "1000000"},
		{"0xFF", token.INT, "0xFF"},
		{"3.14", token.REAL, "3.14"},
		{"2.5e10", token.REAL, "2.5e10"},
	}
	for _, c := range cases {
		toks := scanAll(t, c.src)
		if toks[0].Type != c.typ {
			t.Errorf("%q: type = %s, want %s", c.src, toks[0].Type, c.typ)
		}
		if toks[0].Literal != c.want {
			t.Errorf("%q: literal = %q, want %q", c.src, toks[0].Literal, c.want)
		}
	}
}

func TestStringInterpolation(t *testing.T) {
	toks := scanAll(t, `"hello ${1+2} world"`)

	var types []token.Type
	for _, tok := range toks {
		types = append(types, tok.Type)
	}

	wantPrefix := []token.Type{
		token.STRING_PART, token.INT, token.PLUS, token.INT, token.STRING_PART,
	}
	if len(types) < len(wantPrefix) {
		t.Fatalf("got %d tokens, want at least %d: %v", len(types), len(wantPrefix), types)
	}
	for i, want := range wantPrefix {
		if types[i] != want {
			t.Errorf("tok[%d]: %s, want %s (full stream %v)", i, types[i], want, types)
		}
	}
}

func TestPlainStringHasNoInterpolation(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	if toks[0].Type != token.STRING {
		t.Fatalf("type = %s, want STRING", toks[0].Type)
	}
	if toks[0].Literal != "hello world" {
		t.Fatalf("literal = %q, want %q", toks[0].Literal, "hello world")
	}
}

func TestRegexAfterAssign(t *testing.T) {
	toks := scanAll(t, "val r = /ab+c/")
	var found bool
	for _, tok := range toks {
		if tok.Type == token.REGEX {
			found = true
			if tok.Literal != "ab+c\x00" {
				t.Errorf("regex literal = %q, want %q", tok.Literal, "ab+c\x00")
			}
		}
	}
	if !found {
		t.Fatalf("no REGEX token produced: %v", toks)
	}
}

func TestDivisionAfterIdentIsNotRegex(t *testing.T) {
	toks := scanAll(t, "a / b")
	if toks[1].Type != token.SLASH {
		t.Fatalf("tok[1] = %s, want SLASH (a/b should not start a regex)", toks[1].Type)
	}
}

func TestUnterminatedStringIsLexError(t *testing.T) {
	l := New(source.New("test", `"unterminated`))
	_, err := l.NextToken(token.ILLEGAL)
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
	var lexErr *Error
	if !errorsAs(err, &lexErr) {
		t.Fatalf("error is %T, want *lexer.Error", err)
	}
}

func errorsAs(err error, target **Error) bool {
	if e, ok := err.(*Error); ok {
		*target = e
		return true
	}
	return false
}

func TestPositionsTrackLineAndColumn(t *testing.T) {
	toks := scanAll(t, "var x\nval y")
	if toks[0].Pos.Line != 1 {
		t.Errorf("var: line = %d, want 1", toks[0].Pos.Line)
	}
	// find `val` token after the newline
	for _, tok := range toks {
		if tok.Type == token.VAL {
			if tok.Pos.Line != 2 {
				t.Errorf("val: line = %d, want 2", tok.Pos.Line)
			}
			return
		}
	}
	t.Fatal("no VAL token found")
}

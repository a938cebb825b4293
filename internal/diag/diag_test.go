package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/diag"
	"github.com/sergeych/lyng/internal/source"
	"github.com/sergeych/lyng/internal/value"
)

func TestSourceErrorFormatPointsCaretAtColumn(t *testing.T) {
	src := source.New("<test>", "val x = \n  1 + ")
	pos := source.Pos{Source: src, Line: 2, Column: 3}
	e := &diag.SourceError{Message: "unexpected end of input", Pos: pos}

	out := e.Format(false)
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "<test>:2:3") {
		t.Fatalf("first line should carry position, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "unexpected end of input") {
		t.Fatalf("first line should carry the message, got %q", lines[0])
	}
	if len(lines) < 3 {
		t.Fatalf("expected a source line and a caret line, got %d lines", len(lines))
	}
	caretCol := strings.Index(lines[2], "^")
	if caretCol < 0 {
		t.Fatalf("expected a caret in the third line, got %q", lines[2])
	}
}

func TestSourceErrorFormatColorAddsEscapes(t *testing.T) {
	src := source.New("<test>", "x")
	e := &diag.SourceError{Message: "boom", Pos: source.Pos{Source: src, Line: 1, Column: 1}}
	plain := e.Format(false)
	colored := e.Format(true)
	if strings.Contains(plain, "\033[") {
		t.Fatalf("uncolored Format must not contain ANSI escapes")
	}
	if !strings.Contains(colored, "\033[") {
		t.Fatalf("colored Format must contain ANSI escapes")
	}
}

func TestSourceErrorFormatWithoutSourceSkipsContextLines(t *testing.T) {
	e := &diag.SourceError{Message: "boom", Pos: source.Pos{Line: 1, Column: 1}}
	out := e.Format(false)
	if strings.Contains(out, "\n") {
		t.Fatalf("with no Source attached there is no line to quote, expected a single line, got %q", out)
	}
}

func TestSourceErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = &diag.SourceError{Message: "boom", Pos: source.Pos{}}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Error() should include the message, got %q", err.Error())
	}
}

func TestDumpASTWritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	prog := &ast.Program{}
	if err := diag.DumpAST(&buf, prog); err != nil {
		t.Fatalf("DumpAST returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("DumpAST should have written something")
	}
}

func TestDumpValueWritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := diag.DumpValue(&buf, value.NewInt(42)); err != nil {
		t.Fatalf("DumpValue returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("DumpValue should have written something")
	}
}

func TestSprintReturnsNonEmptyString(t *testing.T) {
	if diag.Sprint(value.NewString("hi")) == "" {
		t.Fatalf("Sprint should return a non-empty string")
	}
}

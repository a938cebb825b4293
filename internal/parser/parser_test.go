package parser

import (
	"testing"

	"github.com/sergeych/lyng/internal/ast"
	"github.com/sergeych/lyng/internal/source"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(source.New("test", src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	return prog
}

func TestParseValAndVarDecl(t *testing.T) {
	prog := mustParse(t, "val x = 1\nvar y = 2")
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
	v, ok := prog.Statements[0].(*ast.ValDecl)
	if !ok {
		t.Fatalf("statement[0] is %T, want *ast.ValDecl", prog.Statements[0])
	}
	if v.Name != "x" {
		t.Errorf("name = %q, want %q", v.Name, "x")
	}
	if _, ok := v.Init.(*ast.IntLiteral); !ok {
		t.Errorf("init is %T, want *ast.IntLiteral", v.Init)
	}

	vr, ok := prog.Statements[1].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement[1] is %T, want *ast.VarDecl", prog.Statements[1])
	}
	if vr.Name != "y" {
		t.Errorf("name = %q, want %q", vr.Name, "y")
	}
}

func TestParseFunDecl(t *testing.T) {
	prog := mustParse(t, "fun add(a, b) { return a + b }")
	fn, ok := prog.Statements[0].(*ast.FunDecl)
	if !ok {
		t.Fatalf("statement[0] is %T, want *ast.FunDecl", prog.Statements[0])
	}
	if fn.Name != "add" {
		t.Errorf("name = %q, want %q", fn.Name, "add")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}
	if len(fn.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.ReturnStmt", fn.Body[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("return value is %T, want *ast.BinaryExpr", ret.Value)
	}
	if bin.Operator != "+" {
		t.Errorf("op = %q, want %q", bin.Operator, "+")
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, "if (x > 0) { 1 } else { 2 }")
	ifs, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("statement[0] is %T, want *ast.IfStmt", prog.Statements[0])
	}
	if ifs.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseWhileLoop(t *testing.T) {
	prog := mustParse(t, "while (i < 10) { i = i + 1 }")
	ws, ok := prog.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("statement[0] is %T, want *ast.WhileStmt", prog.Statements[0])
	}
	if _, ok := ws.Cond.(*ast.BinaryExpr); !ok {
		t.Errorf("cond is %T, want *ast.BinaryExpr", ws.Cond)
	}
}

func TestParseForIn(t *testing.T) {
	prog := mustParse(t, "for (x in [1,2,3]) { x }")
	fs, ok := prog.Statements[0].(*ast.ForInStmt)
	if !ok {
		t.Fatalf("statement[0] is %T, want *ast.ForInStmt", prog.Statements[0])
	}
	if _, ok := fs.Iterable.(*ast.ListLiteral); !ok {
		t.Errorf("iterable is %T, want *ast.ListLiteral", fs.Iterable)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := mustParse(t, `try { throw Exception("x") } catch (e: Exception) { e } finally { 1 }`)
	ts, ok := prog.Statements[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("statement[0] is %T, want *ast.TryStmt", prog.Statements[0])
	}
	if len(ts.Catches) != 1 {
		t.Fatalf("got %d catch clauses, want 1", len(ts.Catches))
	}
	if ts.Catches[0].ClassName != "Exception" {
		t.Errorf("class name = %q, want %q", ts.Catches[0].ClassName, "Exception")
	}
	if ts.Catches[0].Binding != "e" {
		t.Errorf("binding = %q, want %q", ts.Catches[0].Binding, "e")
	}
	if ts.Finally == nil {
		t.Error("expected a finally block")
	}
}

func TestParseClassDecl(t *testing.T) {
	prog := mustParse(t, `class Point { var x = 0; var y = 0; fun dist() { return x } }`)
	cd, ok := prog.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("statement[0] is %T, want *ast.ClassDecl", prog.Statements[0])
	}
	if cd.Name != "Point" {
		t.Errorf("name = %q, want %q", cd.Name, "Point")
	}
	if len(cd.Fields) != 2 {
		t.Errorf("got %d fields, want 2", len(cd.Fields))
	}
	if len(cd.Methods) != 1 {
		t.Errorf("got %d methods, want 1", len(cd.Methods))
	}
}

func TestParseStringInterpolationExpr(t *testing.T) {
	prog := mustParse(t, `"hello ${1+2}"`)
	es, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement[0] is %T, want *ast.ExprStmt", prog.Statements[0])
	}
	if _, ok := es.Expr.(*ast.StringLiteral); !ok {
		t.Errorf("expr is %T, want *ast.StringLiteral", es.Expr)
	}
}

func TestParseMapAndListLiterals(t *testing.T) {
	prog := mustParse(t, `{"a": 1, "b": 2}`)
	es := prog.Statements[0].(*ast.ExprStmt)
	m, ok := es.Expr.(*ast.MapLiteral)
	if !ok {
		t.Fatalf("expr is %T, want *ast.MapLiteral", es.Expr)
	}
	if len(m.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(m.Entries))
	}
}

func TestParseElvisAndSafeDot(t *testing.T) {
	prog := mustParse(t, "x ?: 0")
	es := prog.Statements[0].(*ast.ExprStmt)
	if _, ok := es.Expr.(*ast.ElvisExpr); !ok {
		t.Errorf("expr is %T, want *ast.ElvisExpr", es.Expr)
	}
}

func TestParseCompoundAssign(t *testing.T) {
	prog := mustParse(t, "x += 1")
	es := prog.Statements[0].(*ast.ExprStmt)
	ca, ok := es.Expr.(*ast.CompoundAssign)
	if !ok {
		t.Fatalf("expr is %T, want *ast.CompoundAssign", es.Expr)
	}
	if ca.Operator != "+" {
		t.Errorf("op = %q, want %q", ca.Operator, "+")
	}
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	p := New(source.New("test", "val = 1"))
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("expected a parse error for a missing identifier after val")
	}
	if _, ok := err.(ErrorList); !ok {
		t.Fatalf("error is %T, want parser.ErrorList", err)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3")
	es := prog.Statements[0].(*ast.ExprStmt)
	bin, ok := es.Expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expr is %T, want *ast.BinaryExpr", es.Expr)
	}
	if bin.Operator != "+" {
		t.Fatalf("top-level op = %q, want %q (expected * to bind tighter)", bin.Operator, "+")
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("right operand is %T, want *ast.BinaryExpr for 2*3", bin.Right)
	}
}

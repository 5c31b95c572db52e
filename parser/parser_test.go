package parser_test

import (
	"strings"
	"testing"

	"github.com/aldenridge/lox/ast"
	"github.com/aldenridge/lox/parser"
	"github.com/aldenridge/lox/scanner"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, err := scanner.Scan(src)
	if err != nil {
		t.Fatalf("Scan(%q) returned unexpected error: %s", src, err)
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %s", src, err)
	}
	return stmts
}

func TestParseExprStmt(t *testing.T) {
	stmts := parse(t, "1 + 2;")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	exprStmt, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprStmt", stmts[0])
	}
	bin, ok := exprStmt.Expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryExpr", exprStmt.Expr)
	}
	if bin.Op.Lexeme != "" {
		t.Errorf("operator lexeme should be empty for punctuators, got %q", bin.Op.Lexeme)
	}
}

func TestParseVarDecl(t *testing.T) {
	stmts := parse(t, "var x = 1;")
	v, ok := stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.VarStmt", stmts[0])
	}
	if v.Name.Lexeme != "x" {
		t.Errorf("got name %q, want x", v.Name.Lexeme)
	}
	if v.Init == nil {
		t.Error("Init is nil, want non-nil")
	}
}

func TestParseVarDeclNoInitializer(t *testing.T) {
	stmts := parse(t, "var x;")
	v := stmts[0].(*ast.VarStmt)
	if v.Init != nil {
		t.Errorf("Init is %v, want nil", v.Init)
	}
}

func TestParseAssignment(t *testing.T) {
	stmts := parse(t, "x = 1;")
	exprStmt := stmts[0].(*ast.ExprStmt)
	assign, ok := exprStmt.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.AssignExpr", exprStmt.Expr)
	}
	if assign.Name.Lexeme != "x" {
		t.Errorf("got name %q, want x", assign.Name.Lexeme)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	tokens, err := scanner.Scan("1 = 2;")
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	_, err = parser.Parse(tokens)
	if err == nil {
		t.Fatal("Parse returned no error for invalid assignment target")
	}
	if !strings.Contains(err.Error(), "Invalid assignment target.") {
		t.Errorf("error %q does not contain expected message", err.Error())
	}
}

func TestParseForDesugarsToWhileInBlock(t *testing.T) {
	stmts := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	outer, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.BlockStmt", stmts[0])
	}
	if len(outer.Stmts) != 2 {
		t.Fatalf("got %d statements in desugared block, want 2 (init, while)", len(outer.Stmts))
	}
	if _, ok := outer.Stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("first statement is %T, want *ast.VarStmt", outer.Stmts[0])
	}
	whileStmt, ok := outer.Stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("second statement is %T, want *ast.WhileStmt", outer.Stmts[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("while body is %T, want *ast.BlockStmt", whileStmt.Body)
	}
	if len(body.Stmts) != 2 {
		t.Fatalf("got %d statements in while body, want 2 (body, increment)", len(body.Stmts))
	}
}

func TestParseForWithoutClauses(t *testing.T) {
	stmts := parse(t, "for (;;) print 1;")
	whileStmt, ok := stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.WhileStmt", stmts[0])
	}
	lit, ok := whileStmt.Cond.(*ast.LiteralExpr)
	if !ok || lit.Value.Type.String() != "true" {
		t.Errorf("condition is %#v, want literal true", whileStmt.Cond)
	}
}

func TestParseClassWithSuperclass(t *testing.T) {
	stmts := parse(t, "class B < A { greet() { return 1; } }")
	class, ok := stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassStmt", stmts[0])
	}
	if class.Superclass == nil {
		t.Fatal("Superclass is nil, want non-nil")
	}
	if class.Superclass.Name.Lexeme != "A" {
		t.Errorf("got superclass %q, want A", class.Superclass.Name.Lexeme)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "greet" {
		t.Errorf("got methods %v, want [greet]", class.Methods)
	}
}

func TestParseCallAndGet(t *testing.T) {
	stmts := parse(t, "a.b(1, 2);")
	exprStmt := stmts[0].(*ast.ExprStmt)
	call, ok := exprStmt.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpr", exprStmt.Expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
	if _, ok := call.Callee.(*ast.GetExpr); !ok {
		t.Errorf("callee is %T, want *ast.GetExpr", call.Callee)
	}
}

func TestParseSynchronizesAfterError(t *testing.T) {
	tokens, err := scanner.Scan("var; var y = 1;")
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	_, err = parser.Parse(tokens)
	if err == nil {
		t.Fatal("Parse returned no error")
	}
	if !strings.Contains(err.Error(), "Expect variable name.") {
		t.Errorf("error %q does not contain expected message", err.Error())
	}
}

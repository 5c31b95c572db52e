package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aldenridge/lox/interpreter"
	"github.com/aldenridge/lox/parser"
	"github.com/aldenridge/lox/resolver"
	"github.com/aldenridge/lox/scanner"
)

// run scans, parses, resolves and evaluates src, returning everything written via print and any
// error from any stage of the pipeline.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, err := scanner.Scan(src)
	if err != nil {
		return "", err
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		return "", err
	}
	if err := resolver.Resolve(stmts); err != nil {
		return "", err
	}
	var stdout bytes.Buffer
	interp := interpreter.New(strings.NewReader(""), &stdout)
	err = interp.Run(stmts)
	return stdout.String(), err
}

func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("running %q returned unexpected error: %s", src, err)
	}
	return out
}

func TestArithmeticAndPrint(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`print 1 + 2 * 3;`, "7\n"},
		{`print (1 + 2) * 3;`, "9\n"},
		{`print "a" + "b";`, "ab\n"},
	}
	for _, tt := range tests {
		if got := mustRun(t, tt.src); got != tt.want {
			t.Errorf("%s => %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestAddingNumberAndStringIsAnError(t *testing.T) {
	_, err := run(t, `print 1 + "a";`)
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "Operands must be two numbers or two strings."
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err.Error(), want)
	}
}

func TestClosuresCaptureByReference(t *testing.T) {
	src := `
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "local";
  show();
}
`
	got := mustRun(t, src)
	want := "global\nglobal\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClassInitializerAndMethod(t *testing.T) {
	src := `
class Bacon {
  init(kind) { this.kind = kind; }
  eat() { print "Crunch " + this.kind + "!"; }
}
Bacon("veggie").eat();
`
	got := mustRun(t, src)
	want := "Crunch veggie!\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	src := `
class A { greet() { print "A"; } }
class B < A { greet() { super.greet(); print "B"; } }
B().greet();
`
	got := mustRun(t, src)
	want := "A\nB\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInitializerReturnsThisEvenOnEarlyReturn(t *testing.T) {
	src := `
class Foo { init() { return; } }
var f = Foo();
print f;
`
	got := mustRun(t, src)
	want := "Foo instance\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestForLoopDesugaring(t *testing.T) {
	src := `
var s = "";
for (var i = 0; i < 3; i = i + 1) s = s + "." ;
print s;
`
	got := mustRun(t, src)
	want := "...\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := run(t, `print x;`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Undefined variable 'x'.") {
		t.Errorf("error %q does not contain expected message", err.Error())
	}
}

func TestCallArityMismatch(t *testing.T) {
	_, err := run(t, `fun f(a, b) { return a + b; } f(1);`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Expected 2 arguments but got 1.") {
		t.Errorf("error %q does not contain expected message", err.Error())
	}
}

func TestNumberStringification(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 3.0;", "3\n"},
		{"print 3.5;", "3.5\n"},
	}
	for _, tt := range tests {
		if got := mustRun(t, tt.src); got != tt.want {
			t.Errorf("%s => %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestGlobalRedeclarationAllowed(t *testing.T) {
	src := `
var a = 1;
var a = 2;
print a;
`
	got := mustRun(t, src)
	if got != "2\n" {
		t.Errorf("got %q, want %q", got, "2\n")
	}
}

func TestNativeClockReturnsNumber(t *testing.T) {
	got := mustRun(t, `print clock() > 0;`)
	if got != "true\n" {
		t.Errorf("got %q, want %q", got, "true\n")
	}
}

func TestReplPreservesStateAcrossRuns(t *testing.T) {
	var stdout bytes.Buffer
	interp := interpreter.New(strings.NewReader(""), &stdout)

	firstTokens, err := scanner.Scan("var counter = 0;")
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	firstStmts, err := parser.Parse(firstTokens)
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %s", err)
	}
	if err := resolver.Resolve(firstStmts); err != nil {
		t.Fatalf("Resolve returned unexpected error: %s", err)
	}
	if err := interp.Run(firstStmts); err != nil {
		t.Fatalf("Run returned unexpected error: %s", err)
	}

	secondTokens, err := scanner.Scan("counter = counter + 1; print counter;")
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	secondStmts, err := parser.Parse(secondTokens)
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %s", err)
	}
	if err := resolver.Resolve(secondStmts); err != nil {
		t.Fatalf("Resolve returned unexpected error: %s", err)
	}
	if err := interp.Run(secondStmts); err != nil {
		t.Fatalf("Run returned unexpected error: %s", err)
	}

	if got := stdout.String(); got != "1\n" {
		t.Errorf("got %q, want %q", got, "1\n")
	}
}

func TestNativeStringReadsFromStdin(t *testing.T) {
	tokens, err := scanner.Scan(`print string();`)
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %s", err)
	}
	if err := resolver.Resolve(stmts); err != nil {
		t.Fatalf("Resolve returned unexpected error: %s", err)
	}
	var stdout bytes.Buffer
	interp := interpreter.New(strings.NewReader("hello\n"), &stdout)
	if err := interp.Run(stmts); err != nil {
		t.Fatalf("Run returned unexpected error: %s", err)
	}
	if got := stdout.String(); got != "hello\n" {
		t.Errorf("got %q, want %q", got, "hello\n")
	}
}

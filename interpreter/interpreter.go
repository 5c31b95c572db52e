// Package interpreter evaluates a resolved Lox abstract syntax tree.
//
// An Interpreter walks statements and expressions directly, maintaining a chain of environments
// for variable scope and a global environment that persists across calls to Run so that REPL
// sessions can build up definitions incrementally.
package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/aldenridge/lox/ast"
	"github.com/aldenridge/lox/loxerror"
	"github.com/aldenridge/lox/token"
)

// Interpreter holds the state that persists across successive calls to Run: the global
// environment and the natives installed in it.
type Interpreter struct {
	globals *environment
	env     *environment

	Stdout io.Writer
	stdin  *bufio.Reader
}

// New creates an Interpreter with its global environment seeded with the built-in natives.
// stdin is read by the char, string and number natives; reads are buffered and shared across
// calls, so successive natives continue from where the previous one left off.
func New(stdin io.Reader, stdout io.Writer) *Interpreter {
	i := &Interpreter{
		globals: newEnvironment(),
		Stdout:  stdout,
		stdin:   bufio.NewReader(stdin),
	}
	i.env = i.globals
	defineBuiltins(i)
	return i
}

// NewStd creates an Interpreter reading from os.Stdin and writing to os.Stdout.
func NewStd() *Interpreter {
	return New(os.Stdin, os.Stdout)
}

// Run executes stmts against the interpreter's persistent state. A runtime error aborts
// execution of the remaining statements in stmts, but any side effects that already occurred
// (definitions, prints) are preserved so that a REPL can keep accepting input afterwards.
func (i *Interpreter) Run(stmts []ast.Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*loxerror.Error)
			if !ok {
				panic(r)
			}
			err = re
		}
	}()
	for _, s := range stmts {
		i.exec(s)
	}
	return nil
}

// stmtResult is the outcome of executing a statement: either control fell through normally
// (none), or a return is propagating out toward the nearest enclosing function call.
type stmtResult interface {
	isStmtResult()
}

type noResult struct{}

func (noResult) isStmtResult() {}

type returnSignal struct{ value loxObject }

func (returnSignal) isStmtResult() {}

func (i *Interpreter) fail(pos token.Position, format string, args ...any) {
	panic(loxerror.New(pos, format, args...))
}

// exec executes a single statement, returning any in-flight return signal so that callers
// traversing a statement list can propagate it upward without using Go's call stack for control
// flow beyond what panic/recover already provides for runtime errors.
func (i *Interpreter) exec(stmt ast.Stmt) stmtResult {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		i.eval(s.Expr)
		return noResult{}
	case *ast.PrintStmt:
		v := i.eval(s.Expr)
		fmt.Fprintln(i.Stdout, stringify(v))
		return noResult{}
	case *ast.VarStmt:
		var value loxObject = loxNil{}
		if s.Init != nil {
			value = i.eval(s.Init)
		}
		i.env.define(s.Name.Lexeme, value)
		return noResult{}
	case *ast.BlockStmt:
		return i.execBlock(s.Stmts, i.env.child())
	case *ast.IfStmt:
		if truthy(i.eval(s.Cond)) {
			return i.exec(s.Then)
		} else if s.Else != nil {
			return i.exec(s.Else)
		}
		return noResult{}
	case *ast.WhileStmt:
		for truthy(i.eval(s.Cond)) {
			if r := i.exec(s.Body); r != (noResult{}) {
				return r
			}
		}
		return noResult{}
	case *ast.FunctionStmt:
		fn := &loxFunction{decl: s, closure: i.env}
		i.env.define(s.Name.Lexeme, fn)
		return noResult{}
	case *ast.ReturnStmt:
		var value loxObject = loxNil{}
		if s.Value != nil {
			value = i.eval(s.Value)
		}
		return returnSignal{value: value}
	case *ast.ClassStmt:
		i.execClass(s)
		return noResult{}
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", stmt))
	}
}

// execBlock executes stmts against env, which must already be the environment the caller wants
// the block's declarations to land in (the caller is responsible for making it a child of the
// enclosing environment). The previous environment is always restored on return, including when
// a return signal is propagating or a runtime error panics out.
func (i *Interpreter) execBlock(stmts []ast.Stmt, env *environment) stmtResult {
	prev := i.env
	i.env = env
	defer func() { i.env = prev }()

	for _, s := range stmts {
		if r := i.exec(s); r != (noResult{}) {
			return r
		}
	}
	return noResult{}
}

func (i *Interpreter) execClass(s *ast.ClassStmt) {
	var superclass *loxClass
	if s.Superclass != nil {
		v := i.eval(s.Superclass)
		sc, ok := v.(*loxClass)
		if !ok {
			i.fail(s.Superclass.Name.Pos, "Superclass must be a class.")
		}
		superclass = sc
	}

	i.env.define(s.Name.Lexeme, loxNil{})

	methodEnv := i.env
	if superclass != nil {
		methodEnv = i.env.child()
		methodEnv.define(token.SuperIdent, superclass)
	}

	methods := map[string]*loxFunction{}
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &loxFunction{
			decl:          m,
			closure:       methodEnv,
			isInitializer: m.Name.Lexeme == token.InitIdent,
		}
	}

	class := &loxClass{name: s.Name.Lexeme, superclass: superclass, methods: methods}
	i.env.assign(s.Name.Lexeme, class)
}

func (i *Interpreter) eval(expr ast.Expr) loxObject {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e.Value)
	case *ast.GroupingExpr:
		return i.eval(e.Expr)
	case *ast.UnaryExpr:
		return i.evalUnary(e)
	case *ast.BinaryExpr:
		return i.evalBinary(e)
	case *ast.LogicalExpr:
		return i.evalLogical(e)
	case *ast.VariableExpr:
		return i.lookUpVariable(e.Name, e.Depth)
	case *ast.AssignExpr:
		return i.evalAssign(e)
	case *ast.CallExpr:
		return i.evalCall(e)
	case *ast.GetExpr:
		return i.evalGet(e)
	case *ast.SetExpr:
		return i.evalSet(e)
	case *ast.ThisExpr:
		return i.env.getAt(e.Depth, token.ThisIdent)
	case *ast.SuperExpr:
		return i.evalSuper(e)
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", expr))
	}
}

func literalValue(tok token.Token) loxObject {
	switch tok.Type {
	case token.Nil:
		return loxNil{}
	case token.True:
		return loxBool(true)
	case token.False:
		return loxBool(false)
	case token.Number:
		return parseNumber(tok.Lexeme)
	case token.String:
		return loxString(tok.Lexeme)
	default:
		panic(fmt.Sprintf("interpreter: unhandled literal token type %v", tok.Type))
	}
}

func (i *Interpreter) lookUpVariable(name token.Token, depth int) loxObject {
	if depth != ast.GlobalDepth {
		return i.env.getAt(depth, name.Lexeme)
	}
	v, ok := i.globals.get(name.Lexeme)
	if !ok {
		i.fail(name.Pos, "Undefined variable '%s'.", name.Lexeme)
	}
	return v
}

func (i *Interpreter) evalAssign(e *ast.AssignExpr) loxObject {
	value := i.eval(e.Value)
	if e.Depth != ast.GlobalDepth {
		i.env.assignAt(e.Depth, e.Name.Lexeme, value)
		return value
	}
	if !i.globals.assign(e.Name.Lexeme, value) {
		i.fail(e.Name.Pos, "Undefined variable '%s'.", e.Name.Lexeme)
	}
	return value
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr) loxObject {
	right := i.eval(e.Right)
	switch e.Op.Type {
	case token.Minus:
		n, ok := right.(loxNumber)
		if !ok {
			i.fail(e.Op.Pos, "Operand must be a number.")
		}
		return -n
	case token.Bang:
		return loxBool(!truthy(right))
	default:
		panic(fmt.Sprintf("interpreter: unhandled unary operator %v", e.Op.Type))
	}
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpr) loxObject {
	left := i.eval(e.Left)
	right := i.eval(e.Right)

	switch e.Op.Type {
	case token.Plus:
		if ln, ok := left.(loxNumber); ok {
			if rn, ok := right.(loxNumber); ok {
				return ln + rn
			}
		}
		if ls, ok := left.(loxString); ok {
			if rs, ok := right.(loxString); ok {
				return ls + rs
			}
		}
		i.fail(e.Op.Pos, "Operands must be two numbers or two strings.")
	case token.Minus:
		return i.arith(e.Op, left, right, func(a, b loxNumber) loxObject { return a - b })
	case token.Star:
		return i.arith(e.Op, left, right, func(a, b loxNumber) loxObject { return a * b })
	case token.Slash:
		return i.arith(e.Op, left, right, func(a, b loxNumber) loxObject { return a / b })
	case token.Greater:
		return i.arith(e.Op, left, right, func(a, b loxNumber) loxObject { return loxBool(a > b) })
	case token.GreaterEqual:
		return i.arith(e.Op, left, right, func(a, b loxNumber) loxObject { return loxBool(a >= b) })
	case token.Less:
		return i.arith(e.Op, left, right, func(a, b loxNumber) loxObject { return loxBool(a < b) })
	case token.LessEqual:
		return i.arith(e.Op, left, right, func(a, b loxNumber) loxObject { return loxBool(a <= b) })
	case token.EqualEqual:
		return loxBool(equal(left, right))
	case token.BangEqual:
		return loxBool(!equal(left, right))
	}
	panic(fmt.Sprintf("interpreter: unhandled binary operator %v", e.Op.Type))
}

// arith implements the numeric binary operators, which all share the same "both operands must
// be numbers" type check.
func (i *Interpreter) arith(op token.Token, left, right loxObject, f func(a, b loxNumber) loxObject) loxObject {
	ln, ok := left.(loxNumber)
	if !ok {
		i.fail(op.Pos, "Operands must be numbers.")
	}
	rn, ok := right.(loxNumber)
	if !ok {
		i.fail(op.Pos, "Operands must be numbers.")
	}
	return f(ln, rn)
}

func (i *Interpreter) evalLogical(e *ast.LogicalExpr) loxObject {
	left := i.eval(e.Left)
	if e.Op.Type == token.Or {
		if truthy(left) {
			return left
		}
	} else {
		if !truthy(left) {
			return left
		}
	}
	return i.eval(e.Right)
}

func (i *Interpreter) evalCall(e *ast.CallExpr) loxObject {
	callee := i.eval(e.Callee)

	args := make([]loxObject, len(e.Args))
	for idx, a := range e.Args {
		args[idx] = i.eval(a)
	}

	callable, ok := callee.(loxCallable)
	if !ok {
		i.fail(e.Paren.Pos, "Can only call functions and classes.")
	}
	if len(args) != callable.arity() {
		i.fail(e.Paren.Pos, "Expected %d arguments but got %d.", callable.arity(), len(args))
	}
	return callable.call(i, args)
}

func (i *Interpreter) evalGet(e *ast.GetExpr) loxObject {
	obj := i.eval(e.Object)
	inst, ok := obj.(*loxInstance)
	if !ok {
		i.fail(e.Name.Pos, "Only instances have properties.")
	}
	v, ok := inst.get(e.Name.Lexeme)
	if !ok {
		i.fail(e.Name.Pos, "Undefined property '%s'.", e.Name.Lexeme)
	}
	return v
}

func (i *Interpreter) evalSet(e *ast.SetExpr) loxObject {
	obj := i.eval(e.Object)
	inst, ok := obj.(*loxInstance)
	if !ok {
		i.fail(e.Name.Pos, "Only instances have fields.")
	}
	value := i.eval(e.Value)
	inst.set(e.Name.Lexeme, value)
	return value
}

func (i *Interpreter) evalSuper(e *ast.SuperExpr) loxObject {
	superclass := i.env.getAt(e.Depth, token.SuperIdent).(*loxClass)
	instance := i.env.getAt(e.Depth-1, token.ThisIdent).(*loxInstance)

	method, ok := superclass.findMethod(e.Method.Lexeme)
	if !ok {
		i.fail(e.Method.Pos, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(instance)
}

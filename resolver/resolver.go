// Package resolver performs the static lexical-scope pass between parsing and evaluation.
//
// It walks the statement list produced by the parser and annotates every Variable, Assign, This
// and Super node with the number of enclosing scopes to hop through to find its binding, so that
// the evaluator never has to search an environment chain by name. It also rejects a handful of
// programs that are syntactically valid but scope-invalid, such as reading a local variable in
// its own initializer or using "this" outside a method.
package resolver

import (
	"github.com/aldenridge/lox/ast"
	"github.com/aldenridge/lox/loxerror"
	"github.com/aldenridge/lox/token"
)

type bindingState int

const (
	declared bindingState = iota
	defined
)

type functionKind int

const (
	noFunction functionKind = iota
	inFunction
	inMethod
	inInitializer
)

type classKind int

const (
	noClass classKind = iota
	inClass
	inSubclass
)

// Resolve annotates the Depth field of every Variable, Assign, This and Super node reachable
// from stmts. Unlike the scanner and parser, the first scope error encountered is fatal: it is
// returned immediately and the remainder of the program is left unresolved.
func Resolve(stmts []ast.Stmt) error {
	r := &resolver{currentFunction: noFunction, currentClass: noClass}
	return r.resolve(stmts)
}

type resolver struct {
	scopes stack[map[string]bindingState]

	currentFunction functionKind
	currentClass    classKind
}

// resolveError is panicked to unwind out of the (potentially deep) recursive traversal as soon
// as the first scope error is found; Resolve recovers it and returns it as a plain error.
type resolveError struct{ err *loxerror.Error }

func (r *resolver) resolve(stmts []ast.Stmt) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			re, ok := rec.(resolveError)
			if !ok {
				panic(rec)
			}
			err = re.err
		}
	}()
	r.resolveStmts(stmts)
	return nil
}

func (r *resolver) fail(tok token.Token, format string, args ...any) {
	panic(resolveError{loxerror.NewFromToken(tok, format, args...)})
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, inFunction)
	case *ast.ReturnStmt:
		if r.currentFunction == noFunction {
			r.fail(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == inInitializer {
				r.fail(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(s)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = inClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.fail(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = inSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		defer r.endScope()
		r.scopes.top()[token.SuperIdent] = defined
	}

	r.beginScope()
	defer r.endScope()
	r.scopes.top()[token.ThisIdent] = defined

	for _, m := range s.Methods {
		kind := inMethod
		if m.Name.Lexeme == token.InitIdent {
			kind = inInitializer
		}
		r.resolveFunction(m, kind)
	}
}

func (r *resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
	case *ast.GroupingExpr:
		r.resolveExpr(e.Expr)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.VariableExpr:
		if !r.scopes.empty() {
			if state, ok := r.scopes.top()[e.Name.Lexeme]; ok && state == declared {
				r.fail(e.Name, "Can't read local variable '%s' in its own initializer.", e.Name.Lexeme)
			}
		}
		e.Depth = r.resolveLocal(e.Name.Lexeme)
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		e.Depth = r.resolveLocal(e.Name.Lexeme)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.GetExpr:
		r.resolveExpr(e.Object)
	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.ThisExpr:
		if r.currentClass == noClass {
			r.fail(e.Keyword, "Can't use 'this' outside of a class.")
		}
		e.Depth = r.resolveLocal(token.ThisIdent)
	case *ast.SuperExpr:
		switch r.currentClass {
		case noClass:
			r.fail(e.Keyword, "Can't use 'super' outside of a class.")
		case inClass:
			r.fail(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		e.Depth = r.resolveLocal(token.SuperIdent)
	default:
		panic("resolver: unhandled expression type")
	}
}

func (r *resolver) resolveLocal(name string) int {
	for depth := 0; depth < len(r.scopes); depth++ {
		if _, ok := r.scopes.at(depth)[name]; ok {
			return depth
		}
	}
	return ast.GlobalDepth
}

func (r *resolver) beginScope() {
	r.scopes.push(map[string]bindingState{})
}

func (r *resolver) endScope() {
	r.scopes.pop()
}

// declare is a no-op at the global scope: Lox allows redeclaring globals but not locals.
func (r *resolver) declare(name token.Token) {
	if r.scopes.empty() {
		return
	}
	scope := r.scopes.top()
	if _, ok := scope[name.Lexeme]; ok {
		r.fail(name, "Already variable with this name in this scope.")
	}
	scope[name.Lexeme] = declared
}

func (r *resolver) define(name token.Token) {
	if r.scopes.empty() {
		return
	}
	r.scopes.top()[name.Lexeme] = defined
}

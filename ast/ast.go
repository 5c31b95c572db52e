// Package ast defines the syntax tree produced by the parser and consumed by the resolver and
// interpreter.
package ast

import "github.com/aldenridge/lox/token"

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
}

// LiteralExpr is a literal value: a number, string, "true", "false" or "nil".
type LiteralExpr struct {
	Value token.Token // Number, String, True, False or Nil
}

// GroupingExpr is a parenthesised expression, kept distinct from its inner expression so that
// assignment targets can reject it.
type GroupingExpr struct {
	Expr Expr
}

// UnaryExpr is a prefix operator application: "-x" or "!x".
type UnaryExpr struct {
	Op    token.Token // Minus or Bang
	Right Expr
}

// BinaryExpr is an infix operator application other than "and"/"or".
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// LogicalExpr is a short-circuiting "and" or "or" expression.
type LogicalExpr struct {
	Left  Expr
	Op    token.Token // And or Or
	Right Expr
}

// VariableExpr is a reference to a variable by name.
type VariableExpr struct {
	Name token.Token

	// Depth is filled in by the resolver: the number of enclosing scopes, starting from the
	// innermost, in which Name is bound. Unresolved (global) references leave Depth at GlobalDepth.
	Depth int
}

// AssignExpr assigns Value to the variable named Name.
type AssignExpr struct {
	Name  token.Token
	Value Expr

	// Depth is filled in by the resolver, as for VariableExpr.
	Depth int
}

// CallExpr is a function or method call: Callee "(" Args... ")".
type CallExpr struct {
	Callee Expr
	Paren  token.Token // the closing ")", used to report arity errors
	Args   []Expr
}

// GetExpr accesses the property Name on Object.
type GetExpr struct {
	Object Expr
	Name   token.Token
}

// SetExpr assigns Value to the property Name on Object.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// ThisExpr is a reference to the "this" keyword.
type ThisExpr struct {
	Keyword token.Token

	Depth int
}

// SuperExpr is a reference to a superclass method: "super" "." Method.
type SuperExpr struct {
	Keyword token.Token
	Method  token.Token

	Depth int
}

func (*LiteralExpr) exprNode()  {}
func (*GroupingExpr) exprNode() {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*GetExpr) exprNode()      {}
func (*SetExpr) exprNode()      {}
func (*ThisExpr) exprNode()     {}
func (*SuperExpr) exprNode()    {}

// GlobalDepth is the sentinel Depth value meaning "not resolved to any enclosing local scope";
// such references are looked up in the global environment at runtime.
const GlobalDepth = -1

// ExprStmt evaluates Expr and discards its result.
type ExprStmt struct {
	Expr Expr
}

// PrintStmt evaluates Expr and writes its string representation to stdout.
type PrintStmt struct {
	Expr Expr
}

// VarStmt declares a variable named Name, optionally initialised to Init.
// Init is nil if the declaration has no initialiser, in which case the variable is bound to nil.
type VarStmt struct {
	Name token.Token
	Init Expr
}

// BlockStmt is a brace-delimited sequence of statements introducing a new lexical scope.
type BlockStmt struct {
	Stmts []Stmt
}

// IfStmt is a conditional. Else is nil if there is no else branch.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is a condition-checked loop. for loops are desugared into WhileStmt by the parser.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// FunctionStmt declares a named function or method.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// ReturnStmt returns from the innermost enclosing function. Value is nil for a bare "return;".
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

// ClassStmt declares a class. Superclass is nil if the class has no "< Superclass" clause.
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr
	Methods    []*FunctionStmt
}

func (*ExprStmt) stmtNode()     {}
func (*PrintStmt) stmtNode()    {}
func (*VarStmt) stmtNode()      {}
func (*BlockStmt) stmtNode()    {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*FunctionStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()   {}
func (*ClassStmt) stmtNode()    {}

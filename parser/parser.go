// Package parser implements a recursive-descent parser that turns a token stream into the
// statement list that forms a Lox program's abstract syntax tree.
package parser

import (
	"github.com/aldenridge/lox/ast"
	"github.com/aldenridge/lox/loxerror"
	"github.com/aldenridge/lox/token"
)

// Parse parses the token stream tokens into a program, which is a list of statements.
// If any syntax errors are encountered, parsing does not stop at the first one: the parser
// synchronizes to the next statement boundary and keeps going so that every error can be
// reported at once. In that case the returned statement slice is nil.
func Parse(tokens []token.Token) ([]ast.Stmt, error) {
	p := &parser{tokens: tokens}
	return p.parse()
}

type parser struct {
	tokens  []token.Token
	current int

	errs loxerror.List
}

// unwind is panicked to abort parsing of the current declaration after a syntax error has been
// recorded; parse recovers it and synchronizes to the next statement boundary.
type unwind struct{}

func (p *parser) parse() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if s := p.safeDeclaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return stmts, nil
}

// safeDeclaration parses a single declaration, recovering from a syntax error by synchronizing
// to the next statement boundary and reporting nil for the failed declaration.
func (p *parser) safeDeclaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(unwind); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()
	return p.declaration()
}

func (p *parser) declaration() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *parser) classDecl() ast.Stmt {
	name := p.expect(token.Ident, "Expect class name.")

	var superclass *ast.VariableExpr
	if p.match(token.Less) {
		superName := p.expect(token.Ident, "Expect superclass name.")
		superclass = &ast.VariableExpr{Name: superName, Depth: ast.GlobalDepth}
	}

	p.expect(token.LeftBrace, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}
	p.expect(token.RightBrace, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// function parses the body shared by fun declarations and methods: IDENT "(" params? ")" block.
// kind is "function" or "method", used only to word the error messages.
func (p *parser) function(kind string) *ast.FunctionStmt {
	name := p.expect(token.Ident, "Expect "+kind+" name.")
	p.expect(token.LeftParen, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			params = append(params, p.expect(token.Ident, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightParen, "Expect ')' after parameters.")
	p.expect(token.LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *parser) varDecl() ast.Stmt {
	name := p.expect(token.Ident, "Expect variable name.")
	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.expect(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Init: init}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.LeftBrace):
		return &ast.BlockStmt{Stmts: p.block()}
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.Return):
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

func (p *parser) printStmt() ast.Stmt {
	value := p.expression()
	p.expect(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: value}
}

func (p *parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.expect(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExprStmt{Expr: expr}
}

func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		if s := p.safeDeclaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *parser) ifStmt() ast.Stmt {
	p.expect(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.expect(token.RightParen, "Expect ')' after if condition.")
	then := p.statement()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *parser) whileStmt() ast.Stmt {
	p.expect(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.expect(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

// forStmt parses a C-style for loop and immediately desugars it into a Block wrapping a While,
// per the design in 4.2: the parser never produces a dedicated for-loop AST node.
func (p *parser) forStmt() ast.Stmt {
	p.expect(token.LeftParen, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		// no initializer
	case p.match(token.Var):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.expect(token.Semicolon, "Expect ';' after loop condition.")

	var inc ast.Expr
	if !p.check(token.RightParen) {
		inc = p.expression()
	}
	p.expect(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if inc != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: inc}}}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{Value: token.Token{Type: token.True}}
	}
	body = &ast.WhileStmt{Cond: cond, Body: body}
	if init != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.expect(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

func (p *parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: e.Name, Value: value, Depth: ast.GlobalDepth}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: e.Object, Name: e.Name, Value: value}
		default:
			p.errs.AddFromToken(equals, "Invalid assignment target.")
			return expr
		}
	}

	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Plus, token.Minus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Star, token.Slash) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.expect(token.Ident, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.expect(token.RightParen, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.Number, token.String, token.True, token.False, token.Nil):
		return &ast.LiteralExpr{Value: p.previous()}
	case p.match(token.This):
		return &ast.ThisExpr{Keyword: p.previous(), Depth: ast.GlobalDepth}
	case p.match(token.Super):
		keyword := p.previous()
		p.expect(token.Dot, "Expect '.' after 'super'.")
		method := p.expect(token.Ident, "Expect superclass method name.")
		return &ast.SuperExpr{Keyword: keyword, Method: method, Depth: ast.GlobalDepth}
	case p.match(token.Ident):
		return &ast.VariableExpr{Name: p.previous(), Depth: ast.GlobalDepth}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.expect(token.RightParen, "Expect ')' after expression.")
		return &ast.GroupingExpr{Expr: expr}
	default:
		p.errs.AddFromToken(p.peek(), "Expect expression.")
		panic(unwind{})
	}
}

// synchronize discards tokens until it reaches a likely statement boundary, so that parsing of
// subsequent declarations can proceed after a syntax error.
func (p *parser) synchronize() {
	for !p.atEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it has type t, or reports message at the current token
// and aborts the current declaration.
func (p *parser) expect(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errs.AddFromToken(p.peek(), message)
	panic(unwind{})
}

func (p *parser) check(t token.Type) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) atEnd() bool {
	return p.current >= len(p.tokens)
}

func (p *parser) peek() token.Token {
	if p.atEnd() {
		return token.Token{Type: token.EOF, Pos: token.Position{}}
	}
	return p.tokens[p.current]
}

func (p *parser) previous() token.Token {
	return p.tokens[p.current-1]
}

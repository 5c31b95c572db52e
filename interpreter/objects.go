package interpreter

import (
	"fmt"
	"strconv"

	"github.com/aldenridge/lox/ast"
)

// loxObject is a runtime Lox value. The concrete types below are loxNil, loxBool, loxNumber,
// loxString, *loxFunction, *loxNative, *loxClass and *loxInstance.
type loxObject interface {
	String() string
}

// loxNil is the sole value of Lox's nil type.
type loxNil struct{}

func (loxNil) String() string { return "nil" }

type loxBool bool

func (b loxBool) String() string {
	if b {
		return "true"
	}
	return "false"
}

type loxNumber float64

func (n loxNumber) String() string {
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	return s
}

type loxString string

func (s loxString) String() string { return string(s) }

// truthy reports whether v is truthy: everything except nil and false.
func truthy(v loxObject) bool {
	switch v := v.(type) {
	case loxNil:
		return false
	case loxBool:
		return bool(v)
	default:
		return true
	}
}

// equal implements Lox value equality: nil equals only nil, and otherwise values compare equal
// only when they share both type and content.
func equal(a, b loxObject) bool {
	switch a := a.(type) {
	case loxNil:
		_, ok := b.(loxNil)
		return ok
	case loxBool:
		b, ok := b.(loxBool)
		return ok && a == b
	case loxNumber:
		b, ok := b.(loxNumber)
		return ok && a == b
	case loxString:
		b, ok := b.(loxString)
		return ok && a == b
	default:
		return a == b
	}
}

// loxCallable is implemented by every value that can appear as the callee of a Call expression.
type loxCallable interface {
	loxObject
	arity() int
	call(i *Interpreter, args []loxObject) loxObject
}

// loxNative wraps a built-in function installed in the global environment.
type loxNative struct {
	name string
	n    int
	fn   func(i *Interpreter, args []loxObject) loxObject
}

func (f *loxNative) String() string      { return "<fn>" }
func (f *loxNative) arity() int          { return f.n }
func (f *loxNative) call(i *Interpreter, args []loxObject) loxObject {
	return f.fn(i, args)
}

// loxFunction is a user-defined function or method: its parameter list and body, together with
// the environment in which it was declared (its closure).
type loxFunction struct {
	decl          *ast.FunctionStmt
	closure       *environment
	isInitializer bool
}

func (f *loxFunction) String() string {
	return fmt.Sprintf("<fn/%d>", len(f.decl.Params))
}

func (f *loxFunction) arity() int { return len(f.decl.Params) }

// bind returns a copy of f whose closure is a fresh child of f's closure in which "this" is
// bound to instance. It is how method lookup turns an unbound method into a callable value.
func (f *loxFunction) bind(instance *loxInstance) *loxFunction {
	env := f.closure.child()
	env.define("this", instance)
	return &loxFunction{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

func (f *loxFunction) call(i *Interpreter, args []loxObject) loxObject {
	env := f.closure.child()
	for idx, param := range f.decl.Params {
		env.define(param.Lexeme, args[idx])
	}

	result := i.execBlock(f.decl.Body, env)

	if f.isInitializer {
		return f.closure.getAt(0, "this")
	}
	if ret, ok := result.(returnSignal); ok {
		return ret.value
	}
	return loxNil{}
}

// loxClass is a Lox class: its name, its own methods, and an optional superclass to fall back to.
type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFunction
}

func (c *loxClass) String() string { return c.name }

// findMethod looks up name in c's own methods, falling back to the superclass chain.
func (c *loxClass) findMethod(name string) (*loxFunction, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

func (c *loxClass) arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.arity()
	}
	return 0
}

func (c *loxClass) call(i *Interpreter, args []loxObject) loxObject {
	instance := &loxInstance{class: c, fields: map[string]loxObject{}}
	if init, ok := c.findMethod("init"); ok {
		init.bind(instance).call(i, args)
	}
	return instance
}

// loxInstance is an instance of a loxClass: a mutable bag of fields, falling back to the class's
// bound methods when a field of the same name isn't present.
type loxInstance struct {
	class  *loxClass
	fields map[string]loxObject
}

func (inst *loxInstance) String() string { return inst.class.name + " instance" }

func (inst *loxInstance) get(name string) (loxObject, bool) {
	if v, ok := inst.fields[name]; ok {
		return v, true
	}
	if m, ok := inst.class.findMethod(name); ok {
		return m.bind(inst), true
	}
	return nil, false
}

func (inst *loxInstance) set(name string, value loxObject) {
	inst.fields[name] = value
}

// stringify renders v the way "print" and the REPL display it.
func stringify(v loxObject) string {
	return v.String()
}

// parseNumber converts a Number token's lexeme to its loxNumber value. The scanner guarantees
// lexeme matches [0-9]+(.[0-9]+)?, so parsing can never fail here.
func parseNumber(lexeme string) loxNumber {
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		panic(fmt.Sprintf("interpreter: malformed number literal %q", lexeme))
	}
	return loxNumber(n)
}

package interpreter

import "fmt"

// environment is a frame of name-to-value bindings, optionally chained to an enclosing frame.
// The chain forms a DAG rather than a strict stack: closures can keep a frame alive long after
// the block that created it has returned, and sibling closures can share an ancestor.
type environment struct {
	enclosing *environment
	values    map[string]loxObject
}

func newEnvironment() *environment {
	return &environment{values: map[string]loxObject{}}
}

// child returns a new environment enclosed by e.
func (e *environment) child() *environment {
	return &environment{enclosing: e, values: map[string]loxObject{}}
}

// define binds name to value in e's own frame, overwriting any existing binding. This is the
// only operation that permits redefining a name already bound in the same frame, which is how
// the global scope tolerates "var x; var x;".
func (e *environment) define(name string, value loxObject) {
	e.values[name] = value
}

// get looks up name by walking the chain from e outward.
func (e *environment) get(name string) (loxObject, bool) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// assign walks the chain from e outward and writes value into the first frame binding name.
// It reports false if name is not bound anywhere in the chain.
func (e *environment) assign(name string, value loxObject) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return true
		}
	}
	return false
}

// ancestor hops exactly depth enclosing links up from e.
func (e *environment) ancestor(depth int) *environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}

// getAt hops exactly depth links up, then reads name from that frame's own map without further
// walking the chain. depth is trusted to have been computed by the resolver: per the resolver's
// contract, a missing binding here means the resolver and evaluator have disagreed about scope,
// which is a bug rather than a user-facing error.
func (e *environment) getAt(depth int, name string) loxObject {
	v, ok := e.ancestor(depth).values[name]
	if !ok {
		panic(fmt.Sprintf("interpreter: resolved variable %q not found at depth %d", name, depth))
	}
	return v
}

// assignAt hops exactly depth links up, then writes into that frame's own map.
func (e *environment) assignAt(depth int, name string, value loxObject) {
	e.ancestor(depth).values[name] = value
}

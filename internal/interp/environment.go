package interp

import (
	"github.com/cwbudde/loxi/internal/errors"
	"github.com/cwbudde/loxi/internal/token"
)

// Environment is a lexical scope frame: a name→value map with a parent
// (outer) pointer. One is created per block, per function/method
// invocation, per class declaration with a superclass (to bind `super`),
// and per method binding (to bind `this`). It stays alive for as long as
// any closure references it.
//
// Unlike the teacher's runtime.Environment, this is keyed by a plain Go
// map rather than a case-folding ident.Map — Lox identifiers are
// case-sensitive, so folding keys would change which variable a reference
// binds to, not just how it's looked up.
type Environment struct {
	values map[string]any
	outer  *Environment
}

// NewEnvironment creates a root environment with no outer scope.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]any)}
}

// NewEnclosedEnvironment creates an environment nested inside outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{values: make(map[string]any), outer: outer}
}

// Define binds name to value in this scope, unconditionally. Redefinition
// silently overwrites — duplicate-declaration checking for locals is the
// resolver's job; globals permit redefinition by design.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get reads name, searching this scope then each outer scope in turn. Used
// only for unresolved (global) references — locals go through GetAt.
func (e *Environment) Get(tok token.Token) (any, error) {
	if v, ok := e.values[tok.Lexeme]; ok {
		return v, nil
	}
	if e.outer != nil {
		return e.outer.Get(tok)
	}
	return nil, errors.NewRuntimeError(tok, "undefined variable '%s'", tok.Lexeme)
}

// Assign writes name in the nearest scope (this or an outer one) where it
// is already defined. It never implicitly defines — assigning to an
// undefined name is a runtime error.
func (e *Environment) Assign(tok token.Token, value any) error {
	if _, ok := e.values[tok.Lexeme]; ok {
		e.values[tok.Lexeme] = value
		return nil
	}
	if e.outer != nil {
		return e.outer.Assign(tok, value)
	}
	return errors.NewRuntimeError(tok, "undefined variable '%s'", tok.Lexeme)
}

// Ancestor walks exactly distance hops up the parent chain.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.outer
	}
	return env
}

// GetAt reads name from the environment distance hops up the chain. The
// resolver guarantees the name is present there, so no error path exists.
func (e *Environment) GetAt(distance int, name string) any {
	return e.Ancestor(distance).values[name]
}

// AssignAt writes name in the environment distance hops up the chain.
func (e *Environment) AssignAt(distance int, name string, value any) {
	e.Ancestor(distance).values[name] = value
}

// Outer returns the enclosing environment, or nil at the root.
func (e *Environment) Outer() *Environment {
	return e.outer
}

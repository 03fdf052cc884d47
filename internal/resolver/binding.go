package resolver

import "github.com/cwbudde/loxi/internal/token"

// variableState is a local variable's position in its declare/use
// lifecycle within the scope it was declared in.
type variableState int

const (
	declared variableState = iota // name seen, its initializer not yet resolved
	defined                       // `var x;` with no initializer, not yet written to
	assigned                      // has an initializer or has been written to
	accessed                      // has been read at least once
	ignore                        // compiler-synthesized (`this`, `super`): never diagnosed
)

// variableInfo tracks one binding's lifecycle state within a single scope.
type variableInfo struct {
	state variableState
	token token.Token
}

// scope is a single lexical block's declared-name table.
type scope map[string]*variableInfo

// functionKind distinguishes the different bodies a resolver may be
// walking, to validate `return`/`this` rules.
type functionKind int

const (
	fkNone functionKind = iota
	fkFunction
	fkLambda
	fkMethod
	fkInitializer
	fkClassMethod // static method: `this` disallowed
)

// classKind distinguishes being outside any class, in a class with no
// superclass, and in a subclass (where `super` is valid).
type classKind int

const (
	ckNone classKind = iota
	ckClass
	ckSubclass
)

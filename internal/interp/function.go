package interp

import (
	"github.com/cwbudde/loxi/internal/ast"
)

// Function is a user-defined function, lambda, or bound method. All three
// share the same shape (spec §3): an AST body, the environment captured at
// definition time, and whether this is a class's `init`.
type Function struct {
	name          string // empty for an anonymous lambda
	paramNames    []string
	body          []ast.Stmt
	closure       *Environment
	isInitializer bool
}

func newFunction(name string, paramNames []string, body []ast.Stmt, closure *Environment, isInitializer bool) *Function {
	return &Function{
		name:          name,
		paramNames:    paramNames,
		body:          body,
		closure:       closure,
		isInitializer: isInitializer,
	}
}

// Arity is the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.paramNames)
}

func (f *Function) String() string {
	if f.name == "" {
		return "<lambda>"
	}
	return "<fn " + f.name + ">"
}

// bind returns a copy of f whose closure additionally binds `this` to
// instance, used when a method is looked up off an instance (spec §4.4:
// "bound to this via an environment push").
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return newFunction(f.name, f.paramNames, f.body, env, f.isInitializer)
}

// bindClass returns a copy of f whose closure binds `this` to the class
// itself, used for static class methods (spec §4.4: "bind `this` to the
// class object, not to an instance").
func (f *Function) bindClass(class *Class) *Function {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", class)
	return newFunction(f.name, f.paramNames, f.body, env, false)
}

// Call invokes the function: a fresh environment parented by the closure
// binds parameters in declaration order, then the body executes. A normal
// fall-through returns nil; an `init` method always returns the bound
// `this` regardless of what the body's `return` produced.
func (f *Function) Call(i *Interpreter, args []any) (any, error) {
	env := NewEnclosedEnvironment(f.closure)
	for idx, name := range f.paramNames {
		env.Define(name, args[idx])
	}

	err := i.executeBlock(f.body, env)
	if ret, ok := err.(*returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

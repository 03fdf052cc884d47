package interp

import (
	"fmt"

	"github.com/cwbudde/loxi/internal/errors"
	"github.com/cwbudde/loxi/internal/token"
)

// Class is a Lox class: a name, an optional superclass, and three method
// tables (instance methods, getter-style properties, and `class`-prefixed
// static methods). Calling a Class constructs an Instance.
type Class struct {
	name         string
	superclass   *Class
	methods      map[string]*Function
	properties   map[string]*Function
	classMethods map[string]*Function
}

func newClass(name string, superclass *Class, methods, properties, classMethods map[string]*Function) *Class {
	return &Class{
		name:         name,
		superclass:   superclass,
		methods:      methods,
		properties:   properties,
		classMethods: classMethods,
	}
}

func (c *Class) String() string {
	return c.name
}

// findMethod looks up an instance method or property by name, walking the
// superclass chain.
func (c *Class) findMethod(name string) *Function {
	if m, ok := c.methods[name]; ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

func (c *Class) findProperty(name string) *Function {
	if p, ok := c.properties[name]; ok {
		return p
	}
	if c.superclass != nil {
		return c.superclass.findProperty(name)
	}
	return nil
}

func (c *Class) findClassMethod(name string) *Function {
	if m, ok := c.classMethods[name]; ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.findClassMethod(name)
	}
	return nil
}

// Arity is the constructor's arity: `init`'s, if defined, else 0.
func (c *Class) Arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance, running `init` (bound to it) if present.
func (c *Class) Call(i *Interpreter, args []any) (any, error) {
	instance := &Instance{class: c, fields: make(map[string]any)}
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Get reads a static member off the class itself: only class methods are
// exposed this way (spec §4.4: "classes themselves expose only their
// static class methods").
func (c *Class) Get(name token.Token) (any, error) {
	if m := c.findClassMethod(name.Lexeme); m != nil {
		return m.bindClass(c), nil
	}
	return nil, errors.NewRuntimeError(name, "undefined property '%s'", name.Lexeme)
}

// Instance is a runtime object created by calling a Class.
type Instance struct {
	class  *Class
	fields map[string]any
}

func (inst *Instance) String() string {
	return fmt.Sprintf("%s instance", inst.class.name)
}

// Get resolves `instance.name`: a field first, then a bound method, then a
// getter-style property (invoked immediately with no arguments).
func (inst *Instance) Get(i *Interpreter, name token.Token) (any, error) {
	if v, ok := inst.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := inst.class.findMethod(name.Lexeme); m != nil {
		return m.bind(inst), nil
	}
	if p := inst.class.findProperty(name.Lexeme); p != nil {
		return p.bind(inst).Call(i, nil)
	}
	return nil, errors.NewRuntimeError(name, "undefined property '%s'", name.Lexeme)
}

// Set writes a field. Only instances have mutable fields.
func (inst *Instance) Set(name token.Token, value any) {
	inst.fields[name.Lexeme] = value
}

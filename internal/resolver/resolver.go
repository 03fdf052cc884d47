// Package resolver implements Lox's static binding pass: a depth-first walk
// over the AST that annotates every local variable/this/super reference
// with a lexical scope distance, and reports purely static semantic errors
// (unused locals, invalid return/break/this/super, self-reference in
// initializers, duplicate declarations) without running any code.
package resolver

import (
	"github.com/cwbudde/loxi/internal/ast"
	"github.com/cwbudde/loxi/internal/errors"
	"github.com/cwbudde/loxi/internal/token"
)

// Binder receives the resolver's binding decisions. The interpreter
// implements this so the resolver never needs to import the runtime
// package — it only needs somewhere to record "this expression binds at
// depth d".
type Binder interface {
	Resolve(expr ast.Expr, depth int)
}

// Resolver performs the single static-analysis pass described by the
// language's scoping rules. It holds a stack of block-scope maps plus the
// enclosing function/class kind, matching the teacher's multi-pass
// architecture reduced to Lox's single pass (see SPEC_FULL.md §4.3).
type Resolver struct {
	binder Binder

	scopes          []scope
	currentFunction functionKind
	currentClass    classKind
	loopDepth       int

	source, file string
	errs         []*errors.CompilerError
}

// New creates a Resolver that reports bindings to binder.
func New(binder Binder, source, file string) *Resolver {
	return &Resolver{binder: binder, source: source, file: file}
}

// Resolve walks the program once and returns the static errors found, if
// any. It is idempotent: running it twice over the same AST produces the
// same depth annotations (the only state carried between Resolve calls is
// the error list, which accumulates on the Resolver).
func (r *Resolver) Resolve(program *ast.Program) []*errors.CompilerError {
	r.resolveStmts(program.Statements)
	return r.errs
}

func (r *Resolver) errorf(tok token.Token, format string, args ...any) {
	r.errs = append(r.errs, errors.NewCompilerErrorf(tok.Pos, r.source, r.file, format, args...))
}

// --- scope stack ---

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	for name, info := range top {
		switch info.state {
		case defined:
			r.errorf(info.token, "variable %q defined but never assigned", name)
		case assigned:
			r.errorf(info.token, "variable %q assigned to but never accessed", name)
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare introduces name into the innermost scope in the DECLARED state.
// At the top level there is no active scope (globals are not tracked by
// the resolver), so declare is a no-op there — consistent with globals
// flowing through the interpreter's outer environment unannotated.
func (r *Resolver) declare(tok token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.scopes[len(r.scopes)-1]
	if _, exists := top[tok.Lexeme]; exists {
		r.errorf(tok, "variable with this name already declared in this scope")
	}
	top[tok.Lexeme] = &variableInfo{state: declared, token: tok}
}

// define transitions name (already declared in the innermost scope, or
// declared-and-defined in one step for names — functions, parameters,
// class names — that are immediately usable) to state.
func (r *Resolver) define(tok token.Token, state variableState) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.scopes[len(r.scopes)-1]
	if info, exists := top[tok.Lexeme]; exists {
		info.state = state
		return
	}
	top[tok.Lexeme] = &variableInfo{state: state, token: tok}
}

// declareSynthetic introduces a compiler-generated binding (`this`,
// `super`) that is never subject to the defined/assigned/accessed
// diagnostics.
func (r *Resolver) declareSynthetic(name string) {
	top := r.scopes[len(r.scopes)-1]
	top[name] = &variableInfo{state: ignore}
}

// resolveLocal scans the scope stack innermost-to-outermost for name; if
// found, it reports the binding depth to the Binder. A name not found in
// any scope is left unannotated — it is a global, resolved by the
// interpreter's outer environment at run time. markRead is false for
// assignment targets: `x = e` is a write and must not by itself advance a
// variable past ASSIGNED into ACCESSED; it moves a DEFINED one to ASSIGNED.
func (r *Resolver) resolveLocal(expr ast.Expr, name string, markRead bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if info, ok := r.scopes[i][name]; ok {
			if markRead && info.state != ignore {
				info.state = accessed
			} else if !markRead && info.state == defined {
				info.state = assigned
			}
			r.binder.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

// --- statements ---

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(n.Expression)
	case *ast.PrintStmt:
		r.resolveExpr(n.Expression)
	case *ast.VarStmt:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
			r.define(n.Name, assigned)
		} else {
			r.define(n.Name, defined)
		}
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(n.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(n.Condition)
		r.loopDepth++
		r.resolveStmt(n.Body)
		r.loopDepth--
	case *ast.BreakStmt:
		if r.loopDepth == 0 {
			r.errorf(n.Keyword, "'break' outside of a loop")
		}
	case *ast.ReturnStmt:
		if r.currentFunction == fkNone {
			r.errorf(n.Keyword, "'return' outside of a function")
		}
		if n.Value != nil {
			if r.currentFunction == fkInitializer {
				r.errorf(n.Keyword, "cannot return a value from an initializer")
			}
			r.resolveExpr(n.Value)
		}
	case *ast.FunctionDecl:
		r.declare(n.Name)
		r.define(n.Name, assigned)
		r.resolveFunction(n, fkFunction)
	case *ast.ClassDecl:
		r.resolveClass(n)
	}
}

func (r *Resolver) resolveFunction(decl *ast.FunctionDecl, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range decl.Params {
		r.declare(param)
		// Parameters are exempt from the unused-local diagnostic: an
		// unused parameter is a normal, common shape (and arity mismatches
		// must surface as a runtime error, not be masked by a static one).
		r.define(param, ignore)
	}
	r.resolveStmts(decl.Body)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *Resolver) resolveClass(decl *ast.ClassDecl) {
	enclosingClass := r.currentClass
	r.currentClass = ckClass

	r.declare(decl.Name)
	if decl.Superclass != nil {
		// Resolved before the class name is defined: `class Foo < Foo`
		// inside any enclosing scope trips the self-reference-in-initializer
		// check below, the same way `var x = x;` does.
		r.resolveExpr(decl.Superclass)
		r.currentClass = ckSubclass
	}
	r.define(decl.Name, assigned)

	if decl.Superclass != nil {
		r.beginScope()
		r.declareSynthetic("super")
	}

	r.beginScope()
	r.declareSynthetic("this")

	for _, prop := range decl.Properties {
		r.resolveFunction(prop, fkMethod)
	}
	for _, method := range decl.Methods {
		kind := fkMethod
		if method.Name.Lexeme == "init" {
			kind = fkInitializer
		}
		r.resolveFunction(method, kind)
	}
	for _, classMethod := range decl.ClassMethods {
		r.resolveFunction(classMethod, fkClassMethod)
	}

	r.endScope() // this
	if decl.Superclass != nil {
		r.endScope() // super
	}

	r.currentClass = enclosingClass
}

// --- expressions ---

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		// no bindings
	case *ast.Grouping:
		r.resolveExpr(n.Expression)
	case *ast.Unary:
		r.resolveExpr(n.Right)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Ternary:
		r.resolveExpr(n.Condition)
		r.resolveExpr(n.Then)
		r.resolveExpr(n.Else)
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, arg := range n.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(n.Object)
	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *ast.This:
		if r.currentClass == ckNone {
			r.errorf(n.Keyword, "cannot use 'this' outside of a class")
			return
		}
		if r.currentFunction == fkClassMethod {
			r.errorf(n.Keyword, "cannot use 'this' inside a static method")
			return
		}
		r.resolveLocal(n, "this", true)
	case *ast.Super:
		if r.currentClass == ckNone {
			r.errorf(n.Keyword, "cannot use 'super' outside of a class")
			return
		}
		if r.currentClass != ckSubclass {
			r.errorf(n.Keyword, "cannot use 'super' in a class with no superclass")
			return
		}
		if r.currentFunction == fkClassMethod {
			r.errorf(n.Keyword, "cannot use 'super' inside a static method")
			return
		}
		r.resolveLocal(n, "super", true)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			top := r.scopes[len(r.scopes)-1]
			if info, ok := top[n.Name.Lexeme]; ok && info.state == declared {
				r.errorf(n.Name, "cannot read local variable %q in its own initializer", n.Name.Lexeme)
			}
		}
		r.checkRead(n.Name)
		r.resolveLocal(n, n.Name.Lexeme, true)
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n, n.Name.Lexeme, false)
	case *ast.Lambda:
		r.resolveFunction(&ast.FunctionDecl{Params: n.Params, Body: n.Body}, fkLambda)
	}
}

// checkRead reports a read of a local still in the DEFINED (never
// assigned) state, anywhere on the scope stack.
func (r *Resolver) checkRead(name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if info, ok := r.scopes[i][name.Lexeme]; ok {
			if info.state == defined {
				r.errorf(name, "variable %q is read before being assigned a value", name.Lexeme)
			}
			return
		}
	}
}

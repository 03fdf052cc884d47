package interp

import (
	"io"

	"github.com/cwbudde/loxi/internal/ast"
	"github.com/cwbudde/loxi/internal/errors"
	"github.com/cwbudde/loxi/internal/token"
)

// Interpreter walks a resolved AST and executes it directly: one pass,
// top to bottom, no bytecode in between. locals records the binding
// distances the resolver computed, keyed by the exact *ast.Variable /
// *ast.This / *ast.Super / *ast.Assign node it resolved — an unresolved
// name falls through to globals.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[ast.Expr]int

	output            io.Writer
	maxRecursionDepth int
	callDepth         int
	echoREPL          bool
}

// New creates an Interpreter that writes `print` output to output.
func New(output io.Writer, opts Options) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", nativeClock{})

	maxDepth := DefaultMaxRecursionDepth
	echoREPL := false
	if opts != nil {
		if d := opts.GetMaxRecursionDepth(); d > 0 {
			maxDepth = d
		}
		echoREPL = opts.GetEchoREPLExpressions()
	}

	return &Interpreter{
		globals:           globals,
		env:               globals,
		locals:            make(map[ast.Expr]int),
		output:            output,
		maxRecursionDepth: maxDepth,
		echoREPL:          echoREPL,
	}
}

// DefineGlobal lets an embedder register an additional native global
// (typically a Callable) before running any source.
func (i *Interpreter) DefineGlobal(name string, value any) {
	i.globals.Define(name, value)
}

// EchoREPL reports whether a bare expression statement should have its
// value printed, as the interactive REPL wants.
func (i *Interpreter) EchoREPL() bool {
	return i.echoREPL
}

// Resolve implements resolver.Binder: it records that expr's name binds
// depth scopes up from wherever it is evaluated.
func (i *Interpreter) Resolve(expr ast.Expr, depth int) {
	i.locals[expr] = depth
}

// Interpret runs every statement in program, stopping at the first
// runtime error.
func (i *Interpreter) Interpret(program *ast.Program) *errors.RuntimeError {
	for _, stmt := range program.Statements {
		if err := i.execute(stmt); err != nil {
			if rerr, ok := err.(*errors.RuntimeError); ok {
				return rerr
			}
			// A *returnSignal or *breakSignal escaping the top level means a
			// return/break outside its proper context slipped past the
			// resolver; surface it rather than panicking.
			return errors.NewRuntimeError(token.Token{}, "%s", err.Error())
		}
	}
	return nil
}

// EvaluateExpr runs a single expression in the interpreter's current
// global scope and returns its value — used by the REPL to echo bare
// expressions typed at the prompt.
func (i *Interpreter) EvaluateExpr(expr ast.Expr) (any, error) {
	return i.evaluate(expr)
}

// executeBlock runs stmts with env as the active environment, restoring
// whatever was active beforehand on every exit path — normal completion,
// a propagated error, or a return/break signal.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(n.Expression)
		return err
	case *ast.PrintStmt:
		v, err := i.evaluate(n.Expression)
		if err != nil {
			return err
		}
		_, err = io.WriteString(i.output, stringify(v)+"\n")
		return err
	case *ast.VarStmt:
		var value any
		if n.Initializer != nil {
			v, err := i.evaluate(n.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.env.Define(n.Name.Lexeme, value)
		return nil
	case *ast.BlockStmt:
		return i.executeBlock(n.Statements, NewEnclosedEnvironment(i.env))
	case *ast.IfStmt:
		cond, err := i.evaluate(n.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.execute(n.Then)
		}
		if n.Else != nil {
			return i.execute(n.Else)
		}
		return nil
	case *ast.WhileStmt:
		return i.executeWhile(n)
	case *ast.BreakStmt:
		return &breakSignal{}
	case *ast.ReturnStmt:
		var value any
		if n.Value != nil {
			v, err := i.evaluate(n.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}
	case *ast.FunctionDecl:
		fn := newFunction(n.Name.Lexeme, paramNames(n.Params), n.Body, i.env, false)
		i.env.Define(n.Name.Lexeme, fn)
		return nil
	case *ast.ClassDecl:
		return i.executeClassDecl(n)
	}
	return nil
}

func (i *Interpreter) executeWhile(n *ast.WhileStmt) error {
	for {
		cond, err := i.evaluate(n.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.execute(n.Body); err != nil {
			if _, ok := err.(*breakSignal); ok {
				return nil
			}
			return err
		}
	}
}

func (i *Interpreter) executeClassDecl(decl *ast.ClassDecl) error {
	var superclass *Class
	if decl.Superclass != nil {
		v, err := i.evaluate(decl.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return errors.NewRuntimeError(decl.Superclass.Name, "superclass must be a class")
		}
		superclass = sc
	}

	// Defined before its methods are built, so a method body referencing
	// the class's own name by closure sees it (resolved as a runtime
	// lookup through the enclosing environment, same as any other global
	// or outer local).
	i.env.Define(decl.Name.Lexeme, nil)

	closureEnv := i.env
	if superclass != nil {
		closureEnv = NewEnclosedEnvironment(i.env)
		closureEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(decl.Methods))
	for _, m := range decl.Methods {
		methods[m.Name.Lexeme] = newFunction(m.Name.Lexeme, paramNames(m.Params), m.Body, closureEnv, m.Name.Lexeme == "init")
	}
	properties := make(map[string]*Function, len(decl.Properties))
	for _, p := range decl.Properties {
		properties[p.Name.Lexeme] = newFunction(p.Name.Lexeme, nil, p.Body, closureEnv, false)
	}
	classMethods := make(map[string]*Function, len(decl.ClassMethods))
	for _, cm := range decl.ClassMethods {
		classMethods[cm.Name.Lexeme] = newFunction(cm.Name.Lexeme, paramNames(cm.Params), cm.Body, closureEnv, false)
	}

	class := newClass(decl.Name.Lexeme, superclass, methods, properties, classMethods)
	return i.env.Assign(decl.Name, class)
}

func paramNames(params []token.Token) []string {
	names := make([]string, len(params))
	for idx, p := range params {
		names[idx] = p.Lexeme
	}
	return names
}

func (i *Interpreter) evaluate(e ast.Expr) (any, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Grouping:
		return i.evaluate(n.Expression)
	case *ast.Unary:
		return i.evaluateUnary(n)
	case *ast.Binary:
		return i.evaluateBinary(n)
	case *ast.Logical:
		return i.evaluateLogical(n)
	case *ast.Ternary:
		return i.evaluateTernary(n)
	case *ast.Call:
		return i.evaluateCall(n)
	case *ast.Get:
		return i.evaluateGet(n)
	case *ast.Set:
		return i.evaluateSet(n)
	case *ast.This:
		return i.lookupVariable(n.Keyword, n)
	case *ast.Super:
		return i.evaluateSuper(n)
	case *ast.Variable:
		return i.lookupVariable(n.Name, n)
	case *ast.Assign:
		return i.evaluateAssign(n)
	case *ast.Lambda:
		return newFunction("", paramNames(n.Params), n.Body, i.env, false), nil
	}
	return nil, errors.NewRuntimeError(token.Token{Pos: e.Pos()}, "cannot evaluate expression")
}

func (i *Interpreter) lookupVariable(tok token.Token, expr ast.Expr) (any, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.env.GetAt(distance, tok.Lexeme), nil
	}
	return i.globals.Get(tok)
}

func (i *Interpreter) evaluateUnary(n *ast.Unary) (any, error) {
	right, err := i.evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case token.MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, errors.NewRuntimeError(n.Operator, "operand must be a number")
		}
		return -num, nil
	case token.BANG:
		return !isTruthy(right), nil
	}
	return nil, errors.NewRuntimeError(n.Operator, "unknown unary operator")
}

func (i *Interpreter) evaluateBinary(n *ast.Binary) (any, error) {
	left, err := i.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Kind {
	case token.PLUS:
		if s, ok := left.(string); ok {
			return s + stringify(right), nil
		}
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if lok && rok {
			return ln + rn, nil
		}
		return nil, errors.NewRuntimeError(n.Operator, "operands must be two numbers or a string and a value")
	case token.MINUS, token.STAR, token.SLASH:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, errors.NewRuntimeError(n.Operator, "operands must be numbers")
		}
		switch n.Operator.Kind {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.SLASH:
			if rn == 0 {
				return nil, errors.NewRuntimeError(n.Operator, "division by zero")
			}
			return ln / rn, nil
		}
	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, errors.NewRuntimeError(n.Operator, "operands must be numbers")
		}
		switch n.Operator.Kind {
		case token.GREATER:
			return ln > rn, nil
		case token.GREATER_EQUAL:
			return ln >= rn, nil
		case token.LESS:
			return ln < rn, nil
		case token.LESS_EQUAL:
			return ln <= rn, nil
		}
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	case token.BANG_EQUAL:
		return !isEqual(left, right), nil
	}
	return nil, errors.NewRuntimeError(n.Operator, "unknown binary operator")
}

func (i *Interpreter) evaluateLogical(n *ast.Logical) (any, error) {
	left, err := i.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Operator.Kind == token.AND {
		if !isTruthy(left) {
			return left, nil
		}
	} else {
		if isTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(n.Right)
}

func (i *Interpreter) evaluateTernary(n *ast.Ternary) (any, error) {
	cond, err := i.evaluate(n.Condition)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return i.evaluate(n.Then)
	}
	return i.evaluate(n.Else)
}

func (i *Interpreter) evaluateCall(n *ast.Call) (any, error) {
	callee, err := i.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(n.Args))
	for idx, a := range n.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, errors.NewRuntimeError(n.Paren, "can only call functions and classes")
	}
	if len(args) != callable.Arity() {
		return nil, errors.NewRuntimeError(n.Paren, "Expected %d arguments but got %d", callable.Arity(), len(args))
	}
	if i.callDepth >= i.maxRecursionDepth {
		return nil, errors.NewRuntimeError(n.Paren, "maximum recursion depth exceeded")
	}

	i.callDepth++
	result, err := callable.Call(i, args)
	i.callDepth--
	return result, err
}

func (i *Interpreter) evaluateGet(n *ast.Get) (any, error) {
	obj, err := i.evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *Instance:
		return o.Get(i, n.Name)
	case *Class:
		return o.Get(n.Name)
	default:
		return nil, errors.NewRuntimeError(n.Name, "only instances have properties")
	}
}

func (i *Interpreter) evaluateSet(n *ast.Set) (any, error) {
	obj, err := i.evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, errors.NewRuntimeError(n.Name, "only instances have fields")
	}
	value, err := i.evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(n.Name, value)
	return value, nil
}

func (i *Interpreter) evaluateSuper(n *ast.Super) (any, error) {
	distance, ok := i.locals[n]
	if !ok {
		return nil, errors.NewRuntimeError(n.Keyword, "unresolved 'super'")
	}
	superclass := i.env.GetAt(distance, "super").(*Class)
	instance := i.env.GetAt(distance-1, "this").(*Instance)

	method := superclass.findMethod(n.Method.Lexeme)
	if method == nil {
		return nil, errors.NewRuntimeError(n.Method, "undefined property '%s'", n.Method.Lexeme)
	}
	return method.bind(instance), nil
}

func (i *Interpreter) evaluateAssign(n *ast.Assign) (any, error) {
	value, err := i.evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[n]; ok {
		i.env.AssignAt(distance, n.Name.Lexeme, value)
		return value, nil
	}
	if err := i.globals.Assign(n.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

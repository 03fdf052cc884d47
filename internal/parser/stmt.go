package parser

import (
	"github.com/cwbudde/loxi/internal/ast"
	"github.com/cwbudde/loxi/internal/token"
)

// declaration → classDecl | funDecl | varDecl | statement
//
// Recovers from a syntax error by synchronizing to the next likely
// statement boundary and returning nil, which the caller simply skips.
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

// classDecl → "class" IDENT ("<" IDENT)? "{" member* "}"
// member    → "class" function | function
func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "expected class name")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "expected superclass name")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(token.LEFT_BRACE, "expected '{' before class body")

	decl := &ast.ClassDecl{Name: name, Superclass: superclass}

	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		isStatic := p.match(token.CLASS)
		member := p.classMember(isStatic)
		switch {
		case isStatic:
			decl.ClassMethods = append(decl.ClassMethods, member)
		case member.IsProperty:
			decl.Properties = append(decl.Properties, member)
		default:
			decl.Methods = append(decl.Methods, member)
		}
	}

	p.consume(token.RIGHT_BRACE, "expected '}' after class body")
	return decl
}

// classMember parses a single method/property member. A static member
// (isStatic) must use parentheses; property form (no parens) is reserved
// for instance getters.
func (p *Parser) classMember(isStatic bool) *ast.FunctionDecl {
	name := p.consume(token.IDENTIFIER, "expected method name")

	if p.check(token.LEFT_PAREN) {
		params, body := p.functionTail(name.Lexeme)
		return &ast.FunctionDecl{Name: name, Params: params, Body: body, IsStatic: isStatic}
	}

	if isStatic {
		panic(p.errorAt(name, "static methods must declare parentheses"))
	}

	// Property/getter form: `name { body }`, zero arity.
	p.consume(token.LEFT_BRACE, "expected '(' or '{' after property name")
	body := p.block()
	return &ast.FunctionDecl{Name: name, Body: body, IsProperty: true}
}

// function → IDENT "(" params? ")" block
//
// Parentheses are required here; the parenthesis-free property form is
// parsed only for class members, by classMember.
func (p *Parser) function(kind string) *ast.FunctionDecl {
	name := p.consume(token.IDENTIFIER, "expected "+kind+" name")
	params, body := p.functionTail(name.Lexeme)
	return &ast.FunctionDecl{Name: name, Params: params, Body: body}
}

// functionTail parses "(" params? ")" block, given the name already
// consumed. Used by both top-level function declarations and class methods.
func (p *Parser) functionTail(name string) ([]token.Token, []ast.Stmt) {
	p.consume(token.LEFT_PAREN, "expected '(' after "+name)

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAtNonFatal(p.peek(), "cannot have more than %d parameters", maxArgs)
			}
			params = append(params, p.consume(token.IDENTIFIER, "expected parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expected ')' after parameters")
	p.consume(token.LEFT_BRACE, "expected '{' before "+name+" body")
	body := p.block()
	return params, body
}

// varDecl → "var" IDENT ("=" expression)? ";"
func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "expected variable name")

	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}

	p.consume(token.SEMICOLON, "expected ';' after variable declaration")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

// statement → exprStmt | forStmt | ifStmt | printStmt | returnStmt
//           | whileStmt | breakStmt | block
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.BREAK):
		kw := p.previous()
		p.consume(token.SEMICOLON, "expected ';' after 'break'")
		return &ast.BreakStmt{Keyword: kw}
	case p.check(token.LEFT_BRACE):
		lbrace := p.advance()
		return &ast.BlockStmt{LBrace: lbrace, Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// block → "{" declaration* "}" — the opening brace has already been
// consumed by the caller.
func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "expected '}' after block")
	return stmts
}

func (p *Parser) ifStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expected ')' after if condition")

	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Keyword: keyword, Condition: cond, Then: then, Else: elseBranch}
}

func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after value")
	return &ast.PrintStmt{Keyword: keyword, Expression: value}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expected ')' after while condition")
	body := p.statement()
	return &ast.WhileStmt{Keyword: keyword, Condition: cond, Body: body}
}

// forStmt → "for" "(" (varDecl|exprStmt|";") expr? ";" expr? ")" statement
//
// Desugars into a Block containing the initializer followed by a While
// whose body wraps the original body with the increment appended. A
// missing condition becomes literal `true`. Without an initializer the
// While is returned on its own, and without an increment its body is the
// original body unwrapped.
func (p *Parser) forStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expected '(' after 'for'")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.check(token.VAR):
		p.advance()
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after loop condition")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "expected ')' after for clauses")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{LBrace: keyword, Statements: []ast.Stmt{
			body,
			&ast.ExpressionStmt{Expression: increment},
		}}
	}

	if condition == nil {
		condition = &ast.Literal{Value: true, Token: keyword}
	}
	loop := ast.Stmt(&ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body})

	if initializer != nil {
		loop = &ast.BlockStmt{LBrace: keyword, Statements: []ast.Stmt{initializer, loop}}
	}
	return loop
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after expression")
	return &ast.ExpressionStmt{Expression: expr}
}

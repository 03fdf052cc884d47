package parser

import (
	"github.com/cwbudde/loxi/internal/ast"
	"github.com/cwbudde/loxi/internal/token"
)

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment → ( "fun" lambda ) | ternary ( "=" assignment )?
//
// A bad assignment target (anything but a Variable or Get on the left of
// `=`) is a non-fatal syntax error: it is reported but parsing continues
// with the left-hand expression as-is.
func (p *Parser) assignment() ast.Expr {
	if p.match(token.FUN) {
		return p.lambda()
	}

	expr := p.ternary()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAtNonFatal(equals, "invalid assignment target")
			return expr
		}
	}

	return expr
}

// ternary → or ( "?" expression ":" expression )?
func (p *Parser) ternary() ast.Expr {
	expr := p.or()

	if p.match(token.QUESTION) {
		question := p.previous()
		then := p.expression()
		p.consume(token.COLON, "expected ':' in ternary expression")
		elseExpr := p.expression()
		return &ast.Ternary{Condition: expr, Then: then, Else: elseExpr, Question: question}
	}

	return expr
}

// or → and ( "or" and )*
func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// and → equality ( "and" equality )*
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// equality → comparison (("!="|"==") comparison)*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// comparison → addition ((">"|">="|"<"|"<=") addition)*
func (p *Parser) comparison() ast.Expr {
	expr := p.addition()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.addition()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// addition → multiplication (("-"|"+") multiplication)*
func (p *Parser) addition() ast.Expr {
	expr := p.multiplication()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.multiplication()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// multiplication → unary (("/"|"*") unary)*
func (p *Parser) multiplication() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// unary → ("!"|"-") unary | call
func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}
	return p.call()
}

// call → primary ( "(" args? ")" | "." IDENT )*
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "expected property name after '.'")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAtNonFatal(p.peek(), "cannot have more than %d arguments", maxArgs)
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "expected ')' after arguments")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

// primary → "true"|"false"|"nil"|"this"|NUMBER|STRING
//         | "super" "." IDENT
//         | IDENT | "(" expression ")" | "fun" lambda
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: false, Token: p.previous()}
	case p.match(token.TRUE):
		return &ast.Literal{Value: true, Token: p.previous()}
	case p.match(token.NIL):
		return &ast.Literal{Value: nil, Token: p.previous()}
	case p.match(token.NUMBER, token.STRING):
		tok := p.previous()
		return &ast.Literal{Value: tok.Literal, Token: tok}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "expected '.' after 'super'")
		method := p.consume(token.IDENTIFIER, "expected superclass method name")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		lparen := p.previous()
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "expected ')' after expression")
		return &ast.Grouping{Expression: expr, LParen: lparen}
	case p.match(token.FUN):
		return p.lambda()
	}

	panic(p.errorAt(p.peek(), "expected expression"))
}

// lambda → "(" params? ")" block — "fun" has already been consumed.
func (p *Parser) lambda() ast.Expr {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expected '(' after 'fun'")

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
	p.consume(token.LEFT_BRACE, "expected '{' before lambda body")
	body := p.block()

	return &ast.Lambda{Keyword: keyword, Params: params, Body: body}
}

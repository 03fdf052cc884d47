// Package ast defines the Lox abstract syntax tree: a tagged-variant set of
// expression and statement node types produced by the parser, annotated by
// the resolver, and walked by the interpreter.
package ast

import (
	"github.com/cwbudde/loxi/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the node's position in the source, for diagnostics.
	Pos() token.Position
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action without itself producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of the AST: a flat list of top-level statements.
type Program struct {
	Statements []Stmt
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

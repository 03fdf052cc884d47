package ast

import "github.com/cwbudde/loxi/internal/token"

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()     {}
func (*FunctionDecl) stmtNode()   {}
func (*ClassDecl) stmtNode()      {}

// ExpressionStmt is a bare expression used as a statement.
type ExpressionStmt struct {
	Expression Expr
}

func (e *ExpressionStmt) Pos() token.Position { return e.Expression.Pos() }

// PrintStmt is `print expr;`.
type PrintStmt struct {
	Keyword    token.Token
	Expression Expr
}

func (p *PrintStmt) Pos() token.Position { return p.Keyword.Pos }

// VarStmt is `var name = initializer;` (initializer may be nil).
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

func (v *VarStmt) Pos() token.Position { return v.Name.Pos }

// BlockStmt is `{ statements... }`, introducing a new lexical scope.
type BlockStmt struct {
	LBrace     token.Token
	Statements []Stmt
}

func (b *BlockStmt) Pos() token.Position { return b.LBrace.Pos }

// IfStmt is `if (cond) then [else elseBranch]`.
type IfStmt struct {
	Keyword   token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if absent
}

func (i *IfStmt) Pos() token.Position { return i.Keyword.Pos }

// WhileStmt is `while (cond) body`. `for` loops desugar into this (see
// the parser's forStatement).
type WhileStmt struct {
	Keyword   token.Token
	Condition Expr
	Body      Stmt
}

func (w *WhileStmt) Pos() token.Position { return w.Keyword.Pos }

// BreakStmt is `break;`, unwinding exactly one enclosing WhileStmt.
type BreakStmt struct {
	Keyword token.Token
}

func (b *BreakStmt) Pos() token.Position { return b.Keyword.Pos }

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if bare `return;`
}

func (r *ReturnStmt) Pos() token.Position { return r.Keyword.Pos }

// FunctionDecl is a named function: a top-level `fun name(params) {...}`,
// or a class member (method, or — when IsProperty is true and Params is
// empty — a getter-style property declared without parentheses).
type FunctionDecl struct {
	Name       token.Token
	Params     []token.Token
	Body       []Stmt
	IsProperty bool
	IsStatic   bool // true for a `class`-prefixed static method
}

func (f *FunctionDecl) Pos() token.Position { return f.Name.Pos }

// ClassDecl is a class declaration with an optional superclass, a set of
// getter-style properties, instance methods, and static class methods.
type ClassDecl struct {
	Name         token.Token
	Superclass   *Variable // nil if no `< Super` clause
	Properties   []*FunctionDecl
	Methods      []*FunctionDecl
	ClassMethods []*FunctionDecl
}

func (c *ClassDecl) Pos() token.Position { return c.Name.Pos }

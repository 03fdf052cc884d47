package ast

import (
	"fmt"
	"strings"
)

// Print renders a fully-parenthesized Lisp-style dump of an expression,
// used by `loxi parse` to inspect the parser's output.
func Print(e Expr) string {
	switch n := e.(type) {
	case *Assign:
		return parenthesize("= "+n.Name.Lexeme, n.Value)
	case *Binary:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Ternary:
		return parenthesize("?:", n.Condition, n.Then, n.Else)
	case *Unary:
		return parenthesize(n.Operator.Lexeme, n.Right)
	case *Call:
		return parenthesize("call", append([]Expr{n.Callee}, n.Args...)...)
	case *Get:
		return parenthesize("get "+n.Name.Lexeme, n.Object)
	case *Set:
		return parenthesize("set "+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		return "this"
	case *Super:
		return "(super " + n.Method.Lexeme + ")"
	case *Variable:
		return n.Name.Lexeme
	case *Grouping:
		return parenthesize("group", n.Expression)
	case *Literal:
		return fmt.Sprintf("%v", n.Value)
	case *Lambda:
		return "(fun)"
	default:
		return "<?>"
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteString(" ")
		sb.WriteString(Print(e))
	}
	sb.WriteString(")")
	return sb.String()
}

package ast

import (
	"testing"

	"github.com/cwbudde/loxi/internal/token"
)

func num(v float64) *Literal {
	return &Literal{Value: v, Token: token.Token{Kind: token.NUMBER, Literal: v}}
}

func TestPrintBinary(t *testing.T) {
	expr := &Binary{
		Left:     num(1),
		Operator: token.Token{Kind: token.PLUS, Lexeme: "+"},
		Right:    num(2),
	}
	got := Print(expr)
	want := "(+ 1 2)"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintNestedGrouping(t *testing.T) {
	inner := &Binary{
		Left:     num(2),
		Operator: token.Token{Kind: token.STAR, Lexeme: "*"},
		Right:    num(3),
	}
	expr := &Grouping{Expression: inner}
	got := Print(expr)
	want := "(group (* 2 3))"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintTernary(t *testing.T) {
	expr := &Ternary{Condition: num(1), Then: num(2), Else: num(3)}
	got := Print(expr)
	want := "(?: 1 2 3)"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrintCall(t *testing.T) {
	expr := &Call{
		Callee: &Variable{Name: token.Token{Lexeme: "f"}},
		Args:   []Expr{num(1), num(2)},
	}
	got := Print(expr)
	want := "(call f 1 2)"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

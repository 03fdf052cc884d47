package parser

import (
	"testing"

	"github.com/cwbudde/loxi/internal/ast"
	"github.com/cwbudde/loxi/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src, "test.lox")
	tokens := l.ScanTokens()
	if len(l.Errors()) > 0 {
		t.Fatalf("unexpected lex errors: %v", l.Errors())
	}
	p := New(tokens, src, "test.lox")
	program := p.Parse()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return program
}

func TestParseVarDeclaration(t *testing.T) {
	program := parseSource(t, `var x = 1 + 2;`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	v, ok := program.Statements[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", program.Statements[0])
	}
	if v.Name.Lexeme != "x" {
		t.Fatalf("expected name 'x', got %q", v.Name.Lexeme)
	}
	if _, ok := v.Initializer.(*ast.Binary); !ok {
		t.Fatalf("expected binary initializer, got %T", v.Initializer)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	program := parseSource(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	block, ok := program.Statements[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected desugared for to be a block, got %T", program.Statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected initializer + while, got %d statements", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Fatalf("expected first statement to be the initializer, got %T", block.Statements[0])
	}
	loop, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected second statement to be a while loop, got %T", block.Statements[1])
	}
	body, ok := loop.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected while body to be a block (body + increment), got %T", loop.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("expected body + increment, got %d statements", len(body.Statements))
	}
}

func TestParseForWithoutCondition(t *testing.T) {
	program := parseSource(t, `for (;;) break;`)
	// With no initializer the While is not wrapped in a Block.
	loop := program.Statements[0].(*ast.WhileStmt)
	lit, ok := loop.Condition.(*ast.Literal)
	if !ok || lit.Value != true {
		t.Fatalf("expected condition to default to literal true, got %#v", loop.Condition)
	}
}

func TestParseClassWithSuperclassAndMembers(t *testing.T) {
	program := parseSource(t, `
	class Base {
	  greet() { print "hi"; }
	}
	class Derived < Base {
	  name { return "derived"; }
	  init() { this.x = 1; }
	  class make() { return Derived(); }
	}
	`)
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 class declarations, got %d", len(program.Statements))
	}

	derived, ok := program.Statements[1].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", program.Statements[1])
	}
	if derived.Superclass == nil || derived.Superclass.Name.Lexeme != "Base" {
		t.Fatalf("expected superclass Base, got %#v", derived.Superclass)
	}
	if len(derived.Properties) != 1 || derived.Properties[0].Name.Lexeme != "name" {
		t.Fatalf("expected one property 'name', got %#v", derived.Properties)
	}
	if len(derived.Methods) != 1 || derived.Methods[0].Name.Lexeme != "init" {
		t.Fatalf("expected one method 'init', got %#v", derived.Methods)
	}
	if len(derived.ClassMethods) != 1 || derived.ClassMethods[0].Name.Lexeme != "make" {
		t.Fatalf("expected one class method 'make', got %#v", derived.ClassMethods)
	}
}

func TestParseStaticMethodRequiresParens(t *testing.T) {
	l := lexer.New(`class C { class name { return 1; } }`, "test.lox")
	tokens := l.ScanTokens()
	p := New(tokens, "", "test.lox")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error for a static member with no parentheses")
	}
}

func TestParseLambda(t *testing.T) {
	program := parseSource(t, `var add = fun (a, b) { return a + b; };`)
	v := program.Statements[0].(*ast.VarStmt)
	lambda, ok := v.Initializer.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda, got %T", v.Initializer)
	}
	if len(lambda.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(lambda.Params))
	}
}

func TestParseTernary(t *testing.T) {
	program := parseSource(t, `var x = true ? 1 : 2;`)
	v := program.Statements[0].(*ast.VarStmt)
	if _, ok := v.Initializer.(*ast.Ternary); !ok {
		t.Fatalf("expected *ast.Ternary, got %T", v.Initializer)
	}
}

func TestParseInvalidAssignmentTargetIsNonFatal(t *testing.T) {
	l := lexer.New(`1 = 2;`, "test.lox")
	tokens := l.ScanTokens()
	p := New(tokens, "", "test.lox")
	program := p.Parse()

	if len(p.Errors()) == 0 {
		t.Fatal("expected a non-fatal error for an invalid assignment target")
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected parsing to continue past the bad assignment, got %d statements", len(program.Statements))
	}
}

func TestParseTooManyArguments(t *testing.T) {
	l := lexer.New(`f(1,2,3,4,5,6,7,8,9);`, "test.lox")
	tokens := l.ScanTokens()
	p := New(tokens, "", "test.lox")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error for more than 8 arguments")
	}
}

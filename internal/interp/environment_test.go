package interp

import (
	"testing"

	"github.com/cwbudde/loxi/internal/token"
)

func tok(name string) token.Token {
	return token.Token{Kind: token.IDENTIFIER, Lexeme: name}
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", 1.0)

	v, err := env.Get(tok("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.0 {
		t.Fatalf("expected 1.0, got %v", v)
	}
}

func TestEnvironmentGetUndefinedIsError(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Get(tok("missing")); err == nil {
		t.Fatal("expected an error for an undefined variable")
	}
}

func TestEnvironmentGetFallsThroughToOuter(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", "outer value")
	inner := NewEnclosedEnvironment(outer)

	v, err := inner.Get(tok("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "outer value" {
		t.Fatalf("expected to find 'x' in the outer scope, got %v", v)
	}
}

func TestEnvironmentAssignRequiresExistingBinding(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign(tok("x"), 1.0); err == nil {
		t.Fatal("expected assigning an undefined name to be an error")
	}
}

func TestEnvironmentAssignWritesNearestScope(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", 1.0)
	inner := NewEnclosedEnvironment(outer)

	if err := inner.Assign(tok("x"), 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, _ := outer.Get(tok("x"))
	if v != 2.0 {
		t.Fatalf("expected outer 'x' to be updated to 2.0, got %v", v)
	}
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", "zero")
	mid := NewEnclosedEnvironment(global)
	mid.Define("x", "one")
	inner := NewEnclosedEnvironment(mid)

	if v := inner.GetAt(1, "x"); v != "one" {
		t.Fatalf("expected GetAt(1) to find 'one', got %v", v)
	}
	if v := inner.GetAt(2, "x"); v != "zero" {
		t.Fatalf("expected GetAt(2) to find 'zero', got %v", v)
	}

	inner.AssignAt(1, "x", "updated")
	if v, _ := mid.Get(tok("x")); v != "updated" {
		t.Fatalf("expected AssignAt(1) to update mid's 'x', got %v", v)
	}
}

func TestEnvironmentDefineAllowsRedefinition(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", 1.0)
	env.Define("x", 2.0)

	v, _ := env.Get(tok("x"))
	if v != 2.0 {
		t.Fatalf("expected redefinition to overwrite, got %v", v)
	}
}

package interp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/loxi/internal/lexer"
	"github.com/cwbudde/loxi/internal/parser"
	"github.com/cwbudde/loxi/internal/resolver"
)

// TestFixtures runs every .lox program under testdata through the full
// lex-parse-resolve-interpret pipeline and snapshots its observable
// behavior: printed output for the pass fixtures, the formatted runtime
// error for the fail fixtures. Each category mirrors a language area
// covered in depth by the targeted unit tests elsewhere in this package.
func TestFixtures(t *testing.T) {
	categories := []struct {
		name        string
		file        string
		expectRErr  bool
		description string
	}{
		{name: "Closures", file: "closures.lox", description: "captured-by-reference upvalues across nested functions"},
		{name: "Inheritance", file: "inheritance.lox", description: "single inheritance, method override, and super calls"},
		{name: "Properties", file: "properties.lox", description: "getter properties and static class methods"},
		{name: "ControlFlow", file: "control_flow.lox", description: "for/while desugaring, break, ternary, and logical short-circuit"},
		{name: "Lambdas", file: "lambdas.lox", description: "anonymous functions passed and invoked as values"},
		{name: "DivisionByZero", file: "errors_division_by_zero.lox", expectRErr: true, description: "arithmetic runtime error"},
		{name: "UndefinedProperty", file: "errors_undefined_property.lox", expectRErr: true, description: "property lookup runtime error"},
	}

	for _, c := range categories {
		t.Run(c.name, func(t *testing.T) {
			t.Log(c.description)
			path := filepath.Join("testdata", c.file)
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading fixture %s: %v", path, err)
			}

			actual := runFixture(t, string(source), c.file)

			if c.expectRErr && !strings.Contains(actual, "[line ") {
				t.Fatalf("expected a runtime error for %s, got plain output:\n%s", c.file, actual)
			}

			snaps.MatchSnapshot(t, actual)
		})
	}
}

// runFixture compiles and runs source through the full pipeline, returning
// either the program's printed output or, if it failed at runtime, the
// formatted runtime error instead.
func runFixture(t *testing.T, source, file string) string {
	t.Helper()

	l := lexer.New(source, file)
	tokens := l.ScanTokens()
	if errs := l.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected lex errors in %s: %v", file, errs)
	}

	p := parser.New(tokens, source, file)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors in %s: %v", file, errs)
	}

	var out strings.Builder
	interp := New(&out, nil)

	res := resolver.New(interp, source, file)
	if errs := res.Resolve(program); len(errs) > 0 {
		t.Fatalf("unexpected resolve errors in %s: %v", file, errs)
	}

	if rerr := interp.Interpret(program); rerr != nil {
		return rerr.Error()
	}
	return out.String()
}

package interp

import (
	"strings"
	"testing"

	"github.com/cwbudde/loxi/internal/errors"
	"github.com/cwbudde/loxi/internal/lexer"
	"github.com/cwbudde/loxi/internal/parser"
	"github.com/cwbudde/loxi/internal/resolver"
)

// run lexes, parses, resolves, and interprets src, failing the test on any
// compile-time error and returning whatever the program printed plus any
// runtime error.
func run(t *testing.T, src string) (string, *errors.RuntimeError) {
	t.Helper()

	l := lexer.New(src, "test.lox")
	tokens := l.ScanTokens()
	if errs := l.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}

	p := parser.New(tokens, src, "test.lox")
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	var out strings.Builder
	interp := New(&out, nil)

	res := resolver.New(interp, src, "test.lox")
	if errs := res.Resolve(program); len(errs) > 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}

	rerr := interp.Interpret(program)
	return out.String(), rerr
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out, rerr := run(t, `print 1 + 2 * 3;`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	if out != "7\n" {
		t.Fatalf("got %q, want %q", out, "7\n")
	}
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, rerr := run(t, `print "count: " + 3;`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	if out != "count: 3\n" {
		t.Fatalf("got %q, want %q", out, "count: 3\n")
	}
}

func TestInterpretClosureCapturesByReference(t *testing.T) {
	out, rerr := run(t, `
	fun makeCounter() {
	  var count = 0;
	  fun increment() {
	    count = count + 1;
	    return count;
	  }
	  return increment;
	}
	var counter = makeCounter();
	print counter();
	print counter();
	print counter();
	`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	if out != "1\n2\n3\n" {
		t.Fatalf("got %q, want %q", out, "1\n2\n3\n")
	}
}

func TestInterpretResolverPinsVariableAtDefinitionSite(t *testing.T) {
	// Classic "closures capture the resolved binding, not the name" check:
	// the global 'a' printed by showA is the one visible when showA was
	// declared, not the block-local 'a' declared afterward in the same
	// block. The last print reads that block-local 'a' (an unread local
	// would be reported by the resolver as assigned but never accessed).
	out, rerr := run(t, `
	var a = "global";
	{
	  fun showA() {
	    print a;
	  }
	  showA();
	  var a = "block";
	  showA();
	  print a;
	}
	`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	if out != "global\nglobal\nblock\n" {
		t.Fatalf("got %q, want %q", out, "global\nglobal\nblock\n")
	}
}

func TestInterpretInheritanceAndSuper(t *testing.T) {
	out, rerr := run(t, `
	class Animal {
	  speak() { print "..."; }
	  describe() {
	    print "An animal says:";
	    this.speak();
	  }
	}
	class Dog < Animal {
	  speak() {
	    super.speak();
	    print "Woof!";
	  }
	}
	Dog().describe();
	`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	want := "An animal says:\n...\nWoof!\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestInterpretGetterProperty(t *testing.T) {
	out, rerr := run(t, `
	class Circle {
	  init(radius) { this.radius = radius; }
	  area { return 3.14 * this.radius * this.radius; }
	}
	print Circle(2).area;
	`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	if out != "12.56\n" {
		t.Fatalf("got %q, want %q", out, "12.56\n")
	}
}

func TestInterpretStaticClassMethod(t *testing.T) {
	out, rerr := run(t, `
	class Counter {
	  class create() {
	    return Counter();
	  }
	}
	print Counter.create();
	`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	if out != "Counter instance\n" {
		t.Fatalf("got %q, want %q", out, "Counter instance\n")
	}
}

func TestInterpretForLoopWithBreak(t *testing.T) {
	out, rerr := run(t, `
	for (var i = 0; i < 10; i = i + 1) {
	  if (i == 3) break;
	  print i;
	}
	`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	if out != "0\n1\n2\n" {
		t.Fatalf("got %q, want %q", out, "0\n1\n2\n")
	}
}

func TestInterpretLambdaAndArityError(t *testing.T) {
	out, rerr := run(t, `
	var add = fun (a, b) { return a + b; };
	print add(1, 2);
	add(1);
	`)
	if out != "3\n" {
		t.Fatalf("got %q, want %q", out, "3\n")
	}
	if rerr == nil {
		t.Fatal("expected an arity runtime error")
	}
}

func TestInterpretDivisionByZeroIsRuntimeError(t *testing.T) {
	_, rerr := run(t, `print 1 / 0;`)
	if rerr == nil {
		t.Fatal("expected a division-by-zero runtime error")
	}
}

func TestInterpretTypeErrorOnArithmetic(t *testing.T) {
	_, rerr := run(t, `print 1 - "x";`)
	if rerr == nil {
		t.Fatal("expected a type error for '-' on a string operand")
	}
}

func TestInterpretTernaryAndLogical(t *testing.T) {
	out, rerr := run(t, `
	print true ? "yes" : "no";
	print nil or "fallback";
	print "first" and "second";
	`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	want := "yes\nfallback\nsecond\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestInterpretInitAlwaysReturnsThis(t *testing.T) {
	out, rerr := run(t, `
	class Box {
	  init(v) {
	    this.v = v;
	    return;
	  }
	}
	var b = Box(42);
	print b.v;
	`)
	if rerr != nil {
		t.Fatalf("unexpected runtime error: %v", rerr)
	}
	if out != "42\n" {
		t.Fatalf("got %q, want %q", out, "42\n")
	}
}

func TestInterpretUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, rerr := run(t, `
	class Empty {}
	print Empty().missing;
	`)
	if rerr == nil {
		t.Fatal("expected an undefined-property runtime error")
	}
}

func TestInterpretUnusedParametersStillProduceArityError(t *testing.T) {
	// fun f(a, b){} f(1); — a and b are never read, but that must not be
	// flagged as a static "unused local" error that blocks interpretation;
	// the mismatched call still has to fail at runtime with an arity error.
	_, rerr := run(t, `
	fun f(a, b) {}
	f(1);
	`)
	if rerr == nil {
		t.Fatal("expected a runtime arity error")
	}
	if rerr.Message != "Expected 2 arguments but got 1" {
		t.Fatalf("got %q", rerr.Message)
	}
}

func TestInterpretSuperclassMustBeAClass(t *testing.T) {
	_, rerr := run(t, `
	var NotAClass = 1;
	class C < NotAClass {}
	`)
	if rerr == nil {
		t.Fatal("expected a 'superclass must be a class' runtime error")
	}
}

// Package loxi is the embeddable entry point to the Lox interpreter: the
// facade a host program or the cmd/loxi CLI drives instead of reaching
// into internal/lexer, internal/parser, internal/resolver, and
// internal/interp directly.
package loxi

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/loxi/internal/ast"
	"github.com/cwbudde/loxi/internal/errors"
	"github.com/cwbudde/loxi/internal/interp"
	"github.com/cwbudde/loxi/internal/lexer"
	"github.com/cwbudde/loxi/internal/parser"
	"github.com/cwbudde/loxi/internal/resolver"
)

// Options configures a Lox instance. The zero value is usable.
type Options struct {
	// MaxRecursionDepth bounds the interpreter's call stack. Zero means
	// interp.DefaultMaxRecursionDepth.
	MaxRecursionDepth int
	// EchoREPLExpressions, when true, makes a bare expression typed at
	// the REPL print its value instead of silently discarding it.
	EchoREPLExpressions bool
}

func (o Options) GetMaxRecursionDepth() int    { return o.MaxRecursionDepth }
func (o Options) GetEchoREPLExpressions() bool { return o.EchoREPLExpressions }

// CompileError wraps a batch of scan/parse/resolve diagnostics. RunFile
// uses it to distinguish a compile-time failure (exit 65) from a
// runtime one (exit 70).
type CompileError struct {
	errs []*errors.CompilerError
}

func (e *CompileError) Error() string {
	return errors.FormatErrors(e.errs, false)
}

// Lox is one interpreter session: global state (variables, defined
// functions and classes) persists across successive Run calls, which is
// what makes the REPL able to build on earlier lines.
type Lox struct {
	interp *interp.Interpreter
	output io.Writer
	opts   Options
}

// New creates a Lox session that writes `print` output to output.
func New(output io.Writer, opts Options) *Lox {
	return &Lox{interp: interp.New(output, opts), output: output, opts: opts}
}

// DefineGlobal registers an additional native global (typically a value
// implementing interp.Callable) before running any source.
func (l *Lox) DefineGlobal(name string, value any) {
	l.interp.DefineGlobal(name, value)
}

// Reset discards all accumulated global state, as if a fresh Lox had
// been created with the same options.
func (l *Lox) Reset() {
	l.interp = interp.New(l.output, l.opts)
}

// Run scans, parses, resolves, and executes src. file is used only for
// diagnostic messages. A *CompileError means nothing executed; any
// other error is an *errors.RuntimeError from mid-execution.
func (l *Lox) Run(src, file string) error {
	program, err := l.compile(src, file, false)
	if err != nil {
		return err
	}
	if rerr := l.interp.Interpret(program); rerr != nil {
		return rerr
	}
	return nil
}

func (l *Lox) compile(src, file string, useColor bool) (*ast.Program, error) {
	lx := lexer.New(src, file)
	tokens := lx.ScanTokens()
	if errs := lx.Errors(); len(errs) > 0 {
		return nil, &CompileError{errs: errs}
	}

	p := parser.New(tokens, src, file)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &CompileError{errs: errs}
	}

	res := resolver.New(l.interp, src, file)
	if errs := res.Resolve(program); len(errs) > 0 {
		return nil, &CompileError{errs: errs}
	}

	return program, nil
}

// REPL runs an interactive read-eval-print loop, reading lines from in
// and writing prompts, echoed values, and errors to out.
func (l *Lox) REPL(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		l.runLine(line, out)
	}
}

// runLine compiles and runs a single REPL line. A line without a
// trailing `;` or `}` gets one appended, so `1 + 2` parses the same way
// it would in a file.
func (l *Lox) runLine(line string, out io.Writer) {
	src := line
	if !strings.HasSuffix(line, ";") && !strings.HasSuffix(line, "}") {
		src = line + ";"
	}

	program, err := l.compile(src, "<repl>", true)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}

	if l.opts.EchoREPLExpressions && len(program.Statements) == 1 {
		if stmt, ok := program.Statements[0].(*ast.ExpressionStmt); ok {
			v, err := l.interp.EvaluateExpr(stmt.Expression)
			if err != nil {
				fmt.Fprintln(out, err)
				return
			}
			fmt.Fprintln(out, interp.Stringify(v))
			return
		}
	}

	if rerr := l.interp.Interpret(program); rerr != nil {
		fmt.Fprintln(out, rerr)
	}
}

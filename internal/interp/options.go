package interp

// Options configures an Interpreter without internal/interp needing to
// import pkg/loxi — the concrete Options type lives there and satisfies
// this interface, mirroring the teacher's internal/interp.Options split.
type Options interface {
	// GetMaxRecursionDepth returns the maximum call-stack depth for
	// function/method calls. Returns 0 if not set, in which case the
	// interpreter falls back to DefaultMaxRecursionDepth.
	GetMaxRecursionDepth() int

	// GetEchoREPLExpressions reports whether a bare expression statement
	// typed at the REPL should print its value.
	GetEchoREPLExpressions() bool
}

// DefaultMaxRecursionDepth bounds recursive Lox calls so that runaway
// recursion surfaces as a Lox runtime error instead of a Go stack overflow.
const DefaultMaxRecursionDepth = 1000

package loxi

import (
	"fmt"
	"io"
	"os"

	stderrors "errors"
)

// Exit codes match the convention described in SPEC_FULL.md §6 (and
// lifted from jlox): a clean run exits 0, a scan/parse/resolve failure
// exits 65, a runtime failure exits 70, and a file that can't be read
// exits 66.
const (
	ExitOK           = 0
	ExitUsageError   = 64
	ExitCompileError = 65
	ExitRuntimeError = 70
	ExitIOError      = 66
)

// RunFile reads path, runs it through a fresh Lox session, and reports
// any error to stderr. It returns the process exit code the caller
// should use.
func RunFile(path string, opts Options) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
		return ExitIOError
	}

	return RunSource(string(data), path, os.Stdout, os.Stderr, opts)
}

// RunSource runs src (reporting as file) through a fresh Lox session,
// writing program output to stdout and diagnostics to stderr.
func RunSource(src, file string, stdout, stderr io.Writer, opts Options) int {
	l := New(stdout, opts)
	err := l.Run(src, file)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintln(stderr, err)

	var compileErr *CompileError
	if stderrors.As(err, &compileErr) {
		return ExitCompileError
	}
	return ExitRuntimeError
}

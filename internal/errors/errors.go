// Package errors formats Lox diagnostics with source context: a line/column
// header, the offending source line, and a caret pointing at the column.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/cwbudde/loxi/internal/token"
)

var (
	boldStyle = color.New(color.Bold)
	dimStyle  = color.New(color.Faint)
	caretRed  = color.New(color.FgRed, color.Bold)
)

// CompilerError is a single static (scan/parse/resolve) diagnostic.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError creates a CompilerError at pos.
func NewCompilerError(pos token.Position, source, file, message string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// NewCompilerErrorf creates a CompilerError with a formatted message.
func NewCompilerErrorf(pos token.Position, source, file, format string, args ...any) *CompilerError {
	return NewCompilerError(pos, source, file, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a one-line source snippet and a caret.
// When color is true, diagnostics use fatih/color styling; the returned
// string otherwise carries no ANSI sequences.
func (e *CompilerError) Format(useColor bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(gutter)+e.Pos.Column-1))
		if useColor {
			sb.WriteString(caretRed.Sprint("^"))
		} else {
			sb.WriteString("^")
		}
		sb.WriteString("\n")
	}

	if useColor {
		sb.WriteString(boldStyle.Sprint(e.Message))
	} else {
		sb.WriteString(e.Message)
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func (e *CompilerError) sourceContext(lineNum, before, after int) []string {
	if e.Source == "" {
		return nil
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return nil
	}
	start := lineNum - before
	if start < 1 {
		start = 1
	}
	end := lineNum + after
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start-1 : end]
}

// FormatWithContext renders the error with contextLines of surrounding
// source above and below the offending line.
func (e *CompilerError) FormatWithContext(contextLines int, useColor bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	ctx := e.sourceContext(e.Pos.Line, contextLines, contextLines)
	if len(ctx) == 0 {
		return e.Format(useColor)
	}

	startLine := e.Pos.Line - contextLines
	if startLine < 1 {
		startLine = 1
	}

	for i, line := range ctx {
		current := startLine + i
		gutter := fmt.Sprintf("%4d | ", current)

		if current == e.Pos.Line {
			if useColor {
				sb.WriteString(boldStyle.Sprint(gutter + line))
			} else {
				sb.WriteString(gutter + line)
			}
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(gutter)+e.Pos.Column-1))
			if useColor {
				sb.WriteString(caretRed.Sprint("^"))
			} else {
				sb.WriteString("^")
			}
			sb.WriteString("\n")
		} else {
			if useColor {
				sb.WriteString(dimStyle.Sprint(gutter + line))
			} else {
				sb.WriteString(gutter + line)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if useColor {
		sb.WriteString(boldStyle.Sprint(e.Message))
	} else {
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// FormatErrors formats a batch of errors, numbering them when there is more
// than one.
func FormatErrors(errs []*CompilerError, useColor bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(useColor)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(useColor))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// RuntimeError is raised by the interpreter; unlike CompilerError it carries
// the token at which the failure occurred rather than a free-standing
// position, since runtime errors are always tied to evaluating a specific
// AST node.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Pos.Line)
}

// NewRuntimeError creates a RuntimeError at tok with a formatted message.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

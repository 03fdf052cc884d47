package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/loxi/internal/ast"
	"github.com/cwbudde/loxi/internal/errors"
	"github.com/cwbudde/loxi/internal/lexer"
	"github.com/cwbudde/loxi/internal/parser"
	"github.com/cwbudde/loxi/internal/token"
	"github.com/spf13/cobra"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Lox source and print the AST",
	Long: `Parse Lox source code and display its Abstract Syntax Tree: one
line per statement, expressions in Lisp-style parenthesized form, and
nested statements indented.

Examples:
  loxi parse script.lox
  loxi parse -e "1 + 2 * 3;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input, filename)
	tokens := l.ScanTokens()
	if errs := l.Errors(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}

	p := parser.New(tokens, input, filename)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	for _, stmt := range program.Statements {
		printStmt(stmt, 0)
	}
	return nil
}

func printStmt(s ast.Stmt, indent int) {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	switch n := s.(type) {
	case *ast.ExpressionStmt:
		fmt.Printf("%s%s\n", prefix, ast.Print(n.Expression))
	case *ast.PrintStmt:
		fmt.Printf("%sprint %s\n", prefix, ast.Print(n.Expression))
	case *ast.VarStmt:
		if n.Initializer != nil {
			fmt.Printf("%svar %s = %s\n", prefix, n.Name.Lexeme, ast.Print(n.Initializer))
		} else {
			fmt.Printf("%svar %s\n", prefix, n.Name.Lexeme)
		}
	case *ast.BlockStmt:
		fmt.Printf("%s{\n", prefix)
		for _, inner := range n.Statements {
			printStmt(inner, indent+1)
		}
		fmt.Printf("%s}\n", prefix)
	case *ast.IfStmt:
		fmt.Printf("%sif (%s)\n", prefix, ast.Print(n.Condition))
		printStmt(n.Then, indent+1)
		if n.Else != nil {
			fmt.Printf("%selse\n", prefix)
			printStmt(n.Else, indent+1)
		}
	case *ast.WhileStmt:
		fmt.Printf("%swhile (%s)\n", prefix, ast.Print(n.Condition))
		printStmt(n.Body, indent+1)
	case *ast.BreakStmt:
		fmt.Printf("%sbreak\n", prefix)
	case *ast.ReturnStmt:
		if n.Value != nil {
			fmt.Printf("%sreturn %s\n", prefix, ast.Print(n.Value))
		} else {
			fmt.Printf("%sreturn\n", prefix)
		}
	case *ast.FunctionDecl:
		fmt.Printf("%sfun %s(%s)\n", prefix, n.Name.Lexeme, joinParamNames(n.Params))
		for _, inner := range n.Body {
			printStmt(inner, indent+1)
		}
	case *ast.ClassDecl:
		fmt.Printf("%sclass %s\n", prefix, n.Name.Lexeme)
		for _, m := range n.Properties {
			printStmt(m, indent+1)
		}
		for _, m := range n.Methods {
			printStmt(m, indent+1)
		}
		for _, m := range n.ClassMethods {
			printStmt(m, indent+1)
		}
	}
}

func joinParamNames(params []token.Token) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return strings.Join(names, ", ")
}

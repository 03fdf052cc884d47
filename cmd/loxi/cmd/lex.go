package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/loxi/internal/errors"
	"github.com/cwbudde/loxi/internal/lexer"
	"github.com/cwbudde/loxi/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexShowPos  bool
	lexEvalExpr string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file or expression",
	Long: `Tokenize (lex) a Lox program and print the resulting tokens.

This command is useful for debugging the scanner.

Examples:
  # Tokenize a script file
  loxi lex script.lox

  # Tokenize an inline expression, with positions
  loxi lex --show-pos -e "1 + 2"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input, filename)
	tokens := l.ScanTokens()

	for _, tok := range tokens {
		printToken(tok)
	}

	if errs := l.Errors(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}

func printToken(tok token.Token) {
	if lexShowPos {
		fmt.Printf("%-12s %-20q @%s\n", tok.Kind, tok.Lexeme, tok.Pos)
		return
	}
	fmt.Printf("%-12s %q\n", tok.Kind, tok.Lexeme)
}

// readInput resolves the `-e` inline flag or a file argument into source
// text and a diagnostic filename, shared by lex and parse.
func readInput(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/loxi/pkg/loxi"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox file or expression",
	Long: `Execute a Lox program from a file or inline expression.

Examples:
  # Run a script file
  loxi run script.lox

  # Evaluate an inline expression
  loxi run -e "print 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
}

func runScript(cmd *cobra.Command, args []string) error {
	opts := optionsFromFlags(cmd)

	if evalExpr != "" {
		code := loxi.RunSource(evalExpr, "<eval>", os.Stdout, os.Stderr, opts)
		if code != loxi.ExitOK {
			os.Exit(code)
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	code := loxi.RunFile(args[0], opts)
	if code != loxi.ExitOK {
		os.Exit(code)
	}
	return nil
}

func optionsFromFlags(cmd *cobra.Command) loxi.Options {
	depth, _ := cmd.Flags().GetInt("max-recursion-depth")
	return loxi.Options{MaxRecursionDepth: depth}
}

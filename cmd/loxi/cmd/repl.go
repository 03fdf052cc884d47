package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/loxi/pkg/loxi"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox REPL",
	Long: `Start a read-eval-print loop over stdin/stdout. Variables, functions,
and classes defined on one line remain visible to later lines.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().Bool("echo", true, "print the value of a bare expression")
}

func runREPL(cmd *cobra.Command, _ []string) error {
	opts := optionsFromFlags(cmd)
	opts.EchoREPLExpressions, _ = cmd.Flags().GetBool("echo")

	fmt.Println("loxi REPL — Ctrl-D to exit")
	l := loxi.New(os.Stdout, opts)
	l.REPL(os.Stdin, os.Stdout)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "loxi",
	Short: "Lox interpreter",
	Long: `loxi is a Go implementation of the Lox scripting language from
Crafting Interpreters: dynamically typed, lexically scoped, with
closures, single-inheritance classes, getter properties, and lambdas.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (no command reads this flag)")
	rootCmd.PersistentFlags().Int("max-recursion-depth", 0, "maximum call depth (0 = default)")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhabedank/retailer-check/cmd"
	"github.com/dhabedank/retailer-check/internal/tui"
	"github.com/dhabedank/retailer-check/internal/welcome"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:           "retailer-check",
		Short:         "Check e-commerce retailers against a fraud dataset with an LLM",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			if c != cmd.SetupCmd {
				welcome.ShowOnce(c.ErrOrStderr())
			}
		},
	}

	rootCmd.AddCommand(cmd.SearchCmd)
	rootCmd.AddCommand(cmd.ServeCmd)
	rootCmd.AddCommand(cmd.InteractiveCmd)
	rootCmd.AddCommand(cmd.SetupCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.RenderError(err))
		os.Exit(1)
	}
}

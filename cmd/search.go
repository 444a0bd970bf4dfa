package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhabedank/retailer-check/internal/core"
	"github.com/dhabedank/retailer-check/internal/output"
	"github.com/dhabedank/retailer-check/internal/tui"
)

var (
	outputFormat string
	outputWidth  int
)

// SearchCmd represents the search command
var SearchCmd = &cobra.Command{
	Use:   "search <retailer...>",
	Short: "Look up a retailer in the dataset",
	Long: `Ask the configured LLM what the dataset says about a retailer.

The whole dataset is sent with the question. The answer is shown as
detail boxes in two columns; a positive legitimacy verdict is highlighted.
Retailers that are not in the dataset get "No information available".

Example:
  retailer-check search Acme Corp
  retailer-check search "Acme Corp" --output json --llm mistral-api`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	addCommonFlags(SearchCmd)
	SearchCmd.Flags().StringVarP(&outputFormat, "output", "o", "terminal", "Output format (terminal/json/raw)")
	SearchCmd.Flags().IntVarP(&outputWidth, "width", "w", tui.DefaultWidth, "Terminal width for the terminal output")
}

func runSearch(cmd *cobra.Command, args []string) error {
	outConfig := output.DefaultConfig()
	outConfig.Width = outputWidth
	out, err := output.NewAdapter(outputFormat, outConfig)
	if err != nil {
		return err
	}

	retailer := strings.TrimSpace(strings.Join(args, " "))
	stdout := cmd.OutOrStdout()
	if retailer == "" {
		fmt.Fprintln(stdout, tui.RenderWarning(core.ErrEmptyRetailer))
		return nil
	}

	a, err := newApp(cmd, newLogger(cmd.ErrOrStderr(), verbose))
	if err != nil {
		return err
	}

	terminal := out.Name() == "terminal"
	if terminal {
		promptChars := 0
		if prompt, err := a.searcher.Template.Build(a.searcher.Dataset, retailer); err == nil {
			promptChars = len(prompt)
		}
		fmt.Fprintln(stdout, tui.RenderSearchStart(retailer, a.adapter.Name(), a.adapter.Model(), promptChars))
	}

	result, err := a.searcher.Search(cmd.Context(), retailer)
	var inputErr *core.InputError
	if errors.As(err, &inputErr) {
		fmt.Fprintln(stdout, tui.RenderWarning(inputErr.Message))
		return nil
	}
	if err != nil {
		return err
	}

	if terminal {
		fmt.Fprintln(stdout, tui.RenderSearchComplete(result, a.adapter.Model()))
		fmt.Fprintln(stdout)
	}
	return out.Write(stdout, result)
}

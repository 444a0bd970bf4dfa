package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dhabedank/retailer-check/internal/tui"
)

// InteractiveCmd represents the interactive command
var InteractiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Search retailers from a full-screen terminal page",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func init() {
	addCommonFlags(InteractiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	// No logging: it would draw over the full-screen page.
	a, err := newApp(cmd, zerolog.Nop())
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewSearchModel(cmd.Context(), a.searcher), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}

package output

import (
	"fmt"
	"io"

	"github.com/dhabedank/retailer-check/internal/core"
	"github.com/dhabedank/retailer-check/internal/tui"
)

// TerminalAdapter draws the two-column detail boxes.
type TerminalAdapter struct {
	width int
}

// NewTerminalAdapter creates a terminal adapter.
func NewTerminalAdapter(config Config) *TerminalAdapter {
	return &TerminalAdapter{width: config.Width}
}

func (a *TerminalAdapter) Name() string {
	return "terminal"
}

func (a *TerminalAdapter) Write(w io.Writer, result *core.SearchResult) error {
	_, err := fmt.Fprintln(w, tui.RenderResult(result, a.width))
	return err
}

// RawAdapter prints the model answer exactly as it was returned.
type RawAdapter struct{}

func (RawAdapter) Name() string {
	return "raw"
}

func (RawAdapter) Write(w io.Writer, result *core.SearchResult) error {
	_, err := fmt.Fprintln(w, result.Raw)
	return err
}

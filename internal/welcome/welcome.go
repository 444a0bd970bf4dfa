package welcome

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhabedank/retailer-check/internal/tui"
)

const (
	configFileName = ".retailer-check.yaml"
	stateDirName   = ".retailer-check"
	markerFileName = ".initialized"
)

// IsFirstRun returns true if home has neither a config file nor the
// first-run marker.
func IsFirstRun(home string) bool {
	if home == "" {
		return false
	}

	if _, err := os.Stat(filepath.Join(home, configFileName)); err == nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(home, stateDirName, markerFileName)); err == nil {
		return false
	}
	return true
}

// MarkInitialized creates the first-run marker under home.
func MarkInitialized(home string) error {
	dir := filepath.Join(home, stateDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return os.WriteFile(filepath.Join(dir, markerFileName), []byte{}, 0644)
}

// PrintFirstRunNotice writes a welcome message for first-time users.
func PrintFirstRunNotice(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s Welcome to retailer-check!\n", tui.TitleStyle.Render("*"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Quick start:")
	fmt.Fprintf(w, "    1. Set %s (or another provider key) and run %s\n",
		tui.ModelStyle.Render("MISTRAL_API_KEY"), tui.ModelStyle.Render("retailer-check setup"))
	fmt.Fprintf(w, "    2. Put your retailer dataset in %s or pass %s\n",
		tui.ModelStyle.Render("data.csv"), tui.ModelStyle.Render("--dataset"))
	fmt.Fprintf(w, "    3. Look a retailer up: %s\n", tui.ModelStyle.Render(`retailer-check search "Acme Corp"`))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", tui.HelpStyle.Render("Run 'retailer-check --help' for all options"))
	fmt.Fprintln(w)
}

// ShowOnce prints the notice on the first run and records that it was
// shown. Errors are ignored; the notice is best effort.
func ShowOnce(w io.Writer) {
	home, err := os.UserHomeDir()
	if err != nil || !IsFirstRun(home) {
		return
	}
	PrintFirstRunNotice(w)
	_ = MarkInitialized(home)
}

package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dhabedank/retailer-check/internal/llm"
	"github.com/dhabedank/retailer-check/internal/tui"
)

var resetConfig bool

// SetupCmd represents the setup command.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Long: `Pick the LLM provider and model used for retailer lookups.

Only providers that are usable right now are listed: APIs whose key is
set (MISTRAL_API_KEY, ANTHROPIC_API_KEY, OPENAI_API_KEY) and installed
CLIs (claude, codex).

Configuration is saved to ~/.retailer-check.yaml`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	SetupCmd.Flags().BoolVar(&resetConfig, "reset", false, "Reset configuration to defaults")
}

func runSetup(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if resetConfig {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove config: %w", err)
		}
		fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration reset to defaults")
		fmt.Printf("  Removed: %s\n", configPath)
		return nil
	}

	fmt.Println("Providers: " + providerSummary(llm.ListAvailableAdapters()))

	models := llm.AllModels()
	if len(models) == 0 {
		return fmt.Errorf("no LLM providers detected. Set MISTRAL_API_KEY, ANTHROPIC_API_KEY or OPENAI_API_KEY, or install Claude Code or Codex")
	}

	p := tea.NewProgram(newSetupModel(models))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	finalModel := m.(setupModel)
	if finalModel.cancelled || finalModel.selected == nil {
		fmt.Println("Setup cancelled")
		return nil
	}

	settings, err := selectModel(configPath, *finalModel.selected)
	if err != nil {
		return err
	}
	if err := saveConfig(configPath, settings); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration saved to " + configPath)
	fmt.Println()
	fmt.Printf("  Provider: %s\n", tui.ModelStyle.Render(settings.LLM))
	fmt.Printf("  Model:    %s\n", tui.ModelStyle.Render(settings.Model))

	return nil
}

// selectModel returns the existing config at path with the provider and
// model replaced. Other keys are kept.
func selectModel(path string, info llm.ModelInfo) (Settings, error) {
	var settings Settings
	if _, err := os.Stat(path); err == nil {
		if err := readConfigFile(path, &settings); err != nil {
			return settings, err
		}
	}
	settings.LLM = info.Provider
	settings.Model = info.ID
	return settings, nil
}

// providerSummary lists every provider, highlighting the detected ones.
func providerSummary(detected []string) string {
	names := llm.Providers()
	parts := make([]string, len(names))
	for i, name := range names {
		if slices.Contains(detected, name) {
			parts[i] = tui.SelectedStyle.Render(name)
		} else {
			parts[i] = tui.UnselectedStyle.Render(name)
		}
	}
	return strings.Join(parts, "  ")
}

// Bubble Tea model for the setup wizard

type setupModel struct {
	list      list.Model
	selected  *llm.ModelInfo
	cancelled bool
}

type modelItem struct {
	info llm.ModelInfo
}

func (m modelItem) Title() string       { return m.info.Name + "  " + tui.HelpStyle.Render(m.info.Provider) }
func (m modelItem) Description() string { return m.info.Description }
func (m modelItem) FilterValue() string { return m.info.Name }

func newSetupModel(models []llm.ModelInfo) setupModel {
	items := make([]list.Item, len(models))
	for i, m := range models {
		items[i] = modelItem{info: m}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(tui.ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(tui.ColorMuted)

	l := list.New(items, delegate, 60, 14)
	l.Title = "Select Model for Retailer Lookups"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = tui.TitleStyle

	return setupModel{list: l}
}

func (m setupModel) Init() tea.Cmd {
	return nil
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if item, ok := m.list.SelectedItem().(modelItem); ok {
				info := item.info
				m.selected = &info
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m setupModel) View() string {
	if m.cancelled {
		return ""
	}
	help := tui.HelpStyle.Render("\n  ↑/↓: navigate • enter: select • q: quit")
	return "\n" + m.list.View() + help
}

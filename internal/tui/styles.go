package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for TUI components.
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#ffa500") // Orange
	ColorSecondary = lipgloss.Color("#27ae60") // Green
	ColorMuted     = lipgloss.Color("#95a5a6") // Gray
	ColorWarning   = lipgloss.Color("#f39c12") // Amber
	ColorError     = lipgloss.Color("#e74c3c") // Red

	// Additional colors
	ColorInfo       = lipgloss.Color("#3498db") // Blue
	ColorSuccess    = lipgloss.Color("#2ecc71") // Bright green
	ColorLegitimate = lipgloss.Color("#00c853") // Verdict green
)

// Text styles for consistent formatting.
var (
	// TitleStyle for main headings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle for section headings.
	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	// SuccessStyle for success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// WarningStyle for warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// SelectedStyle for selected items in lists.
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// UnselectedStyle for unselected items in lists.
	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	// ModelStyle for displaying provider and model names.
	ModelStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	// CostStyle for displaying costs.
	CostStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// SpinnerStyle for spinner text.
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Detail box styles for search results.
var (
	// LabelStyle for the label line inside a detail box.
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// ValueStyle for the value line inside a detail box.
	ValueStyle = lipgloss.NewStyle()

	// DetailBoxStyle for a regular fact.
	DetailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1).
			MarginBottom(1)

	// LegitimateBoxStyle for a positive legitimacy verdict.
	LegitimateBoxStyle = DetailBoxStyle.
				BorderForeground(ColorLegitimate).
				Foreground(ColorLegitimate)

	// InputBoxStyle for the search field.
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)
)

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhabedank/retailer-check/internal/core"
)

const (
	// DefaultWidth is used when the terminal width is unknown.
	DefaultWidth = 80

	columnGap = 2
	minColumn = 16
)

// RenderRecords lays records out as two columns of detail boxes. Left shows
// records 0, 2, 4, ... and right shows 1, 3, 5, ... in order.
func RenderRecords(records []core.DisplayRecord, width int) string {
	if len(records) == 0 {
		return HelpStyle.Render("No details returned.")
	}
	if width <= 0 {
		width = DefaultWidth
	}

	colWidth := (width - columnGap) / 2
	if colWidth < minColumn {
		colWidth = minColumn
	}

	left, right := core.Columns(records)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderColumn(left, colWidth),
		strings.Repeat(" ", columnGap),
		renderColumn(right, colWidth),
	)
}

func renderColumn(records []core.DisplayRecord, width int) string {
	boxes := make([]string, 0, len(records))
	for _, r := range records {
		boxes = append(boxes, RenderBox(r, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

// RenderBox renders one record as a bordered box of the given outer width.
func RenderBox(r core.DisplayRecord, width int) string {
	box := DetailBoxStyle
	label := LabelStyle
	if r.Legitimate() {
		box = LegitimateBoxStyle
		label = label.Foreground(ColorLegitimate)
	}

	// Border takes one cell on each side.
	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	content := label.Render(r.Label) + "\n" + ValueStyle.Render(r.Value)
	return box.Width(inner).Render(content)
}

package tui

import (
	"fmt"
	"time"

	"github.com/dhabedank/retailer-check/internal/core"
)

// SearchingMessage is shown while a completion request is in flight.
const SearchingMessage = "Analyzing retailer details..."

// RenderSearchStart returns the line printed before a search (non-interactive mode).
func RenderSearchStart(retailer, provider, model string, promptChars int) string {
	return fmt.Sprintf("%s %s  %s  %s  ~%s input tokens",
		SpinnerStyle.Render("→"),
		SearchingMessage,
		TitleStyle.Render(retailer),
		ModelStyle.Render(provider+"/"+model),
		FormatTokens(EstimateTokens(promptChars)),
	)
}

// RenderSearchComplete returns the line printed after a successful search.
func RenderSearchComplete(result *core.SearchResult, model string) string {
	est := EstimateSearch(model, result.PromptChars, len(result.Raw))

	return fmt.Sprintf("%s %d details  %s  ~%s tokens  %s",
		SuccessStyle.Render("✓"),
		len(result.Records),
		HelpStyle.Render(result.Elapsed.Truncate(time.Millisecond).String()),
		FormatTokens(est.Tokens()),
		CostStyle.Render(FormatCost(est.Cost)),
	)
}

// RenderResult returns the heading and the two-column detail boxes.
func RenderResult(result *core.SearchResult, width int) string {
	return SubtitleStyle.Render("Retailer Details") + "\n\n" + RenderRecords(result.Records, width)
}

// RenderWarning formats a recoverable input problem.
func RenderWarning(msg string) string {
	return WarningStyle.Render("! " + msg)
}

// RenderError formats a failed search.
func RenderError(err error) string {
	return ErrorStyle.Render("Error: " + err.Error())
}

package tui

import (
	"fmt"
	"strings"
)

// Pricing is the USD price per million tokens.
type Pricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

// ModelPricing lists known models. Dated or suffixed model IDs fall back
// to the longest matching family prefix, e.g. "mistral-large-2411" is
// priced as "mistral-large".
var ModelPricing = map[string]Pricing{
	"mistral-large":  {InputPer1M: 2.0, OutputPer1M: 6.0},
	"mistral-medium": {InputPer1M: 0.4, OutputPer1M: 2.0},
	"mistral-small":  {InputPer1M: 0.1, OutputPer1M: 0.3},

	"claude-opus-4-5":   {InputPer1M: 5.0, OutputPer1M: 25.0},
	"claude-sonnet-4-5": {InputPer1M: 3.0, OutputPer1M: 15.0},
	"claude-haiku-4-5":  {InputPer1M: 1.0, OutputPer1M: 5.0},

	"gpt-4o":      {InputPer1M: 2.5, OutputPer1M: 10.0},
	"gpt-4o-mini": {InputPer1M: 0.15, OutputPer1M: 0.60},
}

// defaultPricing is deliberately on the high side for unknown models.
var defaultPricing = Pricing{InputPer1M: 5.0, OutputPer1M: 15.0}

// PricingFor returns the pricing of model, or the default.
func PricingFor(model string) Pricing {
	best := ""
	for family := range ModelPricing {
		if strings.HasPrefix(model, family) && len(family) > len(best) {
			best = family
		}
	}
	if best == "" {
		return defaultPricing
	}
	return ModelPricing[best]
}

// Estimate is the approximate size and price of one search.
type Estimate struct {
	InputTokens  int
	OutputTokens int
	Cost         float64
}

// Tokens is the total of input and output tokens.
func (e Estimate) Tokens() int {
	return e.InputTokens + e.OutputTokens
}

// EstimateSearch estimates a search from the prompt and answer sizes. The
// prompt dominates since it carries the whole dataset.
func EstimateSearch(model string, promptChars, answerChars int) Estimate {
	in := EstimateTokens(promptChars)
	out := EstimateTokens(answerChars)
	return Estimate{
		InputTokens:  in,
		OutputTokens: out,
		Cost:         EstimateCost(model, in, out),
	}
}

// EstimateTokens estimates token count from character count.
// Uses the approximation that 1 token ≈ 4 characters.
func EstimateTokens(chars int) int {
	if chars <= 0 {
		return 0
	}
	return chars / 4
}

// EstimateCost returns the USD cost for model given token counts.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	p := PricingFor(model)
	return float64(inputTokens)*p.InputPer1M/1_000_000 + float64(outputTokens)*p.OutputPer1M/1_000_000
}

// FormatCost formats a cost in USD. A single search is usually well under
// a cent, so small amounts keep more digits.
func FormatCost(cost float64) string {
	switch {
	case cost < 0.001:
		return fmt.Sprintf("$%.4f", cost)
	case cost < 0.01:
		return fmt.Sprintf("$%.3f", cost)
	default:
		return fmt.Sprintf("$%.2f", cost)
	}
}

// FormatTokens formats a token count, with a k suffix for thousands.
func FormatTokens(tokens int) string {
	switch {
	case tokens < 1000:
		return fmt.Sprintf("%d", tokens)
	case tokens < 10000:
		return fmt.Sprintf("%.1fk", float64(tokens)/1000)
	default:
		return fmt.Sprintf("%dk", tokens/1000)
	}
}

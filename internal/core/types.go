package core

import (
	"fmt"
	"time"
)

// Emphasis marks records that get a distinguished visual style.
type Emphasis string

const (
	EmphasisNone       Emphasis = "none"
	EmphasisLegitimate Emphasis = "legitimate"
)

// Column is the side of the two-column layout a record is shown in.
type Column string

const (
	ColumnLeft  Column = "left"
	ColumnRight Column = "right"
)

// UnknownLabel is used for lines that carry no "label: value" structure.
const UnknownLabel = "Unknown"

// DisplayRecord is one parsed fact from the model's answer.
type DisplayRecord struct {
	Label    string   `json:"label"`    // Text before the first colon, bullet markers removed
	Value    string   `json:"value"`    // Text after the first colon
	Emphasis Emphasis `json:"emphasis"` // legitimate for a positive legitimacy verdict
	Column   Column   `json:"column"`   // left for even positions, right for odd
}

// Legitimate reports whether the record carries a positive legitimacy verdict.
func (r DisplayRecord) Legitimate() bool {
	return r.Emphasis == EmphasisLegitimate
}

// CompletionRequest is what gets sent to a completion service.
type CompletionRequest struct {
	// Prompt is the fully built instruction, dataset included.
	Prompt string

	// Retailer is the name the user searched for.
	Retailer string
}

// SearchResult is the outcome of one search action.
type SearchResult struct {
	Retailer    string          `json:"retailer"`
	Provider    string          `json:"provider"`
	Raw         string          `json:"raw"`
	Records     []DisplayRecord `json:"records"`
	PromptChars int             `json:"prompt_chars"`
	Elapsed     time.Duration   `json:"elapsed"`
}

// Left returns the records shown in the left column, in order.
func (r *SearchResult) Left() []DisplayRecord {
	left, _ := Columns(r.Records)
	return left
}

// Right returns the records shown in the right column, in order.
func (r *SearchResult) Right() []DisplayRecord {
	_, right := Columns(r.Records)
	return right
}

// InputError is returned when a search is attempted without a usable retailer name.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// ServiceFault wraps any failure reported by the completion service.
type ServiceFault struct {
	Provider string
	Err      error
}

func (e *ServiceFault) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ServiceFault) Unwrap() error {
	return e.Err
}

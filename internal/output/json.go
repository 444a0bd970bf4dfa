package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhabedank/retailer-check/internal/core"
)

// JSONAdapter writes the records as a JSON document.
type JSONAdapter struct {
	includeRaw bool
}

// NewJSONAdapter creates a JSON adapter.
func NewJSONAdapter(config Config) *JSONAdapter {
	return &JSONAdapter{includeRaw: config.IncludeRaw}
}

func (a *JSONAdapter) Name() string {
	return "json"
}

// Document is the JSON shape shared by the json adapter and the web API.
type Document struct {
	Retailer  string               `json:"retailer"`
	Provider  string               `json:"provider"`
	ElapsedMS int64                `json:"elapsed_ms"`
	Records   []core.DisplayRecord `json:"records"`
	Left      []core.DisplayRecord `json:"left"`
	Right     []core.DisplayRecord `json:"right"`
	Raw       string               `json:"raw,omitempty"`
}

// NewDocument builds the JSON document for result.
func NewDocument(result *core.SearchResult, includeRaw bool) Document {
	left, right := core.Columns(result.Records)
	doc := Document{
		Retailer:  result.Retailer,
		Provider:  result.Provider,
		ElapsedMS: result.Elapsed.Milliseconds(),
		Records:   result.Records,
		Left:      left,
		Right:     right,
	}
	if doc.Records == nil {
		doc.Records = []core.DisplayRecord{}
	}
	if includeRaw {
		doc.Raw = result.Raw
	}
	return doc
}

func (a *JSONAdapter) Write(w io.Writer, result *core.SearchResult) error {
	output, err := json.MarshalIndent(NewDocument(result, a.includeRaw), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(output)); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

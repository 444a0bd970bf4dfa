package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dhabedank/retailer-check/internal/core"
)

func sampleResult() *core.SearchResult {
	raw := "Name: Acme Corp\n- Legitimacy: Legitimate\nCountry: USA"
	return &core.SearchResult{
		Retailer: "Acme Corp",
		Provider: "mistral-api",
		Raw:      raw,
		Records:  core.ParseResponse(raw),
		Elapsed:  1500 * time.Millisecond,
	}
}

func TestNewAdapter(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "terminal", false},
		{"terminal", "terminal", false},
		{"json", "json", false},
		{"raw", "raw", false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := NewAdapter(tt.name, DefaultConfig())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAdapter(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err == nil && adapter.Name() != tt.want {
				t.Errorf("NewAdapter(%q).Name() = %s, want %s", tt.name, adapter.Name(), tt.want)
			}
		})
	}
}

func TestJSONAdapter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONAdapter(DefaultConfig()).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Retailer != "Acme Corp" || doc.Provider != "mistral-api" {
		t.Errorf("doc = %+v", doc)
	}
	if doc.ElapsedMS != 1500 {
		t.Errorf("ElapsedMS = %d, want 1500", doc.ElapsedMS)
	}
	if len(doc.Records) != 3 || len(doc.Left) != 2 || len(doc.Right) != 1 {
		t.Errorf("records/left/right = %d/%d/%d, want 3/2/1", len(doc.Records), len(doc.Left), len(doc.Right))
	}
	if doc.Right[0].Emphasis != core.EmphasisLegitimate {
		t.Errorf("right[0].Emphasis = %s, want legitimate", doc.Right[0].Emphasis)
	}
	if doc.Raw == "" {
		t.Error("raw answer should be included by default")
	}
}

func TestJSONAdapterWithoutRaw(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONAdapter(Config{}).Write(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"raw"`) {
		t.Error("raw should be omitted when IncludeRaw is false")
	}
}

func TestNewDocumentNoRecords(t *testing.T) {
	doc := NewDocument(&core.SearchResult{Retailer: "x"}, false)
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"records":[]`) {
		t.Errorf("records should encode as an empty array, got %s", data)
	}
}

func TestTerminalAndRawAdapters(t *testing.T) {
	var term bytes.Buffer
	if err := NewTerminalAdapter(DefaultConfig()).Write(&term, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(term.String(), "Retailer Details") || !strings.Contains(term.String(), "Acme Corp") {
		t.Errorf("terminal output missing content:\n%s", term.String())
	}

	var raw bytes.Buffer
	if err := (RawAdapter{}).Write(&raw, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if raw.String() != sampleResult().Raw+"\n" {
		t.Errorf("raw output = %q", raw.String())
	}
}

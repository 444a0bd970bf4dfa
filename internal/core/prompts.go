package core

import (
	"fmt"
	"os"
	"strings"
	"text/template"
)

// NoInformationAnswer is the verbatim answer the model gives when the dataset
// has nothing on the retailer.
const NoInformationAnswer = "No information available"

// DefaultPromptTemplate is the instruction sent to the completion service.
// It is rendered with the dataset as .Data and the searched name as .Retailer.
const DefaultPromptTemplate = `You are provided with a dataset containing details of retailers selling their products on e-commerce platforms.
Your job is to provide the details of the retailer about whom it is asked and determine whether the given retailer is legitimate or verified or not.
Use ONLY the dataset below. If the data does not have any information about the retailer, simply answer as '` + NoInformationAnswer + `'. Do not give further explanation or description.

Data:
{{.Data}}

Retailer: {{.Retailer}}

Present the answer in bullet point format, one fact per line, written as "Label: Value".
Always include your ultimate judgement whether the retailer is legitimate or not as a line "Legitimacy: Legitimate" or "Legitimacy: Unverified".
Also give the address and country of origin when the data has them.
Give clean text without any special characters or stylings.`

// PromptTemplate renders the instruction for one search.
type PromptTemplate struct {
	name string
	tmpl *template.Template
}

type promptVars struct {
	Data     string
	Retailer string
}

// NewPromptTemplate parses text as a prompt template.
func NewPromptTemplate(name, text string) (*PromptTemplate, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template %s: %w", name, err)
	}
	return &PromptTemplate{name: name, tmpl: tmpl}, nil
}

// LoadPromptTemplate reads a prompt template from path.
func LoadPromptTemplate(path string) (*PromptTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}
	return NewPromptTemplate(path, string(data))
}

// DefaultTemplate returns the built-in prompt template.
func DefaultTemplate() *PromptTemplate {
	t, err := NewPromptTemplate("default", DefaultPromptTemplate)
	if err != nil {
		panic(err)
	}
	return t
}

// Name identifies where the template came from.
func (t *PromptTemplate) Name() string {
	return t.name
}

// Build renders the prompt for dataset and retailer.
func (t *PromptTemplate) Build(dataset, retailer string) (string, error) {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, promptVars{Data: dataset, Retailer: retailer}); err != nil {
		return "", fmt.Errorf("failed to render prompt template %s: %w", t.name, err)
	}
	return b.String(), nil
}

var defaultTemplate = DefaultTemplate()

// BuildPrompt renders the built-in prompt. It has no failure mode.
func BuildPrompt(dataset, retailer string) string {
	prompt, err := defaultTemplate.Build(dataset, retailer)
	if err != nil {
		// The built-in template only references fields promptVars always has.
		panic(err)
	}
	return prompt
}

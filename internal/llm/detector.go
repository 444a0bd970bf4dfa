package llm

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// ModelInfo describes an available model.
type ModelInfo struct {
	ID          string // Model identifier (e.g., "mistral-large-latest")
	Name        string // Human-readable name
	Description string // Brief description
	Provider    string // Adapter name that serves it (e.g., "mistral-api")
}

var mistralModels = []ModelInfo{
	{ID: "mistral-large-latest", Name: "Mistral Large", Description: "Flagship model, best answers on long tables", Provider: "mistral-api"},
	{ID: "mistral-medium-latest", Name: "Mistral Medium", Description: "Balanced cost and quality", Provider: "mistral-api"},
	{ID: "mistral-small-latest", Name: "Mistral Small", Description: "Fastest, most cost-effective", Provider: "mistral-api"},
}

var anthropicModels = []ModelInfo{
	{ID: "claude-sonnet-4-5-20250929", Name: "Claude Sonnet 4.5", Description: "Best balance of speed and capability", Provider: "anthropic-api"},
	{ID: "claude-haiku-4-5-20251001", Name: "Claude Haiku 4.5", Description: "Fastest, most cost-effective", Provider: "anthropic-api"},
	{ID: "claude-opus-4-5-20251101", Name: "Claude Opus 4.5", Description: "Maximum intelligence", Provider: "anthropic-api"},
}

var openAIModels = []ModelInfo{
	{ID: "gpt-4o-mini", Name: "GPT-4o Mini", Description: "Most cost-effective", Provider: "openai-api"},
	{ID: "gpt-4o", Name: "GPT-4o", Description: "Fast multimodal model", Provider: "openai-api"},
}

// withProvider copies models and points them at another adapter.
func withProvider(models []ModelInfo, provider string) []ModelInfo {
	out := make([]ModelInfo, len(models))
	for i, m := range models {
		m.Provider = provider
		out[i] = m
	}
	return out
}

// catalogue maps each adapter to the models it can serve.
var catalogue = map[string][]ModelInfo{
	"mistral-api":   mistralModels,
	"anthropic-api": anthropicModels,
	"openai-api":    openAIModels,
	"claude-cli":    withProvider(anthropicModels, "claude-cli"),
	"codex-cli":     withProvider(openAIModels, "codex-cli"),
}

// AvailableModels returns models grouped by adapter, based on the API keys
// set and the CLIs installed.
func AvailableModels() map[string][]ModelInfo {
	result := make(map[string][]ModelInfo)
	for _, provider := range providerOrder {
		if providerAvailable(provider) {
			result[provider] = catalogue[provider]
		}
	}
	return result
}

func providerAvailable(provider string) bool {
	switch provider {
	case "mistral-api":
		return os.Getenv(mistralKeyEnv) != ""
	case "anthropic-api":
		return os.Getenv(anthropicKeyEnv) != ""
	case "openai-api":
		return os.Getenv(openAIKeyEnv) != ""
	case "claude-cli":
		return NewClaudeCLIAdapter(Config{}).IsAvailable()
	case "codex-cli":
		return NewCodexCLIAdapter(Config{}).IsAvailable()
	}
	return false
}

// providerOrder is the order adapters are tried in when none is requested.
var providerOrder = []string{"mistral-api", "anthropic-api", "openai-api", "claude-cli", "codex-cli"}

// Providers returns every adapter name NewAdapter accepts besides "auto".
func Providers() []string {
	return append([]string(nil), providerOrder...)
}

// AllModels returns a flat list of all available models, preferred providers first.
func AllModels() []ModelInfo {
	available := AvailableModels()
	var result []ModelInfo
	for _, provider := range providerOrder {
		result = append(result, available[provider]...)
	}
	return result
}

// ProvidersFor returns the adapters that serve model, in detection order.
// It is empty for models outside the catalogue.
func ProvidersFor(model string) []string {
	var names []string
	for _, provider := range providerOrder {
		for _, m := range catalogue[provider] {
			if m.ID == model {
				names = append(names, provider)
				break
			}
		}
	}
	return names
}

// NewAdapter creates the named adapter. API adapters fail without a key,
// CLI adapters fail when the binary is not installed.
func NewAdapter(name string, config Config) (Adapter, error) {
	switch name {
	case "auto", "":
		return DetectBestAdapter(config)
	case "mistral-api":
		adapter, err := NewMistralAPIAdapter(config)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case "anthropic-api":
		adapter, err := NewAnthropicAPIAdapter(config)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case "openai-api":
		adapter, err := NewOpenAIAPIAdapter(config)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case "claude-cli":
		adapter := NewClaudeCLIAdapter(config)
		if !adapter.IsAvailable() {
			return nil, fmt.Errorf("Claude CLI not available - install Claude Code")
		}
		return adapter, nil
	case "codex-cli":
		adapter := NewCodexCLIAdapter(config)
		if !adapter.IsAvailable() {
			return nil, fmt.Errorf("Codex CLI not available - install Codex")
		}
		return adapter, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", name)
	}
}

// detectionOrder is providerOrder with the CLIs first when preferCLI is set.
func detectionOrder(preferCLI bool) []string {
	if !preferCLI {
		return providerOrder
	}
	return []string{"claude-cli", "codex-cli", "mistral-api", "anthropic-api", "openai-api"}
}

// DetectBestAdapter finds the best available adapter.
// Priority: Mistral API > Anthropic API > OpenAI API > Claude CLI > Codex CLI,
// with the CLIs moved to the front when PreferCLI is set. A catalogue model
// restricts the choice to the adapters that serve it.
func DetectBestAdapter(config Config) (Adapter, error) {
	candidates := detectionOrder(config.PreferCLI)

	var serving []string
	if config.Model != "" {
		serving = ProvidersFor(config.Model)
	}
	if len(serving) > 0 {
		candidates = slices.DeleteFunc(slices.Clone(candidates), func(name string) bool {
			return !slices.Contains(serving, name)
		})
	}

	var errs []error
	for _, name := range candidates {
		adapter, err := NewAdapter(name, config)
		if err == nil {
			return adapter, nil
		}
		errs = append(errs, err)
	}

	if len(serving) > 0 {
		return nil, fmt.Errorf("model %s is served by %s, which is not available: %w",
			config.Model, strings.Join(serving, " or "), errors.Join(errs...))
	}
	return nil, fmt.Errorf("no LLM adapter available - set %s, %s or %s, or install Claude Code or Codex",
		mistralKeyEnv, anthropicKeyEnv, openAIKeyEnv)
}

// ListAvailableAdapters returns the names of all adapters that could be used.
func ListAvailableAdapters() []string {
	names := []string{}
	for _, provider := range providerOrder {
		if providerAvailable(provider) {
			names = append(names, provider)
		}
	}
	return names
}

package llm

import (
	"context"
	"strings"

	"github.com/dhabedank/retailer-check/internal/core"
)

// Adapter is the interface all completion providers must implement.
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// Model returns the model the adapter sends requests to.
	Model() string

	// IsAvailable checks if this adapter can be used (CLI installed, API key set, etc.)
	IsAvailable() bool

	// Complete sends the prompt to the model and returns its raw text answer.
	Complete(ctx context.Context, req core.CompletionRequest) (string, error)
}

var _ core.Completer = Adapter(nil)

// Config holds configuration for LLM adapters.
type Config struct {
	// PreferCLI prefers CLI tools (claude, codex) over APIs when available.
	PreferCLI bool `yaml:"prefer_cli"`

	// Model specifies which model to use (optional, adapter chooses default).
	Model string `yaml:"model"`

	// APIKey overrides the provider's environment variable.
	APIKey string `yaml:"-"`

	// BaseURL overrides the provider endpoint (OpenAI-compatible adapters).
	BaseURL string `yaml:"base_url"`

	// MaxTokens limits response length.
	MaxTokens int `yaml:"max_tokens"`

	// MaxRetries is handed to the provider client, which owns retry policy.
	MaxRetries int `yaml:"max_retries"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PreferCLI:  false,
		MaxTokens:  1024,
		MaxRetries: 2,
	}
}

// answerText is the answer every adapter returns: raw without surrounding whitespace.
func answerText(raw string) string {
	return strings.TrimSpace(raw)
}

func (c Config) modelOr(fallback string) string {
	if c.Model != "" {
		return c.Model
	}
	return fallback
}

func (c Config) maxTokensOr(fallback int) int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return fallback
}

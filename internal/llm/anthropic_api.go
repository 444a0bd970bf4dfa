package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dhabedank/retailer-check/internal/core"
)

const (
	anthropicKeyEnv       = "ANTHROPIC_API_KEY"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

// AnthropicAPIAdapter uses the Anthropic Messages API directly.
type AnthropicAPIAdapter struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicAPIAdapter creates an Anthropic API adapter. It fails when no
// API key is configured.
func NewAnthropicAPIAdapter(config Config) (*AnthropicAPIAdapter, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(anthropicKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s not set", anthropicKeyEnv)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(config.MaxRetries),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &AnthropicAPIAdapter{
		client:    anthropic.NewClient(opts...),
		model:     config.modelOr(defaultAnthropicModel),
		maxTokens: config.maxTokensOr(1024),
	}, nil
}

func (a *AnthropicAPIAdapter) Name() string {
	return "anthropic-api"
}

func (a *AnthropicAPIAdapter) Model() string {
	return a.model
}

// IsAvailable is true once the adapter was constructed, since that requires a key.
func (a *AnthropicAPIAdapter) IsAvailable() bool {
	return a != nil
}

func (a *AnthropicAPIAdapter) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   int64(a.maxTokens),
		Temperature: anthropic.Float(0),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var output string
	for _, block := range resp.Content {
		if block.Type == "text" {
			output += block.Text
		}
	}
	return answerText(output), nil
}

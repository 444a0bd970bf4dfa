package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/dhabedank/retailer-check/internal/core"
)

const (
	mistralKeyEnv       = "MISTRAL_API_KEY"
	mistralBaseURL      = "https://api.mistral.ai/v1/"
	defaultMistralModel = "mistral-large-latest"

	openAIKeyEnv       = "OPENAI_API_KEY"
	defaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIAPIAdapter talks to any OpenAI-compatible chat completions endpoint.
// Mistral exposes one, so the same adapter serves both providers.
type OpenAIAPIAdapter struct {
	name      string
	client    openai.Client
	model     string
	maxTokens int
}

// NewMistralAPIAdapter creates an adapter for Mistral's hosted models.
func NewMistralAPIAdapter(config Config) (*OpenAIAPIAdapter, error) {
	return newOpenAICompatible("mistral-api", mistralKeyEnv, mistralBaseURL, defaultMistralModel, config)
}

// NewOpenAIAPIAdapter creates an adapter for OpenAI's hosted models.
func NewOpenAIAPIAdapter(config Config) (*OpenAIAPIAdapter, error) {
	return newOpenAICompatible("openai-api", openAIKeyEnv, "", defaultOpenAIModel, config)
}

func newOpenAICompatible(name, keyEnv, baseURL, model string, config Config) (*OpenAIAPIAdapter, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(keyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s not set", keyEnv)
	}

	if config.BaseURL != "" {
		baseURL = config.BaseURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(config.MaxRetries),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIAPIAdapter{
		name:      name,
		client:    openai.NewClient(opts...),
		model:     config.modelOr(model),
		maxTokens: config.maxTokensOr(1024),
	}, nil
}

func (a *OpenAIAPIAdapter) Name() string {
	return a.name
}

func (a *OpenAIAPIAdapter) Model() string {
	return a.model
}

// IsAvailable is true once the adapter was constructed, since that requires a key.
func (a *OpenAIAPIAdapter) IsAvailable() bool {
	return a != nil
}

func (a *OpenAIAPIAdapter) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(0),
		MaxTokens:   openai.Int(int64(a.maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion failed: %w", a.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", a.name)
	}
	return answerText(resp.Choices[0].Message.Content), nil
}

package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dhabedank/retailer-check/internal/core"
)

func clearKeys(t *testing.T) {
	t.Helper()
	t.Setenv(mistralKeyEnv, "")
	t.Setenv(anthropicKeyEnv, "")
	t.Setenv(openAIKeyEnv, "")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.PreferCLI {
		t.Error("PreferCLI should be false by default")
	}
	if config.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d, want 1024", config.MaxTokens)
	}
	if config.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", config.MaxRetries)
	}
}

func TestAdapterNames(t *testing.T) {
	config := Config{APIKey: "test-key-for-name-test"}

	mistral, err := NewMistralAPIAdapter(config)
	if err != nil {
		t.Fatal(err)
	}
	anthropic, err := NewAnthropicAPIAdapter(config)
	if err != nil {
		t.Fatal(err)
	}
	openAI, err := NewOpenAIAPIAdapter(config)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		adapter Adapter
		want    string
	}{
		{mistral, "mistral-api"},
		{anthropic, "anthropic-api"},
		{openAI, "openai-api"},
		{NewClaudeCLIAdapter(config), "claude-cli"},
		{NewCodexCLIAdapter(config), "codex-cli"},
	}
	for _, tt := range tests {
		if got := tt.adapter.Name(); got != tt.want {
			t.Errorf("Name() = %s, want %s", got, tt.want)
		}
	}
}

func TestAPIAdaptersRequireKey(t *testing.T) {
	clearKeys(t)

	if _, err := NewMistralAPIAdapter(Config{}); err == nil || !strings.Contains(err.Error(), "MISTRAL_API_KEY") {
		t.Errorf("NewMistralAPIAdapter() error = %v, want missing MISTRAL_API_KEY", err)
	}
	if _, err := NewAnthropicAPIAdapter(Config{}); err == nil || !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Errorf("NewAnthropicAPIAdapter() error = %v, want missing ANTHROPIC_API_KEY", err)
	}
	if _, err := NewOpenAIAPIAdapter(Config{}); err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("NewOpenAIAPIAdapter() error = %v, want missing OPENAI_API_KEY", err)
	}
}

func TestAPIAdapterKeyFromEnv(t *testing.T) {
	clearKeys(t)
	t.Setenv(mistralKeyEnv, "from-env")

	adapter, err := NewMistralAPIAdapter(Config{})
	if err != nil {
		t.Fatalf("NewMistralAPIAdapter() error = %v", err)
	}
	if adapter.model != defaultMistralModel {
		t.Errorf("model = %s, want %s", adapter.model, defaultMistralModel)
	}
	if !adapter.IsAvailable() {
		t.Error("constructed adapter should be available")
	}
}

func TestNewAdapter(t *testing.T) {
	clearKeys(t)
	t.Setenv(anthropicKeyEnv, "key")

	adapter, err := NewAdapter("anthropic-api", DefaultConfig())
	if err != nil {
		t.Fatalf("NewAdapter() error = %v", err)
	}
	if adapter.Name() != "anthropic-api" {
		t.Errorf("Name() = %s, want anthropic-api", adapter.Name())
	}

	adapter, err = NewAdapter("mistral-api", DefaultConfig())
	if err == nil {
		t.Error("NewAdapter(mistral-api) without key should fail")
	}
	if adapter != nil {
		t.Error("failed NewAdapter should return a nil Adapter")
	}

	if _, err := NewAdapter("carrier-pigeon", DefaultConfig()); err == nil {
		t.Error("unknown provider should fail")
	}
}

func TestDetectBestAdapterPrefersMistral(t *testing.T) {
	clearKeys(t)
	t.Setenv(mistralKeyEnv, "m")
	t.Setenv(openAIKeyEnv, "o")

	adapter, err := DetectBestAdapter(DefaultConfig())
	if err != nil {
		t.Fatalf("DetectBestAdapter() error = %v", err)
	}
	if adapter.Name() != "mistral-api" {
		t.Errorf("DetectBestAdapter() = %s, want mistral-api", adapter.Name())
	}

	names := ListAvailableAdapters()
	if len(names) < 2 || names[0] != "mistral-api" || names[1] != "openai-api" {
		t.Errorf("ListAvailableAdapters() = %v, want mistral-api then openai-api first", names)
	}
}

// stubCLI puts an executable named bin on an otherwise empty PATH.
func stubCLI(t *testing.T, bin, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, bin), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
}

func TestDetectBestAdapterPreferCLI(t *testing.T) {
	clearKeys(t)
	t.Setenv(mistralKeyEnv, "m")
	stubCLI(t, "claude", "#!/bin/sh\ncat\n")

	config := DefaultConfig()
	adapter, err := DetectBestAdapter(config)
	if err != nil {
		t.Fatal(err)
	}
	if adapter.Name() != "mistral-api" {
		t.Errorf("DetectBestAdapter() = %s, want mistral-api", adapter.Name())
	}

	config.PreferCLI = true
	adapter, err = DetectBestAdapter(config)
	if err != nil {
		t.Fatal(err)
	}
	if adapter.Name() != "claude-cli" {
		t.Errorf("DetectBestAdapter(PreferCLI) = %s, want claude-cli", adapter.Name())
	}

	names := ListAvailableAdapters()
	if len(names) != 2 || names[0] != "mistral-api" || names[1] != "claude-cli" {
		t.Errorf("ListAvailableAdapters() = %v, want [mistral-api claude-cli]", names)
	}
}

func TestDetectBestAdapterModel(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		model   string
		want    string
		wantErr string
	}{
		{
			name:    "catalogue model without its provider",
			keys:    []string{anthropicKeyEnv},
			model:   "mistral-large-latest",
			wantErr: "MISTRAL_API_KEY",
		},
		{
			name:  "catalogue model picks its provider",
			keys:  []string{anthropicKeyEnv, mistralKeyEnv},
			model: "claude-haiku-4-5-20251001",
			want:  "anthropic-api",
		},
		{
			name:  "catalogue model skips preferred providers",
			keys:  []string{mistralKeyEnv, openAIKeyEnv},
			model: "gpt-4o",
			want:  "openai-api",
		},
		{
			name:  "unknown model keeps detection order",
			keys:  []string{anthropicKeyEnv},
			model: "my-finetune",
			want:  "anthropic-api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeys(t)
			t.Setenv("PATH", t.TempDir())
			for _, k := range tt.keys {
				t.Setenv(k, "key")
			}

			config := DefaultConfig()
			config.Model = tt.model
			adapter, err := NewAdapter("auto", config)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) || !strings.Contains(err.Error(), tt.model) {
					t.Fatalf("NewAdapter() error = %v, want it to name %s and %s", err, tt.model, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewAdapter() error = %v", err)
			}
			if adapter.Name() != tt.want || adapter.Model() != tt.model {
				t.Errorf("NewAdapter() = %s/%s, want %s/%s", adapter.Name(), adapter.Model(), tt.want, tt.model)
			}
		})
	}
}

func TestProvidersFor(t *testing.T) {
	if got := ProvidersFor("claude-sonnet-4-5-20250929"); len(got) != 2 || got[0] != "anthropic-api" || got[1] != "claude-cli" {
		t.Errorf("ProvidersFor(claude) = %v", got)
	}
	if got := ProvidersFor("mistral-small-latest"); len(got) != 1 || got[0] != "mistral-api" {
		t.Errorf("ProvidersFor(mistral) = %v", got)
	}
	if got := ProvidersFor("unknown"); len(got) != 0 {
		t.Errorf("ProvidersFor(unknown) = %v, want none", got)
	}
}

func TestOpenAIAPIAdapterComplete(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "cmpl-1",
			"object": "chat.completion",
			"created": 0,
			"model": "mistral-large-latest",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "Name: Acme Corp\nLegitimacy: Legitimate\n"}
			}]
		}`)
	}))
	defer srv.Close()

	adapter, err := NewMistralAPIAdapter(Config{APIKey: "secret", BaseURL: srv.URL + "/v1/"})
	if err != nil {
		t.Fatal(err)
	}

	out, err := adapter.Complete(context.Background(), core.CompletionRequest{Prompt: "describe Acme", Retailer: "Acme"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "Name: Acme Corp\nLegitimacy: Legitimate" {
		t.Errorf("Complete() = %q", out)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
	}
	if gotBody["model"] != "mistral-large-latest" {
		t.Errorf("model = %v, want mistral-large-latest", gotBody["model"])
	}
	if gotBody["temperature"] != float64(0) {
		t.Errorf("temperature = %v, want 0", gotBody["temperature"])
	}
}

func TestOpenAIAPIAdapterError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`)
	}))
	defer srv.Close()

	adapter, err := NewOpenAIAPIAdapter(Config{APIKey: "bad", BaseURL: srv.URL + "/v1/", MaxRetries: 0})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := adapter.Complete(context.Background(), core.CompletionRequest{Prompt: "p"}); err == nil {
		t.Error("Complete() should fail on 401")
	}
}

func TestAnthropicAPIAdapterComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5-20250929",
			"content": [
				{"type": "text", "text": "Name: Acme Corp\n"},
				{"type": "text", "text": "Country: USA\n\n"}
			],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`)
	}))
	defer srv.Close()

	adapter, err := NewAnthropicAPIAdapter(Config{APIKey: "secret", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatal(err)
	}

	out, err := adapter.Complete(context.Background(), core.CompletionRequest{Prompt: "describe Acme"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "Name: Acme Corp\nCountry: USA" {
		t.Errorf("Complete() = %q", out)
	}
}

func TestClaudeCLIAdapterComplete(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}
	script := filepath.Join(t.TempDir(), "claude")
	if err := os.WriteFile(script, []byte("#!/bin/sh\ncat\n"), 0755); err != nil {
		t.Fatal(err)
	}

	adapter := NewClaudeCLIAdapter(Config{})
	adapter.bin = script
	if !adapter.IsAvailable() {
		t.Fatal("stub CLI should be available")
	}

	out, err := adapter.Complete(context.Background(), core.CompletionRequest{Prompt: "Name: echoed\n"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "Name: echoed" {
		t.Errorf("Complete() = %q, want trimmed stdin echo", out)
	}
}

func TestCodexCLIAdapterFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}
	script := filepath.Join(t.TempDir(), "codex")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho 'quota exceeded' >&2\nexit 3\n"), 0755); err != nil {
		t.Fatal(err)
	}

	adapter := NewCodexCLIAdapter(Config{})
	adapter.bin = script

	_, err := adapter.Complete(context.Background(), core.CompletionRequest{Prompt: "p"})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Complete() error = %v, want stderr in message", err)
	}
}

func TestCLIAdapterIsAvailable(t *testing.T) {
	// Depends on the machine; only verify it doesn't panic.
	t.Logf("Claude CLI available: %v", NewClaudeCLIAdapter(Config{}).IsAvailable())
	t.Logf("Codex CLI available: %v", NewCodexCLIAdapter(Config{}).IsAvailable())
}
